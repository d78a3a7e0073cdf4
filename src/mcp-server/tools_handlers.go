// Copyright (c) 2025 H0llyW00dzZ All rights reserved.
//
// By accessing or using this software, you agree to be bound by the terms
// of the License Agreement, which you can find at LICENSE files.

package mcpserver

import (
	"context"
	"errors"

	"github.com/joswr1ght/sslmate-mcp/src/sslmate"
)

// SearchParameters records the effective filter settings of a search call.
type SearchParameters struct {
	Limit             int  `json:"limit"`
	IncludeExpired    bool `json:"include_expired"`
	IncludeSubdomains bool `json:"include_subdomains"`
}

// SearchResult is the JSON payload returned by the search_certificates tool.
//
// Upstream failures surface through the Error field rather than a protocol
// error, so the calling LLM sees what went wrong and can re-issue the call.
type SearchResult struct {
	Query            string                      `json:"query"`
	TotalResults     int                         `json:"total_results"`
	Certificates     []sslmate.CertificateRecord `json:"certificates"`
	SearchParameters SearchParameters            `json:"search_parameters"`
	Error            string                      `json:"error,omitempty"`
}

// DetailsResult is the JSON payload returned by the get_certificate_details tool.
type DetailsResult struct {
	CertificateID string                     `json:"certificate_id"`
	Certificate   *sslmate.CertificateRecord `json:"certificate,omitempty"`
	Error         string                     `json:"error,omitempty"`
}

// handleSearchCertificates runs the search_certificates tool.
func (s *Server) handleSearchCertificates(ctx context.Context, args map[string]any) (any, error) {
	query := stringArg(args, "query", "")
	limit := intArg(args, "limit", defaultSearchLimit)
	includeExpired := boolArg(args, "include_expired", false)
	includeSubdomains := boolArg(args, "include_subdomains", false)

	result := SearchResult{
		Query: query,
		SearchParameters: SearchParameters{
			Limit:             limit,
			IncludeExpired:    includeExpired,
			IncludeSubdomains: includeSubdomains,
		},
	}

	records, err := s.client.Search(ctx, query, limit, includeExpired, includeSubdomains)
	if err != nil {
		s.log.Errorf("search_certificates failed: %v", err)
		result.Error = err.Error()
		result.Certificates = []sslmate.CertificateRecord{}
		return result, nil
	}

	result.TotalResults = len(records)
	result.Certificates = records
	return result, nil
}

// handleGetCertificateDetails runs the get_certificate_details tool.
//
// Against the SSLMate API this reports "Certificate not found" for every ID:
// the upstream has no fetch-by-id endpoint, and that capability gap is part
// of the tool's contract rather than a failure.
func (s *Server) handleGetCertificateDetails(ctx context.Context, args map[string]any) (any, error) {
	certID := stringArg(args, "cert_id", "")

	result := DetailsResult{CertificateID: certID}

	record, err := s.client.GetDetails(ctx, certID)
	switch {
	case errors.Is(err, sslmate.ErrCertificateNotFound):
		result.Error = "Certificate not found"
	case err != nil:
		s.log.Errorf("get_certificate_details failed: %v", err)
		result.Error = err.Error()
	default:
		result.Certificate = record
	}

	return result, nil
}
