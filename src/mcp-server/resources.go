// Copyright (c) 2025 H0llyW00dzZ All rights reserved.
//
// By accessing or using this software, you agree to be bound by the terms
// of the License Agreement, which you can find at LICENSE files.

package mcpserver

import (
	"context"
	"encoding/json"
	"fmt"
	"net/url"
	"strings"

	"github.com/joswr1ght/sslmate-mcp/src/sslmate"
)

// searchResourcePrefix is the URI prefix of the parametrized search resource.
const searchResourcePrefix = "sslmate://search/"

// ResourceDescriptor describes one readable resource for resources/list.
type ResourceDescriptor struct {
	URI         string `json:"uri"`
	Name        string `json:"name,omitempty"`
	Description string `json:"description"`
	MimeType    string `json:"mimeType,omitempty"`
}

// ResourceContents is one entry of a resources/read result.
type ResourceContents struct {
	URI      string `json:"uri"`
	MimeType string `json:"mimeType,omitempty"`
	Text     string `json:"text"`
}

// createResources declares the parametrized certificate search resource.
func createResources() []ResourceDescriptor {
	return []ResourceDescriptor{
		{
			URI:         searchResourcePrefix + "{query}",
			Name:        "Certificate search",
			Description: "Certificate search results",
			MimeType:    "application/json",
		},
	}
}

// readResource resolves a resource URI and returns its contents.
// Only the sslmate://search/{query} template is served; the search payload
// matches the search_certificates tool with default parameters.
func (s *Server) readResource(ctx context.Context, uri string) ([]ResourceContents, error) {
	if !strings.HasPrefix(uri, searchResourcePrefix) {
		return nil, fmt.Errorf("unknown resource: %s", uri)
	}

	rawQuery := strings.TrimPrefix(uri, searchResourcePrefix)
	query, err := url.PathUnescape(rawQuery)
	if err != nil {
		query = rawQuery
	}

	result := SearchResult{
		Query: query,
		SearchParameters: SearchParameters{
			Limit: defaultSearchLimit,
		},
	}

	records, searchErr := s.client.Search(ctx, query, defaultSearchLimit, false, false)
	if searchErr != nil {
		result.Error = searchErr.Error()
		result.Certificates = []sslmate.CertificateRecord{}
	} else {
		result.TotalResults = len(records)
		result.Certificates = records
	}

	text, err := json.MarshalIndent(result, "", "  ")
	if err != nil {
		return nil, fmt.Errorf("failed to encode resource payload: %w", err)
	}

	return []ResourceContents{
		{
			URI:      uri,
			MimeType: "application/json",
			Text:     string(text),
		},
	}, nil
}
