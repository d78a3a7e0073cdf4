// Copyright (c) 2025 H0llyW00dzZ All rights reserved.
//
// By accessing or using this software, you agree to be bound by the terms
// of the License Agreement, which you can find at LICENSE files.

package mcpserver

// defaultSearchLimit caps search results when the caller does not specify
// a limit. It matches the upstream API's own documented page size.
const defaultSearchLimit = 100

// registerTools declares the certificate tools on the registry.
// Registration happens once at server construction; the registry is never
// mutated afterwards.
func (s *Server) registerTools() {
	s.registry.Register(
		"search_certificates",
		"Search for SSL/TLS certificates using SSLMate API",
		InputSchema{
			Type: "object",
			Properties: map[string]SchemaProperty{
				"query": {
					Type:        "string",
					Description: "Search term (domain name, organization, etc.)",
				},
				"limit": {
					Type:        "integer",
					Description: "Maximum number of results (default: 100)",
					Default:     defaultSearchLimit,
				},
				"include_expired": {
					Type:        "boolean",
					Description: "Include expired certificates (default: false)",
					Default:     false,
				},
				"include_subdomains": {
					Type:        "boolean",
					Description: "Include certificates for subdomains of the query (default: false)",
					Default:     false,
				},
			},
			Required: []string{"query"},
		},
		s.handleSearchCertificates,
	)

	s.registry.Register(
		"get_certificate_details",
		"Get detailed information about a specific certificate",
		InputSchema{
			Type: "object",
			Properties: map[string]SchemaProperty{
				"cert_id": {
					Type:        "string",
					Description: "Certificate ID from SSLMate",
				},
			},
			Required: []string{"cert_id"},
		},
		s.handleGetCertificateDetails,
	)
}
