// Copyright (c) 2025 H0llyW00dzZ All rights reserved.
//
// By accessing or using this software, you agree to be bound by the terms
// of the License Agreement, which you can find at LICENSE files.

package sslmate

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"net/url"
	"strconv"
	"sync"
	"time"

	"github.com/joswr1ght/sslmate-mcp/src/internal/helper/gc"
	"github.com/joswr1ght/sslmate-mcp/src/logger"
	"github.com/joswr1ght/sslmate-mcp/src/version"
)

// DefaultBaseURL is the SSLMate certificate search API endpoint.
const DefaultBaseURL = "https://api.sslmate.com/v1"

// DefaultTimeout caps each upstream HTTP call.
const DefaultTimeout = 30 * time.Second

// ErrCertificateNotFound is returned by GetDetails when the certificate
// cannot be fetched. For this upstream it is returned unconditionally: the
// SSLMate search API offers no fetch-by-id endpoint, and that capability gap
// is deliberately surfaced as "not found" rather than inventing behavior.
var ErrCertificateNotFound = errors.New("certificate not found")

// Options configures optional Client behavior. The zero value selects the
// production endpoint with the default timeout and a silent logger.
type Options struct {
	// BaseURL overrides the upstream API endpoint (useful for tests).
	BaseURL string
	// Timeout overrides the per-call HTTP timeout.
	Timeout time.Duration
	// Logger receives skipped-record warnings and request diagnostics.
	Logger logger.Logger
	// SupportsDetails declares whether the chosen upstream provider exposes a
	// direct fetch-by-id endpoint. SSLMate does not, so the default is false
	// and GetDetails reports ErrCertificateNotFound without a network call.
	SupportsDetails bool
}

// Client talks to the SSLMate certificate-transparency search API.
//
// The underlying connection pool is the only shared resource; create the
// client once at server construction and release it with Close exactly once
// at shutdown. Close is idempotent.
type Client struct {
	baseURL         string
	apiKey          string
	hc              *http.Client
	log             logger.Logger
	supportsDetails bool
	closeOnce       sync.Once
}

// New creates a Client authenticated with the given API key.
func New(apiKey string, opts Options) *Client {
	if opts.BaseURL == "" {
		opts.BaseURL = DefaultBaseURL
	}
	if opts.Timeout <= 0 {
		opts.Timeout = DefaultTimeout
	}
	if opts.Logger == nil {
		opts.Logger = logger.NewMCPLogger(nil, true)
	}

	return &Client{
		baseURL:         opts.BaseURL,
		apiKey:          apiKey,
		hc:              &http.Client{Timeout: opts.Timeout},
		log:             opts.Logger,
		supportsDetails: opts.SupportsDetails,
	}
}

// SupportsDetails reports whether the upstream provider can serve
// fetch-by-id lookups.
func (c *Client) SupportsDetails() bool { return c.supportsDetails }

// searchResponse is the top-level upstream search payload. Entries stay raw
// so one malformed record cannot poison the rest of the batch.
type searchResponse struct {
	Certificates []json.RawMessage `json:"certificates"`
}

// Search queries the upstream API for certificates matching query.
//
// The upstream cannot filter expired records or cap results server-side, so
// both filters run client-side after parsing, in response order: expired
// records are dropped first (unless includeExpired), then the sequence is
// truncated to limit entries. The first limit non-expired records are
// returned, not the first limit raw records. A limit of zero or less means
// no truncation.
//
// Individual records that fail to parse are skipped with a logged warning.
// Network failures and response-format failures surface as errors.
func (c *Client) Search(ctx context.Context, query string, limit int, includeExpired, includeSubdomains bool) ([]CertificateRecord, error) {
	endpoint, err := c.searchURL(query, includeExpired, includeSubdomains)
	if err != nil {
		return nil, err
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, endpoint, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to build search request: %w", err)
	}
	req.Header.Set("Authorization", "Bearer "+c.apiKey)
	req.Header.Set("User-Agent", "sslmate-mcp/"+version.Version)
	req.Header.Set("Accept", "application/json")

	resp, err := c.hc.Do(req)
	if err != nil {
		return nil, fmt.Errorf("certificate search request failed: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return nil, fmt.Errorf("certificate search returned status %d", resp.StatusCode)
	}

	buf := gc.Default.Get()
	defer func() {
		buf.Reset()
		gc.Default.Put(buf)
	}()

	if _, err := buf.ReadFrom(resp.Body); err != nil {
		return nil, fmt.Errorf("error reading search response body: %w", err)
	}

	var payload searchResponse
	if err := json.Unmarshal(buf.Bytes(), &payload); err != nil {
		return nil, fmt.Errorf("failed to decode search response: %w", err)
	}

	now := time.Now()
	records := make([]CertificateRecord, 0, len(payload.Certificates))
	for _, raw := range payload.Certificates {
		rec, err := parseRecord(raw)
		if err != nil {
			c.log.Warnf("skipping certificate record: %v", err)
			continue
		}
		if !includeExpired && rec.Expired(now) {
			continue
		}
		records = append(records, rec)
		if limit > 0 && len(records) >= limit {
			break
		}
	}

	return records, nil
}

// searchURL builds the upstream search URL, requesting expansion of the
// related sub-fields the record model needs.
func (c *Client) searchURL(query string, includeExpired, includeSubdomains bool) (string, error) {
	u, err := url.Parse(c.baseURL + "/certificates/search")
	if err != nil {
		return "", fmt.Errorf("invalid API base URL: %w", err)
	}

	params := url.Values{}
	params.Set("q", query)
	params.Set("include_expired", strconv.FormatBool(includeExpired))
	params.Set("include_subdomains", strconv.FormatBool(includeSubdomains))
	for _, field := range []string{"dns_names", "issuer", "revocation"} {
		params.Add("expand", field)
	}
	u.RawQuery = params.Encode()

	return u.String(), nil
}

// GetDetails fetches a single certificate by ID.
//
// The SSLMate search API has no fetch-by-id endpoint, so against that
// provider this always returns ErrCertificateNotFound. The lookup path below
// exists for upstream providers that declare the capability via
// Options.SupportsDetails.
func (c *Client) GetDetails(ctx context.Context, certID string) (*CertificateRecord, error) {
	if !c.supportsDetails {
		return nil, ErrCertificateNotFound
	}

	endpoint := c.baseURL + "/certificates/" + url.PathEscape(certID)
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, endpoint, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to build details request: %w", err)
	}
	req.Header.Set("Authorization", "Bearer "+c.apiKey)
	req.Header.Set("User-Agent", "sslmate-mcp/"+version.Version)
	req.Header.Set("Accept", "application/json")

	resp, err := c.hc.Do(req)
	if err != nil {
		return nil, fmt.Errorf("certificate details request failed: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode == http.StatusNotFound {
		return nil, ErrCertificateNotFound
	}
	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return nil, fmt.Errorf("certificate details returned status %d", resp.StatusCode)
	}

	buf := gc.Default.Get()
	defer func() {
		buf.Reset()
		gc.Default.Put(buf)
	}()

	if _, err := buf.ReadFrom(resp.Body); err != nil {
		return nil, fmt.Errorf("error reading details response body: %w", err)
	}

	rec, err := parseRecord(buf.Bytes())
	if err != nil {
		return nil, err
	}
	return &rec, nil
}

// Close releases the underlying connection pool. Safe to call more than
// once; only the first call has any effect.
func (c *Client) Close() {
	c.closeOnce.Do(func() {
		c.hc.CloseIdleConnections()
	})
}
