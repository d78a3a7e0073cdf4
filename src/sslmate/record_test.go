// Copyright (c) 2025 H0llyW00dzZ All rights reserved.
//
// By accessing or using this software, you agree to be bound by the terms
// of the License Agreement, which you can find at LICENSE files.

package sslmate

import (
	"encoding/json"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseRecord(t *testing.T) {
	tests := []struct {
		name    string
		raw     string
		wantErr bool
		check   func(t *testing.T, rec CertificateRecord)
	}{
		{
			name: "complete record",
			raw: `{
				"id": "cert-12345",
				"common_name": "example.com",
				"subject_alt_names": ["www.example.com", "api.example.com"],
				"issuer": "Let's Encrypt Authority X3",
				"serial_number": "03:5D:A7:E5",
				"not_before": "2024-01-01T00:00:00Z",
				"not_after": "2024-04-01T00:00:00Z",
				"fingerprint_sha1": "A1:B2:C3",
				"fingerprint_sha256": "D4:E5:F6",
				"revoked": false
			}`,
			check: func(t *testing.T, rec CertificateRecord) {
				assert.Equal(t, "cert-12345", rec.ID)
				assert.Equal(t, "example.com", rec.CommonName)
				assert.Equal(t, []string{"www.example.com", "api.example.com"}, rec.SubjectAltNames)
				assert.Equal(t, StatusValid, rec.Status)
			},
		},
		{
			name: "missing fields degrade to unknown",
			raw:  `{"id": "cert-1"}`,
			check: func(t *testing.T, rec CertificateRecord) {
				assert.Equal(t, Unknown, rec.CommonName)
				assert.Equal(t, Unknown, rec.Issuer)
				assert.Equal(t, Unknown, rec.SerialNumber)
				assert.Equal(t, Unknown, rec.NotAfter)
				assert.Equal(t, Unknown, rec.FingerprintSHA256)
				assert.Equal(t, StatusUnknown, rec.Status)
				assert.Equal(t, []string{}, rec.SubjectAltNames, "absent SAN list must be empty, not nil")
			},
		},
		{
			name: "revoked flag true",
			raw:  `{"id": "cert-2", "revoked": true}`,
			check: func(t *testing.T, rec CertificateRecord) {
				assert.Equal(t, StatusRevoked, rec.Status)
			},
		},
		{
			name: "numeric id normalized to string",
			raw:  `{"id": 8395423}`,
			check: func(t *testing.T, rec CertificateRecord) {
				assert.Equal(t, "8395423", rec.ID)
			},
		},
		{
			name:    "missing id is malformed",
			raw:     `{"common_name": "example.com"}`,
			wantErr: true,
		},
		{
			name:    "empty id is malformed",
			raw:     `{"id": ""}`,
			wantErr: true,
		},
		{
			name:    "not an object",
			raw:     `["cert-1"]`,
			wantErr: true,
		},
		{
			name:    "wrong field type",
			raw:     `{"id": "cert-3", "subject_alt_names": "not-a-list"}`,
			wantErr: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rec, err := parseRecord(json.RawMessage(tt.raw))
			if tt.wantErr {
				require.Error(t, err)
				return
			}
			require.NoError(t, err)
			tt.check(t, rec)
		})
	}
}

func TestRecordExpired(t *testing.T) {
	now := time.Date(2025, 6, 1, 0, 0, 0, 0, time.UTC)

	tests := []struct {
		name     string
		notAfter string
		want     bool
	}{
		{name: "past window expired", notAfter: "2024-04-01T00:00:00Z", want: true},
		{name: "future window not expired", notAfter: "2026-04-01T00:00:00Z", want: false},
		{name: "unknown not expired", notAfter: Unknown, want: false},
		{name: "unparseable not expired", notAfter: "April 1st 2024", want: false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rec := CertificateRecord{ID: "cert-x", NotAfter: tt.notAfter}
			assert.Equal(t, tt.want, rec.Expired(now))
		})
	}
}

func TestRecordJSONContract(t *testing.T) {
	rec, err := parseRecord(json.RawMessage(`{"id": "cert-9", "common_name": "example.org", "revoked": false}`))
	require.NoError(t, err)

	data, err := json.Marshal(rec)
	require.NoError(t, err)

	var decoded map[string]any
	require.NoError(t, json.Unmarshal(data, &decoded))

	assert.Equal(t, "cert-9", decoded["id"])
	assert.Equal(t, "example.org", decoded["common_name"])
	assert.Equal(t, "valid", decoded["status"])
	assert.Equal(t, []any{}, decoded["subject_alt_names"])
}
