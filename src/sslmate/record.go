// Copyright (c) 2025 H0llyW00dzZ All rights reserved.
//
// By accessing or using this software, you agree to be bound by the terms
// of the License Agreement, which you can find at LICENSE files.

package sslmate

import (
	"encoding/json"
	"fmt"
	"strings"
	"time"
)

// Unknown is the sentinel value substituted for fields the upstream API
// omitted from a certificate record.
const Unknown = "unknown"

// Status classifies a certificate based on the upstream revocation flag.
type Status string

const (
	// StatusValid means the upstream reported the certificate as not revoked.
	StatusValid Status = "valid"
	// StatusRevoked means the upstream reported the certificate as revoked.
	StatusRevoked Status = "revoked"
	// StatusUnknown means the upstream omitted the revocation flag.
	StatusUnknown Status = "unknown"
)

// CertificateRecord is one certificate-transparency search result.
//
// Records are immutable once constructed from an API response. Fields the
// upstream omitted carry the Unknown sentinel instead of failing
// construction; only a missing certificate ID makes a record malformed.
type CertificateRecord struct {
	ID                string   `json:"id"`
	CommonName        string   `json:"common_name"`
	SubjectAltNames   []string `json:"subject_alt_names"`
	Issuer            string   `json:"issuer"`
	SerialNumber      string   `json:"serial_number"`
	NotBefore         string   `json:"not_before"`
	NotAfter          string   `json:"not_after"`
	FingerprintSHA1   string   `json:"fingerprint_sha1"`
	FingerprintSHA256 string   `json:"fingerprint_sha256"`
	Status            Status   `json:"status"`
}

// wireCertificate mirrors the upstream JSON shape. The ID is kept raw since
// the API has served both string and numeric identifiers.
type wireCertificate struct {
	ID                json.RawMessage `json:"id"`
	CommonName        string          `json:"common_name"`
	SubjectAltNames   []string        `json:"subject_alt_names"`
	Issuer            string          `json:"issuer"`
	SerialNumber      string          `json:"serial_number"`
	NotBefore         string          `json:"not_before"`
	NotAfter          string          `json:"not_after"`
	FingerprintSHA1   string          `json:"fingerprint_sha1"`
	FingerprintSHA256 string          `json:"fingerprint_sha256"`
	Revoked           *bool           `json:"revoked"`
}

// parseRecord constructs a CertificateRecord from one raw response entry.
//
// A record that is not a JSON object, or that lacks a usable ID, is
// malformed and returns an error so the caller can skip it. Every other
// missing field degrades to the Unknown sentinel.
func parseRecord(raw json.RawMessage) (CertificateRecord, error) {
	var wire wireCertificate
	if err := json.Unmarshal(raw, &wire); err != nil {
		return CertificateRecord{}, fmt.Errorf("malformed certificate record: %w", err)
	}

	id, err := decodeRecordID(wire.ID)
	if err != nil {
		return CertificateRecord{}, err
	}

	rec := CertificateRecord{
		ID:                id,
		CommonName:        orUnknown(wire.CommonName),
		SubjectAltNames:   wire.SubjectAltNames,
		Issuer:            orUnknown(wire.Issuer),
		SerialNumber:      orUnknown(wire.SerialNumber),
		NotBefore:         orUnknown(wire.NotBefore),
		NotAfter:          orUnknown(wire.NotAfter),
		FingerprintSHA1:   orUnknown(wire.FingerprintSHA1),
		FingerprintSHA256: orUnknown(wire.FingerprintSHA256),
		Status:            statusFromRevoked(wire.Revoked),
	}

	// Keep SAN insertion order; an absent list is an empty list, not null.
	if rec.SubjectAltNames == nil {
		rec.SubjectAltNames = []string{}
	}

	return rec, nil
}

// decodeRecordID normalizes string or numeric upstream IDs to a string.
func decodeRecordID(raw json.RawMessage) (string, error) {
	if len(raw) == 0 {
		return "", fmt.Errorf("malformed certificate record: missing id")
	}

	var s string
	if err := json.Unmarshal(raw, &s); err == nil {
		if s == "" {
			return "", fmt.Errorf("malformed certificate record: empty id")
		}
		return s, nil
	}

	var n json.Number
	if err := json.Unmarshal(raw, &n); err == nil {
		return n.String(), nil
	}

	return "", fmt.Errorf("malformed certificate record: unsupported id %s", string(raw))
}

// statusFromRevoked derives the three-valued status from the upstream flag.
func statusFromRevoked(revoked *bool) Status {
	switch {
	case revoked == nil:
		return StatusUnknown
	case *revoked:
		return StatusRevoked
	default:
		return StatusValid
	}
}

// orUnknown substitutes the Unknown sentinel for empty upstream fields.
func orUnknown(s string) string {
	if strings.TrimSpace(s) == "" {
		return Unknown
	}
	return s
}

// Expired reports whether the record's validity window ended before now.
//
// Records whose not-after timestamp is unknown or unparseable are treated as
// not expired, since expiry cannot be proven for them.
func (r CertificateRecord) Expired(now time.Time) bool {
	if r.NotAfter == Unknown {
		return false
	}
	notAfter, err := time.Parse(time.RFC3339, r.NotAfter)
	if err != nil {
		return false
	}
	return notAfter.Before(now)
}
