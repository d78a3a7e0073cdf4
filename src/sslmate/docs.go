// Copyright (c) 2025 H0llyW00dzZ All rights reserved.
//
// By accessing or using this software, you agree to be bound by the terms
// of the License Agreement, which you can find at LICENSE files.

// Package sslmate provides a client for the [SSLMate] certificate-transparency
// search API. It maps upstream JSON responses to immutable CertificateRecord
// values, applies the client-side filters the upstream cannot perform
// (expiry exclusion and result limiting), and documents the upstream's
// missing fetch-by-id capability as an explicit "not found" outcome.
//
// [SSLMate]: https://sslmate.com/certspotter/
package sslmate
