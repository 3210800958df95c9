/*
Copyright 2025 Lornu AI, Inc.
SPDX-License-Identifier: Apache-2.0
*/

// Package webhook verifies the authenticity of inbound GitHub webhook
// deliveries via their HMAC-SHA256 signature header.
package webhook

import (
	"crypto/hmac"
	"crypto/sha256"
	"encoding/hex"
	"net/http"
	"strings"
)

// SignatureHeader is the header GitHub uses to deliver the HMAC-SHA256
// signature of the payload.
const SignatureHeader = "X-Hub-Signature-256"

const signaturePrefix = "sha256="

// Verify reports whether signatureHeader carries a valid hex-encoded
// HMAC-SHA256 of payload keyed by secret. It fails closed: a missing header,
// a header without the "sha256=" prefix, or any mismatch returns false.
// The digest comparison is constant time.
func Verify(payload []byte, signatureHeader, secret string) bool {
	if !strings.HasPrefix(signatureHeader, signaturePrefix) {
		return false
	}
	expected := strings.TrimPrefix(signatureHeader, signaturePrefix)

	mac := hmac.New(sha256.New, []byte(secret))
	mac.Write(payload)
	computed := hex.EncodeToString(mac.Sum(nil))

	return hmac.Equal([]byte(computed), []byte(expected))
}

// ValidateRequest verifies the signature header of an inbound webhook request
// against the already-read payload bytes.
func ValidateRequest(r *http.Request, payload []byte, secret string) bool {
	return Verify(payload, r.Header.Get(SignatureHeader), secret)
}
