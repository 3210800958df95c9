/*
Copyright 2025 Lornu AI, Inc.
SPDX-License-Identifier: Apache-2.0
*/

package webhook

import (
	"crypto/hmac"
	"crypto/sha256"
	"encoding/hex"
	"net/http"
	"testing"

	"github.com/stretchr/testify/require"
)

func sign(payload []byte, secret string) string {
	mac := hmac.New(sha256.New, []byte(secret))
	mac.Write(payload)
	return "sha256=" + hex.EncodeToString(mac.Sum(nil))
}

func TestVerifyRoundTrip(t *testing.T) {
	payloads := [][]byte{
		[]byte(""),
		[]byte("{}"),
		[]byte(`{"action":"opened","number":42}`),
		[]byte("raw diff body\n+++ b/main.go\n+package main\n"),
	}
	secrets := []string{"s3cret", "", "another-secret-with-lots-of-entropy"}

	for _, payload := range payloads {
		for _, secret := range secrets {
			require.True(t, Verify(payload, sign(payload, secret), secret),
				"payload %q secret %q", payload, secret)
		}
	}
}

func TestVerifyRejectsTamperedPayload(t *testing.T) {
	payload := []byte(`{"action":"opened"}`)
	secret := "s3cret"
	sig := sign(payload, secret)

	// Flip a single bit in each byte position of the payload.
	for i := range payload {
		mutated := append([]byte(nil), payload...)
		mutated[i] ^= 0x01
		require.False(t, Verify(mutated, sig, secret), "bit flip at byte %d accepted", i)
	}
}

func TestVerifyRejectsTamperedSignature(t *testing.T) {
	payload := []byte(`{"action":"opened"}`)
	secret := "s3cret"
	sig := sign(payload, secret)

	for i := len(signaturePrefix); i < len(sig); i++ {
		mutated := []byte(sig)
		if mutated[i] == '0' {
			mutated[i] = '1'
		} else {
			mutated[i] = '0'
		}
		require.False(t, Verify(payload, string(mutated), secret), "mutation at byte %d accepted", i)
	}
}

func TestVerifyFailsClosed(t *testing.T) {
	payload := []byte("body")
	secret := "s3cret"

	tests := []struct {
		name   string
		header string
	}{{
		name:   "missing header",
		header: "",
	}, {
		name:   "wrong prefix",
		header: "sha1=" + sign(payload, secret)[len(signaturePrefix):],
	}, {
		name:   "no prefix",
		header: sign(payload, secret)[len(signaturePrefix):],
	}, {
		name:   "prefix only",
		header: "sha256=",
	}, {
		name:   "garbage",
		header: "sha256=not-hex-at-all",
	}}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			require.False(t, Verify(payload, tc.header, secret))
		})
	}
}

func TestVerifyWrongSecret(t *testing.T) {
	payload := []byte("body")
	require.False(t, Verify(payload, sign(payload, "right"), "wrong"))
}

func TestValidateRequest(t *testing.T) {
	payload := []byte(`{"action":"synchronize"}`)
	secret := "hook-secret"

	req, err := http.NewRequest(http.MethodPost, "/webhook", nil)
	require.NoError(t, err)

	require.False(t, ValidateRequest(req, payload, secret), "missing header should fail")

	req.Header.Set(SignatureHeader, sign(payload, secret))
	require.True(t, ValidateRequest(req, payload, secret))
}
