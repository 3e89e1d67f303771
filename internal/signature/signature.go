// Package signature implements both HMAC legs of the relay: verification of
// GitHub's X-Hub-Signature-256 header on inbound deliveries, and signing of
// the outbound message for traQ's X-TRAQ-Signature header.
package signature

import (
	"crypto/hmac"
	"crypto/sha1"
	"crypto/sha256"
	"encoding/hex"
	"strings"
)

// prefix carried by GitHub's signature header; stripped before hex decoding.
const sha256Prefix = "sha256="

// Verify reports whether header carries a valid HMAC-SHA256 tag over body
// keyed by secret. A missing prefix, a non-hex suffix, or a tag mismatch all
// return false; none of them are errors.
func Verify(secret, body []byte, header string) bool {
	if !strings.HasPrefix(header, sha256Prefix) {
		return false
	}

	received, err := hex.DecodeString(header[len(sha256Prefix):])
	if err != nil {
		return false
	}

	mac := hmac.New(sha256.New, secret)
	mac.Write(body)
	computed := mac.Sum(nil)

	// Constant-time comparison — never use bytes.Equal here.
	return hmac.Equal(computed, received)
}

// Sign computes the hex-encoded HMAC-SHA1 tag over message keyed by secret.
// SHA-1 is what the traQ webhook endpoint verifies against; it is an interop
// requirement with the downstream service, not a free choice.
func Sign(secret []byte, message string) string {
	mac := hmac.New(sha1.New, secret)
	mac.Write([]byte(message))
	return hex.EncodeToString(mac.Sum(nil))
}
