package payments

import (
	"crypto/hmac"
	"crypto/sha256"
	"crypto/sha512"
	"crypto/subtle"
	"encoding/hex"
	"hash"
	"strings"
)

// SignatureHeaders lists the header names a notification signature may arrive
// under, in priority order. The provider's exact header naming is not
// contractually fixed, so the first non-empty candidate wins.
var SignatureHeaders = []string{
	"X-Paydunya-Signature",
	"X-Payment-Signature",
	"X-Signature",
}

// VerifyWebhookSignature checks that a webhook body was produced by the
// provider. The signature is an HMAC hex digest of the exact raw bytes as
// received; both SHA-256 and SHA-512 digests are accepted because deployed
// provider versions differ. An algorithm prefix such as "sha256=" is
// stripped and the value case-folded before the constant-time comparison.
// Missing signature or unconfigured secret always fails.
func VerifyWebhookSignature(body []byte, signature, secret string) bool {
	sig := strings.ToLower(strings.TrimSpace(signature))
	if sig == "" || strings.TrimSpace(secret) == "" {
		return false
	}
	if i := strings.IndexByte(sig, '='); i >= 0 {
		sig = sig[i+1:]
	}

	return hmacHexEqual(body, sig, secret, sha256.New) ||
		hmacHexEqual(body, sig, secret, sha512.New)
}

func hmacHexEqual(body []byte, sigHex, secret string, hashFunc func() hash.Hash) bool {
	mac := hmac.New(hashFunc, []byte(secret))
	mac.Write(body)
	expected := hex.EncodeToString(mac.Sum(nil))
	// A length mismatch is a non-match, not an error.
	return subtle.ConstantTimeCompare([]byte(expected), []byte(sigHex)) == 1
}
