package payments

import (
	"crypto/hmac"
	"crypto/sha256"
	"crypto/sha512"
	"encoding/hex"
	"strings"
	"testing"
)

func signSHA256(body []byte, secret string) string {
	mac := hmac.New(sha256.New, []byte(secret))
	mac.Write(body)
	return hex.EncodeToString(mac.Sum(nil))
}

func TestVerifyWebhookSignature(t *testing.T) {
	body := []byte(`{"token":"T1","status":"completed"}`)
	secret := "top-secret"

	if !VerifyWebhookSignature(body, signSHA256(body, secret), secret) {
		t.Fatalf("expected sha256 signature to validate")
	}

	mac := hmac.New(sha512.New, []byte(secret))
	mac.Write(body)
	sig512 := hex.EncodeToString(mac.Sum(nil))
	if !VerifyWebhookSignature(body, sig512, secret) {
		t.Fatalf("expected sha512 signature to validate")
	}

	if VerifyWebhookSignature(body, "deadbeef", secret) {
		t.Fatalf("expected invalid signature to fail")
	}
}

func TestVerifyWebhookSignature_PrefixAndCase(t *testing.T) {
	body := []byte(`payload`)
	secret := "s3cret"
	sig := signSHA256(body, secret)

	if !VerifyWebhookSignature(body, "sha256="+sig, secret) {
		t.Fatalf("expected prefixed signature to validate")
	}
	if !VerifyWebhookSignature(body, strings.ToUpper(sig), secret) {
		t.Fatalf("expected upper-cased signature to validate")
	}
}

func TestVerifyWebhookSignature_TamperedBody(t *testing.T) {
	body := []byte(`{"amount":5000}`)
	secret := "s3cret"
	sig := signSHA256(body, secret)

	tampered := []byte(`{"amount":4000}`)
	if VerifyWebhookSignature(tampered, sig, secret) {
		t.Fatalf("expected altered body to fail verification")
	}
}

func TestVerifyWebhookSignature_MissingInputs(t *testing.T) {
	body := []byte(`x`)
	if VerifyWebhookSignature(body, "", "secret") {
		t.Fatalf("expected empty signature to fail")
	}
	if VerifyWebhookSignature(body, signSHA256(body, "secret"), "") {
		t.Fatalf("expected unconfigured secret to fail")
	}
	if VerifyWebhookSignature(body, signSHA256(body, "other"), "secret") {
		t.Fatalf("expected wrong secret to fail")
	}
}
