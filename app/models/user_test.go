package models

import (
	"strings"
	"testing"
)

func TestGenerateAPIKey(t *testing.T) {
	u := &User{ID: 7}

	key, err := u.GenerateAPIKey()
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !strings.HasPrefix(key, "tp_") {
		t.Fatalf("key missing prefix: %q", key)
	}
	if u.APIKeyHash != HashAPIKey(key) {
		t.Fatalf("stored hash does not match key")
	}
	if u.APIKeyHash == key {
		t.Fatalf("plaintext key must not be stored")
	}

	second, err := u.GenerateAPIKey()
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if second == key {
		t.Fatalf("regenerated key must differ")
	}
}

func TestUserRef(t *testing.T) {
	u := &User{ID: 42}
	if got := u.Ref(); got != "42" {
		t.Fatalf("Ref() = %q", got)
	}
}

func TestCheckPassword(t *testing.T) {
	u := &User{}
	if err := u.SetPassword("s3cret-pass"); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !u.CheckPassword("s3cret-pass") {
		t.Fatalf("correct password rejected")
	}
	if u.CheckPassword("wrong") {
		t.Fatalf("wrong password accepted")
	}
}
