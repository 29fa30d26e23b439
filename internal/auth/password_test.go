package auth

import (
	"strings"
	"testing"

	"golang.org/x/crypto/bcrypt"
)

func TestHashVerifyPassword(t *testing.T) {
	plains := []string{"hunter2", "", "pässword with ünicode", strings.Repeat("x", 70)}

	for _, plain := range plains {
		hash, err := HashPassword(plain, bcrypt.MinCost)
		if err != nil {
			t.Fatalf("HashPassword(%q): %v", plain, err)
		}
		if hash == plain {
			t.Fatalf("hash must not equal plaintext")
		}
		if !VerifyPassword(hash, plain) {
			t.Fatalf("VerifyPassword should accept the original plaintext")
		}
		if VerifyPassword(hash, plain+"-wrong") {
			t.Fatalf("VerifyPassword should reject a different plaintext")
		}
	}
}

func TestHashPasswordRandomized(t *testing.T) {
	h1, err := HashPassword("same-input", bcrypt.MinCost)
	if err != nil {
		t.Fatalf("HashPassword: %v", err)
	}
	h2, err := HashPassword("same-input", bcrypt.MinCost)
	if err != nil {
		t.Fatalf("HashPassword: %v", err)
	}
	if h1 == h2 {
		t.Fatalf("two hashes of the same input should differ (random salt)")
	}
}

func TestHashPasswordTooLong(t *testing.T) {
	// bcrypt rejects inputs over 72 bytes; the hasher must surface that as an
	// error rather than silently truncating.
	if _, err := HashPassword(strings.Repeat("x", 100), bcrypt.MinCost); err == nil {
		t.Fatalf("expected error for over-length password")
	}
}

func TestVerifyPasswordBadHash(t *testing.T) {
	if VerifyPassword("not-a-bcrypt-hash", "anything") {
		t.Fatalf("VerifyPassword should reject a malformed hash")
	}
}
