package security_test

import (
	"testing"

	"github.com/Krtikgoswami/project001/internal/security"
)

func TestHashAndCheckPassword(t *testing.T) {
	hash, err := security.HashPassword("pw123")

	if err != nil {
		t.Fatalf("HashPassword returned error: %v", err)
	}

	if hash == "" || hash == "pw123" {
		t.Fatalf("hash %q should be non-empty and not the plaintext", hash)
	}

	if err := security.CheckPassword(hash, "pw123"); err != nil {
		t.Errorf("CheckPassword rejected the right password: %v", err)
	}

	if err := security.CheckPassword(hash, "wrong"); err == nil {
		t.Errorf("CheckPassword accepted the wrong password")
	}
}

func TestHashIsSalted(t *testing.T) {
	h1, err := security.HashPassword("pw123")

	if err != nil {
		t.Fatalf("HashPassword returned error: %v", err)
	}

	h2, err := security.HashPassword("pw123")

	if err != nil {
		t.Fatalf("HashPassword returned error: %v", err)
	}

	if h1 == h2 {
		t.Errorf("two hashes of the same password are identical; salt missing")
	}
}

func TestCheckPasswordMalformedHash(t *testing.T) {
	// a bad stored hash is a verification failure, never a panic
	if err := security.CheckPassword("not-a-bcrypt-hash", "pw123"); err == nil {
		t.Errorf("CheckPassword accepted a malformed hash")
	}
}
