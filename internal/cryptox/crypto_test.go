package cryptox

import (
	"errors"
	"strings"
	"testing"

	"github.com/dmitrijs2005/storehub/internal/common"
	"golang.org/x/crypto/bcrypt"
)

func init() {
	Cost = bcrypt.MinCost
}

func TestHashPassword_RoundTrip(t *testing.T) {
	hash, err := HashPassword([]byte("secret-password"))
	if err != nil {
		t.Fatalf("HashPassword error: %v", err)
	}
	if strings.Contains(hash, "secret-password") {
		t.Fatalf("hash leaks plaintext: %s", hash)
	}
	if err := VerifyPassword(hash, []byte("secret-password")); err != nil {
		t.Fatalf("VerifyPassword returned %v for the right password", err)
	}
}

func TestHashPassword_Salted(t *testing.T) {
	h1, err := HashPassword([]byte("same"))
	if err != nil {
		t.Fatal(err)
	}
	h2, err := HashPassword([]byte("same"))
	if err != nil {
		t.Fatal(err)
	}
	// same input, different salt
	if h1 == h2 {
		t.Errorf("expected different hashes for the same password")
	}
}

func TestVerifyPassword_Mismatch(t *testing.T) {
	hash, err := HashPassword([]byte("right"))
	if err != nil {
		t.Fatal(err)
	}
	if err := VerifyPassword(hash, []byte("wrong")); !errors.Is(err, common.ErrorUnauthorized) {
		t.Fatalf("want ErrorUnauthorized, got %v", err)
	}
}

func TestVerifyPassword_CorruptHash(t *testing.T) {
	err := VerifyPassword("not-a-bcrypt-hash", []byte("x"))
	if err == nil {
		t.Fatal("expected error for corrupt hash")
	}
	if errors.Is(err, common.ErrorUnauthorized) {
		t.Fatalf("corrupt hash must not look like a wrong password: %v", err)
	}
}
