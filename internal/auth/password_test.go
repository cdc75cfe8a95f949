package auth_test

import (
	"strings"
	"testing"

	"github.com/student-records-api/internal/auth"
)

func TestPasswordHashAndVerify(t *testing.T) {
	hasher := auth.NewPasswordHasher(4) // minimum cost keeps the test fast

	hash, err := hasher.Hash("s3cret-pass")
	if err != nil {
		t.Fatalf("Hash failed: %v", err)
	}
	if hash == "s3cret-pass" {
		t.Fatal("Hash must not return the plaintext")
	}
	if !strings.HasPrefix(hash, "$2a$") {
		t.Errorf("Expected bcrypt hash, got %q", hash)
	}

	if !hasher.Verify("s3cret-pass", hash) {
		t.Error("Verify should accept the correct password")
	}
	if hasher.Verify("wrong-pass", hash) {
		t.Error("Verify should reject a wrong password")
	}
}

func TestPasswordHashIsSalted(t *testing.T) {
	hasher := auth.NewPasswordHasher(4)

	h1, err := hasher.Hash("same-password")
	if err != nil {
		t.Fatalf("Hash failed: %v", err)
	}
	h2, err := hasher.Hash("same-password")
	if err != nil {
		t.Fatalf("Hash failed: %v", err)
	}
	if h1 == h2 {
		t.Error("Two hashes of the same password should differ (salt)")
	}
}

func TestVerifyDummyAlwaysFails(t *testing.T) {
	hasher := auth.NewPasswordHasher(4)
	if hasher.VerifyDummy("anything") {
		t.Error("VerifyDummy must always report false")
	}
}

func TestHasherCostFallback(t *testing.T) {
	// A nonsense cost must not panic; hashing still works.
	hasher := auth.NewPasswordHasher(-1)
	hash, err := hasher.Hash("pw")
	if err != nil {
		t.Fatalf("Hash failed: %v", err)
	}
	if !hasher.Verify("pw", hash) {
		t.Error("Verify should accept the correct password")
	}
}
