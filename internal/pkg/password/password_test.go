package password

import (
	"testing"

	"golang.org/x/crypto/bcrypt"
)

func TestHasher_HashAndVerify(t *testing.T) {
	h := New(bcrypt.MinCost, 2)

	digest, err := h.Hash("s3cret-pass")
	if err != nil {
		t.Fatalf("Hash returned error: %v", err)
	}
	if digest == "s3cret-pass" {
		t.Fatalf("digest equals plaintext")
	}
	if !h.Verify("s3cret-pass", digest) {
		t.Fatalf("Verify failed for correct password")
	}
	if h.Verify("wrong-pass", digest) {
		t.Fatalf("Verify succeeded for wrong password")
	}
}

func TestHasher_SaltedPerCall(t *testing.T) {
	h := New(bcrypt.MinCost, 2)

	d1, err := h.Hash("same-input")
	if err != nil {
		t.Fatalf("first hash: %v", err)
	}
	d2, err := h.Hash("same-input")
	if err != nil {
		t.Fatalf("second hash: %v", err)
	}
	if d1 == d2 {
		t.Fatalf("identical inputs produced identical digests")
	}
	if !h.Verify("same-input", d1) || !h.Verify("same-input", d2) {
		t.Fatalf("both digests should verify")
	}
}

func TestHasher_MalformedDigest(t *testing.T) {
	h := New(bcrypt.MinCost, 2)

	for _, digest := range []string{"", "not-a-bcrypt-digest", "$2a$xx$garbage"} {
		if h.Verify("anything", digest) {
			t.Fatalf("Verify returned true for malformed digest %q", digest)
		}
	}
}

func TestHasher_BadConfigFallsBack(t *testing.T) {
	h := New(-1, 0)

	digest, err := h.Hash("password123")
	if err != nil {
		t.Fatalf("Hash with defaulted config: %v", err)
	}
	if !h.Verify("password123", digest) {
		t.Fatalf("Verify failed after defaulted config")
	}
}
