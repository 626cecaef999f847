package service

import (
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"
)

func TestTokenService_RoundTrip(t *testing.T) {
	svc := NewTokenService("secret", time.Hour)

	for _, subject := range []string{"a@x.com", "alice@example.com", "UPPER@Case.Org"} {
		token, err := svc.Generate(subject)
		if err != nil {
			t.Fatalf("Generate(%q): %v", subject, err)
		}
		got, err := svc.ExtractSubject(token)
		if err != nil {
			t.Fatalf("ExtractSubject: %v", err)
		}
		if got != subject {
			t.Fatalf("expected subject %q, got %q", subject, got)
		}
	}
}

func TestTokenService_Expired(t *testing.T) {
	svc := NewTokenService("secret", time.Hour)

	claims := jwt.RegisteredClaims{
		Subject:   "a@x.com",
		ExpiresAt: jwt.NewNumericDate(time.Now().Add(-time.Minute)),
	}
	expired, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString([]byte("secret"))
	if err != nil {
		t.Fatalf("sign token: %v", err)
	}

	if _, err := svc.ExtractSubject(expired); err == nil {
		t.Fatalf("expected extraction failure for expired token")
	}
	if svc.IsValid(expired, "a@x.com") {
		t.Fatalf("IsValid returned true for expired token")
	}
}

func TestTokenService_Tampered(t *testing.T) {
	svc := NewTokenService("secret", time.Hour)

	token, err := svc.Generate("a@x.com")
	if err != nil {
		t.Fatalf("Generate: %v", err)
	}

	tampered := token[:len(token)-2] + "xx"
	if _, err := svc.ExtractSubject(tampered); err == nil {
		t.Fatalf("expected extraction failure for tampered token")
	}
}

func TestTokenService_WrongSecret(t *testing.T) {
	issuer := NewTokenService("secret-a", time.Hour)
	verifier := NewTokenService("secret-b", time.Hour)

	token, err := issuer.Generate("a@x.com")
	if err != nil {
		t.Fatalf("Generate: %v", err)
	}
	if _, err := verifier.ExtractSubject(token); err == nil {
		t.Fatalf("expected signature failure across secrets")
	}
}

func TestTokenService_Malformed(t *testing.T) {
	svc := NewTokenService("secret", time.Hour)

	for _, token := range []string{"", "not-a-token", "a.b", "a.b.c"} {
		if _, err := svc.ExtractSubject(token); err == nil {
			t.Fatalf("expected extraction failure for %q", token)
		}
	}
}

func TestTokenService_IsValid_SubjectMismatch(t *testing.T) {
	svc := NewTokenService("secret", time.Hour)

	token, err := svc.Generate("a@x.com")
	if err != nil {
		t.Fatalf("Generate: %v", err)
	}
	if !svc.IsValid(token, "a@x.com") {
		t.Fatalf("IsValid false for matching subject")
	}
	if svc.IsValid(token, "b@x.com") {
		t.Fatalf("IsValid true for wrong subject")
	}
}

func TestTokenService_RejectsWrongAlg(t *testing.T) {
	svc := NewTokenService("secret", time.Hour)

	// alg=none token with a valid-looking payload.
	unsigned, err := jwt.NewWithClaims(jwt.SigningMethodNone, jwt.RegisteredClaims{
		Subject:   "a@x.com",
		ExpiresAt: jwt.NewNumericDate(time.Now().Add(time.Hour)),
	}).SignedString(jwt.UnsafeAllowNoneSignatureType)
	if err != nil {
		t.Fatalf("sign none token: %v", err)
	}

	if _, err := svc.ExtractSubject(unsigned); err == nil {
		t.Fatalf("expected rejection of non-HS256 token")
	}
}
