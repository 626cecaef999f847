package ports

// TokenService issues and verifies signed, time-limited bearer tokens.
// Tokens are stateless: verification needs only the signature and expiry,
// no server-side session store.
type TokenService interface {
	// Generate returns a signed token certifying subject, expiring after
	// the service's fixed TTL.
	Generate(subject string) (string, error)

	// ExtractSubject verifies the token's signature and expiry and returns
	// its subject. Any structural, signature, or expiry failure yields an
	// error; it never panics.
	ExtractSubject(token string) (string, error)

	// IsValid reports whether the token verifies and certifies expected.
	IsValid(token, expected string) bool
}

// PasswordHasher is the one-way salted hash contract for credentials.
type PasswordHasher interface {
	// Hash returns a salted, irreversible digest. Two calls with the same
	// plaintext produce different digests.
	Hash(plaintext string) (string, error)

	// Verify reports whether plaintext matches digest. A malformed digest
	// verifies false, never errors.
	Verify(plaintext, digest string) bool
}
