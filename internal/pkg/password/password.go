// Package password implements the one-way salted credential hashing
// contract on top of bcrypt. The salt is generated per call and embedded
// in the digest, so identical plaintexts never produce identical digests.
package password

import (
	"golang.org/x/crypto/bcrypt"
)

const defaultConcurrency = 8

// Hasher hashes and verifies passwords with bcrypt. Concurrent hash
// computations are bounded by a semaphore so a burst of registrations
// cannot saturate every CPU.
type Hasher struct {
	cost int
	sem  chan struct{}
}

// New returns a Hasher with the given bcrypt cost and concurrency bound.
// Out-of-range values fall back to bcrypt.DefaultCost and
// defaultConcurrency.
func New(cost, concurrency int) *Hasher {
	if cost < bcrypt.MinCost || cost > bcrypt.MaxCost {
		cost = bcrypt.DefaultCost
	}
	if concurrency <= 0 {
		concurrency = defaultConcurrency
	}
	return &Hasher{
		cost: cost,
		sem:  make(chan struct{}, concurrency),
	}
}

// Hash returns a salted bcrypt digest of plaintext.
func (h *Hasher) Hash(plaintext string) (string, error) {
	h.sem <- struct{}{}
	defer func() { <-h.sem }()

	digest, err := bcrypt.GenerateFromPassword([]byte(plaintext), h.cost)
	if err != nil {
		return "", err
	}
	return string(digest), nil
}

// Verify reports whether plaintext matches digest. Malformed digests
// verify false.
func (h *Hasher) Verify(plaintext, digest string) bool {
	h.sem <- struct{}{}
	defer func() { <-h.sem }()

	return bcrypt.CompareHashAndPassword([]byte(digest), []byte(plaintext)) == nil
}
