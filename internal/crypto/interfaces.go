package crypto

import "context"

//go:generate mockgen -source=interfaces.go -destination=../mock/password_hasher_mock.go -package=mock

// PasswordHasher turns plaintext passwords into salted one-way digests and
// checks plaintexts against them. Implementations must be safe for
// concurrent use and must never log the plaintext.
type PasswordHasher interface {
	// Hash returns a digest that embeds its own salt and work factor.
	Hash(ctx context.Context, plaintext string) (string, error)

	// Verify reports whether plaintext matches digest. A mismatch is
	// (false, nil). A digest that cannot be parsed yields a *HashFormatError.
	Verify(ctx context.Context, plaintext, digest string) (bool, error)
}
