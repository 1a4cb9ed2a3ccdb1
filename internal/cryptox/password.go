// Package cryptox implements password hashing for stored accounts.
//
// Hashes are Argon2id digests encoded in the PHC string format:
//
//	$argon2id$v=19$m=65536,t=3,p=2$<base64 salt>$<base64 digest>
//
// The encoding carries every parameter needed to verify it later, so the
// cost settings can be raised without invalidating existing hashes.
package cryptox

import (
	"crypto/subtle"
	"encoding/base64"
	"errors"
	"fmt"
	"strings"

	"github.com/dmitrijs2005/todokeeper/internal/common"
	"golang.org/x/crypto/argon2"
)

const algorithm = "argon2id"

// PasswordHasher hashes and verifies account passwords.
type PasswordHasher interface {
	Hash(password string) (string, error)
	Verify(password, encodedHash string) bool
}

var _ PasswordHasher = (*Argon2)(nil)

// Params are the Argon2id cost settings.
type Params struct {
	Memory      uint32 // KiB
	Iterations  uint32
	Parallelism uint8
	SaltLength  uint32 // ignored by Verify
	KeyLength   uint32
}

// DefaultParams follows the OWASP password storage recommendations.
//
// @ref https://cheatsheetseries.owasp.org/cheatsheets/Password_Storage_Cheat_Sheet.html
func DefaultParams() Params {
	return Params{
		Memory:      64 * 1024,
		Iterations:  3,
		Parallelism: 2,
		SaltLength:  16,
		KeyLength:   32,
	}
}

// Argon2 is a PasswordHasher backed by golang.org/x/crypto/argon2.
type Argon2 struct {
	params Params

	// randBytes is a seam for salt generation.
	randBytes func(int) ([]byte, error)
}

// NewArgon2 returns a hasher using DefaultParams.
func NewArgon2() *Argon2 {
	return NewArgon2WithParams(DefaultParams())
}

// NewArgon2WithParams returns a hasher using p for new hashes.
func NewArgon2WithParams(p Params) *Argon2 {
	return &Argon2{params: p, randBytes: common.GenerateRandByteArray}
}

// Hash derives a digest of password with a fresh random salt and returns the
// PHC encoding. Errors wrap common.ErrHashing.
func (a *Argon2) Hash(password string) (string, error) {
	salt, err := a.randBytes(int(a.params.SaltLength))
	if err != nil {
		return "", fmt.Errorf("%w: generating salt: %v", common.ErrHashing, err)
	}

	digest := argon2.IDKey([]byte(password), salt,
		a.params.Iterations, a.params.Memory, a.params.Parallelism, a.params.KeyLength)

	return encode(a.params, salt, digest), nil
}

// Verify reports whether password matches encodedHash. Any decoding problem
// is a mismatch.
func (a *Argon2) Verify(password, encodedHash string) bool {
	p, salt, digest, err := decode(encodedHash)
	if err != nil {
		return false
	}

	candidate := argon2.IDKey([]byte(password), salt, p.Iterations, p.Memory, p.Parallelism, p.KeyLength)

	return subtle.ConstantTimeCompare(digest, candidate) == 1
}

func encode(p Params, salt, digest []byte) string {
	return fmt.Sprintf("$%s$v=%d$m=%d,t=%d,p=%d$%s$%s",
		algorithm,
		argon2.Version,
		p.Memory,
		p.Iterations,
		p.Parallelism,
		base64.RawStdEncoding.EncodeToString(salt),
		base64.RawStdEncoding.EncodeToString(digest))
}

var errInvalidHash = errors.New("invalid hash format")

func decode(encodedHash string) (Params, []byte, []byte, error) {
	var p Params

	parts := strings.Split(encodedHash, "$")
	if len(parts) != 6 || parts[0] != "" {
		return p, nil, nil, errInvalidHash
	}
	if parts[1] != algorithm {
		return p, nil, nil, fmt.Errorf("unsupported algorithm %q", parts[1])
	}

	var version int
	if _, err := fmt.Sscanf(parts[2], "v=%d", &version); err != nil {
		return p, nil, nil, fmt.Errorf("invalid version: %w", err)
	}
	if version != argon2.Version {
		return p, nil, nil, fmt.Errorf("unsupported version %d", version)
	}

	var parallelism uint32
	if _, err := fmt.Sscanf(parts[3], "m=%d,t=%d,p=%d", &p.Memory, &p.Iterations, &parallelism); err != nil {
		return p, nil, nil, fmt.Errorf("invalid parameters: %w", err)
	}
	if p.Memory == 0 || p.Iterations == 0 || parallelism == 0 || parallelism > 255 {
		return p, nil, nil, errors.New("parameters out of range")
	}
	p.Parallelism = uint8(parallelism)

	salt, err := base64.RawStdEncoding.DecodeString(parts[4])
	if err != nil || len(salt) == 0 {
		return p, nil, nil, errors.New("invalid salt encoding")
	}

	digest, err := base64.RawStdEncoding.DecodeString(parts[5])
	if err != nil || len(digest) == 0 {
		return p, nil, nil, errors.New("invalid digest encoding")
	}
	p.KeyLength = uint32(len(digest))
	p.SaltLength = uint32(len(salt))

	return p, salt, digest, nil
}
