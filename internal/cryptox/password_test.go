package cryptox

import (
	"errors"
	"strings"
	"testing"

	"github.com/dmitrijs2005/todokeeper/internal/common"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// cheap settings keep the suite fast; the encoding does not depend on them.
func testHasher() *Argon2 {
	return NewArgon2WithParams(Params{Memory: 1024, Iterations: 1, Parallelism: 1, SaltLength: 16, KeyLength: 32})
}

func TestArgon2_Hash_Format(t *testing.T) {
	tests := []struct {
		name     string
		password string
	}{
		{name: "plain", password: "testPassword123"},
		{name: "empty password", password: ""},
		{name: "long password", password: strings.Repeat("a", 128)},
		{name: "unicode", password: "пароль🔐"},
		{name: "null byte", password: "pass\x00word"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			hash, err := testHasher().Hash(tt.password)
			require.NoError(t, err)

			assert.True(t, strings.HasPrefix(hash, "$argon2id$v=19$m=1024,t=1,p=1$"), hash)
			assert.Len(t, strings.Split(hash, "$"), 6)

			_, _, digest, err := decode(hash)
			require.NoError(t, err)
			assert.NotEqual(t, []byte(tt.password), digest)
			assert.True(t, testHasher().Verify(tt.password, hash))
		})
	}
}

func TestArgon2_Hash_UniqueSalts(t *testing.T) {
	a := testHasher()

	h1, err := a.Hash("samePassword")
	require.NoError(t, err)
	h2, err := a.Hash("samePassword")
	require.NoError(t, err)

	assert.NotEqual(t, h1, h2, "each hash must use a fresh salt")
}

func TestArgon2_Hash_SaltFailure(t *testing.T) {
	a := testHasher()
	a.randBytes = func(int) ([]byte, error) { return nil, errors.New("entropy exhausted") }

	_, err := a.Hash("p1")
	require.Error(t, err)
	assert.ErrorIs(t, err, common.ErrHashing)
}

func TestArgon2_Verify(t *testing.T) {
	tests := []struct {
		name     string
		password string
		attempt  string
		wantOk   bool
	}{
		{name: "correct password", password: "correctPassword", attempt: "correctPassword", wantOk: true},
		{name: "wrong password", password: "correctPassword", attempt: "wrongPassword", wantOk: false},
		{name: "case sensitive", password: "correctPassword", attempt: "correctpassword", wantOk: false},
		{name: "extra character", password: "correctPassword", attempt: "correctPassword1", wantOk: false},
		{name: "empty attempt", password: "correctPassword", attempt: "", wantOk: false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			a := testHasher()
			hash, err := a.Hash(tt.password)
			require.NoError(t, err)

			assert.Equal(t, tt.wantOk, a.Verify(tt.attempt, hash))
		})
	}
}

func TestArgon2_Verify_UsesEmbeddedParams(t *testing.T) {
	hash, err := testHasher().Hash("p1")
	require.NoError(t, err)

	// a hasher configured differently still verifies older hashes
	other := NewArgon2WithParams(Params{Memory: 2048, Iterations: 2, Parallelism: 2, SaltLength: 8, KeyLength: 16})
	assert.True(t, other.Verify("p1", hash))
}

func TestArgon2_Verify_FailsClosed(t *testing.T) {
	valid, err := testHasher().Hash("p1")
	require.NoError(t, err)
	parts := strings.Split(valid, "$")

	tests := []struct {
		name string
		hash string
	}{
		{name: "empty", hash: ""},
		{name: "plaintext stored", hash: "p1"},
		{name: "too few parts", hash: "$argon2id$v=19$m=1024,t=1,p=1$c2FsdA"},
		{name: "other algorithm", hash: strings.Replace(valid, "argon2id", "argon2i", 1)},
		{name: "bad version", hash: strings.Replace(valid, "v=19", "v=x", 1)},
		{name: "unsupported version", hash: strings.Replace(valid, "v=19", "v=16", 1)},
		{name: "bad params", hash: strings.Replace(valid, "m=1024,t=1,p=1", "m=a,t=1,p=1", 1)},
		{name: "zero memory", hash: strings.Replace(valid, "m=1024", "m=0", 1)},
		{name: "zero parallelism", hash: strings.Replace(valid, "p=1", "p=0", 1)},
		{name: "bad salt", hash: strings.Join([]string{"", parts[1], parts[2], parts[3], "!!!", parts[5]}, "$")},
		{name: "bad digest", hash: strings.Join([]string{"", parts[1], parts[2], parts[3], parts[4], "!!!"}, "$")},
		{name: "empty digest", hash: strings.Join([]string{"", parts[1], parts[2], parts[3], parts[4], ""}, "$")},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.NotPanics(t, func() {
				assert.False(t, testHasher().Verify("p1", tt.hash))
			})
		})
	}
}

func TestDefaultParams(t *testing.T) {
	p := DefaultParams()
	assert.Equal(t, uint32(64*1024), p.Memory)
	assert.Equal(t, uint32(3), p.Iterations)
	assert.Equal(t, uint8(2), p.Parallelism)
	assert.Equal(t, uint32(16), p.SaltLength)
	assert.Equal(t, uint32(32), p.KeyLength)
}
