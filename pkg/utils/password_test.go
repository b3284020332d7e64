package utils

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestHashPassword(t *testing.T) {
	h := PasswordHasher{Iterations: 1000}

	stored, err := h.Hash("s3cret-pass")
	require.NoError(t, err)

	parts := strings.Split(stored, ":")
	require.Len(t, parts, 5)
	assert.Equal(t, "pbkdf2", parts[0])
	assert.Equal(t, "sha512", parts[1])
	assert.Equal(t, "1000", parts[2])
	assert.Len(t, parts[3], 32)
	assert.Len(t, parts[4], 128)

	t.Run("same password matches", func(t *testing.T) {
		assert.True(t, h.Compare("s3cret-pass", stored))
	})

	t.Run("wrong password does not match", func(t *testing.T) {
		assert.False(t, h.Compare("s3cret-pasS", stored))
	})

	t.Run("salt differs each time", func(t *testing.T) {
		again, err := h.Hash("s3cret-pass")
		require.NoError(t, err)
		assert.NotEqual(t, stored, again)
		assert.True(t, h.Compare("s3cret-pass", again))
	})

	t.Run("stored iterations win over hasher config", func(t *testing.T) {
		other := PasswordHasher{Iterations: 5}
		assert.True(t, other.Compare("s3cret-pass", stored))
	})
}

func TestHashPasswordRejectsBlank(t *testing.T) {
	for _, pw := range []string{"", "   ", "\t\n"} {
		_, err := PasswordHasher{Iterations: 10}.Hash(pw)
		assert.ErrorIs(t, err, ErrEmptyPassword)
	}
}

func TestDefaultIterations(t *testing.T) {
	stored, err := HashPassword("correct horse")
	require.NoError(t, err)
	assert.Contains(t, stored, ":310000:")
	assert.True(t, CheckPassword("correct horse", stored))
	assert.False(t, CheckPassword("battery staple", stored))
}

func TestComparePasswordMalformed(t *testing.T) {
	h := PasswordHasher{}
	good, err := PasswordHasher{Iterations: 10}.Hash("pw")
	require.NoError(t, err)
	parts := strings.Split(good, ":")

	cases := map[string]string{
		"empty":           "",
		"bcrypt string":   "$2a$10$abcdefghijklmnopqrstuv",
		"four fields":     strings.Join(parts[:4], ":"),
		"six fields":      good + ":extra",
		"wrong prefix":    strings.Join([]string{"argon2", parts[1], parts[2], parts[3], parts[4]}, ":"),
		"unknown digest":  strings.Join([]string{parts[0], "md5", parts[2], parts[3], parts[4]}, ":"),
		"zero iterations": strings.Join([]string{parts[0], parts[1], "0", parts[3], parts[4]}, ":"),
		"nan iterations":  strings.Join([]string{parts[0], parts[1], "abc", parts[3], parts[4]}, ":"),
		"non-hex key":     strings.Join([]string{parts[0], parts[1], parts[2], parts[3], "zz"}, ":"),
		"empty key":       strings.Join([]string{parts[0], parts[1], parts[2], parts[3], ""}, ":"),
	}
	for name, stored := range cases {
		t.Run(name, func(t *testing.T) {
			assert.NotPanics(t, func() {
				assert.False(t, h.Compare("pw", stored))
			})
		})
	}
}
