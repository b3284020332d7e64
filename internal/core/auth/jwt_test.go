package auth

import (
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"go-gin-gorm-library/internal/domain"
)

func newTestJWTer(now time.Time) *JWTer {
	return &JWTer{
		Secret: []byte("test-secret"),
		Issuer: "library-test",
		TTL:    time.Hour,
		Now:    func() time.Time { return now },
	}
}

func TestIssueAndParse(t *testing.T) {
	now := time.Now().Truncate(time.Second)
	j := newTestJWTer(now)

	tok, err := j.Issue(domain.TokenClaims{Subject: "12", Email: "a@b.com", Name: "Ada", Role: RoleMember})
	require.NoError(t, err)
	require.NotEmpty(t, tok)

	c, err := j.Parse(tok)
	require.NoError(t, err)
	assert.Equal(t, "12", c.Subject)
	assert.Equal(t, "a@b.com", c.Email)
	assert.Equal(t, "Ada", c.Name)
	assert.Equal(t, RoleMember, c.Role)
	assert.Equal(t, "library-test", c.Issuer)

	exp, err := j.ExpiresAt(tok)
	require.NoError(t, err)
	assert.True(t, exp.Equal(now.Add(time.Hour)))
}

func TestParseRejects(t *testing.T) {
	now := time.Now().Truncate(time.Second)
	j := newTestJWTer(now)

	t.Run("wrong secret", func(t *testing.T) {
		other := newTestJWTer(now)
		other.Secret = []byte("another")
		tok, err := other.Issue(domain.TokenClaims{Subject: "1"})
		require.NoError(t, err)
		_, err = j.Parse(tok)
		assert.Error(t, err)
	})

	t.Run("wrong issuer", func(t *testing.T) {
		other := newTestJWTer(now)
		other.Issuer = "someone-else"
		tok, err := other.Issue(domain.TokenClaims{Subject: "1"})
		require.NoError(t, err)
		_, err = j.Parse(tok)
		assert.Error(t, err)
	})

	t.Run("expired beyond leeway", func(t *testing.T) {
		old := newTestJWTer(now.Add(-2 * time.Hour))
		tok, err := old.Issue(domain.TokenClaims{Subject: "1"})
		require.NoError(t, err)
		_, err = j.Parse(tok)
		assert.Error(t, err)
	})

	t.Run("other algorithm", func(t *testing.T) {
		c := Claims{RegisteredClaims: jwt.RegisteredClaims{
			Issuer:    j.Issuer,
			ExpiresAt: jwt.NewNumericDate(now.Add(time.Hour)),
		}}
		tok, err := jwt.NewWithClaims(jwt.SigningMethodHS512, c).SignedString(j.Secret)
		require.NoError(t, err)
		_, err = j.Parse(tok)
		assert.Error(t, err)
	})

	t.Run("garbage", func(t *testing.T) {
		_, err := j.Parse("not.a.token")
		assert.Error(t, err)
		_, err = j.ExpiresAt("not-a-token")
		assert.Error(t, err)
	})
}
