package auth

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestIssueAndParse(t *testing.T) {
	j := &JWTer{Secret: []byte("test-secret"), Issuer: "marketplace-test", TTL: time.Hour}

	tok, err := j.Issue("u1", "seller")
	require.NoError(t, err)
	require.NotEmpty(t, tok)

	c, err := j.Parse(tok)
	require.NoError(t, err)
	assert.Equal(t, "u1", c.UID)
	assert.Equal(t, "seller", c.Role)
	assert.Equal(t, "marketplace-test", c.Issuer)
}

func TestParseRejectsWrongSecret(t *testing.T) {
	j := &JWTer{Secret: []byte("test-secret"), Issuer: "marketplace-test", TTL: time.Hour}
	tok, err := j.Issue("u1", "buyer")
	require.NoError(t, err)

	other := &JWTer{Secret: []byte("another-secret"), Issuer: "marketplace-test", TTL: time.Hour}
	_, err = other.Parse(tok)
	assert.Error(t, err)
}

func TestParseRejectsWrongIssuer(t *testing.T) {
	j := &JWTer{Secret: []byte("test-secret"), Issuer: "someone-else", TTL: time.Hour}
	tok, err := j.Issue("u1", "buyer")
	require.NoError(t, err)

	mine := &JWTer{Secret: []byte("test-secret"), Issuer: "marketplace-test", TTL: time.Hour}
	_, err = mine.Parse(tok)
	assert.Error(t, err)
}

func TestParseRejectsExpired(t *testing.T) {
	// 过期时间超出 60s leeway
	j := &JWTer{Secret: []byte("test-secret"), Issuer: "marketplace-test", TTL: -2 * time.Minute}
	tok, err := j.Issue("u1", "buyer")
	require.NoError(t, err)

	_, err = j.Parse(tok)
	assert.Error(t, err)
}

func TestParseRejectsGarbage(t *testing.T) {
	j := &JWTer{Secret: []byte("test-secret"), Issuer: "marketplace-test", TTL: time.Hour}
	_, err := j.Parse("not-a-token")
	assert.Error(t, err)
}
