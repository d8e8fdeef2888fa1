package jwt_test

import (
	"salon/config"
	"salon/infras/jwt"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newJWT(secret string) jwt.JWT {
	cfg := &config.Config{}
	cfg.App.Name = "salon"
	cfg.JWT.Secret = secret
	cfg.JWT.ExpireMinutes = 60

	return jwt.New(cfg)
}

func TestIssueAndVerify(t *testing.T) {
	tokens := newJWT("s3cret")

	token, err := tokens.Issue("staff-7", "Reception", "staff")
	require.NoError(t, err)

	claims, err := tokens.Verify(token)
	require.NoError(t, err)
	assert.Equal(t, "staff-7", claims.Subject)
	assert.Equal(t, "Reception", claims.Name)
	assert.Equal(t, "staff", claims.Role)
	assert.Equal(t, "salon", claims.Issuer)
}

func TestVerify_Rejects(t *testing.T) {
	tokens := newJWT("s3cret")

	foreign, err := newJWT("other").Issue("staff-7", "", "")
	require.NoError(t, err)

	_, err = tokens.Verify(foreign)
	assert.ErrorIs(t, err, jwt.ErrInvalidToken)

	_, err = tokens.Verify("not-a-token")
	assert.ErrorIs(t, err, jwt.ErrInvalidToken)

	anonymous, err := tokens.Issue("", "", "")
	require.NoError(t, err)

	_, err = tokens.Verify(anonymous)
	assert.ErrorIs(t, err, jwt.ErrMissingActor)
}

func TestVerify_Expired(t *testing.T) {
	tokens := newJWT("s3cret")

	issued := time.Now().Add(-2 * time.Hour)
	jwt.SetClock(tokens, func() time.Time { return issued })

	token, err := tokens.Issue("staff-7", "", "")
	require.NoError(t, err)

	jwt.SetClock(tokens, time.Now)

	_, err = tokens.Verify(token)
	assert.ErrorIs(t, err, jwt.ErrExpiredToken)
}

func TestDisabled(t *testing.T) {
	tokens := newJWT("")

	assert.False(t, tokens.Enabled())

	_, err := tokens.Issue("staff-7", "", "")
	assert.ErrorIs(t, err, jwt.ErrNotConfigured)
}

func TestExtractTokenFromHeader(t *testing.T) {
	token, err := jwt.ExtractTokenFromHeader("Bearer abc.def.ghi")
	require.NoError(t, err)
	assert.Equal(t, "abc.def.ghi", token)

	_, err = jwt.ExtractTokenFromHeader("Basic abc")
	assert.Error(t, err)

	_, err = jwt.ExtractTokenFromHeader("")
	assert.Error(t, err)
}
