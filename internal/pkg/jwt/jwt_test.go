package jwt

import (
	"testing"
	"time"

	jwtlib "github.com/golang-jwt/jwt/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/farhanak624/kshetra-backend/internal/domain"
)

func TestIssueParseRoundTrip(t *testing.T) {
	svc := New("secret", time.Hour)

	token, err := svc.Issue(42, domain.RoleAdmin)
	require.NoError(t, err)

	claims, err := svc.Parse(token)
	require.NoError(t, err)
	assert.Equal(t, int64(42), claims.UserID)
	assert.Equal(t, domain.RoleAdmin, claims.Role)
	assert.Equal(t, "42", claims.Subject)
	assert.Equal(t, issuer, claims.Issuer)
}

func TestParseRejectsWrongSecret(t *testing.T) {
	token, err := New("secret", time.Hour).Issue(1, domain.RoleUser)
	require.NoError(t, err)

	_, err = New("other", time.Hour).Parse(token)
	assert.ErrorIs(t, err, ErrTokenInvalid)
}

func TestParseRejectsExpiredToken(t *testing.T) {
	token, err := New("secret", -time.Minute).Issue(1, domain.RoleUser)
	require.NoError(t, err)

	_, err = New("secret", time.Hour).Parse(token)
	assert.ErrorIs(t, err, ErrTokenInvalid)
}

func TestParseRejectsForeignIssuer(t *testing.T) {
	foreign := jwtlib.NewWithClaims(jwtlib.SigningMethodHS256, Claims{
		UserID: 1,
		Role:   domain.RoleUser,
		RegisteredClaims: jwtlib.RegisteredClaims{
			Issuer:    "someone-else",
			ExpiresAt: jwtlib.NewNumericDate(time.Now().Add(time.Hour)),
		},
	})
	signed, err := foreign.SignedString([]byte("secret"))
	require.NoError(t, err)

	_, err = New("secret", time.Hour).Parse(signed)
	assert.ErrorIs(t, err, ErrTokenInvalid)
}

func TestParseRejectsUnsignedToken(t *testing.T) {
	unsigned := jwtlib.NewWithClaims(jwtlib.SigningMethodNone, Claims{
		UserID: 1,
		RegisteredClaims: jwtlib.RegisteredClaims{
			Issuer:    issuer,
			ExpiresAt: jwtlib.NewNumericDate(time.Now().Add(time.Hour)),
		},
	})
	token, err := unsigned.SignedString(jwtlib.UnsafeAllowNoneSignatureType)
	require.NoError(t, err)

	_, err = New("secret", time.Hour).Parse(token)
	assert.ErrorIs(t, err, ErrTokenInvalid)
}
