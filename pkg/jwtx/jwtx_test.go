package jwtx_test

import (
	"strings"
	"testing"
	"time"

	"github.com/aussiebroadwan/storefront/pkg/jwtx"
	"github.com/golang-jwt/jwt/v5"
	"github.com/stretchr/testify/require"
)

var secret = []byte(strings.Repeat("s", jwtx.MinSecretLength))

func sign(t *testing.T, c jwtx.Claims) string {
	t.Helper()
	signer, err := jwtx.NewSignerHS256(secret)
	require.NoError(t, err)
	token, err := signer.Sign(c)
	require.NoError(t, err)
	return token
}

func TestSignAndVerify(t *testing.T) {
	t.Parallel()

	token := sign(t, jwtx.NewClaims(42, 2, time.Hour, "devapi", time.Now()))

	claims, err := jwtx.NewVerifierHS256(secret, "devapi", 0).Verify(token)
	require.NoError(t, err)

	id, err := claims.UserID()
	require.NoError(t, err)
	require.Equal(t, int64(42), id)
	require.Equal(t, int64(2), claims.RoleID)
	require.NotEmpty(t, claims.ID)
}

func TestNewSignerRejectsShortSecret(t *testing.T) {
	t.Parallel()

	_, err := jwtx.NewSignerHS256([]byte("short"))
	require.Error(t, err)
}

func TestSignRequiresSubject(t *testing.T) {
	t.Parallel()

	signer, err := jwtx.NewSignerHS256(secret)
	require.NoError(t, err)
	_, err = signer.Sign(jwtx.Claims{})
	require.Error(t, err)
}

func TestVerifyFailures(t *testing.T) {
	t.Parallel()

	now := time.Now()
	verifier := jwtx.NewVerifierHS256(secret, "devapi", 0)

	t.Run("garbage", func(t *testing.T) {
		_, err := verifier.Verify("not-a-token")
		require.ErrorIs(t, err, jwtx.ErrMalformed)
	})

	t.Run("wrong secret", func(t *testing.T) {
		other := jwtx.NewVerifierHS256([]byte(strings.Repeat("x", 32)), "devapi", 0)
		_, err := other.Verify(sign(t, jwtx.NewClaims(1, 1, time.Hour, "devapi", now)))
		require.ErrorIs(t, err, jwtx.ErrInvalidSig)
	})

	t.Run("other algorithm", func(t *testing.T) {
		raw := jwt.NewWithClaims(jwt.SigningMethodHS512, jwtx.NewClaims(1, 1, time.Hour, "devapi", now))
		token, err := raw.SignedString(secret)
		require.NoError(t, err)

		_, err = verifier.Verify(token)
		require.ErrorIs(t, err, jwtx.ErrAlgMismatch)
	})

	t.Run("wrong issuer", func(t *testing.T) {
		_, err := verifier.Verify(sign(t, jwtx.NewClaims(1, 1, time.Hour, "elsewhere", now)))
		require.ErrorIs(t, err, jwtx.ErrIssuer)
	})

	t.Run("expired", func(t *testing.T) {
		_, err := verifier.Verify(sign(t, jwtx.NewClaims(1, 1, time.Hour, "devapi", now.Add(-2*time.Hour))))
		require.ErrorIs(t, err, jwtx.ErrExpired)
	})

	t.Run("not yet valid", func(t *testing.T) {
		_, err := verifier.Verify(sign(t, jwtx.NewClaims(1, 1, time.Hour, "devapi", now.Add(time.Hour))))
		require.ErrorIs(t, err, jwtx.ErrNotYetValid)
	})

	t.Run("leeway tolerates skew", func(t *testing.T) {
		lenient := jwtx.NewVerifierHS256(secret, "devapi", time.Minute)
		_, err := lenient.Verify(sign(t, jwtx.NewClaims(1, 1, time.Hour, "devapi", now.Add(10*time.Second))))
		require.NoError(t, err)
	})

	t.Run("non numeric subject", func(t *testing.T) {
		c := jwtx.NewClaims(1, 1, time.Hour, "devapi", now)
		c.Subject = "ana"
		_, err := verifier.Verify(sign(t, c))
		require.ErrorIs(t, err, jwtx.ErrInvalidClaim)
	})
}

func TestValidateIssuer(t *testing.T) {
	t.Parallel()

	c := &jwtx.Claims{RegisteredClaims: jwt.RegisteredClaims{Issuer: "devapi"}}
	require.NoError(t, c.ValidateIssuer("devapi"))
	require.NoError(t, c.ValidateIssuer(""))
	require.ErrorIs(t, c.ValidateIssuer("other"), jwtx.ErrIssuer)
}
