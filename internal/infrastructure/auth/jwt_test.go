package auth

import (
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/opstracker/backend/internal/infrastructure/config"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestJWTService() *JWTService {
	return NewJWTService(config.JWTConfig{
		Secret:                "test-secret-key-that-is-long-enough-32",
		Issuer:                "opstracker-test",
		AccessTokenExpiration: 15 * time.Minute,
	})
}

func TestJWTService_IssueAndVerify(t *testing.T) {
	svc := newTestJWTService()

	token, expiresAt, err := svc.Issue(IssueInput{UserID: "user_123", Email: "a@example.com"})
	require.NoError(t, err)
	assert.WithinDuration(t, time.Now().Add(15*time.Minute), expiresAt, 5*time.Second)

	claims, err := svc.Verify(token)
	require.NoError(t, err)
	assert.Equal(t, "user_123", claims.UserID())
	assert.Equal(t, "a@example.com", claims.Email)
}

func TestJWTService_IssueRequiresSubject(t *testing.T) {
	_, _, err := newTestJWTService().Issue(IssueInput{})
	assert.ErrorIs(t, err, ErrMissingSubject)
}

func TestJWTService_Verify_Expired(t *testing.T) {
	svc := NewJWTService(config.JWTConfig{
		Secret:                "test-secret-key-that-is-long-enough-32",
		AccessTokenExpiration: -time.Minute,
	})
	token, _, err := svc.Issue(IssueInput{UserID: "user_123"})
	require.NoError(t, err)

	_, err = svc.Verify(token)
	assert.ErrorIs(t, err, ErrExpiredToken)
}

func TestJWTService_Verify_Rejects(t *testing.T) {
	svc := newTestJWTService()

	other := NewJWTService(config.JWTConfig{
		Secret:                "a-completely-different-secret-value!!",
		Issuer:                "opstracker-test",
		AccessTokenExpiration: time.Minute,
	})
	foreign, _, err := other.Issue(IssueInput{UserID: "user_123"})
	require.NoError(t, err)

	wrongIssuer := NewJWTService(config.JWTConfig{
		Secret:                "test-secret-key-that-is-long-enough-32",
		Issuer:                "someone-else",
		AccessTokenExpiration: time.Minute,
	})
	misissued, _, err := wrongIssuer.Issue(IssueInput{UserID: "user_123"})
	require.NoError(t, err)

	none := jwt.NewWithClaims(jwt.SigningMethodNone, jwt.RegisteredClaims{Subject: "user_123"})
	unsigned, err := none.SignedString(jwt.UnsafeAllowNoneSignatureType)
	require.NoError(t, err)

	tests := []struct {
		name  string
		token string
	}{
		{"garbage", "not.a.token"},
		{"wrong secret", foreign},
		{"wrong issuer", misissued},
		{"alg none", unsigned},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := svc.Verify(tt.token)
			assert.ErrorIs(t, err, ErrInvalidToken)
		})
	}
}

func TestJWTService_Verify_MissingSubject(t *testing.T) {
	svc := newTestJWTService()
	token, err := jwt.NewWithClaims(jwt.SigningMethodHS256, &Claims{
		RegisteredClaims: jwt.RegisteredClaims{
			Issuer:    "opstracker-test",
			ExpiresAt: jwt.NewNumericDate(time.Now().Add(time.Minute)),
		},
	}).SignedString(svc.secret)
	require.NoError(t, err)

	_, err = svc.Verify(token)
	assert.ErrorIs(t, err, ErrMissingSubject)
}
