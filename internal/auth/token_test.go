package auth

import (
	"strings"
	"testing"
	"time"

	"rinawarp_backend/internal/models"
	"rinawarp_backend/pkg/apperrors"

	"github.com/stretchr/testify/assert"
)

func TestTokenService_IssueAndParse(t *testing.T) {
	svc := NewTokenService("test-secret", time.Hour)

	token, expiresAt, err := svc.Issue("user-1", "user@test.com", models.PlanPioneer)
	assert.NoError(t, err)
	assert.NotEmpty(t, token)
	assert.WithinDuration(t, time.Now().Add(time.Hour), expiresAt, 5*time.Second)

	claims, err := svc.Parse(token)
	assert.NoError(t, err)
	assert.Equal(t, "user-1", claims.UserID)
	assert.Equal(t, "user@test.com", claims.Email)
	assert.Equal(t, models.PlanPioneer, claims.Plan)
	assert.Equal(t, expiresAt.Unix(), claims.ExpiresAt.Unix())
}

func TestTokenService_Expired(t *testing.T) {
	svc := NewTokenService("test-secret", -time.Minute)

	token, _, err := svc.Issue("user-1", "user@test.com", models.PlanCommunity)
	assert.NoError(t, err)

	_, err = svc.Parse(token)
	assert.ErrorIs(t, err, apperrors.ErrTokenExpired)
}

func TestTokenService_WrongSecret(t *testing.T) {
	issuer := NewTokenService("secret-a", time.Hour)
	verifier := NewTokenService("secret-b", time.Hour)

	token, _, err := issuer.Issue("user-1", "user@test.com", models.PlanCommunity)
	assert.NoError(t, err)

	_, err = verifier.Parse(token)
	assert.ErrorIs(t, err, apperrors.ErrInvalidToken)
}

func TestTokenService_TamperedPayload(t *testing.T) {
	svc := NewTokenService("test-secret", time.Hour)

	token, _, err := svc.Issue("user-1", "user@test.com", models.PlanCommunity)
	assert.NoError(t, err)

	// Подменяем payload, подпись остается старой
	parts := strings.Split(token, ".")
	assert.Len(t, parts, 3)
	parts[1] = parts[1][:len(parts[1])-2] + "xx"

	_, err = svc.Parse(strings.Join(parts, "."))
	assert.ErrorIs(t, err, apperrors.ErrInvalidToken)
}

func TestTokenService_Garbage(t *testing.T) {
	svc := NewTokenService("test-secret", time.Hour)

	for _, tokenStr := range []string{"", "garbage", "a.b.c"} {
		_, err := svc.Parse(tokenStr)
		assert.ErrorIs(t, err, apperrors.ErrInvalidToken, "токен %q", tokenStr)
	}
}
