package integration_test

import (
	"encoding/json"
	"fmt"
	"net/http"
	"testing"
	"time"

	"rinawarp_backend/internal/models"
	"rinawarp_backend/test/helpers"

	"github.com/stretchr/testify/assert"
)

// TestLicense_PioneerFeatures - /license отдает план и фичи из токена
func TestLicense_PioneerFeatures(t *testing.T) {
	t.Parallel()

	ts := GetTestServer(t)
	tx := ts.BeginTransaction(t)
	defer ts.RollbackTransaction(t, tx)

	token, _ := helpers.CreateAndLoginPioneer(t, ts, tx)

	res, bodyStr := ts.SendRequest(t, tx, "GET", "/api/v1/license", token, nil)

	assert.Equal(t, http.StatusOK, res.StatusCode)

	var resp struct {
		Valid     bool     `json:"valid"`
		Plan      string   `json:"plan"`
		Features  []string `json:"features"`
		ExpiresAt string   `json:"expires_at"`
	}
	assert.NoError(t, json.Unmarshal([]byte(bodyStr), &resp))
	assert.True(t, resp.Valid)
	assert.Equal(t, "pioneer", resp.Plan)
	assert.Equal(t, []string{
		"community_features",
		"ai_suggestions",
		"advanced_analytics",
		"priority_support",
		"early_access",
	}, resp.Features)
	assert.NotEmpty(t, resp.ExpiresAt)
}

// TestLicense_PlanSnapshot - план в /license берется из токена,
// даунгрейд в БД не влияет до повторного логина
func TestLicense_PlanSnapshot(t *testing.T) {
	t.Parallel()

	ts := GetTestServer(t)
	tx := ts.BeginTransaction(t)
	defer ts.RollbackTransaction(t, tx)

	token, user := helpers.CreateAndLoginPioneer(t, ts, tx)

	err := tx.Model(&models.User{}).Where("id = ?", user.ID).
		Update("plan", models.PlanCommunity).Error
	assert.NoError(t, err)

	res, bodyStr := ts.SendRequest(t, tx, "GET", "/api/v1/license", token, nil)

	assert.Equal(t, http.StatusOK, res.StatusCode)
	assert.Contains(t, bodyStr, `"plan":"pioneer"`)
}

// TestSeatCount_Database - счетчик мест считает только активных founder
func TestSeatCount_Database(t *testing.T) {
	t.Parallel()

	ts := GetTestServer(t)
	tx := ts.BeginTransaction(t)
	defer ts.RollbackTransaction(t, tx)

	for i := 0; i < 3; i++ {
		err := helpers.CreateUser(t, tx, &models.User{
			Email:        fmt.Sprintf("founder_%d_%d@test.com", i, time.Now().UnixNano()),
			PasswordHash: "password123",
			Plan:         models.PlanFounder,
		})
		assert.NoError(t, err)
	}
	// Отмененный founder не занимает место
	err := helpers.CreateUser(t, tx, &models.User{
		Email:              fmt.Sprintf("canceled_%d@test.com", time.Now().UnixNano()),
		PasswordHash:       "password123",
		Plan:               models.PlanFounder,
		SubscriptionStatus: models.SubscriptionStatusCanceled,
	})
	assert.NoError(t, err)

	res, bodyStr := ts.SendRequest(t, tx, "GET", "/api/v1/license-count", "", nil)

	assert.Equal(t, http.StatusOK, res.StatusCode)

	var resp struct {
		Total     int    `json:"total"`
		Used      int    `json:"used"`
		Remaining int    `json:"remaining"`
		Source    string `json:"source"`
	}
	assert.NoError(t, json.Unmarshal([]byte(bodyStr), &resp))
	assert.Equal(t, 500, resp.Total)
	assert.Equal(t, 3, resp.Used)
	assert.Equal(t, 497, resp.Remaining)
	assert.Equal(t, "database", resp.Source)
}

// TestAISuggestions_CommunityDenied - community не проходит allow-list
func TestAISuggestions_CommunityDenied(t *testing.T) {
	t.Parallel()

	ts := GetTestServer(t)
	tx := ts.BeginTransaction(t)
	defer ts.RollbackTransaction(t, tx)

	email := fmt.Sprintf("community_%d@test.com", time.Now().UnixNano())
	token, _ := helpers.CreateAndLoginUser(t, ts, tx, email, "password123", models.PlanCommunity)

	res, bodyStr := ts.SendRequest(t, tx, "GET", "/api/v1/ai/suggestions", token, nil)

	assert.Equal(t, http.StatusForbidden, res.StatusCode)
	assert.Contains(t, bodyStr, "AI suggestions require Pioneer or monthly subscription")
}

// TestAISuggestions_PioneerAllowed - платный план проходит
func TestAISuggestions_PioneerAllowed(t *testing.T) {
	t.Parallel()

	ts := GetTestServer(t)
	tx := ts.BeginTransaction(t)
	defer ts.RollbackTransaction(t, tx)

	token, _ := helpers.CreateAndLoginPioneer(t, ts, tx)

	res, bodyStr := ts.SendRequest(t, tx, "GET", "/api/v1/ai/suggestions", token, nil)

	assert.Equal(t, http.StatusOK, res.StatusCode)
	assert.Contains(t, bodyStr, "suggestions")
}

// TestAnalytics_CapabilityGate - /analytics закрыт для community,
// открыт для monthly_creator
func TestAnalytics_CapabilityGate(t *testing.T) {
	t.Parallel()

	ts := GetTestServer(t)
	tx := ts.BeginTransaction(t)
	defer ts.RollbackTransaction(t, tx)

	communityEmail := fmt.Sprintf("community_an_%d@test.com", time.Now().UnixNano())
	communityToken, _ := helpers.CreateAndLoginUser(t, ts, tx, communityEmail, "password123", models.PlanCommunity)

	creatorEmail := fmt.Sprintf("creator_an_%d@test.com", time.Now().UnixNano())
	creatorToken, _ := helpers.CreateAndLoginUser(t, ts, tx, creatorEmail, "password123", models.PlanMonthlyCreator)

	deniedRes, _ := ts.SendRequest(t, tx, "GET", "/api/v1/analytics", communityToken, nil)
	allowedRes, allowedStr := ts.SendRequest(t, tx, "GET", "/api/v1/analytics", creatorToken, nil)

	assert.Equal(t, http.StatusForbidden, deniedRes.StatusCode)
	assert.Equal(t, http.StatusOK, allowedRes.StatusCode)
	assert.Contains(t, allowedStr, "usage")
}

// TestVersion_Public - /version открыт без токена
func TestVersion_Public(t *testing.T) {
	t.Parallel()

	ts := GetTestServer(t)
	tx := ts.BeginTransaction(t)
	defer ts.RollbackTransaction(t, tx)

	res, bodyStr := ts.SendRequest(t, tx, "GET", "/api/v1/version", "", nil)

	assert.Equal(t, http.StatusOK, res.StatusCode)
	assert.Contains(t, bodyStr, "rinawarp-backend")
}

// TestHealth_Public - /health отвечает 200
func TestHealth_Public(t *testing.T) {
	t.Parallel()

	ts := GetTestServer(t)
	tx := ts.BeginTransaction(t)
	defer ts.RollbackTransaction(t, tx)

	res, bodyStr := ts.SendRequest(t, tx, "GET", "/health", "", nil)

	assert.Equal(t, http.StatusOK, res.StatusCode)
	assert.Contains(t, bodyStr, `"status":"ok"`)
}
