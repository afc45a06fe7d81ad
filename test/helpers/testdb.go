package helpers

import (
	"encoding/json"
	"fmt"
	"net/http"
	"strings"
	"testing"
	"time"

	"rinawarp_backend/internal/models"

	"github.com/stretchr/testify/assert"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"
)

// CreateUser создает пользователя в транзакции.
// Если в PasswordHash лежит сырой пароль, он хешируется на месте.
func CreateUser(t *testing.T, db *gorm.DB, user *models.User) error {
	if user.PasswordHash != "" && !strings.HasPrefix(user.PasswordHash, "$2a$") {
		rawPassword := user.PasswordHash
		hashedPassword, err := bcrypt.GenerateFromPassword([]byte(rawPassword), bcrypt.DefaultCost)
		if err != nil {
			t.Fatalf("Не удалось хешировать пароль: %v", err)
		}
		user.PasswordHash = string(hashedPassword)
	}

	if user.Plan == "" {
		user.Plan = models.PlanCommunity
	}
	if user.SubscriptionStatus == "" {
		user.SubscriptionStatus = models.SubscriptionStatusActive
	}

	result := db.Create(user)
	if result.Error != nil {
		t.Logf("ОШИБКА: не удалось создать пользователя %s: %v", user.Email, result.Error)
		return result.Error
	}

	return nil
}

// CreateAndLoginUser создает пользователя с заданным планом и логинит его через API
func CreateAndLoginUser(t *testing.T, ts *TestServer, tx *gorm.DB, email, password string, plan models.Plan) (string, *models.User) {
	user := &models.User{
		Email:        email,
		PasswordHash: password, // сырой пароль, CreateUser захеширует
		Plan:         plan,
	}
	err := CreateUser(t, tx, user)
	assert.NoError(t, err, "Создание тестового пользователя не должно вызывать ошибку")

	loginBody := map[string]interface{}{
		"email":    email,
		"password": password,
	}

	res, bodyStr := ts.SendRequest(t, tx, http.MethodPost, "/api/v1/auth/login", "", loginBody)
	assert.Equal(t, http.StatusOK, res.StatusCode, "Логин должен быть успешным. Ответ: "+bodyStr)

	var loginResponse struct {
		Token  string `json:"token"`
		UserID string `json:"userId"`
	}
	err = json.Unmarshal([]byte(bodyStr), &loginResponse)
	assert.NoError(t, err, "Не удалось распарсить JSON")
	assert.NotEmpty(t, loginResponse.Token, "Токен не должен быть пустым")
	assert.Equal(t, user.ID, loginResponse.UserID)

	// Восстанавливаем сырой пароль в объекте user (для удобства в тестах)
	user.PasswordHash = password

	return loginResponse.Token, user
}

// CreateAndLoginAdmin создает админа с уникальным email
func CreateAndLoginAdmin(t *testing.T, ts *TestServer, tx *gorm.DB) (string, *models.User) {
	email := fmt.Sprintf("admin_%d@test.com", time.Now().UnixNano())
	return CreateAndLoginUser(t, ts, tx, email, "admin_password123", models.PlanAdmin)
}

// CreateAndLoginPioneer создает платного пользователя с уникальным email
func CreateAndLoginPioneer(t *testing.T, ts *TestServer, tx *gorm.DB) (string, *models.User) {
	email := fmt.Sprintf("pioneer_%d@test.com", time.Now().UnixNano())
	return CreateAndLoginUser(t, ts, tx, email, "pioneer_password123", models.PlanPioneer)
}
