package auth

import (
	"errors"
	"time"

	"rinawarp_backend/internal/models"
	"rinawarp_backend/pkg/apperrors"

	"github.com/golang-jwt/jwt/v5"
)

// Claims - полезная нагрузка access-токена.
// План фиксируется на момент выдачи: апгрейд/даунгрейд начнет
// действовать только после повторного логина.
type Claims struct {
	UserID string      `json:"user_id"`
	Email  string      `json:"email"`
	Plan   models.Plan `json:"plan"`
	jwt.RegisteredClaims
}

// TokenService выдает и проверяет подписанные токены.
// Секрет и TTL приходят из конфигурации при старте процесса,
// глобального состояния у сервиса нет.
type TokenService struct {
	secret []byte
	ttl    time.Duration
}

func NewTokenService(secret string, ttl time.Duration) *TokenService {
	return &TokenService{
		secret: []byte(secret),
		ttl:    ttl,
	}
}

// TTL возвращает настроенный срок жизни токена
func (s *TokenService) TTL() time.Duration {
	return s.ttl
}

// Issue выдает HS256-токен с планом, зафиксированным на момент выдачи.
// expires_at = issued_at + ttl.
func (s *TokenService) Issue(userID, email string, plan models.Plan) (string, time.Time, error) {
	now := time.Now()
	expiresAt := now.Add(s.ttl)

	claims := &Claims{
		UserID: userID,
		Email:  email,
		Plan:   plan,
		RegisteredClaims: jwt.RegisteredClaims{
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(expiresAt),
		},
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	signed, err := token.SignedString(s.secret)
	if err != nil {
		return "", time.Time{}, err
	}

	return signed, expiresAt, nil
}

// Parse проверяет подпись и срок действия токена.
// Чисто и stateless: журнал сессий здесь не читается.
func (s *TokenService) Parse(tokenStr string) (*Claims, error) {
	claims := &Claims{}

	token, err := jwt.ParseWithClaims(tokenStr, claims, func(t *jwt.Token) (interface{}, error) {
		if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, errors.New("unexpected signing method")
		}
		return s.secret, nil
	})
	if err != nil {
		if errors.Is(err, jwt.ErrTokenExpired) {
			return nil, apperrors.ErrTokenExpired
		}
		return nil, apperrors.ErrInvalidToken
	}

	if !token.Valid {
		return nil, apperrors.ErrInvalidToken
	}

	return claims, nil
}
