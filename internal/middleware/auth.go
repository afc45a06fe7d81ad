package middleware

import (
	"strings"

	"rinawarp_backend/internal/auth"
	"rinawarp_backend/internal/entitlements"
	"rinawarp_backend/internal/logger"
	"rinawarp_backend/internal/models"
	"rinawarp_backend/pkg/apperrors"

	"github.com/gin-gonic/gin"
)

const (
	ContextUserIDKey = "userID"
	ContextEmailKey  = "email"
	ContextPlanKey   = "plan"
	ContextClaimsKey = "claims"
)

// AuthMiddleware - проверка bearer-токена.
// Проверяется только подпись и срок: журнал сессий не читается,
// валидация остается чистой и stateless.
func AuthMiddleware(tokenService *auth.TokenService) gin.HandlerFunc {
	return func(c *gin.Context) {
		authHeader := c.GetHeader("Authorization")
		if authHeader == "" || !strings.HasPrefix(authHeader, "Bearer ") {
			apperrors.HandleError(c, apperrors.NewUnauthorizedError("Authorization header missing or invalid"))
			c.Abort()
			return
		}

		tokenStr := strings.TrimPrefix(authHeader, "Bearer ")
		claims, err := tokenService.Parse(tokenStr)
		if err != nil {
			apperrors.HandleError(c, err)
			c.Abort()
			return
		}

		// Сохраняем claims в контекст запроса
		c.Set(ContextUserIDKey, claims.UserID)
		c.Set(ContextEmailKey, claims.Email)
		c.Set(ContextPlanKey, claims.Plan)
		c.Set(ContextClaimsKey, claims)

		ctx := logger.WithUserID(c.Request.Context(), claims.UserID)
		c.Request = c.Request.WithContext(ctx)

		c.Next()
	}
}

// AdminMiddleware пускает дальше только план admin (строгое сравнение)
func AdminMiddleware(resolver *entitlements.Resolver) gin.HandlerFunc {
	return func(c *gin.Context) {
		plan, ok := planFromContext(c)
		if !ok || !resolver.IsAdmin(plan) {
			apperrors.HandleError(c, apperrors.ErrAdminRequired)
			c.Abort()
			return
		}
		c.Next()
	}
}

// RequireCapability пускает дальше только планы из allow-list данной capability
func RequireCapability(resolver *entitlements.Resolver, capability string, denyMessage string) gin.HandlerFunc {
	return func(c *gin.Context) {
		plan, ok := planFromContext(c)
		if !ok || !resolver.Allows(plan, capability) {
			apperrors.HandleError(c, apperrors.ErrFeatureRequiresUpgrade(denyMessage))
			c.Abort()
			return
		}
		c.Next()
	}
}

func planFromContext(c *gin.Context) (models.Plan, bool) {
	planVal, exists := c.Get(ContextPlanKey)
	if !exists {
		return "", false
	}

	plan, ok := planVal.(models.Plan)
	if !ok {
		// Попытка преобразовать из string, если план сохранен как строка
		planStr, isString := planVal.(string)
		if !isString {
			return "", false
		}
		plan = models.Plan(planStr)
	}
	return plan, true
}

// GetClaims извлекает claims токена из контекста
func GetClaims(c *gin.Context) (*auth.Claims, bool) {
	val, exists := c.Get(ContextClaimsKey)
	if !exists {
		return nil, false
	}
	claims, ok := val.(*auth.Claims)
	return claims, ok
}
