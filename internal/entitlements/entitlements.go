package entitlements

import (
	"rinawarp_backend/internal/models"
)

// Идентификаторы платных capability
const (
	CapabilityAISuggestions     = "ai_suggestions"
	CapabilityAdvancedAnalytics = "advanced_analytics"
)

// Resolver отвечает на вопрос "что разрешено этому плану".
// Карты статичны и задаются при создании, чтобы их можно было
// подменять в тестах и версионировать как конфигурацию.
type Resolver struct {
	planFeatures map[models.Plan][]string
	capabilities map[string][]models.Plan
}

// NewResolver возвращает резолвер с продовыми картами план->фичи
// и capability->разрешенные планы.
func NewResolver() *Resolver {
	return &Resolver{
		planFeatures: map[models.Plan][]string{
			models.PlanCommunity: {
				"dev_dashboard",
				"kilo_fix_pack",
				"basic_deploy",
				"terminal_pro_launch",
			},
			models.PlanPioneer: {
				"community_features",
				"ai_suggestions",
				"advanced_analytics",
				"priority_support",
				"early_access",
			},
			models.PlanFounder: {
				"pioneer_features",
				"founder_benefits",
				"custom_integrations",
			},
			models.PlanMonthlyCreator: {
				"ai_suggestions",
				"advanced_analytics",
				"team_features",
			},
			models.PlanMonthlyPro: {
				"creator_features",
				"enterprise_support",
				"custom_deployments",
			},
		},
		// Явный allow-list вместо проверки "план не community":
		// новый план не получает платные фичи, пока его сюда не впишут.
		capabilities: map[string][]models.Plan{
			CapabilityAISuggestions: {
				models.PlanPioneer,
				models.PlanFounder,
				models.PlanMonthlyCreator,
				models.PlanMonthlyPro,
				models.PlanAdmin,
			},
			CapabilityAdvancedAnalytics: {
				models.PlanPioneer,
				models.PlanFounder,
				models.PlanMonthlyCreator,
				models.PlanMonthlyPro,
				models.PlanAdmin,
			},
		},
	}
}

// FeaturesFor возвращает упорядоченный список фич плана.
// Неизвестный план получает набор community.
func (r *Resolver) FeaturesFor(plan models.Plan) []string {
	features, ok := r.planFeatures[plan]
	if !ok {
		features = r.planFeatures[models.PlanCommunity]
	}

	// Копия, чтобы вызывающий не мог испортить карту
	out := make([]string, len(features))
	copy(out, features)
	return out
}

// Allows проверяет, разрешена ли capability для плана
func (r *Resolver) Allows(plan models.Plan, capability string) bool {
	allowed, ok := r.capabilities[capability]
	if !ok {
		return false
	}
	for _, p := range allowed {
		if p == plan {
			return true
		}
	}
	return false
}

// IsAdmin - строгая проверка для админ-операций.
// Только литеральное значение "admin", с учетом регистра.
func (r *Resolver) IsAdmin(plan models.Plan) bool {
	return plan == models.PlanAdmin
}
