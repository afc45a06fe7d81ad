package models

type Plan string
type SubscriptionStatus string

const (
	// Планы подписки. PlanAdmin - служебное значение, оно не продается
	// и не участвует в карте фич, но проходит через тот же enum.
	PlanCommunity      Plan = "community"
	PlanPioneer        Plan = "pioneer"
	PlanFounder        Plan = "founder"
	PlanMonthlyCreator Plan = "monthly_creator"
	PlanMonthlyPro     Plan = "monthly_pro"
	PlanAdmin          Plan = "admin"

	SubscriptionStatusActive   SubscriptionStatus = "active"
	SubscriptionStatusInactive SubscriptionStatus = "inactive"
	SubscriptionStatusCanceled SubscriptionStatus = "canceled"
)

// KnownPlans - все значения, которые админ может назначить пользователю.
var KnownPlans = []Plan{
	PlanCommunity,
	PlanPioneer,
	PlanFounder,
	PlanMonthlyCreator,
	PlanMonthlyPro,
	PlanAdmin,
}

// IsKnownPlan проверяет, входит ли значение в enum планов
func IsKnownPlan(p Plan) bool {
	for _, known := range KnownPlans {
		if p == known {
			return true
		}
	}
	return false
}
