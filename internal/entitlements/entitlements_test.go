package entitlements

import (
	"testing"

	"rinawarp_backend/internal/models"

	"github.com/stretchr/testify/assert"
)

func TestFeaturesFor_KnownPlans(t *testing.T) {
	r := NewResolver()

	assert.Equal(t, []string{
		"dev_dashboard",
		"kilo_fix_pack",
		"basic_deploy",
		"terminal_pro_launch",
	}, r.FeaturesFor(models.PlanCommunity))

	assert.Equal(t, []string{
		"pioneer_features",
		"founder_benefits",
		"custom_integrations",
	}, r.FeaturesFor(models.PlanFounder))
}

func TestFeaturesFor_UnknownPlanFallsBackToCommunity(t *testing.T) {
	r := NewResolver()

	assert.Equal(t, r.FeaturesFor(models.PlanCommunity), r.FeaturesFor(models.Plan("gold")))
	assert.Equal(t, r.FeaturesFor(models.PlanCommunity), r.FeaturesFor(models.Plan("")))
}

func TestFeaturesFor_ReturnsCopy(t *testing.T) {
	r := NewResolver()

	features := r.FeaturesFor(models.PlanCommunity)
	features[0] = "mutated"

	assert.Equal(t, "dev_dashboard", r.FeaturesFor(models.PlanCommunity)[0])
}

func TestAllows_AllowList(t *testing.T) {
	r := NewResolver()

	paid := []models.Plan{
		models.PlanPioneer,
		models.PlanFounder,
		models.PlanMonthlyCreator,
		models.PlanMonthlyPro,
		models.PlanAdmin,
	}
	for _, plan := range paid {
		assert.True(t, r.Allows(plan, CapabilityAISuggestions), "план %s", plan)
		assert.True(t, r.Allows(plan, CapabilityAdvancedAnalytics), "план %s", plan)
	}

	assert.False(t, r.Allows(models.PlanCommunity, CapabilityAISuggestions))

	// Неизвестный план НЕ получает платные capability, даже если
	// это не community (смысл allow-list вместо deny-list)
	assert.False(t, r.Allows(models.Plan("gold"), CapabilityAISuggestions))
}

func TestAllows_UnknownCapability(t *testing.T) {
	r := NewResolver()

	assert.False(t, r.Allows(models.PlanAdmin, "time_travel"))
}

func TestIsAdmin_Strict(t *testing.T) {
	r := NewResolver()

	assert.True(t, r.IsAdmin(models.PlanAdmin))
	assert.False(t, r.IsAdmin(models.Plan("Admin")))
	assert.False(t, r.IsAdmin(models.Plan("ADMIN")))
	assert.False(t, r.IsAdmin(models.PlanFounder))
	assert.False(t, r.IsAdmin(models.Plan("")))
}
