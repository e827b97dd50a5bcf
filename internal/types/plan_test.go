package types

import (
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
)

func TestGetPlanPrice(t *testing.T) {
	price, ok := GetPlanPrice(PlanBasic, BillingCycleMonthly)
	assert.True(t, ok)
	assert.True(t, price.Equal(decimal.NewFromInt(39000)))

	price, ok = GetPlanPrice(PlanPro, BillingCycleYearly)
	assert.True(t, ok)
	assert.True(t, price.Equal(decimal.NewFromInt(900000)))

	// The free tier has no price entry so it can never be billed.
	_, ok = GetPlanPrice(PlanFree, BillingCycleMonthly)
	assert.False(t, ok)

	_, ok = GetPlanPrice(PlanName("Custom"), BillingCycleMonthly)
	assert.False(t, ok)
}

func TestPlanRenewalAmount(t *testing.T) {
	assert.True(t, PlanRenewalAmount(PlanEnterprise).Equal(decimal.NewFromInt(249000)))
	assert.True(t, PlanRenewalAmount(PlanFree).IsZero())
	assert.True(t, PlanRenewalAmount(PlanName("Custom")).IsZero())
}
