package types

import (
	ierr "github.com/tagihin/tagihin/internal/errors"

	"github.com/samber/lo"
	"github.com/shopspring/decimal"
)

// PlanName identifies a subscription tier
type PlanName string

const (
	PlanFree       PlanName = "Free"
	PlanBasic      PlanName = "Basic"
	PlanPro        PlanName = "Pro"
	PlanEnterprise PlanName = "Enterprise"
)

func (p PlanName) String() string {
	return string(p)
}

func (p PlanName) Validate() error {
	allowed := []PlanName{PlanFree, PlanBasic, PlanPro, PlanEnterprise}
	if !lo.Contains(allowed, p) {
		return ierr.NewError("invalid plan name").
			WithHint("Please provide a valid plan name").
			WithReportableDetails(map[string]any{
				"allowed": allowed,
			}).
			Mark(ierr.ErrValidation)
	}
	return nil
}

// BillingCycle is the cadence a plan is billed on
type BillingCycle string

const (
	BillingCycleMonthly BillingCycle = "monthly"
	BillingCycleYearly  BillingCycle = "yearly"
)

func (c BillingCycle) String() string {
	return string(c)
}

func (c BillingCycle) Validate() error {
	allowed := []BillingCycle{BillingCycleMonthly, BillingCycleYearly}
	if !lo.Contains(allowed, c) {
		return ierr.NewError("invalid billing cycle").
			WithHint("Billing cycle must be monthly or yearly").
			WithReportableDetails(map[string]any{
				"allowed": allowed,
			}).
			Mark(ierr.ErrValidation)
	}
	return nil
}

// PlanPrice holds the charge amounts for one plan, in Rupiah
type PlanPrice struct {
	Monthly decimal.Decimal
	Yearly  decimal.Decimal
}

// planPrices is the single authoritative price table. Both the on-demand
// checkout flow and the renewal auto-billing job read from here; the free
// tier is deliberately absent so it can never be billed.
var planPrices = map[PlanName]PlanPrice{
	PlanBasic: {
		Monthly: decimal.NewFromInt(39000),
		Yearly:  decimal.NewFromInt(30000 * 12),
	},
	PlanPro: {
		Monthly: decimal.NewFromInt(99000),
		Yearly:  decimal.NewFromInt(75000 * 12),
	},
	PlanEnterprise: {
		Monthly: decimal.NewFromInt(249000),
		Yearly:  decimal.NewFromInt(189000 * 12),
	},
}

// GetPlanPrice returns the charge amount for a plan and cycle.
// The boolean is false for unknown or unbillable (free) plans.
func GetPlanPrice(plan PlanName, cycle BillingCycle) (decimal.Decimal, bool) {
	price, ok := planPrices[plan]
	if !ok {
		return decimal.Zero, false
	}
	switch cycle {
	case BillingCycleYearly:
		return price.Yearly, true
	case BillingCycleMonthly:
		return price.Monthly, true
	default:
		return decimal.Zero, false
	}
}

// PlanRenewalAmount returns the amount a plan renews at (monthly cadence).
// Zero means the plan is unknown or not billable.
func PlanRenewalAmount(plan PlanName) decimal.Decimal {
	price, ok := planPrices[plan]
	if !ok {
		return decimal.Zero
	}
	return price.Monthly
}
