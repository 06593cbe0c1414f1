// Package billing wraps the payment processors and the static price table.
package billing

import (
	"fmt"

	"photoai/internal/model"
)

// Plan is a purchasable credit bundle.
type Plan struct {
	Type         model.PlanType
	Name         string
	MonthlyCents int64
	AnnualCents  int64
	Credits      int
}

var plans = map[model.PlanType]Plan{
	model.PlanBasic: {
		Type:         model.PlanBasic,
		Name:         "Basic",
		MonthlyCents: 999,
		AnnualCents:  9990,
		Credits:      500,
	},
	model.PlanPremium: {
		Type:         model.PlanPremium,
		Name:         "Premium",
		MonthlyCents: 1999,
		AnnualCents:  19990,
		Credits:      1000,
	},
}

// LookupPlan returns the plan for a plan name.
func LookupPlan(plan model.PlanType) (Plan, error) {
	p, ok := plans[plan]
	if !ok {
		return Plan{}, fmt.Errorf("unknown plan: %s", plan)
	}
	return p, nil
}

// Price returns the price in the smallest currency unit for a billing cycle.
func (p Plan) Price(isAnnual bool) int64 {
	if isAnnual {
		return p.AnnualCents
	}
	return p.MonthlyCents
}

// Description is shown on checkout pages.
func (p Plan) Description(isAnnual bool) string {
	cycle := "Monthly"
	if isAnnual {
		cycle = "Annual"
	}
	return fmt.Sprintf("%s %s Plan - %d credits", p.Name, cycle, p.Credits)
}
