package billing

import (
	"fmt"

	"github.com/opstracker/backend/internal/domain/account"
	"github.com/opstracker/backend/internal/domain/shared"
)

// Unlimited marks a resource without a ceiling
const Unlimited int64 = -1

// Limits holds the free plan ceilings
type Limits struct {
	FinancialEntries  int64
	Scripts           int64
	ObjectionHandlers int64
}

// DefaultFreeLimits returns the stock free plan ceilings
func DefaultFreeLimits() Limits {
	return Limits{
		FinancialEntries:  50,
		Scripts:           3,
		ObjectionHandlers: 5,
	}
}

// For returns the ceiling of a resource on a plan
func (l Limits) For(plan account.Plan, r Resource) int64 {
	if plan == account.PlanPro {
		return Unlimited
	}
	switch r {
	case ResourceFinancialEntries:
		return l.FinancialEntries
	case ResourceScripts:
		return l.Scripts
	case ResourceObjectionHandlers:
		return l.ObjectionHandlers
	}
	return Unlimited
}

// Check rejects an insert when the owned row count has reached the ceiling
func (l Limits) Check(plan account.Plan, r Resource, count int64) error {
	limit := l.For(plan, r)
	if limit == Unlimited || count < limit {
		return nil
	}
	return NewLimitExceededError(r, limit)
}

// NewLimitExceededError builds the user-facing plan limit error
func NewLimitExceededError(r Resource, limit int64) *shared.DomainError {
	return shared.NewDomainError(
		shared.CodePlanLimitExceeded,
		fmt.Sprintf("Upgrade to Pro to add more than %d %s.", limit, r.DisplayName()),
	)
}
