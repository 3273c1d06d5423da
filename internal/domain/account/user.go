package account

import (
	"strings"
	"time"

	"github.com/opstracker/backend/internal/domain/shared"
)

// Plan is a subscription tier
type Plan string

const (
	PlanFree Plan = "free"
	PlanPro  Plan = "pro"
)

// IsValid reports whether the plan is a known tier
func (p Plan) IsValid() bool {
	return p == PlanFree || p == PlanPro
}

// PlanFromName maps a billing provider plan name onto a tier. Any name that
// contains "pro" (case-insensitive) is treated as pro.
func PlanFromName(name string) Plan {
	if strings.Contains(strings.ToLower(name), "pro") {
		return PlanPro
	}
	return PlanFree
}

// NoEmail is stored when the identity provider reports no address
const NoEmail = "No Email"

// User is the local record of an identity-provider account.
// ExternalID is the provider subject and is the owner key on every user-scoped row.
type User struct {
	shared.BaseAggregateRoot
	ExternalID         string
	Name               string
	Email              string
	Plan               Plan
	SubscriptionEndsAt *time.Time
	SubscriptionID     *string
}

// NewUser creates a free-plan user
func NewUser(externalID, name, email string) (*User, error) {
	if strings.TrimSpace(externalID) == "" {
		return nil, shared.NewDomainError("INVALID_EXTERNAL_ID", "External user ID cannot be empty")
	}
	if strings.TrimSpace(email) == "" {
		email = NoEmail
	}
	u := &User{
		BaseAggregateRoot: shared.NewBaseAggregateRoot(),
		ExternalID:        externalID,
		Name:              strings.TrimSpace(name),
		Email:             email,
		Plan:              PlanFree,
	}
	u.AddDomainEvent(NewUserCreatedEvent(u))
	return u, nil
}

// DisplayName joins provider first/last names the way profiles show them
func DisplayName(first, last string) string {
	return first + " " + last
}

// UpdateProfile replaces name and email
func (u *User) UpdateProfile(name, email string) {
	if strings.TrimSpace(email) == "" {
		email = NoEmail
	}
	u.Name = strings.TrimSpace(name)
	u.Email = email
	u.Touch()
}

// ApplySubscription records an active subscription
func (u *User) ApplySubscription(subscriptionID string, plan Plan, endsAt time.Time) {
	u.Plan = plan
	u.SubscriptionID = &subscriptionID
	u.SubscriptionEndsAt = &endsAt
	u.Touch()
}

// CancelSubscription drops the user back to the free plan
func (u *User) CancelSubscription() {
	u.Plan = PlanFree
	u.SubscriptionID = nil
	u.SubscriptionEndsAt = nil
	u.Touch()
}

// IsPro reports whether plan limits are lifted
func (u *User) IsPro() bool {
	return u.Plan == PlanPro
}
