package account

import (
	"time"

	"github.com/opstracker/backend/internal/domain/account"
	"github.com/opstracker/backend/internal/domain/billing"
)

// ProfileInput is the identity provider's view of a user
type ProfileInput struct {
	ExternalID string
	FirstName  string
	LastName   string
	Emails     []string
}

// PrimaryEmail returns the first address, or empty when there is none
func (p ProfileInput) PrimaryEmail() string {
	if len(p.Emails) == 0 {
		return ""
	}
	return p.Emails[0]
}

// SubscriptionInput carries a billing provider subscription change
type SubscriptionInput struct {
	ExternalID     string
	SubscriptionID string
	PlanName       string
	EndsAt         time.Time
}

// UserResponse represents a user in API responses
type UserResponse struct {
	ExternalID         string     `json:"id"`
	Name               string     `json:"name"`
	Email              string     `json:"email"`
	Plan               string     `json:"plan"`
	SubscriptionEndsAt *time.Time `json:"subscription_ends_at,omitempty"`
}

// SubscriptionStatus is the caller's plan with its ceilings and current usage.
// A limit of -1 means unlimited.
type SubscriptionStatus struct {
	Plan   string                     `json:"plan"`
	EndsAt *time.Time                 `json:"ends_at,omitempty"`
	Limits map[billing.Resource]int64 `json:"limits"`
	Usage  map[billing.Resource]int64 `json:"usage"`
}

// ToUserResponse converts a domain user
func ToUserResponse(u *account.User) UserResponse {
	return UserResponse{
		ExternalID:         u.ExternalID,
		Name:               u.Name,
		Email:              u.Email,
		Plan:               string(u.Plan),
		SubscriptionEndsAt: u.SubscriptionEndsAt,
	}
}
