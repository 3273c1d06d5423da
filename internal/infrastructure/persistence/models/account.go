package models

import (
	"time"

	"github.com/opstracker/backend/internal/domain/account"
	"github.com/opstracker/backend/internal/domain/shared"
)

// UserModel is the persistence model for the User aggregate
type UserModel struct {
	BaseModel
	ExternalID         string  `gorm:"type:varchar(255);not null;uniqueIndex"`
	Name               string  `gorm:"type:varchar(255);not null"`
	Email              string  `gorm:"type:varchar(255);not null"`
	Plan               string  `gorm:"type:varchar(20);not null;default:'free'"`
	SubscriptionID     *string `gorm:"type:varchar(255);index"`
	SubscriptionEndsAt *time.Time
}

// TableName returns the table name for GORM
func (UserModel) TableName() string {
	return "users"
}

// ToDomain converts the model to a domain User
func (m *UserModel) ToDomain() *account.User {
	return &account.User{
		BaseAggregateRoot: shared.BaseAggregateRoot{
			BaseEntity: shared.BaseEntity{ID: m.ID, CreatedAt: m.CreatedAt, UpdatedAt: m.UpdatedAt},
		},
		ExternalID:         m.ExternalID,
		Name:               m.Name,
		Email:              m.Email,
		Plan:               account.Plan(m.Plan),
		SubscriptionID:     m.SubscriptionID,
		SubscriptionEndsAt: m.SubscriptionEndsAt,
	}
}

// UserModelFromDomain converts a domain User to its model
func UserModelFromDomain(u *account.User) *UserModel {
	return &UserModel{
		BaseModel:          BaseModel{ID: u.ID, CreatedAt: u.CreatedAt, UpdatedAt: u.UpdatedAt},
		ExternalID:         u.ExternalID,
		Name:               u.Name,
		Email:              u.Email,
		Plan:               string(u.Plan),
		SubscriptionID:     u.SubscriptionID,
		SubscriptionEndsAt: u.SubscriptionEndsAt,
	}
}
