package account

import "context"

// UserRepository defines persistence for users
type UserRepository interface {
	// FindByExternalID finds a user by identity-provider subject
	FindByExternalID(ctx context.Context, externalID string) (*User, error)

	// LockByExternalID finds a user and locks its row for the rest of the
	// caller's transaction
	LockByExternalID(ctx context.Context, externalID string) (*User, error)

	// FindBySubscriptionID finds the user holding a billing subscription
	FindBySubscriptionID(ctx context.Context, subscriptionID string) (*User, error)

	// CreateWithSeed inserts the user and its starter data in one transaction
	CreateWithSeed(ctx context.Context, user *User, seed *Seed) error

	// Save updates an existing user
	Save(ctx context.Context, user *User) error
}
