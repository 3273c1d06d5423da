// Package account handles identity provider lifecycle events and
// subscription state for users.
package account

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/google/uuid"
	"github.com/opstracker/backend/internal/domain/account"
	"github.com/opstracker/backend/internal/domain/billing"
	"github.com/opstracker/backend/internal/domain/shared"
	"go.uber.org/zap"
)

// PlanUsage reports plan ceilings and current usage
type PlanUsage interface {
	LimitsFor(plan account.Plan) map[billing.Resource]int64
	Usage(ctx context.Context, userID string) (map[billing.Resource]int64, error)
}

// Service handles user lifecycle and subscription operations
type Service struct {
	users    account.UserRepository
	usage    PlanUsage
	eventBus shared.EventPublisher
	logger   *zap.Logger
}

// NewService creates a new account Service
func NewService(users account.UserRepository, usage PlanUsage, eventBus shared.EventPublisher, logger *zap.Logger) *Service {
	return &Service{
		users:    users,
		usage:    usage,
		eventBus: eventBus,
		logger:   logger,
	}
}

// CreateUser creates the user with starter goals, tools and business profile.
// A repeated call for the same external id changes nothing.
func (s *Service) CreateUser(ctx context.Context, in ProfileInput) (*UserResponse, error) {
	user, err := account.NewUser(in.ExternalID, account.DisplayName(in.FirstName, in.LastName), in.PrimaryEmail())
	if err != nil {
		return nil, err
	}

	if err := s.users.CreateWithSeed(ctx, user, account.NewSeed(user)); err != nil {
		if errors.Is(err, shared.ErrAlreadyExists) {
			s.logger.Info("user already exists, ignoring create", zap.String("user_id", in.ExternalID))
			existing, ferr := s.users.FindByExternalID(ctx, in.ExternalID)
			if ferr != nil {
				return nil, ferr
			}
			resp := ToUserResponse(existing)
			return &resp, nil
		}
		return nil, fmt.Errorf("failed to create user: %w", err)
	}

	s.publish(ctx, user.PullDomainEvents()...)

	s.logger.Info("user created", zap.String("user_id", user.ExternalID))
	resp := ToUserResponse(user)
	return &resp, nil
}

// UpdateUser replaces the user's name and email
func (s *Service) UpdateUser(ctx context.Context, in ProfileInput) error {
	user, err := s.users.FindByExternalID(ctx, in.ExternalID)
	if err != nil {
		return err
	}
	user.UpdateProfile(account.DisplayName(in.FirstName, in.LastName), in.PrimaryEmail())
	if err := s.users.Save(ctx, user); err != nil {
		return fmt.Errorf("failed to update user: %w", err)
	}
	return nil
}

// DeleteUser announces the account deletion; the deletion saga subscribes
// to the event and removes the user's rows.
func (s *Service) DeleteUser(ctx context.Context, externalID string) error {
	if strings.TrimSpace(externalID) == "" {
		return shared.NewDomainError("INVALID_EXTERNAL_ID", "External user ID cannot be empty")
	}

	aggregateID := uuid.Nil
	if user, err := s.users.FindByExternalID(ctx, externalID); err == nil {
		aggregateID = user.ID
	} else if !errors.Is(err, shared.ErrNotFound) {
		return err
	}

	s.logger.Info("user deletion requested", zap.String("user_id", externalID))
	return s.eventBus.Publish(ctx, account.NewUserDeletedEvent(aggregateID, externalID))
}

// UpdateSubscription applies a subscription created or updated event. A
// plan name containing "pro" grants the pro plan. Unknown users are ignored.
func (s *Service) UpdateSubscription(ctx context.Context, in SubscriptionInput) error {
	user, err := s.users.FindByExternalID(ctx, in.ExternalID)
	if err != nil {
		if errors.Is(err, shared.ErrNotFound) {
			s.logger.Warn("subscription for unknown user",
				zap.String("user_id", in.ExternalID),
				zap.String("subscription_id", in.SubscriptionID))
			return nil
		}
		return err
	}

	user.ApplySubscription(in.SubscriptionID, account.PlanFromName(in.PlanName), in.EndsAt)
	if err := s.users.Save(ctx, user); err != nil {
		return fmt.Errorf("failed to save subscription: %w", err)
	}

	s.logger.Info("subscription updated",
		zap.String("user_id", user.ExternalID),
		zap.String("plan", string(user.Plan)))
	return nil
}

// CancelSubscription drops the subscription's holder back to free
func (s *Service) CancelSubscription(ctx context.Context, subscriptionID string) error {
	user, err := s.users.FindBySubscriptionID(ctx, subscriptionID)
	if err != nil {
		if errors.Is(err, shared.ErrNotFound) {
			s.logger.Warn("cancel for unknown subscription", zap.String("subscription_id", subscriptionID))
			return nil
		}
		return err
	}

	user.CancelSubscription()
	if err := s.users.Save(ctx, user); err != nil {
		return fmt.Errorf("failed to cancel subscription: %w", err)
	}
	s.logger.Info("subscription cancelled", zap.String("user_id", user.ExternalID))
	return nil
}

// GetSubscriptionStatus returns the caller's plan, ceilings and usage, or
// nil when there is no caller
func (s *Service) GetSubscriptionStatus(ctx context.Context, userID string) (*SubscriptionStatus, error) {
	if shared.RequireCaller(userID) != nil {
		return nil, nil
	}
	user, err := s.users.FindByExternalID(ctx, userID)
	if err != nil {
		return nil, err
	}
	usage, err := s.usage.Usage(ctx, userID)
	if err != nil {
		return nil, err
	}
	return &SubscriptionStatus{
		Plan:   string(user.Plan),
		EndsAt: user.SubscriptionEndsAt,
		Limits: s.usage.LimitsFor(user.Plan),
		Usage:  usage,
	}, nil
}

func (s *Service) publish(ctx context.Context, events ...shared.DomainEvent) {
	if s.eventBus == nil || len(events) == 0 {
		return
	}
	if err := s.eventBus.Publish(ctx, events...); err != nil {
		s.logger.Warn("failed to publish events", zap.Error(err))
	}
}
