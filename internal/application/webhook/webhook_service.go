// Package webhook verifies and dispatches inbound identity and billing
// provider deliveries.
package webhook

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"strings"
	"time"

	appaccount "github.com/opstracker/backend/internal/application/account"
	"github.com/opstracker/backend/internal/domain/shared"
	"github.com/stripe/stripe-go/v81"
	stripewebhook "github.com/stripe/stripe-go/v81/webhook"
	svix "github.com/svix/svix-webhooks/go"
	"go.uber.org/zap"
)

// Sources label deliveries in logs, metrics and idempotency keys
const (
	SourceClerk        = "clerk"
	SourceClerkBilling = "clerk_billing"
	SourceStripe       = "stripe"
)

// Outcomes recorded per delivery
const (
	OutcomeProcessed = "processed"
	OutcomeIgnored   = "ignored"
	OutcomeDuplicate = "duplicate"
	OutcomeFailed    = "failed"
	OutcomeRejected  = "rejected"
)

var (
	// ErrInvalidSignature means the delivery failed verification
	ErrInvalidSignature = errors.New("webhook signature verification failed")
	// ErrSecretNotConfigured means the endpoint has no signing secret
	ErrSecretNotConfigured = errors.New("webhook secret not configured")
)

// Accounts applies identity and subscription changes
type Accounts interface {
	CreateUser(ctx context.Context, in appaccount.ProfileInput) (*appaccount.UserResponse, error)
	UpdateUser(ctx context.Context, in appaccount.ProfileInput) error
	DeleteUser(ctx context.Context, externalID string) error
	UpdateSubscription(ctx context.Context, in appaccount.SubscriptionInput) error
	CancelSubscription(ctx context.Context, subscriptionID string) error
}

// Recorder receives one outcome per delivery
type Recorder interface {
	WebhookEvent(source, eventType, outcome string)
}

// Result describes a verified delivery
type Result struct {
	Source    string
	EventID   string
	EventType string
	Outcome   string
}

// Config contains the secrets and dependencies of a Service
type Config struct {
	ClerkSecret        string
	ClerkBillingSecret string
	StripeSecret       string
	IdempotencyTTL     time.Duration

	Accounts Accounts
	Store    shared.IdempotencyStore
	Recorder Recorder
	Logger   *zap.Logger
}

// Service verifies deliveries, drops duplicates and dispatches the rest
type Service struct {
	clerk        *svix.Webhook
	clerkBilling *svix.Webhook
	stripeSecret string
	ttl          time.Duration

	accounts Accounts
	store    shared.IdempotencyStore
	recorder Recorder
	logger   *zap.Logger
}

// NewService creates a new webhook Service. An empty secret leaves its
// endpoint unconfigured; a malformed one is an error.
func NewService(cfg Config) (*Service, error) {
	clerk, err := newVerifier(cfg.ClerkSecret)
	if err != nil {
		return nil, fmt.Errorf("clerk webhook secret: %w", err)
	}
	billing, err := newVerifier(cfg.ClerkBillingSecret)
	if err != nil {
		return nil, fmt.Errorf("clerk billing webhook secret: %w", err)
	}
	log := cfg.Logger
	if log == nil {
		log = zap.NewNop()
	}
	ttl := cfg.IdempotencyTTL
	if ttl <= 0 {
		ttl = 72 * time.Hour
	}
	return &Service{
		clerk:        clerk,
		clerkBilling: billing,
		stripeSecret: cfg.StripeSecret,
		ttl:          ttl,
		accounts:     cfg.Accounts,
		store:        cfg.Store,
		recorder:     cfg.Recorder,
		logger:       log.Named("webhook"),
	}, nil
}

func newVerifier(secret string) (*svix.Webhook, error) {
	if strings.TrimSpace(secret) == "" {
		return nil, nil
	}
	return svix.NewWebhook(secret)
}

// ProcessClerk handles user.created, user.updated and user.deleted
func (s *Service) ProcessClerk(ctx context.Context, payload []byte, headers http.Header) (*Result, error) {
	evt, id, err := s.verifySvix(s.clerk, SourceClerk, payload, headers)
	if err != nil {
		return nil, err
	}
	return s.dispatch(ctx, SourceClerk, id, evt.Type, func() (bool, error) {
		switch evt.Type {
		case "user.created", "user.updated":
			var u clerkUser
			if err := json.Unmarshal(evt.Data, &u); err != nil {
				return false, fmt.Errorf("decode user: %w", err)
			}
			in := appaccount.ProfileInput{
				ExternalID: u.ID,
				FirstName:  deref(u.FirstName),
				LastName:   deref(u.LastName),
				Emails:     u.emails(),
			}
			if evt.Type == "user.created" {
				_, err := s.accounts.CreateUser(ctx, in)
				return true, err
			}
			return true, s.accounts.UpdateUser(ctx, in)
		case "user.deleted":
			var d clerkDeletedObject
			if err := json.Unmarshal(evt.Data, &d); err != nil {
				return false, fmt.Errorf("decode deleted user: %w", err)
			}
			return true, s.accounts.DeleteUser(ctx, d.ID)
		}
		return false, nil
	})
}

// ProcessClerkBilling handles subscription.created, .updated and .deleted
func (s *Service) ProcessClerkBilling(ctx context.Context, payload []byte, headers http.Header) (*Result, error) {
	evt, id, err := s.verifySvix(s.clerkBilling, SourceClerkBilling, payload, headers)
	if err != nil {
		return nil, err
	}
	return s.dispatch(ctx, SourceClerkBilling, id, evt.Type, func() (bool, error) {
		var sub clerkSubscription
		switch evt.Type {
		case "subscription.created", "subscription.updated":
			if err := json.Unmarshal(evt.Data, &sub); err != nil {
				return false, fmt.Errorf("decode subscription: %w", err)
			}
			return true, s.accounts.UpdateSubscription(ctx, appaccount.SubscriptionInput{
				ExternalID:     sub.UserID,
				SubscriptionID: sub.ID,
				PlanName:       sub.Plan.Name,
				EndsAt:         time.Unix(sub.CurrentPeriodEnd, 0).UTC(),
			})
		case "subscription.deleted":
			if err := json.Unmarshal(evt.Data, &sub); err != nil {
				return false, fmt.Errorf("decode subscription: %w", err)
			}
			return true, s.accounts.CancelSubscription(ctx, sub.ID)
		}
		return false, nil
	})
}

// ProcessStripe handles customer.subscription.* events whose metadata
// carries the external user id
func (s *Service) ProcessStripe(ctx context.Context, payload []byte, signature string) (*Result, error) {
	if s.stripeSecret == "" {
		return nil, ErrSecretNotConfigured
	}
	event, err := stripewebhook.ConstructEvent(payload, signature, s.stripeSecret)
	if err != nil {
		s.logger.Warn("stripe signature rejected", zap.Error(err))
		s.record(SourceStripe, "unknown", OutcomeRejected)
		return nil, fmt.Errorf("%w: %v", ErrInvalidSignature, err)
	}

	eventType := string(event.Type)
	return s.dispatch(ctx, SourceStripe, event.ID, eventType, func() (bool, error) {
		switch event.Type {
		case "customer.subscription.created", "customer.subscription.updated":
			var sub stripe.Subscription
			if err := json.Unmarshal(event.Data.Raw, &sub); err != nil {
				return false, fmt.Errorf("decode subscription: %w", err)
			}
			userID := sub.Metadata["user_id"]
			if userID == "" {
				s.logger.Warn("stripe subscription without user_id metadata", zap.String("subscription_id", sub.ID))
				return false, nil
			}
			return true, s.accounts.UpdateSubscription(ctx, appaccount.SubscriptionInput{
				ExternalID:     userID,
				SubscriptionID: sub.ID,
				PlanName:       stripePlanName(&sub),
				EndsAt:         time.Unix(sub.CurrentPeriodEnd, 0).UTC(),
			})
		case "customer.subscription.deleted":
			var sub stripe.Subscription
			if err := json.Unmarshal(event.Data.Raw, &sub); err != nil {
				return false, fmt.Errorf("decode subscription: %w", err)
			}
			return true, s.accounts.CancelSubscription(ctx, sub.ID)
		}
		return false, nil
	})
}

// stripePlanName prefers an explicit plan metadata entry, then the first
// item's price nickname
func stripePlanName(sub *stripe.Subscription) string {
	if name := sub.Metadata["plan"]; name != "" {
		return name
	}
	if sub.Items != nil {
		for _, item := range sub.Items.Data {
			if item.Price != nil && item.Price.Nickname != "" {
				return item.Price.Nickname
			}
		}
	}
	return ""
}

func (s *Service) verifySvix(wh *svix.Webhook, source string, payload []byte, headers http.Header) (*envelope, string, error) {
	if wh == nil {
		s.logger.Error("webhook secret not configured", zap.String("source", source))
		return nil, "", ErrSecretNotConfigured
	}
	if err := wh.Verify(payload, headers); err != nil {
		s.logger.Warn("svix signature rejected", zap.String("source", source), zap.Error(err))
		s.record(source, "unknown", OutcomeRejected)
		return nil, "", fmt.Errorf("%w: %v", ErrInvalidSignature, err)
	}
	var evt envelope
	if err := json.Unmarshal(payload, &evt); err != nil {
		s.record(source, "unknown", OutcomeRejected)
		return nil, "", fmt.Errorf("%w: malformed payload: %v", ErrInvalidSignature, err)
	}
	return &evt, headers.Get("svix-id"), nil
}

// dispatch claims the delivery id, runs handle and records the outcome.
// handle reports whether the event type was one it acts on. A failed
// delivery releases its claim so a redelivery is processed again.
func (s *Service) dispatch(ctx context.Context, source, id, eventType string, handle func() (bool, error)) (*Result, error) {
	result := &Result{Source: source, EventID: id, EventType: eventType}
	key := source + ":" + id

	if s.store != nil && id != "" {
		first, err := s.store.MarkProcessed(ctx, key, s.ttl)
		if err != nil {
			s.logger.Warn("idempotency store unavailable, processing anyway", zap.Error(err))
		} else if !first {
			s.logger.Info("duplicate delivery ignored",
				zap.String("source", source),
				zap.String("event_id", id),
				zap.String("event_type", eventType))
			result.Outcome = OutcomeDuplicate
			s.record(source, eventType, result.Outcome)
			return result, nil
		}
	}

	handled, err := handle()
	switch {
	case err != nil:
		result.Outcome = OutcomeFailed
		s.logger.Error("webhook processing failed",
			zap.String("source", source),
			zap.String("event_id", id),
			zap.String("event_type", eventType),
			zap.Error(err))
		if s.store != nil && id != "" {
			if ferr := s.store.Forget(ctx, key); ferr != nil {
				s.logger.Warn("failed to release idempotency key", zap.Error(ferr))
			}
		}
	case handled:
		result.Outcome = OutcomeProcessed
		s.logger.Info("webhook processed",
			zap.String("source", source),
			zap.String("event_id", id),
			zap.String("event_type", eventType))
	default:
		result.Outcome = OutcomeIgnored
		s.logger.Debug("webhook event type not handled",
			zap.String("source", source),
			zap.String("event_type", eventType))
	}
	s.record(source, eventType, result.Outcome)
	return result, err
}

func (s *Service) record(source, eventType, outcome string) {
	if s.recorder != nil {
		s.recorder.WebhookEvent(source, eventType, outcome)
	}
}
