package billing

import (
	"context"
	"errors"
	"fmt"

	"github.com/opstracker/backend/internal/domain/account"
	domain "github.com/opstracker/backend/internal/domain/billing"
	"github.com/opstracker/backend/internal/domain/shared"
	"go.uber.org/zap"
)

// RowCounter counts the rows one user owns in a gated table
type RowCounter interface {
	CountByUser(ctx context.Context, userID string) (int64, error)
}

// RejectionRecorder is told about every insert a ceiling blocked
type RejectionRecorder interface {
	PlanGateRejected(resource string)
}

// Transactor runs fn in one transaction carried by the context
type Transactor interface {
	WithinTransaction(ctx context.Context, fn func(ctx context.Context) error) error
}

// PlanGate checks free plan ceilings before inserts
type PlanGate struct {
	tx       Transactor
	users    account.UserRepository
	counters map[domain.Resource]RowCounter
	limits   domain.Limits
	recorder RejectionRecorder
	logger   *zap.Logger
}

// PlanGateConfig contains the dependencies of a PlanGate
type PlanGateConfig struct {
	Tx       Transactor
	Users    account.UserRepository
	Counters map[domain.Resource]RowCounter
	Limits   domain.Limits
	Recorder RejectionRecorder
	Logger   *zap.Logger
}

// NewPlanGate creates a new PlanGate
func NewPlanGate(cfg PlanGateConfig) *PlanGate {
	log := cfg.Logger
	if log == nil {
		log = zap.NewNop()
	}
	return &PlanGate{
		tx:       cfg.Tx,
		users:    cfg.Users,
		counters: cfg.Counters,
		limits:   cfg.Limits,
		recorder: cfg.Recorder,
		logger:   log,
	}
}

// Admit runs insert once the resource's ceiling allows another row. The
// user row stays locked from the count until insert returns, so concurrent
// inserts for one user are counted one at a time. Pro users always pass.
func (g *PlanGate) Admit(ctx context.Context, userID string, r domain.Resource, insert func(ctx context.Context) error) error {
	if err := shared.RequireCaller(userID); err != nil {
		return err
	}
	run := func(ctx context.Context) error {
		user, err := g.users.LockByExternalID(ctx, userID)
		if err != nil {
			return err
		}
		if err := g.check(ctx, user, r); err != nil {
			return err
		}
		return insert(ctx)
	}
	if g.tx == nil {
		return run(ctx)
	}
	return g.tx.WithinTransaction(ctx, run)
}

// check returns a PLAN_LIMIT_EXCEEDED error when a free user already owns
// as many rows of the resource as the ceiling allows
func (g *PlanGate) check(ctx context.Context, user *account.User, r domain.Resource) error {
	if user.IsPro() {
		return nil
	}
	count, err := g.count(ctx, user.ExternalID, r)
	if err != nil {
		return err
	}
	if err := g.limits.Check(user.Plan, r, count); err != nil {
		g.logger.Info("plan limit reached",
			zap.String("user_id", user.ExternalID),
			zap.String("resource", string(r)),
			zap.Int64("count", count),
		)
		if g.recorder != nil {
			g.recorder.PlanGateRejected(string(r))
		}
		return err
	}
	return nil
}

// LimitsFor returns the ceilings that apply to a plan, Unlimited for pro
func (g *PlanGate) LimitsFor(plan account.Plan) map[domain.Resource]int64 {
	out := make(map[domain.Resource]int64, len(domain.AllResources()))
	for _, r := range domain.AllResources() {
		out[r] = g.limits.For(plan, r)
	}
	return out
}

// Usage returns the current row count of every gated resource
func (g *PlanGate) Usage(ctx context.Context, userID string) (map[domain.Resource]int64, error) {
	out := make(map[domain.Resource]int64, len(domain.AllResources()))
	for _, r := range domain.AllResources() {
		n, err := g.count(ctx, userID, r)
		if err != nil {
			return nil, err
		}
		out[r] = n
	}
	return out, nil
}

func (g *PlanGate) count(ctx context.Context, userID string, r domain.Resource) (int64, error) {
	counter, ok := g.counters[r]
	if !ok {
		return 0, fmt.Errorf("no counter registered for %s", r)
	}
	n, err := counter.CountByUser(ctx, userID)
	if err != nil {
		return 0, fmt.Errorf("failed to count %s: %w", r, err)
	}
	return n, nil
}

// IsLimitExceeded reports whether err is a plan ceiling rejection
func IsLimitExceeded(err error) bool {
	var de *shared.DomainError
	return errors.As(err, &de) && de.Code == shared.CodePlanLimitExceeded
}
