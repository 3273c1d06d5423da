// Package dashboard aggregates financial entries and daily activity into the
// read models behind the dashboard screens.
package dashboard

import (
	"context"

	"github.com/google/uuid"
	appbusiness "github.com/opstracker/backend/internal/application/business"
	"github.com/opstracker/backend/internal/domain/business"
	"github.com/opstracker/backend/internal/domain/dailylog"
	"github.com/opstracker/backend/internal/domain/finance"
	"github.com/opstracker/backend/internal/domain/shared"
	"golang.org/x/sync/errgroup"
)

// Service computes dashboard aggregates
type Service struct {
	entries finance.EntryRepository
	logs    dailylog.Repository
	goals   business.GoalRepository
}

// NewService creates a new dashboard Service
func NewService(entries finance.EntryRepository, logs dailylog.Repository, goals business.GoalRepository) *Service {
	return &Service{entries: entries, logs: logs, goals: goals}
}

// GetDashboard aggregates start <= date <= end. It returns nil without a
// caller. The three reads are independent and run concurrently; child rows
// are fetched with one query per child table.
func (s *Service) GetDashboard(ctx context.Context, userID, start, end string) (*DashboardResponse, error) {
	if shared.RequireCaller(userID) != nil {
		return nil, nil
	}
	r, err := shared.NewDateRange(start, end)
	if err != nil {
		return nil, err
	}

	var (
		entries []*finance.Entry
		counts  dailylog.ActivityCounts
		goals   []*business.Goal
	)
	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		var err error
		entries, err = s.entries.FindInRange(gctx, userID, r.Start, r.End)
		return err
	})
	g.Go(func() error {
		var err error
		counts, err = s.activity(gctx, userID, r)
		return err
	})
	g.Go(func() error {
		var err error
		goals, err = s.goals.FindByUser(gctx, userID)
		return err
	})
	if err := g.Wait(); err != nil {
		return nil, err
	}

	totals := finance.Summarize(entries)
	return &DashboardResponse{
		Start: r.Start,
		End:   r.End,
		WeeklyStats: WeeklyStats{
			TotalRevenue:    totals.Revenue,
			TotalExpenses:   totals.Expenses,
			NetProfit:       totals.NetProfit,
			ProfitMargin:    totals.Margin.Round(2),
			TotalApproaches: counts.Approaches,
			TotalJobs:       counts.Jobs,
			ConversionRate:  finance.ConversionRate(counts.Jobs, counts.Approaches).Round(2),
		},
		Goals: appbusiness.ToGoalResponses(goals),
	}, nil
}

// GetMonthlyGrowth buckets every entry of the caller by calendar month
func (s *Service) GetMonthlyGrowth(ctx context.Context, userID string) ([]MonthBucketResponse, error) {
	if shared.RequireCaller(userID) != nil {
		return nil, nil
	}
	entries, err := s.entries.FindAll(ctx, userID)
	if err != nil {
		return nil, err
	}
	return ToMonthBucketResponses(finance.MonthlyGrowth(entries)), nil
}

func (s *Service) activity(ctx context.Context, userID string, r shared.DateRange) (dailylog.ActivityCounts, error) {
	logs, err := s.logs.FindInRange(ctx, userID, r.Start, r.End)
	if err != nil || len(logs) == 0 {
		return dailylog.ActivityCounts{}, err
	}
	ids := make([]uuid.UUID, 0, len(logs))
	for _, l := range logs {
		ids = append(ids, l.ID)
	}

	var (
		outreach []*dailylog.OutreachEntry
		jobs     []*dailylog.CompletedJob
	)
	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		var err error
		outreach, err = s.logs.FindOutreachByLogIDs(gctx, userID, ids)
		return err
	})
	g.Go(func() error {
		var err error
		jobs, err = s.logs.FindJobsByLogIDs(gctx, userID, ids)
		return err
	})
	if err := g.Wait(); err != nil {
		return dailylog.ActivityCounts{}, err
	}
	return dailylog.CountActivity(ids, outreach, jobs), nil
}
