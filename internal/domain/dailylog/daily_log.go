package dailylog

import (
	"strings"

	"github.com/google/uuid"
	"github.com/opstracker/backend/internal/domain/shared"
	"github.com/shopspring/decimal"
)

// PriorityCount is the fixed number of tomorrow priorities on a log
const PriorityCount = 3

// FailureData is the end-of-day reflection
type FailureData struct {
	What   string `json:"what"`
	Why    string `json:"why"`
	Adjust string `json:"adjust"`
}

// DailyLog is the single journal row for one user and one calendar date
type DailyLog struct {
	shared.OwnedEntity
	Date               string
	MainGoal           string
	RevenueToday       decimal.Decimal
	ExpensesToday      decimal.Decimal
	Failure            FailureData
	TomorrowPriorities []string
}

// NewDailyLog creates an empty log for a date
func NewDailyLog(userID, date, mainGoal string) (*DailyLog, error) {
	if _, err := shared.ParseDay(date); err != nil {
		return nil, err
	}
	return &DailyLog{
		OwnedEntity:        shared.NewOwnedEntity(userID),
		Date:               date,
		MainGoal:           strings.TrimSpace(mainGoal),
		RevenueToday:       decimal.Zero,
		ExpensesToday:      decimal.Zero,
		TomorrowPriorities: make([]string, PriorityCount),
	}, nil
}

// DetailsPatch holds optional edits; nil fields are left alone
type DetailsPatch struct {
	MainGoal           *string
	Failure            *FailureData
	TomorrowPriorities []string
}

// ApplyDetails applies a partial update of the free-text fields
func (l *DailyLog) ApplyDetails(p DetailsPatch) error {
	if p.TomorrowPriorities != nil && len(p.TomorrowPriorities) > PriorityCount {
		return shared.NewDomainError("INVALID_PRIORITIES", "A daily log holds at most 3 priorities")
	}
	if p.MainGoal != nil {
		l.MainGoal = strings.TrimSpace(*p.MainGoal)
	}
	if p.Failure != nil {
		l.Failure = *p.Failure
	}
	if p.TomorrowPriorities != nil {
		priorities := make([]string, PriorityCount)
		copy(priorities, p.TomorrowPriorities)
		l.TomorrowPriorities = priorities
	}
	l.Touch()
	return nil
}

// SetExpenses replaces the day's expense total
func (l *DailyLog) SetExpenses(amount decimal.Decimal) error {
	if amount.IsNegative() {
		return shared.NewDomainError("INVALID_AMOUNT", "Expenses cannot be negative")
	}
	if err := shared.ValidateMoney("Expenses", amount); err != nil {
		return err
	}
	l.ExpensesToday = amount
	l.Touch()
	return nil
}

// RecordPaidJob adds a paid job's amount to the day's revenue and returns
// the amount added, zero for an unpaid job
func (l *DailyLog) RecordPaidJob(job *CompletedJob) (decimal.Decimal, error) {
	if !job.IsPaid {
		return decimal.Zero, nil
	}
	revenue := l.RevenueToday.Add(job.AmountCharged)
	if err := shared.ValidateMoney("Revenue today", revenue); err != nil {
		return decimal.Zero, err
	}
	l.RevenueToday = revenue
	l.Touch()
	return job.AmountCharged, nil
}

// Entry is the log together with its child rows
type Entry struct {
	Log          *DailyLog
	Appointments []*Appointment
	Outreach     []*OutreachEntry
	Jobs         []*CompletedJob
}

// ActivityCounts is the per-range outreach/job tally used by the dashboard
type ActivityCounts struct {
	Approaches int
	Jobs       int
}

// CountActivity tallies children belonging to the given logs. Children whose
// log is not in the set are ignored.
func CountActivity(logIDs []uuid.UUID, outreach []*OutreachEntry, jobs []*CompletedJob) ActivityCounts {
	inRange := make(map[uuid.UUID]struct{}, len(logIDs))
	for _, id := range logIDs {
		inRange[id] = struct{}{}
	}
	var c ActivityCounts
	for _, o := range outreach {
		if _, ok := inRange[o.DailyLogID]; ok {
			c.Approaches++
		}
	}
	for _, j := range jobs {
		if _, ok := inRange[j.DailyLogID]; ok {
			c.Jobs++
		}
	}
	return c
}
