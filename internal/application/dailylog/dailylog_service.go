package dailylog

import (
	"context"
	"errors"

	"github.com/google/uuid"
	"github.com/opstracker/backend/internal/domain/dailylog"
	"github.com/opstracker/backend/internal/domain/shared"
	"github.com/shopspring/decimal"
	"go.uber.org/zap"
)

// Service handles daily logs and their appointments, outreach and jobs
type Service struct {
	logs   dailylog.Repository
	logger *zap.Logger
}

// NewService creates a new dailylog Service
func NewService(logs dailylog.Repository, logger *zap.Logger) *Service {
	return &Service{logs: logs, logger: logger}
}

// CreateDailyLog opens the caller's log for a date. When one exists it is
// returned unchanged.
func (s *Service) CreateDailyLog(ctx context.Context, userID string, req CreateDailyLogRequest) (*DailyLogResponse, error) {
	if err := shared.RequireCaller(userID); err != nil {
		return nil, err
	}
	existing, err := s.logs.FindByDate(ctx, userID, req.Date)
	if err == nil {
		resp := ToDailyLogResponse(existing)
		return &resp, nil
	}
	if !errors.Is(err, shared.ErrNotFound) {
		return nil, err
	}

	log, err := dailylog.NewDailyLog(userID, req.Date, req.MainGoal)
	if err != nil {
		return nil, err
	}
	stored, err := s.logs.Create(ctx, log)
	if err != nil {
		return nil, err
	}
	resp := ToDailyLogResponse(stored)
	return &resp, nil
}

// GetForDate returns the caller's log for a date with its children, or nil
func (s *Service) GetForDate(ctx context.Context, userID, date string) (*DailyLogDetailResponse, error) {
	if shared.RequireCaller(userID) != nil {
		return nil, nil
	}
	if _, err := shared.ParseDay(date); err != nil {
		return nil, err
	}
	log, err := s.logs.FindByDate(ctx, userID, date)
	if err != nil {
		if errors.Is(err, shared.ErrNotFound) {
			return nil, nil
		}
		return nil, err
	}

	entries, err := s.withChildren(ctx, userID, []*dailylog.DailyLog{log})
	if err != nil {
		return nil, err
	}
	return ToDetailResponse(entries[0]), nil
}

// ListLogs returns the caller's logs with start <= date <= end, children
// included, fetched with one query per child table
func (s *Service) ListLogs(ctx context.Context, userID, start, end string) ([]*DailyLogDetailResponse, error) {
	if shared.RequireCaller(userID) != nil {
		return nil, nil
	}
	r, err := shared.NewDateRange(start, end)
	if err != nil {
		return nil, err
	}
	logs, err := s.logs.FindInRange(ctx, userID, r.Start, r.End)
	if err != nil {
		return nil, err
	}
	entries, err := s.withChildren(ctx, userID, logs)
	if err != nil {
		return nil, err
	}
	out := make([]*DailyLogDetailResponse, 0, len(entries))
	for _, e := range entries {
		out = append(out, ToDetailResponse(e))
	}
	return out, nil
}

// UpdateLogDetails patches main goal, failure reflection and priorities
func (s *Service) UpdateLogDetails(ctx context.Context, userID string, id uuid.UUID, req UpdateLogDetailsRequest) (*DailyLogResponse, error) {
	log, err := s.ownedLog(ctx, userID, id)
	if err != nil {
		return nil, err
	}

	patch := dailylog.DetailsPatch{
		MainGoal:           req.MainGoal,
		TomorrowPriorities: req.TomorrowPriorities,
	}
	if req.Failure != nil {
		patch.Failure = &dailylog.FailureData{What: req.Failure.What, Why: req.Failure.Why, Adjust: req.Failure.Adjust}
	}
	if err := log.ApplyDetails(patch); err != nil {
		return nil, err
	}
	if err := s.logs.Save(ctx, log); err != nil {
		return nil, err
	}
	resp := ToDailyLogResponse(log)
	return &resp, nil
}

// UpdateExpenses replaces the day's expense total
func (s *Service) UpdateExpenses(ctx context.Context, userID string, id uuid.UUID, amount decimal.Decimal) (*DailyLogResponse, error) {
	log, err := s.ownedLog(ctx, userID, id)
	if err != nil {
		return nil, err
	}
	if err := log.SetExpenses(amount); err != nil {
		return nil, err
	}
	if err := s.logs.Save(ctx, log); err != nil {
		return nil, err
	}
	resp := ToDailyLogResponse(log)
	return &resp, nil
}

// AddAppointment adds an appointment to one of the caller's logs
func (s *Service) AddAppointment(ctx context.Context, userID string, logID uuid.UUID, req AddAppointmentRequest) (*AppointmentResponse, error) {
	log, err := s.ownedLog(ctx, userID, logID)
	if err != nil {
		return nil, err
	}
	a := dailylog.NewAppointment(log, req.Time, req.Customer, req.Service)
	if err := s.logs.SaveAppointment(ctx, a); err != nil {
		return nil, err
	}
	resp := ToAppointmentResponse(a)
	return &resp, nil
}

// AddOutreach adds an outreach entry to one of the caller's logs
func (s *Service) AddOutreach(ctx context.Context, userID string, logID uuid.UUID, req AddOutreachRequest) (*OutreachResponse, error) {
	log, err := s.ownedLog(ctx, userID, logID)
	if err != nil {
		return nil, err
	}
	o, err := dailylog.NewOutreachEntry(log, req.Time, req.Method, req.Person, dailylog.OutreachResponse(req.Response), req.FollowUpNeeded)
	if err != nil {
		return nil, err
	}
	if err := s.logs.SaveOutreach(ctx, o); err != nil {
		return nil, err
	}
	resp := ToOutreachResponse(o)
	return &resp, nil
}

// AddCompletedJob records a job. A paid job's amount is added to the log's
// revenue in the same transaction as the insert.
func (s *Service) AddCompletedJob(ctx context.Context, userID string, logID uuid.UUID, req CompletedJobRequest) (*CompletedJobResponse, error) {
	log, err := s.ownedLog(ctx, userID, logID)
	if err != nil {
		return nil, err
	}
	job, err := dailylog.NewCompletedJob(log, req.details())
	if err != nil {
		return nil, err
	}

	delta, err := log.RecordPaidJob(job)
	if err != nil {
		return nil, err
	}
	if err := s.logs.AddJob(ctx, job, delta); err != nil {
		return nil, err
	}
	resp := ToCompletedJobResponse(job)
	return &resp, nil
}

// UpdateCompletedJob replaces a job's fields. The log's revenue keeps
// whatever the job contributed when it was created.
func (s *Service) UpdateCompletedJob(ctx context.Context, userID string, id uuid.UUID, req CompletedJobRequest) (*CompletedJobResponse, error) {
	if err := shared.RequireCaller(userID); err != nil {
		return nil, err
	}
	job, err := s.logs.FindJobByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if err := shared.EnsureOwner(job.OwnerID(), userID); err != nil {
		return nil, err
	}
	if err := job.Apply(req.details()); err != nil {
		return nil, err
	}
	if err := s.logs.SaveJob(ctx, job); err != nil {
		return nil, err
	}
	resp := ToCompletedJobResponse(job)
	return &resp, nil
}

// DeleteAppointment removes one of the caller's appointments
func (s *Service) DeleteAppointment(ctx context.Context, userID string, id uuid.UUID) error {
	if err := shared.RequireCaller(userID); err != nil {
		return err
	}
	a, err := s.logs.FindAppointmentByID(ctx, id)
	if err != nil {
		return err
	}
	if err := shared.EnsureOwner(a.OwnerID(), userID); err != nil {
		return err
	}
	return s.logs.DeleteAppointment(ctx, id)
}

// DeleteOutreach removes one of the caller's outreach entries
func (s *Service) DeleteOutreach(ctx context.Context, userID string, id uuid.UUID) error {
	if err := shared.RequireCaller(userID); err != nil {
		return err
	}
	o, err := s.logs.FindOutreachByID(ctx, id)
	if err != nil {
		return err
	}
	if err := shared.EnsureOwner(o.OwnerID(), userID); err != nil {
		return err
	}
	return s.logs.DeleteOutreach(ctx, id)
}

// DeleteCompletedJob removes one of the caller's jobs without touching the
// log's revenue
func (s *Service) DeleteCompletedJob(ctx context.Context, userID string, id uuid.UUID) error {
	if err := shared.RequireCaller(userID); err != nil {
		return err
	}
	j, err := s.logs.FindJobByID(ctx, id)
	if err != nil {
		return err
	}
	if err := shared.EnsureOwner(j.OwnerID(), userID); err != nil {
		return err
	}
	return s.logs.DeleteJob(ctx, id)
}

func (s *Service) ownedLog(ctx context.Context, userID string, id uuid.UUID) (*dailylog.DailyLog, error) {
	if err := shared.RequireCaller(userID); err != nil {
		return nil, err
	}
	log, err := s.logs.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if err := shared.EnsureOwner(log.OwnerID(), userID); err != nil {
		return nil, err
	}
	return log, nil
}

// withChildren attaches children to logs using one batched query per child table
func (s *Service) withChildren(ctx context.Context, userID string, logs []*dailylog.DailyLog) ([]*dailylog.Entry, error) {
	ids := make([]uuid.UUID, 0, len(logs))
	entries := make([]*dailylog.Entry, 0, len(logs))
	byID := make(map[uuid.UUID]*dailylog.Entry, len(logs))
	for _, l := range logs {
		ids = append(ids, l.ID)
		e := &dailylog.Entry{Log: l}
		entries = append(entries, e)
		byID[l.ID] = e
	}
	if len(ids) == 0 {
		return entries, nil
	}

	appointments, err := s.logs.FindAppointmentsByLogIDs(ctx, userID, ids)
	if err != nil {
		return nil, err
	}
	outreach, err := s.logs.FindOutreachByLogIDs(ctx, userID, ids)
	if err != nil {
		return nil, err
	}
	jobs, err := s.logs.FindJobsByLogIDs(ctx, userID, ids)
	if err != nil {
		return nil, err
	}

	for _, a := range appointments {
		if e, ok := byID[a.DailyLogID]; ok {
			e.Appointments = append(e.Appointments, a)
		}
	}
	for _, o := range outreach {
		if e, ok := byID[o.DailyLogID]; ok {
			e.Outreach = append(e.Outreach, o)
		}
	}
	for _, j := range jobs {
		if e, ok := byID[j.DailyLogID]; ok {
			e.Jobs = append(e.Jobs, j)
		}
	}
	return entries, nil
}
