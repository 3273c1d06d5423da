package dailylog

import (
	"github.com/google/uuid"
	"github.com/opstracker/backend/internal/domain/dailylog"
	"github.com/shopspring/decimal"
)

// CreateDailyLogRequest opens the log for a date
type CreateDailyLogRequest struct {
	Date     string `json:"date" binding:"required,isodate"`
	MainGoal string `json:"main_goal" binding:"max=500"`
}

// FailureRequest is the end-of-day reflection
type FailureRequest struct {
	What   string `json:"what"`
	Why    string `json:"why"`
	Adjust string `json:"adjust"`
}

// UpdateLogDetailsRequest patches the free-text fields; omitted fields stay
type UpdateLogDetailsRequest struct {
	MainGoal           *string         `json:"main_goal" binding:"omitempty,max=500"`
	Failure            *FailureRequest `json:"failure"`
	TomorrowPriorities []string        `json:"tomorrow_priorities" binding:"omitempty,max=3"`
}

// UpdateExpensesRequest replaces the day's expense total
type UpdateExpensesRequest struct {
	ExpensesToday decimal.Decimal `json:"expenses_today"`
}

// AddAppointmentRequest adds an appointment to a log
type AddAppointmentRequest struct {
	Time     string `json:"time" binding:"max=20"`
	Customer string `json:"customer" binding:"required,max=255"`
	Service  string `json:"service" binding:"max=255"`
}

// AddOutreachRequest adds an outreach entry to a log
type AddOutreachRequest struct {
	Time           string `json:"time" binding:"max=20"`
	Method         string `json:"method" binding:"max=100"`
	Person         string `json:"person" binding:"max=255"`
	Response       string `json:"response" binding:"omitempty,oneof=Y N M"`
	FollowUpNeeded bool   `json:"follow_up_needed"`
}

// CompletedJobRequest adds or replaces a completed job
type CompletedJobRequest struct {
	Customer      string          `json:"customer" binding:"required,max=255"`
	Service       string          `json:"service" binding:"max=255"`
	AmountCharged decimal.Decimal `json:"amount_charged"`
	IsPaid        bool            `json:"is_paid"`
	ReferralAsked bool            `json:"referral_asked"`
	Notes         string          `json:"notes"`
}

func (r CompletedJobRequest) details() dailylog.JobDetails {
	return dailylog.JobDetails{
		Customer:      r.Customer,
		Service:       r.Service,
		AmountCharged: r.AmountCharged,
		IsPaid:        r.IsPaid,
		ReferralAsked: r.ReferralAsked,
		Notes:         r.Notes,
	}
}

// DailyLogResponse represents a log in API responses
type DailyLogResponse struct {
	ID                 uuid.UUID       `json:"id"`
	Date               string          `json:"date"`
	MainGoal           string          `json:"main_goal"`
	RevenueToday       decimal.Decimal `json:"revenue_today"`
	ExpensesToday      decimal.Decimal `json:"expenses_today"`
	Failure            FailureRequest  `json:"failure"`
	TomorrowPriorities []string        `json:"tomorrow_priorities"`
}

// AppointmentResponse represents an appointment in API responses
type AppointmentResponse struct {
	ID         uuid.UUID `json:"id"`
	DailyLogID uuid.UUID `json:"daily_log_id"`
	Time       string    `json:"time"`
	Customer   string    `json:"customer"`
	Service    string    `json:"service"`
}

// OutreachResponse represents an outreach entry in API responses
type OutreachResponse struct {
	ID             uuid.UUID `json:"id"`
	DailyLogID     uuid.UUID `json:"daily_log_id"`
	Time           string    `json:"time"`
	Method         string    `json:"method"`
	Person         string    `json:"person"`
	Response       string    `json:"response"`
	FollowUpNeeded bool      `json:"follow_up_needed"`
}

// CompletedJobResponse represents a job in API responses
type CompletedJobResponse struct {
	ID            uuid.UUID       `json:"id"`
	DailyLogID    uuid.UUID       `json:"daily_log_id"`
	Customer      string          `json:"customer"`
	Service       string          `json:"service"`
	AmountCharged decimal.Decimal `json:"amount_charged"`
	IsPaid        bool            `json:"is_paid"`
	ReferralAsked bool            `json:"referral_asked"`
	Notes         string          `json:"notes"`
}

// DailyLogDetailResponse is a log with all of its children
type DailyLogDetailResponse struct {
	DailyLogResponse
	Appointments  []AppointmentResponse  `json:"appointments"`
	Outreach      []OutreachResponse     `json:"outreach"`
	CompletedJobs []CompletedJobResponse `json:"completed_jobs"`
}

// ToDailyLogResponse converts a domain log
func ToDailyLogResponse(l *dailylog.DailyLog) DailyLogResponse {
	return DailyLogResponse{
		ID:            l.ID,
		Date:          l.Date,
		MainGoal:      l.MainGoal,
		RevenueToday:  l.RevenueToday,
		ExpensesToday: l.ExpensesToday,
		Failure: FailureRequest{
			What:   l.Failure.What,
			Why:    l.Failure.Why,
			Adjust: l.Failure.Adjust,
		},
		TomorrowPriorities: l.TomorrowPriorities,
	}
}

// ToAppointmentResponse converts a domain appointment
func ToAppointmentResponse(a *dailylog.Appointment) AppointmentResponse {
	return AppointmentResponse{ID: a.ID, DailyLogID: a.DailyLogID, Time: a.Time, Customer: a.Customer, Service: a.Service}
}

// ToOutreachResponse converts a domain outreach entry
func ToOutreachResponse(o *dailylog.OutreachEntry) OutreachResponse {
	return OutreachResponse{
		ID:             o.ID,
		DailyLogID:     o.DailyLogID,
		Time:           o.Time,
		Method:         o.Method,
		Person:         o.Person,
		Response:       string(o.Response),
		FollowUpNeeded: o.FollowUpNeeded,
	}
}

// ToCompletedJobResponse converts a domain job
func ToCompletedJobResponse(j *dailylog.CompletedJob) CompletedJobResponse {
	return CompletedJobResponse{
		ID:            j.ID,
		DailyLogID:    j.DailyLogID,
		Customer:      j.Customer,
		Service:       j.Service,
		AmountCharged: j.AmountCharged,
		IsPaid:        j.IsPaid,
		ReferralAsked: j.ReferralAsked,
		Notes:         j.Notes,
	}
}

// ToDetailResponse converts a log with its children
func ToDetailResponse(e *dailylog.Entry) *DailyLogDetailResponse {
	resp := &DailyLogDetailResponse{
		DailyLogResponse: ToDailyLogResponse(e.Log),
		Appointments:     make([]AppointmentResponse, 0, len(e.Appointments)),
		Outreach:         make([]OutreachResponse, 0, len(e.Outreach)),
		CompletedJobs:    make([]CompletedJobResponse, 0, len(e.Jobs)),
	}
	for _, a := range e.Appointments {
		resp.Appointments = append(resp.Appointments, ToAppointmentResponse(a))
	}
	for _, o := range e.Outreach {
		resp.Outreach = append(resp.Outreach, ToOutreachResponse(o))
	}
	for _, j := range e.Jobs {
		resp.CompletedJobs = append(resp.CompletedJobs, ToCompletedJobResponse(j))
	}
	return resp
}
