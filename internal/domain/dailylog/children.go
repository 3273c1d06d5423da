package dailylog

import (
	"strings"

	"github.com/google/uuid"
	"github.com/opstracker/backend/internal/domain/shared"
	"github.com/shopspring/decimal"
)

// Appointment is a scheduled visit recorded on a log
type Appointment struct {
	shared.OwnedEntity
	DailyLogID uuid.UUID
	Time       string
	Customer   string
	Service    string
}

// NewAppointment creates an appointment under a log owned by the same user
func NewAppointment(log *DailyLog, timeOfDay, customer, service string) *Appointment {
	return &Appointment{
		OwnedEntity: shared.NewOwnedEntity(log.UserID),
		DailyLogID:  log.ID,
		Time:        timeOfDay,
		Customer:    strings.TrimSpace(customer),
		Service:     strings.TrimSpace(service),
	}
}

// OutreachResponse is the outcome of an approach
type OutreachResponse string

const (
	ResponseYes   OutreachResponse = "Y"
	ResponseNo    OutreachResponse = "N"
	ResponseMaybe OutreachResponse = "M"
	ResponseNone  OutreachResponse = ""
)

// IsValid reports whether the response is one of Y, N, M or empty
func (r OutreachResponse) IsValid() bool {
	switch r {
	case ResponseYes, ResponseNo, ResponseMaybe, ResponseNone:
		return true
	}
	return false
}

// OutreachEntry is one approach to a prospect
type OutreachEntry struct {
	shared.OwnedEntity
	DailyLogID     uuid.UUID
	Time           string
	Method         string
	Person         string
	Response       OutreachResponse
	FollowUpNeeded bool
}

// NewOutreachEntry creates an outreach entry under a log
func NewOutreachEntry(log *DailyLog, timeOfDay, method, person string, response OutreachResponse, followUp bool) (*OutreachEntry, error) {
	if !response.IsValid() {
		return nil, shared.NewDomainError("INVALID_RESPONSE", "Response must be one of Y, N, M or empty")
	}
	return &OutreachEntry{
		OwnedEntity:    shared.NewOwnedEntity(log.UserID),
		DailyLogID:     log.ID,
		Time:           timeOfDay,
		Method:         method,
		Person:         strings.TrimSpace(person),
		Response:       response,
		FollowUpNeeded: followUp,
	}, nil
}

// CompletedJob is a finished piece of work
type CompletedJob struct {
	shared.OwnedEntity
	DailyLogID    uuid.UUID
	Customer      string
	Service       string
	AmountCharged decimal.Decimal
	IsPaid        bool
	ReferralAsked bool
	Notes         string
}

// JobDetails carries the editable job fields
type JobDetails struct {
	Customer      string
	Service       string
	AmountCharged decimal.Decimal
	IsPaid        bool
	ReferralAsked bool
	Notes         string
}

// NewCompletedJob creates a job under a log
func NewCompletedJob(log *DailyLog, d JobDetails) (*CompletedJob, error) {
	job := &CompletedJob{
		OwnedEntity: shared.NewOwnedEntity(log.UserID),
		DailyLogID:  log.ID,
	}
	if err := job.Apply(d); err != nil {
		return nil, err
	}
	return job, nil
}

// Apply replaces the editable fields. Revenue already credited to the parent
// log is not adjusted.
func (j *CompletedJob) Apply(d JobDetails) error {
	if strings.TrimSpace(d.Customer) == "" {
		return shared.NewDomainError("INVALID_CUSTOMER", "Customer cannot be empty")
	}
	if d.AmountCharged.IsNegative() {
		return shared.NewDomainError("INVALID_AMOUNT", "Amount charged cannot be negative")
	}
	if err := shared.ValidateMoney("Amount charged", d.AmountCharged); err != nil {
		return err
	}
	j.Customer = strings.TrimSpace(d.Customer)
	j.Service = strings.TrimSpace(d.Service)
	j.AmountCharged = d.AmountCharged
	j.IsPaid = d.IsPaid
	j.ReferralAsked = d.ReferralAsked
	j.Notes = d.Notes
	j.Touch()
	return nil
}
