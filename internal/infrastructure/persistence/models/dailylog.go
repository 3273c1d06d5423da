package models

import (
	"github.com/google/uuid"
	"github.com/opstracker/backend/internal/domain/dailylog"
	"github.com/shopspring/decimal"
)

// FailureColumns is the embedded end-of-day reflection
type FailureColumns struct {
	What   string `gorm:"type:text"`
	Why    string `gorm:"type:text"`
	Adjust string `gorm:"type:text"`
}

// DailyLogModel is the journal row; (user_id, date) is unique
type DailyLogModel struct {
	BaseModel
	UserID             string          `gorm:"type:varchar(255);not null;uniqueIndex:idx_daily_logs_user_date,priority:1"`
	Date               string          `gorm:"type:varchar(10);not null;uniqueIndex:idx_daily_logs_user_date,priority:2"`
	MainGoal           string          `gorm:"type:text"`
	RevenueToday       decimal.Decimal `gorm:"type:decimal(12,2);not null;default:0"`
	ExpensesToday      decimal.Decimal `gorm:"type:decimal(12,2);not null;default:0"`
	Failure            FailureColumns  `gorm:"embedded;embeddedPrefix:failure_"`
	TomorrowPriorities []string        `gorm:"serializer:json;type:text"`
}

// TableName returns the table name for GORM
func (DailyLogModel) TableName() string {
	return "daily_logs"
}

// ToDomain converts the model to a domain DailyLog
func (m *DailyLogModel) ToDomain() *dailylog.DailyLog {
	owned := OwnedModel{BaseModel: m.BaseModel, UserID: m.UserID}
	priorities := make([]string, dailylog.PriorityCount)
	copy(priorities, m.TomorrowPriorities)
	return &dailylog.DailyLog{
		OwnedEntity:   owned.ToDomain(),
		Date:          m.Date,
		MainGoal:      m.MainGoal,
		RevenueToday:  m.RevenueToday,
		ExpensesToday: m.ExpensesToday,
		Failure: dailylog.FailureData{
			What:   m.Failure.What,
			Why:    m.Failure.Why,
			Adjust: m.Failure.Adjust,
		},
		TomorrowPriorities: priorities,
	}
}

// DailyLogModelFromDomain converts a domain DailyLog to its model
func DailyLogModelFromDomain(l *dailylog.DailyLog) *DailyLogModel {
	return &DailyLogModel{
		BaseModel:     ownedFromDomain(l.OwnedEntity).BaseModel,
		UserID:        l.UserID,
		Date:          l.Date,
		MainGoal:      l.MainGoal,
		RevenueToday:  l.RevenueToday,
		ExpensesToday: l.ExpensesToday,
		Failure: FailureColumns{
			What:   l.Failure.What,
			Why:    l.Failure.Why,
			Adjust: l.Failure.Adjust,
		},
		TomorrowPriorities: l.TomorrowPriorities,
	}
}

// AppointmentModel is an appointment row under a daily log
type AppointmentModel struct {
	OwnedModel
	DailyLogID uuid.UUID `gorm:"type:uuid;not null;index"`
	Time       string    `gorm:"type:varchar(20)"`
	Customer   string    `gorm:"type:varchar(255)"`
	Service    string    `gorm:"type:varchar(255)"`
}

// TableName returns the table name for GORM
func (AppointmentModel) TableName() string {
	return "appointments"
}

// ToDomain converts the model to a domain Appointment
func (m *AppointmentModel) ToDomain() *dailylog.Appointment {
	return &dailylog.Appointment{
		OwnedEntity: m.OwnedModel.ToDomain(),
		DailyLogID:  m.DailyLogID,
		Time:        m.Time,
		Customer:    m.Customer,
		Service:     m.Service,
	}
}

// AppointmentModelFromDomain converts a domain Appointment to its model
func AppointmentModelFromDomain(a *dailylog.Appointment) *AppointmentModel {
	return &AppointmentModel{
		OwnedModel: ownedFromDomain(a.OwnedEntity),
		DailyLogID: a.DailyLogID,
		Time:       a.Time,
		Customer:   a.Customer,
		Service:    a.Service,
	}
}

// OutreachEntryModel is an outreach row under a daily log
type OutreachEntryModel struct {
	OwnedModel
	DailyLogID     uuid.UUID `gorm:"type:uuid;not null;index"`
	Time           string    `gorm:"type:varchar(20)"`
	Method         string    `gorm:"type:varchar(100)"`
	Person         string    `gorm:"type:varchar(255)"`
	Response       string    `gorm:"type:varchar(1)"`
	FollowUpNeeded bool      `gorm:"not null;default:false"`
}

// TableName returns the table name for GORM
func (OutreachEntryModel) TableName() string {
	return "outreach_entries"
}

// ToDomain converts the model to a domain OutreachEntry
func (m *OutreachEntryModel) ToDomain() *dailylog.OutreachEntry {
	return &dailylog.OutreachEntry{
		OwnedEntity:    m.OwnedModel.ToDomain(),
		DailyLogID:     m.DailyLogID,
		Time:           m.Time,
		Method:         m.Method,
		Person:         m.Person,
		Response:       dailylog.OutreachResponse(m.Response),
		FollowUpNeeded: m.FollowUpNeeded,
	}
}

// OutreachEntryModelFromDomain converts a domain OutreachEntry to its model
func OutreachEntryModelFromDomain(o *dailylog.OutreachEntry) *OutreachEntryModel {
	return &OutreachEntryModel{
		OwnedModel:     ownedFromDomain(o.OwnedEntity),
		DailyLogID:     o.DailyLogID,
		Time:           o.Time,
		Method:         o.Method,
		Person:         o.Person,
		Response:       string(o.Response),
		FollowUpNeeded: o.FollowUpNeeded,
	}
}

// CompletedJobModel is a completed job row under a daily log
type CompletedJobModel struct {
	OwnedModel
	DailyLogID    uuid.UUID       `gorm:"type:uuid;not null;index"`
	Customer      string          `gorm:"type:varchar(255);not null"`
	Service       string          `gorm:"type:varchar(255)"`
	AmountCharged decimal.Decimal `gorm:"type:decimal(12,2);not null;default:0"`
	IsPaid        bool            `gorm:"not null;default:false"`
	ReferralAsked bool            `gorm:"not null;default:false"`
	Notes         string          `gorm:"type:text"`
}

// TableName returns the table name for GORM
func (CompletedJobModel) TableName() string {
	return "completed_jobs"
}

// ToDomain converts the model to a domain CompletedJob
func (m *CompletedJobModel) ToDomain() *dailylog.CompletedJob {
	return &dailylog.CompletedJob{
		OwnedEntity:   m.OwnedModel.ToDomain(),
		DailyLogID:    m.DailyLogID,
		Customer:      m.Customer,
		Service:       m.Service,
		AmountCharged: m.AmountCharged,
		IsPaid:        m.IsPaid,
		ReferralAsked: m.ReferralAsked,
		Notes:         m.Notes,
	}
}

// CompletedJobModelFromDomain converts a domain CompletedJob to its model
func CompletedJobModelFromDomain(j *dailylog.CompletedJob) *CompletedJobModel {
	return &CompletedJobModel{
		OwnedModel:    ownedFromDomain(j.OwnedEntity),
		DailyLogID:    j.DailyLogID,
		Customer:      j.Customer,
		Service:       j.Service,
		AmountCharged: j.AmountCharged,
		IsPaid:        j.IsPaid,
		ReferralAsked: j.ReferralAsked,
		Notes:         j.Notes,
	}
}
