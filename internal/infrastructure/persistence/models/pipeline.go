package models

import (
	"github.com/opstracker/backend/internal/domain/pipeline"
	"github.com/shopspring/decimal"
)

// LeadModel is a prospect row
type LeadModel struct {
	OwnedModel
	Name            string `gorm:"type:varchar(255);not null"`
	Contact         string `gorm:"type:varchar(255)"`
	ServiceInterest string `gorm:"type:varchar(255)"`
	Source          string `gorm:"type:varchar(255)"`
	DateAdded       string `gorm:"type:varchar(10)"`
	Status          string `gorm:"type:varchar(50)"`
	NextAction      string `gorm:"type:text"`
}

// TableName returns the table name for GORM
func (LeadModel) TableName() string {
	return "leads"
}

// ToDomain converts the model to a domain Lead
func (m *LeadModel) ToDomain() *pipeline.Lead {
	return &pipeline.Lead{
		OwnedEntity:     m.OwnedModel.ToDomain(),
		Name:            m.Name,
		Contact:         m.Contact,
		ServiceInterest: m.ServiceInterest,
		Source:          m.Source,
		DateAdded:       m.DateAdded,
		Status:          m.Status,
		NextAction:      m.NextAction,
	}
}

// LeadModelFromDomain converts a domain Lead to its model
func LeadModelFromDomain(l *pipeline.Lead) *LeadModel {
	return &LeadModel{
		OwnedModel:      ownedFromDomain(l.OwnedEntity),
		Name:            l.Name,
		Contact:         l.Contact,
		ServiceInterest: l.ServiceInterest,
		Source:          l.Source,
		DateAdded:       l.DateAdded,
		Status:          l.Status,
		NextAction:      l.NextAction,
	}
}

// FollowUpModel is a follow-up reminder row
type FollowUpModel struct {
	OwnedModel
	CustomerName string `gorm:"type:varchar(255);not null"`
	LastContact  string `gorm:"type:varchar(10)"`
	Reason       string `gorm:"type:text"`
	FollowUpDate string `gorm:"type:varchar(10);index"`
	Notes        string `gorm:"type:text"`
}

// TableName returns the table name for GORM
func (FollowUpModel) TableName() string {
	return "follow_ups"
}

// ToDomain converts the model to a domain FollowUp
func (m *FollowUpModel) ToDomain() *pipeline.FollowUp {
	return &pipeline.FollowUp{
		OwnedEntity:  m.OwnedModel.ToDomain(),
		CustomerName: m.CustomerName,
		LastContact:  m.LastContact,
		Reason:       m.Reason,
		FollowUpDate: m.FollowUpDate,
		Notes:        m.Notes,
	}
}

// FollowUpModelFromDomain converts a domain FollowUp to its model
func FollowUpModelFromDomain(f *pipeline.FollowUp) *FollowUpModel {
	return &FollowUpModel{
		OwnedModel:   ownedFromDomain(f.OwnedEntity),
		CustomerName: f.CustomerName,
		LastContact:  f.LastContact,
		Reason:       f.Reason,
		FollowUpDate: f.FollowUpDate,
		Notes:        f.Notes,
	}
}

// CustomerModel is a customer row with its manual counters
type CustomerModel struct {
	OwnedModel
	Name           string          `gorm:"type:varchar(255);not null"`
	Contact        string          `gorm:"type:varchar(255)"`
	FirstJobDate   string          `gorm:"type:varchar(10);not null"`
	LastJobDate    string          `gorm:"type:varchar(10);not null"`
	TotalJobs      int             `gorm:"not null;default:1"`
	TotalRevenue   decimal.Decimal `gorm:"type:decimal(12,2);not null;default:0"`
	ReferralsGiven int             `gorm:"not null;default:0"`
}

// TableName returns the table name for GORM
func (CustomerModel) TableName() string {
	return "customers"
}

// ToDomain converts the model to a domain Customer
func (m *CustomerModel) ToDomain() *pipeline.Customer {
	return &pipeline.Customer{
		OwnedEntity:    m.OwnedModel.ToDomain(),
		Name:           m.Name,
		Contact:        m.Contact,
		FirstJobDate:   m.FirstJobDate,
		LastJobDate:    m.LastJobDate,
		TotalJobs:      m.TotalJobs,
		TotalRevenue:   m.TotalRevenue,
		ReferralsGiven: m.ReferralsGiven,
	}
}

// CustomerModelFromDomain converts a domain Customer to its model
func CustomerModelFromDomain(c *pipeline.Customer) *CustomerModel {
	return &CustomerModel{
		OwnedModel:     ownedFromDomain(c.OwnedEntity),
		Name:           c.Name,
		Contact:        c.Contact,
		FirstJobDate:   c.FirstJobDate,
		LastJobDate:    c.LastJobDate,
		TotalJobs:      c.TotalJobs,
		TotalRevenue:   c.TotalRevenue,
		ReferralsGiven: c.ReferralsGiven,
	}
}
