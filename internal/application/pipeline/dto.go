package pipeline

import (
	"github.com/google/uuid"
	"github.com/opstracker/backend/internal/domain/pipeline"
	"github.com/shopspring/decimal"
)

// LeadRequest adds or replaces a lead
type LeadRequest struct {
	Name            string `json:"name" binding:"required,max=255"`
	Contact         string `json:"contact" binding:"max=255"`
	ServiceInterest string `json:"service_interest" binding:"max=255"`
	Source          string `json:"source" binding:"max=100"`
	DateAdded       string `json:"date_added" binding:"omitempty,isodate"`
	Status          string `json:"status" binding:"max=50"`
	NextAction      string `json:"next_action"`
}

func (r LeadRequest) details() pipeline.LeadDetails {
	return pipeline.LeadDetails{
		Name:            r.Name,
		Contact:         r.Contact,
		ServiceInterest: r.ServiceInterest,
		Source:          r.Source,
		DateAdded:       r.DateAdded,
		Status:          r.Status,
		NextAction:      r.NextAction,
	}
}

// FollowUpRequest adds or replaces a follow-up
type FollowUpRequest struct {
	CustomerName string `json:"customer_name" binding:"required,max=255"`
	LastContact  string `json:"last_contact" binding:"omitempty,isodate"`
	Reason       string `json:"reason"`
	FollowUpDate string `json:"follow_up_date" binding:"omitempty,isodate"`
	Notes        string `json:"notes"`
}

func (r FollowUpRequest) details() pipeline.FollowUpDetails {
	return pipeline.FollowUpDetails{
		CustomerName: r.CustomerName,
		LastContact:  r.LastContact,
		Reason:       r.Reason,
		FollowUpDate: r.FollowUpDate,
		Notes:        r.Notes,
	}
}

// CreateCustomerRequest adds a customer after their first job
type CreateCustomerRequest struct {
	Name         string `json:"name" binding:"required,max=255"`
	Contact      string `json:"contact" binding:"max=255"`
	FirstJobDate string `json:"first_job_date" binding:"required,isodate"`
}

// UpdateCustomerRequest patches a customer including the manual counters
type UpdateCustomerRequest struct {
	Name           *string          `json:"name" binding:"omitempty,max=255"`
	Contact        *string          `json:"contact" binding:"omitempty,max=255"`
	LastJobDate    *string          `json:"last_job_date" binding:"omitempty,isodate"`
	TotalJobs      *int             `json:"total_jobs" binding:"omitempty,min=0"`
	TotalRevenue   *decimal.Decimal `json:"total_revenue"`
	ReferralsGiven *int             `json:"referrals_given" binding:"omitempty,min=0"`
}

func (r UpdateCustomerRequest) patch() pipeline.CustomerPatch {
	return pipeline.CustomerPatch{
		Name:           r.Name,
		Contact:        r.Contact,
		LastJobDate:    r.LastJobDate,
		TotalJobs:      r.TotalJobs,
		TotalRevenue:   r.TotalRevenue,
		ReferralsGiven: r.ReferralsGiven,
	}
}

// LeadResponse represents a lead in API responses
type LeadResponse struct {
	ID              uuid.UUID `json:"id"`
	Name            string    `json:"name"`
	Contact         string    `json:"contact"`
	ServiceInterest string    `json:"service_interest"`
	Source          string    `json:"source"`
	DateAdded       string    `json:"date_added"`
	Status          string    `json:"status"`
	NextAction      string    `json:"next_action"`
}

// FollowUpResponse represents a follow-up in API responses
type FollowUpResponse struct {
	ID           uuid.UUID `json:"id"`
	CustomerName string    `json:"customer_name"`
	LastContact  string    `json:"last_contact"`
	Reason       string    `json:"reason"`
	FollowUpDate string    `json:"follow_up_date"`
	Notes        string    `json:"notes"`
}

// CustomerResponse represents a customer in API responses
type CustomerResponse struct {
	ID             uuid.UUID       `json:"id"`
	Name           string          `json:"name"`
	Contact        string          `json:"contact"`
	FirstJobDate   string          `json:"first_job_date"`
	LastJobDate    string          `json:"last_job_date"`
	TotalJobs      int             `json:"total_jobs"`
	TotalRevenue   decimal.Decimal `json:"total_revenue"`
	ReferralsGiven int             `json:"referrals_given"`
}

// PipelineResponse is the full sales pipeline for the caller
type PipelineResponse struct {
	Leads     []LeadResponse     `json:"leads"`
	FollowUps []FollowUpResponse `json:"follow_ups"`
	Customers []CustomerResponse `json:"customers"`
}

// ToLeadResponse converts a domain lead
func ToLeadResponse(l *pipeline.Lead) LeadResponse {
	return LeadResponse{
		ID:              l.ID,
		Name:            l.Name,
		Contact:         l.Contact,
		ServiceInterest: l.ServiceInterest,
		Source:          l.Source,
		DateAdded:       l.DateAdded,
		Status:          l.Status,
		NextAction:      l.NextAction,
	}
}

// ToFollowUpResponse converts a domain follow-up
func ToFollowUpResponse(f *pipeline.FollowUp) FollowUpResponse {
	return FollowUpResponse{
		ID:           f.ID,
		CustomerName: f.CustomerName,
		LastContact:  f.LastContact,
		Reason:       f.Reason,
		FollowUpDate: f.FollowUpDate,
		Notes:        f.Notes,
	}
}

// ToCustomerResponse converts a domain customer
func ToCustomerResponse(c *pipeline.Customer) CustomerResponse {
	return CustomerResponse{
		ID:             c.ID,
		Name:           c.Name,
		Contact:        c.Contact,
		FirstJobDate:   c.FirstJobDate,
		LastJobDate:    c.LastJobDate,
		TotalJobs:      c.TotalJobs,
		TotalRevenue:   c.TotalRevenue,
		ReferralsGiven: c.ReferralsGiven,
	}
}
