package pipeline

import (
	"context"

	"github.com/google/uuid"
	"github.com/opstracker/backend/internal/domain/pipeline"
	"github.com/opstracker/backend/internal/domain/shared"
)

// Service manages leads, follow-ups and customers
type Service struct {
	leads     pipeline.LeadRepository
	followUps pipeline.FollowUpRepository
	customers pipeline.CustomerRepository
}

// NewService creates a new pipeline Service
func NewService(leads pipeline.LeadRepository, followUps pipeline.FollowUpRepository, customers pipeline.CustomerRepository) *Service {
	return &Service{leads: leads, followUps: followUps, customers: customers}
}

// GetPipeline returns the caller's leads, follow-ups and customers, or nil
// without a caller
func (s *Service) GetPipeline(ctx context.Context, userID string) (*PipelineResponse, error) {
	if shared.RequireCaller(userID) != nil {
		return nil, nil
	}

	leads, err := s.leads.FindByUser(ctx, userID)
	if err != nil {
		return nil, err
	}
	followUps, err := s.followUps.FindByUser(ctx, userID)
	if err != nil {
		return nil, err
	}
	customers, err := s.customers.FindByUser(ctx, userID)
	if err != nil {
		return nil, err
	}

	resp := &PipelineResponse{
		Leads:     make([]LeadResponse, 0, len(leads)),
		FollowUps: make([]FollowUpResponse, 0, len(followUps)),
		Customers: make([]CustomerResponse, 0, len(customers)),
	}
	for _, l := range leads {
		resp.Leads = append(resp.Leads, ToLeadResponse(l))
	}
	for _, f := range followUps {
		resp.FollowUps = append(resp.FollowUps, ToFollowUpResponse(f))
	}
	for _, c := range customers {
		resp.Customers = append(resp.Customers, ToCustomerResponse(c))
	}
	return resp, nil
}

// AddLead creates a lead
func (s *Service) AddLead(ctx context.Context, userID string, req LeadRequest) (*LeadResponse, error) {
	if err := shared.RequireCaller(userID); err != nil {
		return nil, err
	}
	lead, err := pipeline.NewLead(userID, req.details())
	if err != nil {
		return nil, err
	}
	if err := s.leads.Save(ctx, lead); err != nil {
		return nil, err
	}
	resp := ToLeadResponse(lead)
	return &resp, nil
}

// UpdateLead replaces a lead's fields
func (s *Service) UpdateLead(ctx context.Context, userID string, id uuid.UUID, req LeadRequest) (*LeadResponse, error) {
	lead, err := s.ownedLead(ctx, userID, id)
	if err != nil {
		return nil, err
	}
	if err := lead.Apply(req.details()); err != nil {
		return nil, err
	}
	if err := s.leads.Save(ctx, lead); err != nil {
		return nil, err
	}
	resp := ToLeadResponse(lead)
	return &resp, nil
}

// DeleteLead removes a lead
func (s *Service) DeleteLead(ctx context.Context, userID string, id uuid.UUID) error {
	if _, err := s.ownedLead(ctx, userID, id); err != nil {
		return err
	}
	return s.leads.Delete(ctx, id)
}

// AddFollowUp creates a follow-up
func (s *Service) AddFollowUp(ctx context.Context, userID string, req FollowUpRequest) (*FollowUpResponse, error) {
	if err := shared.RequireCaller(userID); err != nil {
		return nil, err
	}
	f, err := pipeline.NewFollowUp(userID, req.details())
	if err != nil {
		return nil, err
	}
	if err := s.followUps.Save(ctx, f); err != nil {
		return nil, err
	}
	resp := ToFollowUpResponse(f)
	return &resp, nil
}

// UpdateFollowUp replaces a follow-up's fields
func (s *Service) UpdateFollowUp(ctx context.Context, userID string, id uuid.UUID, req FollowUpRequest) (*FollowUpResponse, error) {
	f, err := s.ownedFollowUp(ctx, userID, id)
	if err != nil {
		return nil, err
	}
	if err := f.Apply(req.details()); err != nil {
		return nil, err
	}
	if err := s.followUps.Save(ctx, f); err != nil {
		return nil, err
	}
	resp := ToFollowUpResponse(f)
	return &resp, nil
}

// DeleteFollowUp removes a follow-up
func (s *Service) DeleteFollowUp(ctx context.Context, userID string, id uuid.UUID) error {
	if _, err := s.ownedFollowUp(ctx, userID, id); err != nil {
		return err
	}
	return s.followUps.Delete(ctx, id)
}

// AddCustomer creates a customer with one job, zero revenue and no referrals
func (s *Service) AddCustomer(ctx context.Context, userID string, req CreateCustomerRequest) (*CustomerResponse, error) {
	if err := shared.RequireCaller(userID); err != nil {
		return nil, err
	}
	c, err := pipeline.NewCustomer(userID, req.Name, req.Contact, req.FirstJobDate)
	if err != nil {
		return nil, err
	}
	if err := s.customers.Save(ctx, c); err != nil {
		return nil, err
	}
	resp := ToCustomerResponse(c)
	return &resp, nil
}

// UpdateCustomer patches a customer, counters included
func (s *Service) UpdateCustomer(ctx context.Context, userID string, id uuid.UUID, req UpdateCustomerRequest) (*CustomerResponse, error) {
	c, err := s.ownedCustomer(ctx, userID, id)
	if err != nil {
		return nil, err
	}
	if err := c.Apply(req.patch()); err != nil {
		return nil, err
	}
	if err := s.customers.Save(ctx, c); err != nil {
		return nil, err
	}
	resp := ToCustomerResponse(c)
	return &resp, nil
}

// DeleteCustomer removes a customer
func (s *Service) DeleteCustomer(ctx context.Context, userID string, id uuid.UUID) error {
	if _, err := s.ownedCustomer(ctx, userID, id); err != nil {
		return err
	}
	return s.customers.Delete(ctx, id)
}

func (s *Service) ownedLead(ctx context.Context, userID string, id uuid.UUID) (*pipeline.Lead, error) {
	if err := shared.RequireCaller(userID); err != nil {
		return nil, err
	}
	lead, err := s.leads.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if err := shared.EnsureOwner(lead.OwnerID(), userID); err != nil {
		return nil, err
	}
	return lead, nil
}

func (s *Service) ownedFollowUp(ctx context.Context, userID string, id uuid.UUID) (*pipeline.FollowUp, error) {
	if err := shared.RequireCaller(userID); err != nil {
		return nil, err
	}
	f, err := s.followUps.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if err := shared.EnsureOwner(f.OwnerID(), userID); err != nil {
		return nil, err
	}
	return f, nil
}

func (s *Service) ownedCustomer(ctx context.Context, userID string, id uuid.UUID) (*pipeline.Customer, error) {
	if err := shared.RequireCaller(userID); err != nil {
		return nil, err
	}
	c, err := s.customers.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if err := shared.EnsureOwner(c.OwnerID(), userID); err != nil {
		return nil, err
	}
	return c, nil
}
