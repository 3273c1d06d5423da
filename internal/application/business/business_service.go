package business

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"
	"github.com/opstracker/backend/internal/domain/business"
	"github.com/opstracker/backend/internal/domain/shared"
)

// Service handles the business profile and the goal and tool checklists
type Service struct {
	infos business.BusinessInfoRepository
	goals business.GoalRepository
	tools business.ToolRepository
	now   func() time.Time
}

// NewService creates a new business Service
func NewService(infos business.BusinessInfoRepository, goals business.GoalRepository, tools business.ToolRepository) *Service {
	return &Service{infos: infos, goals: goals, tools: tools, now: time.Now}
}

// GetBusinessInfo returns the caller's profile, or nil without a caller or
// when none exists
func (s *Service) GetBusinessInfo(ctx context.Context, userID string) (*BusinessInfoResponse, error) {
	if shared.RequireCaller(userID) != nil {
		return nil, nil
	}
	info, err := s.infos.FindByUser(ctx, userID)
	if err != nil {
		if errors.Is(err, shared.ErrNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return ToBusinessInfoResponse(info), nil
}

// UpdateBusinessInfo replaces the caller's profile, creating it if missing
func (s *Service) UpdateBusinessInfo(ctx context.Context, userID string, req UpdateBusinessInfoRequest) (*BusinessInfoResponse, error) {
	if err := shared.RequireCaller(userID); err != nil {
		return nil, err
	}
	info, err := s.infos.FindByUser(ctx, userID)
	if err != nil {
		if !errors.Is(err, shared.ErrNotFound) {
			return nil, err
		}
		info = business.NewBusinessInfo(userID, req.BusinessName)
	}

	if err := info.Apply(business.Profile{
		BusinessName:        req.BusinessName,
		DBARegistrationDate: req.DBARegistrationDate,
		ServicesOffered:     req.ServicesOffered,
		PricingStructure:    req.PricingStructure,
		BusinessEmail:       req.BusinessEmail,
		BusinessPhone:       req.BusinessPhone,
		TargetCustomer:      req.TargetCustomer,
	}); err != nil {
		return nil, err
	}
	if err := s.infos.Save(ctx, info); err != nil {
		return nil, err
	}
	return ToBusinessInfoResponse(info), nil
}

// ListGoals returns the caller's checklist in seed order
func (s *Service) ListGoals(ctx context.Context, userID string) ([]GoalResponse, error) {
	if shared.RequireCaller(userID) != nil {
		return nil, nil
	}
	goals, err := s.goals.FindByUser(ctx, userID)
	if err != nil {
		return nil, err
	}
	return ToGoalResponses(goals), nil
}

// ToggleGoal sets the achieved flag and stamps or clears the achievement time
func (s *Service) ToggleGoal(ctx context.Context, userID string, id uuid.UUID, achieved bool) (*GoalResponse, error) {
	if err := shared.RequireCaller(userID); err != nil {
		return nil, err
	}
	goal, err := s.goals.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if err := shared.EnsureOwner(goal.OwnerID(), userID); err != nil {
		return nil, err
	}

	goal.SetAchieved(achieved, s.now())
	if err := s.goals.Save(ctx, goal); err != nil {
		return nil, err
	}
	return &ToGoalResponses([]*business.Goal{goal})[0], nil
}

// ListTools returns the caller's setup checklist
func (s *Service) ListTools(ctx context.Context, userID string) ([]ToolResponse, error) {
	if shared.RequireCaller(userID) != nil {
		return nil, nil
	}
	tools, err := s.tools.FindByUser(ctx, userID)
	if err != nil {
		return nil, err
	}
	return ToToolResponses(tools), nil
}

// ToggleTool sets a tool's setup flag
func (s *Service) ToggleTool(ctx context.Context, userID string, id uuid.UUID, setUp bool) (*ToolResponse, error) {
	if err := shared.RequireCaller(userID); err != nil {
		return nil, err
	}
	tool, err := s.tools.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if err := shared.EnsureOwner(tool.OwnerID(), userID); err != nil {
		return nil, err
	}

	tool.SetSetUp(setUp)
	if err := s.tools.Save(ctx, tool); err != nil {
		return nil, err
	}
	return &ToToolResponses([]*business.Tool{tool})[0], nil
}
