package business

import (
	"time"

	"github.com/google/uuid"
	"github.com/opstracker/backend/internal/domain/business"
)

// UpdateBusinessInfoRequest replaces the business profile
type UpdateBusinessInfoRequest struct {
	BusinessName        string `json:"business_name" binding:"required,max=255"`
	DBARegistrationDate string `json:"dba_registration_date" binding:"omitempty,isodate"`
	ServicesOffered     string `json:"services_offered"`
	PricingStructure    string `json:"pricing_structure"`
	BusinessEmail       string `json:"business_email" binding:"omitempty,email,max=255"`
	BusinessPhone       string `json:"business_phone" binding:"max=50"`
	TargetCustomer      string `json:"target_customer"`
}

// BusinessInfoResponse represents the profile in API responses
type BusinessInfoResponse struct {
	ID                  uuid.UUID `json:"id"`
	BusinessName        string    `json:"business_name"`
	DBARegistrationDate string    `json:"dba_registration_date"`
	ServicesOffered     string    `json:"services_offered"`
	PricingStructure    string    `json:"pricing_structure"`
	BusinessEmail       string    `json:"business_email"`
	BusinessPhone       string    `json:"business_phone"`
	TargetCustomer      string    `json:"target_customer"`
	UpdatedAt           time.Time `json:"updated_at"`
}

// ToggleGoalRequest sets a goal's achieved flag
type ToggleGoalRequest struct {
	IsAchieved *bool `json:"is_achieved" binding:"required"`
}

// ToggleToolRequest sets a tool's setup flag
type ToggleToolRequest struct {
	IsSetUp *bool `json:"is_set_up" binding:"required"`
}

// GoalResponse represents a goal in API responses
type GoalResponse struct {
	ID         uuid.UUID  `json:"id"`
	Title      string     `json:"title"`
	IsAchieved bool       `json:"is_achieved"`
	AchievedAt *time.Time `json:"achieved_at,omitempty"`
}

// ToolResponse represents a tool in API responses
type ToolResponse struct {
	ID      uuid.UUID `json:"id"`
	Name    string    `json:"name"`
	IsSetUp bool      `json:"is_set_up"`
}

// ToBusinessInfoResponse converts a domain profile
func ToBusinessInfoResponse(b *business.BusinessInfo) *BusinessInfoResponse {
	return &BusinessInfoResponse{
		ID:                  b.ID,
		BusinessName:        b.BusinessName,
		DBARegistrationDate: b.DBARegistrationDate,
		ServicesOffered:     b.ServicesOffered,
		PricingStructure:    b.PricingStructure,
		BusinessEmail:       b.BusinessEmail,
		BusinessPhone:       b.BusinessPhone,
		TargetCustomer:      b.TargetCustomer,
		UpdatedAt:           b.UpdatedAt,
	}
}

// ToGoalResponses converts domain goals
func ToGoalResponses(goals []*business.Goal) []GoalResponse {
	out := make([]GoalResponse, 0, len(goals))
	for _, g := range goals {
		out = append(out, GoalResponse{ID: g.ID, Title: g.Title, IsAchieved: g.IsAchieved, AchievedAt: g.AchievedAt})
	}
	return out
}

// ToToolResponses converts domain tools
func ToToolResponses(tools []*business.Tool) []ToolResponse {
	out := make([]ToolResponse, 0, len(tools))
	for _, t := range tools {
		out = append(out, ToolResponse{ID: t.ID, Name: t.Name, IsSetUp: t.IsSetUp})
	}
	return out
}
