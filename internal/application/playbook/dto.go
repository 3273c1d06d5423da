package playbook

import (
	"github.com/google/uuid"
	"github.com/opstracker/backend/internal/domain/playbook"
)

// ScriptRequest adds or replaces a script
type ScriptRequest struct {
	Title   string `json:"title" binding:"required,max=255"`
	Content string `json:"content"`
}

// ObjectionHandlerRequest adds or replaces an objection handler
type ObjectionHandlerRequest struct {
	Objection string `json:"objection" binding:"required,max=500"`
	Response  string `json:"response"`
}

// ScriptResponse represents a script in API responses
type ScriptResponse struct {
	ID      uuid.UUID `json:"id"`
	Title   string    `json:"title"`
	Content string    `json:"content"`
}

// ObjectionHandlerResponse represents an objection handler in API responses
type ObjectionHandlerResponse struct {
	ID        uuid.UUID `json:"id"`
	Objection string    `json:"objection"`
	Response  string    `json:"response"`
}

// PlaybookLimits are the ceilings for the caller's plan; -1 means unlimited
type PlaybookLimits struct {
	Scripts           int64 `json:"scripts"`
	ObjectionHandlers int64 `json:"objection_handlers"`
}

// PlaybookResponse is the playbook screen payload
type PlaybookResponse struct {
	Scripts           []ScriptResponse           `json:"scripts"`
	ObjectionHandlers []ObjectionHandlerResponse `json:"objection_handlers"`
	Plan              string                     `json:"plan"`
	Limits            PlaybookLimits             `json:"limits"`
}

// ToScriptResponse converts a domain script
func ToScriptResponse(s *playbook.Script) ScriptResponse {
	return ScriptResponse{ID: s.ID, Title: s.Title, Content: s.Content}
}

// ToObjectionHandlerResponse converts a domain objection handler
func ToObjectionHandlerResponse(h *playbook.ObjectionHandler) ObjectionHandlerResponse {
	return ObjectionHandlerResponse{ID: h.ID, Objection: h.Objection, Response: h.Response}
}
