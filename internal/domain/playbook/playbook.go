package playbook

import (
	"strings"

	"github.com/opstracker/backend/internal/domain/shared"
)

// Script is a reusable sales script
type Script struct {
	shared.OwnedEntity
	Title   string
	Content string
}

// NewScript creates a script
func NewScript(userID, title, content string) (*Script, error) {
	s := &Script{OwnedEntity: shared.NewOwnedEntity(userID)}
	if err := s.Edit(title, content); err != nil {
		return nil, err
	}
	return s, nil
}

// Edit replaces title and content
func (s *Script) Edit(title, content string) error {
	if strings.TrimSpace(title) == "" {
		return shared.NewDomainError("INVALID_TITLE", "Script title cannot be empty")
	}
	s.Title = strings.TrimSpace(title)
	s.Content = content
	s.Touch()
	return nil
}

// ObjectionHandler pairs a customer objection with a prepared response
type ObjectionHandler struct {
	shared.OwnedEntity
	Objection string
	Response  string
}

// NewObjectionHandler creates an objection handler
func NewObjectionHandler(userID, objection, response string) (*ObjectionHandler, error) {
	h := &ObjectionHandler{OwnedEntity: shared.NewOwnedEntity(userID)}
	if err := h.Edit(objection, response); err != nil {
		return nil, err
	}
	return h, nil
}

// Edit replaces objection and response
func (h *ObjectionHandler) Edit(objection, response string) error {
	if strings.TrimSpace(objection) == "" {
		return shared.NewDomainError("INVALID_OBJECTION", "Objection cannot be empty")
	}
	h.Objection = strings.TrimSpace(objection)
	h.Response = response
	h.Touch()
	return nil
}
