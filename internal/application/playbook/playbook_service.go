package playbook

import (
	"context"
	"errors"

	"github.com/google/uuid"
	"github.com/opstracker/backend/internal/domain/account"
	domainbilling "github.com/opstracker/backend/internal/domain/billing"
	"github.com/opstracker/backend/internal/domain/playbook"
	"github.com/opstracker/backend/internal/domain/shared"
)

// Gate checks plan ceilings and reports them per plan
type Gate interface {
	Admit(ctx context.Context, userID string, r domainbilling.Resource, insert func(ctx context.Context) error) error
	LimitsFor(plan account.Plan) map[domainbilling.Resource]int64
}

// Service manages scripts and objection handlers
type Service struct {
	scripts  playbook.ScriptRepository
	handlers playbook.ObjectionHandlerRepository
	users    account.UserRepository
	gate     Gate
}

// NewService creates a new playbook Service
func NewService(scripts playbook.ScriptRepository, handlers playbook.ObjectionHandlerRepository, users account.UserRepository, gate Gate) *Service {
	return &Service{scripts: scripts, handlers: handlers, users: users, gate: gate}
}

// GetScriptsAndHandlers returns the caller's playbook with their plan and
// ceilings. A caller without a user row yet is reported on the free plan.
func (s *Service) GetScriptsAndHandlers(ctx context.Context, userID string) (*PlaybookResponse, error) {
	if shared.RequireCaller(userID) != nil {
		return nil, nil
	}

	plan := account.PlanFree
	user, err := s.users.FindByExternalID(ctx, userID)
	switch {
	case err == nil:
		plan = user.Plan
	case !errors.Is(err, shared.ErrNotFound):
		return nil, err
	}

	scripts, err := s.scripts.FindByUser(ctx, userID)
	if err != nil {
		return nil, err
	}
	handlers, err := s.handlers.FindByUser(ctx, userID)
	if err != nil {
		return nil, err
	}

	limits := s.gate.LimitsFor(plan)
	resp := &PlaybookResponse{
		Scripts:           make([]ScriptResponse, 0, len(scripts)),
		ObjectionHandlers: make([]ObjectionHandlerResponse, 0, len(handlers)),
		Plan:              string(plan),
		Limits: PlaybookLimits{
			Scripts:           limits[domainbilling.ResourceScripts],
			ObjectionHandlers: limits[domainbilling.ResourceObjectionHandlers],
		},
	}
	for _, sc := range scripts {
		resp.Scripts = append(resp.Scripts, ToScriptResponse(sc))
	}
	for _, h := range handlers {
		resp.ObjectionHandlers = append(resp.ObjectionHandlers, ToObjectionHandlerResponse(h))
	}
	return resp, nil
}

// AddScript creates a script unless the free ceiling is reached
func (s *Service) AddScript(ctx context.Context, userID string, req ScriptRequest) (*ScriptResponse, error) {
	if err := shared.RequireCaller(userID); err != nil {
		return nil, err
	}
	script, err := playbook.NewScript(userID, req.Title, req.Content)
	if err != nil {
		return nil, err
	}
	err = s.gate.Admit(ctx, userID, domainbilling.ResourceScripts, func(ctx context.Context) error {
		return s.scripts.Save(ctx, script)
	})
	if err != nil {
		return nil, err
	}
	resp := ToScriptResponse(script)
	return &resp, nil
}

// UpdateScript replaces a script's title and content
func (s *Service) UpdateScript(ctx context.Context, userID string, id uuid.UUID, req ScriptRequest) (*ScriptResponse, error) {
	script, err := s.ownedScript(ctx, userID, id)
	if err != nil {
		return nil, err
	}
	if err := script.Edit(req.Title, req.Content); err != nil {
		return nil, err
	}
	if err := s.scripts.Save(ctx, script); err != nil {
		return nil, err
	}
	resp := ToScriptResponse(script)
	return &resp, nil
}

// DeleteScript removes a script
func (s *Service) DeleteScript(ctx context.Context, userID string, id uuid.UUID) error {
	if _, err := s.ownedScript(ctx, userID, id); err != nil {
		return err
	}
	return s.scripts.Delete(ctx, id)
}

// AddObjectionHandler creates a handler unless the free ceiling is reached
func (s *Service) AddObjectionHandler(ctx context.Context, userID string, req ObjectionHandlerRequest) (*ObjectionHandlerResponse, error) {
	if err := shared.RequireCaller(userID); err != nil {
		return nil, err
	}
	h, err := playbook.NewObjectionHandler(userID, req.Objection, req.Response)
	if err != nil {
		return nil, err
	}
	err = s.gate.Admit(ctx, userID, domainbilling.ResourceObjectionHandlers, func(ctx context.Context) error {
		return s.handlers.Save(ctx, h)
	})
	if err != nil {
		return nil, err
	}
	resp := ToObjectionHandlerResponse(h)
	return &resp, nil
}

// UpdateObjectionHandler replaces a handler's objection and response
func (s *Service) UpdateObjectionHandler(ctx context.Context, userID string, id uuid.UUID, req ObjectionHandlerRequest) (*ObjectionHandlerResponse, error) {
	h, err := s.ownedHandler(ctx, userID, id)
	if err != nil {
		return nil, err
	}
	if err := h.Edit(req.Objection, req.Response); err != nil {
		return nil, err
	}
	if err := s.handlers.Save(ctx, h); err != nil {
		return nil, err
	}
	resp := ToObjectionHandlerResponse(h)
	return &resp, nil
}

// DeleteObjectionHandler removes a handler
func (s *Service) DeleteObjectionHandler(ctx context.Context, userID string, id uuid.UUID) error {
	if _, err := s.ownedHandler(ctx, userID, id); err != nil {
		return err
	}
	return s.handlers.Delete(ctx, id)
}

func (s *Service) ownedScript(ctx context.Context, userID string, id uuid.UUID) (*playbook.Script, error) {
	if err := shared.RequireCaller(userID); err != nil {
		return nil, err
	}
	script, err := s.scripts.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if err := shared.EnsureOwner(script.OwnerID(), userID); err != nil {
		return nil, err
	}
	return script, nil
}

func (s *Service) ownedHandler(ctx context.Context, userID string, id uuid.UUID) (*playbook.ObjectionHandler, error) {
	if err := shared.RequireCaller(userID); err != nil {
		return nil, err
	}
	h, err := s.handlers.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if err := shared.EnsureOwner(h.OwnerID(), userID); err != nil {
		return nil, err
	}
	return h, nil
}
