package finance

import (
	"context"
	"fmt"

	"github.com/google/uuid"
	domainbilling "github.com/opstracker/backend/internal/domain/billing"
	"github.com/opstracker/backend/internal/domain/finance"
	"github.com/opstracker/backend/internal/domain/shared"
	"github.com/opstracker/backend/internal/infrastructure/export"
	"go.uber.org/zap"
)

// Gate rejects inserts past a plan ceiling
type Gate interface {
	Admit(ctx context.Context, userID string, r domainbilling.Resource, insert func(ctx context.Context) error) error
}

// EntryService manages financial entries and monthly reports
type EntryService struct {
	entries finance.EntryRepository
	gate    Gate
	logger  *zap.Logger
}

// NewEntryService creates a new EntryService
func NewEntryService(entries finance.EntryRepository, gate Gate, logger *zap.Logger) *EntryService {
	return &EntryService{entries: entries, gate: gate, logger: logger}
}

// AddEntry records an entry once the plan gate allows it
func (s *EntryService) AddEntry(ctx context.Context, userID string, req AddEntryRequest) (*EntryResponse, error) {
	if err := shared.RequireCaller(userID); err != nil {
		return nil, err
	}
	entry, err := finance.NewEntry(userID, req.Date, finance.EntryType(req.Type), req.Amount, req.Category, req.Notes)
	if err != nil {
		return nil, err
	}
	err = s.gate.Admit(ctx, userID, domainbilling.ResourceFinancialEntries, func(ctx context.Context) error {
		if err := s.entries.Save(ctx, entry); err != nil {
			return fmt.Errorf("save financial entry: %w", err)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	resp := ToEntryResponse(entry)
	return &resp, nil
}

// DeleteEntry removes one of the caller's entries
func (s *EntryService) DeleteEntry(ctx context.Context, userID string, id uuid.UUID) error {
	if err := shared.RequireCaller(userID); err != nil {
		return err
	}
	entry, err := s.entries.FindByID(ctx, id)
	if err != nil {
		return err
	}
	if err := shared.EnsureOwner(entry.OwnerID(), userID); err != nil {
		return err
	}
	return s.entries.Delete(ctx, id)
}

// GetMonthlyFinancials returns a month's entries newest first with totals,
// or nil without a caller
func (s *EntryService) GetMonthlyFinancials(ctx context.Context, userID, month string) (*MonthlyFinancialsResponse, error) {
	if shared.RequireCaller(userID) != nil {
		return nil, nil
	}
	entries, err := s.monthEntries(ctx, userID, month)
	if err != nil {
		return nil, err
	}

	resp := &MonthlyFinancialsResponse{
		Month:   month,
		Entries: make([]EntryResponse, 0, len(entries)),
		Totals:  ToTotalsResponse(finance.Summarize(entries)),
	}
	for _, e := range entries {
		resp.Entries = append(resp.Entries, ToEntryResponse(e))
	}
	return resp, nil
}

// ExportMonth renders a month's entries and totals as an xlsx workbook
func (s *EntryService) ExportMonth(ctx context.Context, userID, month string) ([]byte, error) {
	if err := shared.RequireCaller(userID); err != nil {
		return nil, err
	}
	entries, err := s.monthEntries(ctx, userID, month)
	if err != nil {
		return nil, err
	}
	data, err := export.MonthlyWorkbook(month, entries, finance.Summarize(entries))
	if err != nil {
		return nil, fmt.Errorf("render workbook: %w", err)
	}
	s.logger.Info("financial export rendered",
		zap.String("user_id", userID),
		zap.String("month", month),
		zap.Int("entries", len(entries)),
	)
	return data, nil
}

func (s *EntryService) monthEntries(ctx context.Context, userID, month string) ([]*finance.Entry, error) {
	start, next, err := shared.MonthBounds(month)
	if err != nil {
		return nil, err
	}
	return s.entries.FindForMonth(ctx, userID, start, next)
}
