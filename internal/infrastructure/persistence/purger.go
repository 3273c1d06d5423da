package persistence

import (
	"context"
	"fmt"

	"github.com/opstracker/backend/internal/domain/deletion"
	"github.com/opstracker/backend/internal/infrastructure/persistence/models"
	"gorm.io/gorm"
)

// GormPurger deletes every row a user owns in one table
type GormPurger struct {
	db *gorm.DB
}

// NewGormPurger creates a new GormPurger
func NewGormPurger(db *gorm.DB) *GormPurger {
	return &GormPurger{db: db}
}

// purgeTargets maps each owned table to its model and owner column
var purgeTargets = map[deletion.Table]struct {
	model  func() any
	column string
}{
	deletion.TableUsers:             {func() any { return &models.UserModel{} }, "external_id"},
	deletion.TableBusinessInfo:      {func() any { return &models.BusinessInfoModel{} }, "user_id"},
	deletion.TableGoals:             {func() any { return &models.GoalModel{} }, "user_id"},
	deletion.TableTools:             {func() any { return &models.ToolModel{} }, "user_id"},
	deletion.TableDailyLogs:         {func() any { return &models.DailyLogModel{} }, "user_id"},
	deletion.TableAppointments:      {func() any { return &models.AppointmentModel{} }, "user_id"},
	deletion.TableOutreachEntries:   {func() any { return &models.OutreachEntryModel{} }, "user_id"},
	deletion.TableCompletedJobs:     {func() any { return &models.CompletedJobModel{} }, "user_id"},
	deletion.TableLeads:             {func() any { return &models.LeadModel{} }, "user_id"},
	deletion.TableFollowUps:         {func() any { return &models.FollowUpModel{} }, "user_id"},
	deletion.TableCustomers:         {func() any { return &models.CustomerModel{} }, "user_id"},
	deletion.TableFinancialEntries:  {func() any { return &models.FinancialEntryModel{} }, "user_id"},
	deletion.TableScripts:           {func() any { return &models.ScriptModel{} }, "user_id"},
	deletion.TableObjectionHandlers: {func() any { return &models.ObjectionHandlerModel{} }, "user_id"},
}

// Purge deletes the user's rows in table and returns how many went. Running
// it again after success deletes nothing and succeeds.
func (p *GormPurger) Purge(ctx context.Context, table deletion.Table, externalUserID string) (int64, error) {
	target, ok := purgeTargets[table]
	if !ok {
		return 0, fmt.Errorf("purge: unknown table %q", table)
	}
	result := dbFrom(ctx, p.db).Where(target.column+" = ?", externalUserID).Delete(target.model())
	if result.Error != nil {
		return 0, fmt.Errorf("purge %s: %w", table, result.Error)
	}
	return result.RowsAffected, nil
}

var _ deletion.Purger = (*GormPurger)(nil)
