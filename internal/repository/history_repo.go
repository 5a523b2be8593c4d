package repository

import (
	"context"
	"fmt"

	"github.com/govbudget/budget-portal/internal/models"
	"github.com/govbudget/budget-portal/internal/workflow"
	"github.com/govbudget/budget-portal/pkg/database"
	"go.uber.org/zap"
)

// HistoryRepository persists the approval audit trail
type HistoryRepository struct {
	db     *database.DB
	logger *zap.Logger
}

// NewHistoryRepository creates a new history repository
func NewHistoryRepository(db *database.DB, logger *zap.Logger) *HistoryRepository {
	return &HistoryRepository{
		db:     db,
		logger: logger,
	}
}

// Append inserts one audit entry
func (r *HistoryRepository) Append(ctx context.Context, entry *models.ApprovalHistory) error {
	query := `
		INSERT INTO approval_history (
			workflow_id, entity_type, entity_id, stage_number, action,
			actor_id, previous_status, new_status, comments, timestamp
		) VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?)
	`

	result, err := r.db.Executor(ctx).ExecContext(ctx, query,
		entry.WorkflowID,
		entry.EntityType,
		entry.EntityID,
		entry.StageNumber,
		entry.Action,
		entry.ActorID,
		entry.PreviousStatus,
		entry.NewStatus,
		entry.Comments,
		entry.Timestamp,
	)
	if err != nil {
		r.logger.Error("Failed to append history", zap.Error(err))
		return fmt.Errorf("failed to append history: %w", err)
	}

	id, err := result.LastInsertId()
	if err != nil {
		return fmt.Errorf("failed to get last insert id: %w", err)
	}
	entry.ID = id
	return nil
}

// ListByWorkflow returns the audit trail for one workflow, oldest first
func (r *HistoryRepository) ListByWorkflow(ctx context.Context, workflowID string) ([]*models.ApprovalHistory, error) {
	query := `
		SELECT id, workflow_id, entity_type, entity_id, stage_number, action,
			actor_id, previous_status, new_status, comments, timestamp
		FROM approval_history
		WHERE workflow_id = ?
		ORDER BY id ASC
	`

	rows, err := r.db.Executor(ctx).QueryContext(ctx, query, workflowID)
	if err != nil {
		r.logger.Error("Failed to list history", zap.String("workflow_id", workflowID), zap.Error(err))
		return nil, fmt.Errorf("failed to list history: %w", err)
	}
	defer rows.Close()

	var entries []*models.ApprovalHistory
	for rows.Next() {
		var e models.ApprovalHistory
		err := rows.Scan(
			&e.ID,
			&e.WorkflowID,
			&e.EntityType,
			&e.EntityID,
			&e.StageNumber,
			&e.Action,
			&e.ActorID,
			&e.PreviousStatus,
			&e.NewStatus,
			&e.Comments,
			&e.Timestamp,
		)
		if err != nil {
			return nil, fmt.Errorf("failed to scan history: %w", err)
		}
		entries = append(entries, &e)
	}
	return entries, rows.Err()
}

// Verify interface compliance
var _ workflow.HistoryStore = (*HistoryRepository)(nil)
