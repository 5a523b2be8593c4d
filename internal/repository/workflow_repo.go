package repository

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"github.com/govbudget/budget-portal/internal/models"
	"github.com/govbudget/budget-portal/internal/workflow"
	"github.com/govbudget/budget-portal/pkg/database"
	"go.uber.org/zap"
)

// WorkflowRepository persists approval workflows and their stages
type WorkflowRepository struct {
	db     *database.DB
	logger *zap.Logger
}

// NewWorkflowRepository creates a new workflow repository
func NewWorkflowRepository(db *database.DB, logger *zap.Logger) *WorkflowRepository {
	return &WorkflowRepository{
		db:     db,
		logger: logger,
	}
}

// Create inserts a workflow row and all of its stage rows
func (r *WorkflowRepository) Create(ctx context.Context, wf *models.ApprovalWorkflow, stages []models.ApprovalStage) error {
	ex := r.db.Executor(ctx)

	query := `
		INSERT INTO approval_workflows (
			id, entity_type, entity_id, current_stage, total_stages,
			status, submitted_by, submitted_at
		) VALUES (?, ?, ?, ?, ?, ?, ?, ?)
	`
	_, err := ex.ExecContext(ctx, query,
		wf.ID,
		wf.EntityType,
		wf.EntityID,
		wf.CurrentStage,
		wf.TotalStages,
		wf.Status,
		wf.SubmittedBy,
		wf.SubmittedAt,
	)
	if err != nil {
		r.logger.Error("Failed to create workflow", zap.Error(err))
		return fmt.Errorf("failed to create workflow: %w", err)
	}

	stageQuery := `
		INSERT INTO approval_stages (
			id, workflow_id, stage_number, stage_name, approver_role, status
		) VALUES (?, ?, ?, ?, ?, ?)
	`
	for _, stage := range stages {
		_, err := ex.ExecContext(ctx, stageQuery,
			stage.ID,
			stage.WorkflowID,
			stage.StageNumber,
			stage.StageName,
			stage.ApproverRole,
			stage.Status,
		)
		if err != nil {
			r.logger.Error("Failed to create stage",
				zap.Int("stage_number", stage.StageNumber),
				zap.Error(err))
			return fmt.Errorf("failed to create stage %d: %w", stage.StageNumber, err)
		}
	}

	return nil
}

const workflowColumns = `
	id, entity_type, entity_id, current_stage, total_stages,
	status, submitted_by, submitted_at, completed_at, created_at
`

// GetByID retrieves a workflow by id, nil when missing
func (r *WorkflowRepository) GetByID(ctx context.Context, id string) (*models.ApprovalWorkflow, error) {
	query := `SELECT ` + workflowColumns + ` FROM approval_workflows WHERE id = ?`

	wf, err := r.scanWorkflow(r.db.Executor(ctx).QueryRowContext(ctx, query, id))
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		r.logger.Error("Failed to get workflow", zap.String("id", id), zap.Error(err))
		return nil, fmt.Errorf("failed to get workflow: %w", err)
	}
	return wf, nil
}

// GetLatestByEntity retrieves the most recently created workflow for an
// entity, nil when the entity has none
func (r *WorkflowRepository) GetLatestByEntity(ctx context.Context, entityType models.EntityType, entityID string) (*models.ApprovalWorkflow, error) {
	query := `
		SELECT ` + workflowColumns + `
		FROM approval_workflows
		WHERE entity_type = ? AND entity_id = ?
		ORDER BY created_at DESC, submitted_at DESC
		LIMIT 1
	`

	wf, err := r.scanWorkflow(r.db.Executor(ctx).QueryRowContext(ctx, query, entityType, entityID))
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		r.logger.Error("Failed to get workflow by entity",
			zap.String("entity_type", string(entityType)),
			zap.String("entity_id", entityID),
			zap.Error(err))
		return nil, fmt.Errorf("failed to get workflow by entity: %w", err)
	}
	return wf, nil
}

// ListStages returns a workflow's stages ordered by stage number
func (r *WorkflowRepository) ListStages(ctx context.Context, workflowID string) ([]models.ApprovalStage, error) {
	query := `
		SELECT id, workflow_id, stage_number, stage_name, approver_role,
			approver_id, status, comments, action_date, created_at
		FROM approval_stages
		WHERE workflow_id = ?
		ORDER BY stage_number ASC
	`

	rows, err := r.db.Executor(ctx).QueryContext(ctx, query, workflowID)
	if err != nil {
		r.logger.Error("Failed to list stages", zap.String("workflow_id", workflowID), zap.Error(err))
		return nil, fmt.Errorf("failed to list stages: %w", err)
	}
	defer rows.Close()

	var stages []models.ApprovalStage
	for rows.Next() {
		stage, err := scanStage(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan stage: %w", err)
		}
		stages = append(stages, *stage)
	}
	return stages, rows.Err()
}

// GetStage returns one stage by (workflow, stage number), nil when missing
func (r *WorkflowRepository) GetStage(ctx context.Context, workflowID string, stageNumber int) (*models.ApprovalStage, error) {
	query := `
		SELECT id, workflow_id, stage_number, stage_name, approver_role,
			approver_id, status, comments, action_date, created_at
		FROM approval_stages
		WHERE workflow_id = ? AND stage_number = ?
	`

	stage, err := scanStage(r.db.Executor(ctx).QueryRowContext(ctx, query, workflowID, stageNumber))
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		r.logger.Error("Failed to get stage",
			zap.String("workflow_id", workflowID),
			zap.Int("stage_number", stageNumber),
			zap.Error(err))
		return nil, fmt.Errorf("failed to get stage: %w", err)
	}
	return stage, nil
}

// UpdateStage records an approval action on a stage
func (r *WorkflowRepository) UpdateStage(ctx context.Context, workflowID string, stageNumber int, status models.StageStatus, approverID string, comments *string, actionDate time.Time) error {
	query := `
		UPDATE approval_stages
		SET status = ?, approver_id = ?, comments = ?, action_date = ?
		WHERE workflow_id = ? AND stage_number = ?
	`

	result, err := r.db.Executor(ctx).ExecContext(ctx, query,
		status, approverID, comments, actionDate, workflowID, stageNumber)
	if err != nil {
		r.logger.Error("Failed to update stage",
			zap.String("workflow_id", workflowID),
			zap.Int("stage_number", stageNumber),
			zap.Error(err))
		return fmt.Errorf("failed to update stage: %w", err)
	}
	return requireRowAffected(result, "stage")
}

// UpdateProgress moves the workflow to a stage and a non-terminal status
func (r *WorkflowRepository) UpdateProgress(ctx context.Context, id string, currentStage int, status models.ProposalStatus) error {
	query := `UPDATE approval_workflows SET current_stage = ?, status = ? WHERE id = ?`

	result, err := r.db.Executor(ctx).ExecContext(ctx, query, currentStage, status, id)
	if err != nil {
		r.logger.Error("Failed to update workflow progress", zap.String("id", id), zap.Error(err))
		return fmt.Errorf("failed to update workflow progress: %w", err)
	}
	return requireRowAffected(result, "workflow")
}

// Complete sets a terminal status and stamps completed_at
func (r *WorkflowRepository) Complete(ctx context.Context, id string, status models.ProposalStatus, completedAt time.Time) error {
	query := `UPDATE approval_workflows SET status = ?, completed_at = ? WHERE id = ?`

	result, err := r.db.Executor(ctx).ExecContext(ctx, query, status, completedAt, id)
	if err != nil {
		r.logger.Error("Failed to complete workflow", zap.String("id", id), zap.Error(err))
		return fmt.Errorf("failed to complete workflow: %w", err)
	}
	return requireRowAffected(result, "workflow")
}

// Reopen resets the workflow to stage 1 / Submitted and clears completed_at
func (r *WorkflowRepository) Reopen(ctx context.Context, id string) error {
	query := `
		UPDATE approval_workflows
		SET current_stage = 1, status = ?, completed_at = NULL
		WHERE id = ?
	`

	result, err := r.db.Executor(ctx).ExecContext(ctx, query, models.StatusSubmitted, id)
	if err != nil {
		r.logger.Error("Failed to reopen workflow", zap.String("id", id), zap.Error(err))
		return fmt.Errorf("failed to reopen workflow: %w", err)
	}
	return requireRowAffected(result, "workflow")
}

// ResetStages returns every stage of a workflow to Pending
func (r *WorkflowRepository) ResetStages(ctx context.Context, workflowID string) error {
	query := `
		UPDATE approval_stages
		SET status = ?, approver_id = NULL, comments = NULL, action_date = NULL
		WHERE workflow_id = ?
	`

	_, err := r.db.Executor(ctx).ExecContext(ctx, query, models.StagePending, workflowID)
	if err != nil {
		r.logger.Error("Failed to reset stages", zap.String("workflow_id", workflowID), zap.Error(err))
		return fmt.Errorf("failed to reset stages: %w", err)
	}
	return nil
}

// rowScanner covers *sql.Row and *sql.Rows
type rowScanner interface {
	Scan(dest ...interface{}) error
}

func (r *WorkflowRepository) scanWorkflow(row rowScanner) (*models.ApprovalWorkflow, error) {
	var wf models.ApprovalWorkflow
	var completedAt sql.NullTime

	err := row.Scan(
		&wf.ID,
		&wf.EntityType,
		&wf.EntityID,
		&wf.CurrentStage,
		&wf.TotalStages,
		&wf.Status,
		&wf.SubmittedBy,
		&wf.SubmittedAt,
		&completedAt,
		&wf.CreatedAt,
	)
	if err != nil {
		return nil, err
	}

	if completedAt.Valid {
		wf.CompletedAt = &completedAt.Time
	}
	return &wf, nil
}

func scanStage(row rowScanner) (*models.ApprovalStage, error) {
	var stage models.ApprovalStage
	var approverID sql.NullString
	var comments sql.NullString
	var actionDate sql.NullTime

	err := row.Scan(
		&stage.ID,
		&stage.WorkflowID,
		&stage.StageNumber,
		&stage.StageName,
		&stage.ApproverRole,
		&approverID,
		&stage.Status,
		&comments,
		&actionDate,
		&stage.CreatedAt,
	)
	if err != nil {
		return nil, err
	}

	if approverID.Valid {
		stage.ApproverID = &approverID.String
	}
	if comments.Valid {
		stage.Comments = &comments.String
	}
	if actionDate.Valid {
		stage.ActionDate = &actionDate.Time
	}
	return &stage, nil
}

func requireRowAffected(result sql.Result, what string) error {
	n, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to get rows affected: %w", err)
	}
	if n == 0 {
		return fmt.Errorf("%s not found", what)
	}
	return nil
}

// Verify interface compliance
var _ workflow.WorkflowStore = (*WorkflowRepository)(nil)
