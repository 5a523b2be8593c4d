package workflow

import (
	"context"
	"time"

	"github.com/govbudget/budget-portal/internal/models"
)

// WorkflowStore is the persistence contract the engine drives workflow and
// stage rows through. Implementations must honor a transaction already
// riding on the context.
type WorkflowStore interface {
	// Create inserts the workflow row and all of its stage rows
	Create(ctx context.Context, wf *models.ApprovalWorkflow, stages []models.ApprovalStage) error

	// GetByID returns the workflow without stages, nil when missing
	GetByID(ctx context.Context, id string) (*models.ApprovalWorkflow, error)

	// GetLatestByEntity returns the most recently created workflow for an
	// entity, nil when none exists
	GetLatestByEntity(ctx context.Context, entityType models.EntityType, entityID string) (*models.ApprovalWorkflow, error)

	// ListStages returns a workflow's stages ordered by stage number
	ListStages(ctx context.Context, workflowID string) ([]models.ApprovalStage, error)

	// GetStage returns one stage by (workflow, stage number), nil when missing
	GetStage(ctx context.Context, workflowID string, stageNumber int) (*models.ApprovalStage, error)

	// UpdateStage records an action on a stage
	UpdateStage(ctx context.Context, workflowID string, stageNumber int, status models.StageStatus, approverID string, comments *string, actionDate time.Time) error

	// UpdateProgress moves the workflow to a stage and status (non-terminal)
	UpdateProgress(ctx context.Context, id string, currentStage int, status models.ProposalStatus) error

	// Complete sets a terminal status and stamps completed_at
	Complete(ctx context.Context, id string, status models.ProposalStatus, completedAt time.Time) error

	// Reopen resets the workflow to stage 1 / Submitted and clears completed_at
	Reopen(ctx context.Context, id string) error

	// ResetStages returns every stage of a workflow to Pending, clearing
	// approver, comments and action date
	ResetStages(ctx context.Context, workflowID string) error
}

// HistoryStore appends immutable audit entries for workflow actions
type HistoryStore interface {
	Append(ctx context.Context, entry *models.ApprovalHistory) error
}

// EntityStatusWriter pushes workflow-driven status changes onto the owning
// entity record. approvedBy and approvedAt are only set on final approval.
type EntityStatusWriter interface {
	UpdateStatus(ctx context.Context, entityID string, status models.ProposalStatus, approvedBy *string, approvedAt *time.Time) error
}

// TxRunner executes a function within a storage transaction
type TxRunner interface {
	WithTransaction(ctx context.Context, fn func(ctx context.Context) error) error
}
