package workflow

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/govbudget/budget-portal/internal/models"
	"go.uber.org/zap"
)

// Engine drives entities through their sequential role-gated approval
// stages and keeps the owning entity's status in step with the workflow.
type Engine struct {
	tx           TxRunner
	workflows    WorkflowStore
	history      HistoryStore
	proposals    EntityStatusWriter
	expenditures EntityStatusWriter
	logger       *zap.Logger
	now          func() time.Time
}

// NewEngine creates a new workflow engine
func NewEngine(
	tx TxRunner,
	workflows WorkflowStore,
	history HistoryStore,
	proposals EntityStatusWriter,
	expenditures EntityStatusWriter,
	logger *zap.Logger,
) *Engine {
	return &Engine{
		tx:           tx,
		workflows:    workflows,
		history:      history,
		proposals:    proposals,
		expenditures: expenditures,
		logger:       logger,
		now:          time.Now,
	}
}

// statusWriter resolves the backing store for an entity type. The switch is
// exhaustive over the declared types; anything without a writer is a hard
// error rather than a silent no-op.
func (e *Engine) statusWriter(entityType models.EntityType) (EntityStatusWriter, error) {
	switch entityType {
	case models.EntityBudgetProposal:
		return e.proposals, nil
	case models.EntityExpenditure:
		return e.expenditures, nil
	case models.EntityReallocation, models.EntityScheme:
		return nil, fmt.Errorf("%w: %s", ErrUnsupportedEntityType, entityType)
	default:
		return nil, fmt.Errorf("%w: %s", ErrUnsupportedEntityType, entityType)
	}
}

// CreateWorkflow creates a workflow and all of its stages for an entity.
// The workflow starts at stage 1 with status Submitted; every stage is
// created Pending. Workflow row and stage rows are written in a single
// transaction so a half-created workflow can never be observed.
func (e *Engine) CreateWorkflow(ctx context.Context, entityType models.EntityType, entityID, submittedBy string) (string, error) {
	template := StageTemplates(entityType)
	if len(template) == 0 {
		return "", fmt.Errorf("%w: %s", ErrNoTemplate, entityType)
	}

	now := e.now()
	wf := &models.ApprovalWorkflow{
		ID:           uuid.NewString(),
		EntityType:   entityType,
		EntityID:     entityID,
		CurrentStage: 1,
		TotalStages:  len(template),
		Status:       models.StatusSubmitted,
		SubmittedBy:  submittedBy,
		SubmittedAt:  now,
	}

	stages := make([]models.ApprovalStage, 0, len(template))
	for _, t := range template {
		stages = append(stages, models.ApprovalStage{
			ID:           uuid.NewString(),
			WorkflowID:   wf.ID,
			StageNumber:  t.StageNumber,
			StageName:    t.StageName,
			ApproverRole: t.ApproverRole,
			Status:       models.StagePending,
		})
	}

	err := e.tx.WithTransaction(ctx, func(txCtx context.Context) error {
		if err := e.workflows.Create(txCtx, wf, stages); err != nil {
			return fmt.Errorf("create workflow: %w", err)
		}

		entry := &models.ApprovalHistory{
			WorkflowID: wf.ID,
			EntityType: entityType,
			EntityID:   entityID,
			Action:     models.ActionSubmitted,
			ActorID:    submittedBy,
			NewStatus:  string(models.StatusSubmitted),
			Timestamp:  now,
		}
		if err := e.history.Append(txCtx, entry); err != nil {
			return fmt.Errorf("append history: %w", err)
		}
		return nil
	})
	if err != nil {
		e.logger.Error("Failed to create workflow",
			zap.String("entity_type", string(entityType)),
			zap.String("entity_id", entityID),
			zap.Error(err))
		return "", err
	}

	e.logger.Info("Workflow created",
		zap.String("workflow_id", wf.ID),
		zap.String("entity_type", string(entityType)),
		zap.String("entity_id", entityID),
		zap.Int("total_stages", wf.TotalStages))
	return wf.ID, nil
}

// GetWorkflow fetches the most recently created workflow for an entity,
// stages included. Returns nil when the entity has no workflow.
func (e *Engine) GetWorkflow(ctx context.Context, entityType models.EntityType, entityID string) (*models.ApprovalWorkflow, error) {
	wf, err := e.workflows.GetLatestByEntity(ctx, entityType, entityID)
	if err != nil {
		return nil, fmt.Errorf("get workflow: %w", err)
	}
	if wf == nil {
		return nil, nil
	}

	stages, err := e.workflows.ListStages(ctx, wf.ID)
	if err != nil {
		return nil, fmt.Errorf("list stages: %w", err)
	}
	wf.Stages = stages
	return wf, nil
}

// GetWorkflowByID fetches a workflow and its stages by workflow id.
// Returns ErrWorkflowNotFound when no such workflow exists.
func (e *Engine) GetWorkflowByID(ctx context.Context, workflowID string) (*models.ApprovalWorkflow, error) {
	wf, err := e.workflows.GetByID(ctx, workflowID)
	if err != nil {
		return nil, fmt.Errorf("get workflow: %w", err)
	}
	if wf == nil {
		return nil, ErrWorkflowNotFound
	}

	stages, err := e.workflows.ListStages(ctx, wf.ID)
	if err != nil {
		return nil, fmt.Errorf("list stages: %w", err)
	}
	wf.Stages = stages
	return wf, nil
}

// loadActionable loads a workflow and verifies the targeted stage is the
// workflow's current, still-pending stage. Guards the read-then-write
// sequence against double approvals and out-of-order actions.
func (e *Engine) loadActionable(ctx context.Context, workflowID string, stageNumber int) (*models.ApprovalWorkflow, error) {
	wf, err := e.workflows.GetByID(ctx, workflowID)
	if err != nil {
		return nil, fmt.Errorf("get workflow: %w", err)
	}
	if wf == nil {
		return nil, ErrWorkflowNotFound
	}

	if wf.Status != models.StatusSubmitted && wf.Status != models.StatusUnderReview {
		return nil, fmt.Errorf("%w: status %s", ErrWorkflowClosed, wf.Status)
	}
	if stageNumber != wf.CurrentStage {
		return nil, fmt.Errorf("%w: stage %d, current %d", ErrStageMismatch, stageNumber, wf.CurrentStage)
	}

	stage, err := e.workflows.GetStage(ctx, workflowID, stageNumber)
	if err != nil {
		return nil, fmt.Errorf("get stage: %w", err)
	}
	if stage == nil {
		return nil, fmt.Errorf("%w: stage %d", ErrWorkflowNotFound, stageNumber)
	}
	if stage.Status != models.StagePending {
		return nil, fmt.Errorf("%w: stage %d is %s", ErrStageNotPending, stageNumber, stage.Status)
	}

	return wf, nil
}

// ApproveStage approves the current stage of a workflow. Approving the final
// stage completes the workflow and stamps the entity Approved; any earlier
// stage advances the workflow one stage and sets Under Review. Stage,
// workflow, entity and history writes share one transaction.
func (e *Engine) ApproveStage(ctx context.Context, workflowID string, stageNumber int, approverID string, comments string) error {
	now := e.now()

	err := e.tx.WithTransaction(ctx, func(txCtx context.Context) error {
		wf, err := e.loadActionable(txCtx, workflowID, stageNumber)
		if err != nil {
			return err
		}

		writer, err := e.statusWriter(wf.EntityType)
		if err != nil {
			return err
		}

		var c *string
		if strings.TrimSpace(comments) != "" {
			c = &comments
		}
		if err := e.workflows.UpdateStage(txCtx, workflowID, stageNumber, models.StageApproved, approverID, c, now); err != nil {
			return fmt.Errorf("update stage: %w", err)
		}

		newStatus := models.StatusUnderReview
		if stageNumber == wf.TotalStages {
			newStatus = models.StatusApproved
			if err := e.workflows.Complete(txCtx, workflowID, models.StatusApproved, now); err != nil {
				return fmt.Errorf("complete workflow: %w", err)
			}
			if err := writer.UpdateStatus(txCtx, wf.EntityID, models.StatusApproved, &approverID, &now); err != nil {
				return fmt.Errorf("sync entity status: %w", err)
			}
		} else {
			if err := e.workflows.UpdateProgress(txCtx, workflowID, stageNumber+1, models.StatusUnderReview); err != nil {
				return fmt.Errorf("advance workflow: %w", err)
			}
			if err := writer.UpdateStatus(txCtx, wf.EntityID, models.StatusUnderReview, nil, nil); err != nil {
				return fmt.Errorf("sync entity status: %w", err)
			}
		}

		entry := &models.ApprovalHistory{
			WorkflowID:     workflowID,
			EntityType:     wf.EntityType,
			EntityID:       wf.EntityID,
			StageNumber:    stageNumber,
			Action:         models.ActionApproved,
			ActorID:        approverID,
			PreviousStatus: string(wf.Status),
			NewStatus:      string(newStatus),
			Comments:       comments,
			Timestamp:      now,
		}
		if err := e.history.Append(txCtx, entry); err != nil {
			return fmt.Errorf("append history: %w", err)
		}
		return nil
	})
	if err != nil {
		e.logger.Error("Failed to approve stage",
			zap.String("workflow_id", workflowID),
			zap.Int("stage_number", stageNumber),
			zap.Error(err))
		return err
	}

	e.logger.Info("Stage approved",
		zap.String("workflow_id", workflowID),
		zap.Int("stage_number", stageNumber),
		zap.String("approver_id", approverID))
	return nil
}

// RejectStage rejects the current stage and terminates the workflow.
// Rejection is terminal from any stage; current_stage is left untouched.
// Comments are mandatory: a rejection without a reason is meaningless.
func (e *Engine) RejectStage(ctx context.Context, workflowID string, stageNumber int, approverID, comments string) error {
	return e.closeStage(ctx, workflowID, stageNumber, approverID, comments, false)
}

// RequestRevision sends the workflow back to the submitter for rework.
// The stage is recorded as Rejected with the reviewer's comments, but the
// workflow stays open in Revision Requested until resubmission.
func (e *Engine) RequestRevision(ctx context.Context, workflowID string, stageNumber int, approverID, comments string) error {
	return e.closeStage(ctx, workflowID, stageNumber, approverID, comments, true)
}

// closeStage is the shared body of RejectStage and RequestRevision; the two
// differ only in the workflow status written and in terminality.
func (e *Engine) closeStage(ctx context.Context, workflowID string, stageNumber int, approverID, comments string, revision bool) error {
	if strings.TrimSpace(comments) == "" {
		return ErrCommentsRequired
	}
	now := e.now()

	err := e.tx.WithTransaction(ctx, func(txCtx context.Context) error {
		wf, err := e.loadActionable(txCtx, workflowID, stageNumber)
		if err != nil {
			return err
		}

		writer, err := e.statusWriter(wf.EntityType)
		if err != nil {
			return err
		}

		if err := e.workflows.UpdateStage(txCtx, workflowID, stageNumber, models.StageRejected, approverID, &comments, now); err != nil {
			return fmt.Errorf("update stage: %w", err)
		}

		newStatus := models.StatusRejected
		action := models.ActionRejected
		if revision {
			newStatus = models.StatusRevisionRequested
			action = models.ActionRevisionRequested
			if err := e.workflows.UpdateProgress(txCtx, workflowID, wf.CurrentStage, models.StatusRevisionRequested); err != nil {
				return fmt.Errorf("update workflow: %w", err)
			}
		} else {
			if err := e.workflows.Complete(txCtx, workflowID, models.StatusRejected, now); err != nil {
				return fmt.Errorf("complete workflow: %w", err)
			}
		}

		if err := writer.UpdateStatus(txCtx, wf.EntityID, newStatus, nil, nil); err != nil {
			return fmt.Errorf("sync entity status: %w", err)
		}

		entry := &models.ApprovalHistory{
			WorkflowID:     workflowID,
			EntityType:     wf.EntityType,
			EntityID:       wf.EntityID,
			StageNumber:    stageNumber,
			Action:         action,
			ActorID:        approverID,
			PreviousStatus: string(wf.Status),
			NewStatus:      string(newStatus),
			Comments:       comments,
			Timestamp:      now,
		}
		if err := e.history.Append(txCtx, entry); err != nil {
			return fmt.Errorf("append history: %w", err)
		}
		return nil
	})
	if err != nil {
		e.logger.Error("Failed to close stage",
			zap.String("workflow_id", workflowID),
			zap.Int("stage_number", stageNumber),
			zap.Bool("revision", revision),
			zap.Error(err))
		return err
	}

	e.logger.Info("Stage closed",
		zap.String("workflow_id", workflowID),
		zap.Int("stage_number", stageNumber),
		zap.Bool("revision", revision))
	return nil
}

// Resubmit reopens a workflow that is awaiting revision: back to stage 1,
// status Submitted, every stage reset to Pending, completed_at cleared, and
// the entity returned to Submitted. Only legal from Revision Requested.
func (e *Engine) Resubmit(ctx context.Context, workflowID, userID string) error {
	now := e.now()

	err := e.tx.WithTransaction(ctx, func(txCtx context.Context) error {
		wf, err := e.workflows.GetByID(txCtx, workflowID)
		if err != nil {
			return fmt.Errorf("get workflow: %w", err)
		}
		if wf == nil {
			return ErrWorkflowNotFound
		}
		if wf.Status != models.StatusRevisionRequested {
			return fmt.Errorf("%w: status %s", ErrNotRevisable, wf.Status)
		}

		writer, err := e.statusWriter(wf.EntityType)
		if err != nil {
			return err
		}

		if err := e.workflows.Reopen(txCtx, workflowID); err != nil {
			return fmt.Errorf("reopen workflow: %w", err)
		}
		if err := e.workflows.ResetStages(txCtx, workflowID); err != nil {
			return fmt.Errorf("reset stages: %w", err)
		}
		if err := writer.UpdateStatus(txCtx, wf.EntityID, models.StatusSubmitted, nil, nil); err != nil {
			return fmt.Errorf("sync entity status: %w", err)
		}

		entry := &models.ApprovalHistory{
			WorkflowID:     workflowID,
			EntityType:     wf.EntityType,
			EntityID:       wf.EntityID,
			Action:         models.ActionResubmitted,
			ActorID:        userID,
			PreviousStatus: string(models.StatusRevisionRequested),
			NewStatus:      string(models.StatusSubmitted),
			Timestamp:      now,
		}
		if err := e.history.Append(txCtx, entry); err != nil {
			return fmt.Errorf("append history: %w", err)
		}
		return nil
	})
	if err != nil {
		e.logger.Error("Failed to resubmit workflow",
			zap.String("workflow_id", workflowID),
			zap.Error(err))
		return err
	}

	e.logger.Info("Workflow resubmitted", zap.String("workflow_id", workflowID))
	return nil
}
