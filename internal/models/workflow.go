package models

import "time"

// ApprovalWorkflow represents one approval run for one entity instance
type ApprovalWorkflow struct {
	ID           string          `json:"id"`
	EntityType   EntityType      `json:"entity_type"`
	EntityID     string          `json:"entity_id"`
	CurrentStage int             `json:"current_stage"`
	TotalStages  int             `json:"total_stages"`
	Status       ProposalStatus  `json:"status"`
	SubmittedBy  string          `json:"submitted_by"`
	SubmittedAt  time.Time       `json:"submitted_at"`
	CompletedAt  *time.Time      `json:"completed_at,omitempty"`
	CreatedAt    time.Time       `json:"created_at"`
	Stages       []ApprovalStage `json:"stages,omitempty"`
}

// ApprovalStage is one role-gated checkpoint within a workflow. All stages
// for a workflow are created together at workflow-creation time.
type ApprovalStage struct {
	ID           string      `json:"id"`
	WorkflowID   string      `json:"workflow_id"`
	StageNumber  int         `json:"stage_number"`
	StageName    string      `json:"stage_name"`
	ApproverRole UserRole    `json:"approver_role"`
	ApproverID   *string     `json:"approver_id,omitempty"`
	Status       StageStatus `json:"status"`
	Comments     *string     `json:"comments,omitempty"`
	ActionDate   *time.Time  `json:"action_date,omitempty"`
	CreatedAt    time.Time   `json:"created_at"`
}

// ApprovalHistory is the audit trail of workflow actions
type ApprovalHistory struct {
	ID             int64      `json:"id"`
	WorkflowID     string     `json:"workflow_id"`
	EntityType     EntityType `json:"entity_type"`
	EntityID       string     `json:"entity_id"`
	StageNumber    int        `json:"stage_number"`
	Action         string     `json:"action"` // SUBMITTED, APPROVED, REJECTED, REVISION_REQUESTED, RESUBMITTED
	ActorID        string     `json:"actor_id"`
	PreviousStatus string     `json:"previous_status"`
	NewStatus      string     `json:"new_status"`
	Comments       string     `json:"comments,omitempty"`
	Timestamp      time.Time  `json:"timestamp"`
}

// Workflow history action constants
const (
	ActionSubmitted         = "SUBMITTED"
	ActionApproved          = "APPROVED"
	ActionRejected          = "REJECTED"
	ActionRevisionRequested = "REVISION_REQUESTED"
	ActionResubmitted       = "RESUBMITTED"
)
