package workflow

import "errors"

var (
	// ErrWorkflowNotFound is returned when a workflow id does not resolve
	ErrWorkflowNotFound = errors.New("workflow not found")

	// ErrNoTemplate is returned when an entity type has no approval route
	ErrNoTemplate = errors.New("no approval route defined for entity type")

	// ErrUnsupportedEntityType is returned by the entity-status sync when
	// no backing store is registered for the entity type
	ErrUnsupportedEntityType = errors.New("unsupported entity type for status sync")

	// ErrWorkflowClosed is returned when acting on a workflow whose status
	// no longer allows stage actions
	ErrWorkflowClosed = errors.New("workflow is not open for approval actions")

	// ErrStageMismatch is returned when the stage number does not match the
	// workflow's current stage
	ErrStageMismatch = errors.New("stage is not the workflow's current stage")

	// ErrStageNotPending is returned when the targeted stage was already acted on
	ErrStageNotPending = errors.New("stage has already been actioned")

	// ErrCommentsRequired is returned by reject/revise when no reason is given
	ErrCommentsRequired = errors.New("comments are required for this action")

	// ErrNotRevisable is returned by Resubmit when the workflow is not in
	// Revision Requested status
	ErrNotRevisable = errors.New("workflow is not awaiting revision")
)
