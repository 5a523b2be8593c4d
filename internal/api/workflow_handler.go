package api

import (
	"context"
	"fmt"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"github.com/govbudget/budget-portal/internal/auth"
	"github.com/govbudget/budget-portal/internal/models"
	"github.com/govbudget/budget-portal/internal/workflow"
)

func (s *Server) handleGetWorkflow(c *gin.Context) {
	entityType, ok := parseEntityType(c.Param("entityType"))
	if !ok {
		badRequest(c, "unknown entity type")
		return
	}

	wf, err := s.engine.GetWorkflow(c.Request.Context(), entityType, c.Param("entityId"))
	if err != nil {
		s.internalError(c, "failed to get workflow", err)
		return
	}
	if wf == nil {
		notFound(c, "no workflow for entity")
		return
	}
	c.JSON(http.StatusOK, wf)
}

func (s *Server) handleWorkflowHistory(c *gin.Context) {
	entries, err := s.history.ListByWorkflow(c.Request.Context(), c.Param("id"))
	if err != nil {
		s.internalError(c, "failed to list history", err)
		return
	}
	c.JSON(http.StatusOK, entries)
}

type stageActionRequest struct {
	Comments string `json:"comments"`
}

// bindStageAction reads the optional action body; an empty body is fine but
// malformed JSON is not
func bindStageAction(c *gin.Context) (stageActionRequest, bool) {
	var req stageActionRequest
	if c.Request.ContentLength == 0 {
		return req, true
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		badRequest(c, "invalid request body")
		return req, false
	}
	return req, true
}

// entityScope resolves the ministry and department the workflow's entity
// belongs to, for stage authorization
func (s *Server) entityScope(ctx context.Context, wf *models.ApprovalWorkflow) (ministryID, departmentID *string, err error) {
	switch wf.EntityType {
	case models.EntityBudgetProposal:
		p, err := s.proposals.GetByID(ctx, wf.EntityID)
		if err != nil {
			return nil, nil, err
		}
		if p == nil {
			return nil, nil, fmt.Errorf("proposal %s not found", wf.EntityID)
		}
		return &p.MinistryID, p.DepartmentID, nil
	case models.EntityExpenditure:
		e, err := s.expenditures.GetByID(ctx, wf.EntityID)
		if err != nil {
			return nil, nil, err
		}
		if e == nil {
			return nil, nil, fmt.Errorf("expenditure %s not found", wf.EntityID)
		}
		return &e.MinistryID, e.DepartmentID, nil
	default:
		return nil, nil, fmt.Errorf("%w: %s", workflow.ErrUnsupportedEntityType, wf.EntityType)
	}
}

// authorizeStageAction loads the workflow and checks the caller may act on
// the given stage; returns the stage number on success
func (s *Server) authorizeStageAction(c *gin.Context) (string, int, bool) {
	workflowID := c.Param("id")
	stageNumber, err := strconv.Atoi(c.Param("stage"))
	if err != nil || stageNumber < 1 {
		badRequest(c, "invalid stage number")
		return "", 0, false
	}

	wf, err := s.engine.GetWorkflowByID(c.Request.Context(), workflowID)
	if err != nil {
		s.workflowError(c, err)
		return "", 0, false
	}

	var stageRole models.UserRole
	for _, stage := range wf.Stages {
		if stage.StageNumber == stageNumber {
			stageRole = stage.ApproverRole
			break
		}
	}
	if stageRole == "" {
		notFound(c, "no such stage")
		return "", 0, false
	}

	ministryID, departmentID, err := s.entityScope(c.Request.Context(), wf)
	if err != nil {
		s.workflowError(c, err)
		return "", 0, false
	}

	if !workflow.CanApproveStage(auth.CurrentUser(c), stageRole, ministryID, departmentID) {
		forbidden(c)
		return "", 0, false
	}

	return workflowID, stageNumber, true
}

func (s *Server) handleApproveStage(c *gin.Context) {
	workflowID, stageNumber, ok := s.authorizeStageAction(c)
	if !ok {
		return
	}

	req, ok := bindStageAction(c)
	if !ok {
		return
	}

	profile := auth.CurrentUser(c)
	if err := s.engine.ApproveStage(c.Request.Context(), workflowID, stageNumber, profile.ID, req.Comments); err != nil {
		s.workflowError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"status": "approved"})
}

func (s *Server) handleRejectStage(c *gin.Context) {
	workflowID, stageNumber, ok := s.authorizeStageAction(c)
	if !ok {
		return
	}

	req, ok := bindStageAction(c)
	if !ok {
		return
	}

	profile := auth.CurrentUser(c)
	if err := s.engine.RejectStage(c.Request.Context(), workflowID, stageNumber, profile.ID, req.Comments); err != nil {
		s.workflowError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"status": "rejected"})
}

func (s *Server) handleRequestRevision(c *gin.Context) {
	workflowID, stageNumber, ok := s.authorizeStageAction(c)
	if !ok {
		return
	}

	req, ok := bindStageAction(c)
	if !ok {
		return
	}

	profile := auth.CurrentUser(c)
	if err := s.engine.RequestRevision(c.Request.Context(), workflowID, stageNumber, profile.ID, req.Comments); err != nil {
		s.workflowError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"status": "revision requested"})
}

// handleResubmit reopens a revision-requested workflow. Only the original
// submitter or an admin may resubmit.
func (s *Server) handleResubmit(c *gin.Context) {
	workflowID := c.Param("id")
	profile := auth.CurrentUser(c)

	wf, err := s.engine.GetWorkflowByID(c.Request.Context(), workflowID)
	if err != nil {
		s.workflowError(c, err)
		return
	}
	if wf.SubmittedBy != profile.ID && !workflow.IsAdmin(profile) {
		forbidden(c)
		return
	}

	if err := s.engine.Resubmit(c.Request.Context(), workflowID, profile.ID); err != nil {
		s.workflowError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"status": "resubmitted"})
}
