package api

import (
	"context"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/govbudget/budget-portal/internal/auth"
	"github.com/govbudget/budget-portal/internal/models"
	"github.com/govbudget/budget-portal/internal/repository"
	"github.com/govbudget/budget-portal/internal/workflow"
	"github.com/govbudget/budget-portal/pkg/utils"
)

type lineItemRequest struct {
	HeadOfAccount string  `json:"head_of_account" binding:"required"`
	Description   string  `json:"description"`
	Amount        float64 `json:"amount" binding:"required"`
	BudgetType    string  `json:"budget_type" binding:"required"`
}

type proposalRequest struct {
	ProposalNumber string            `json:"proposal_number" binding:"required"`
	FinancialYear  string            `json:"financial_year" binding:"required"`
	SchemeID       string            `json:"scheme_id" binding:"required"`
	MinistryID     string            `json:"ministry_id" binding:"required"`
	DepartmentID   *string           `json:"department_id"`
	ProposalType   string            `json:"proposal_type" binding:"required"`
	Justification  string            `json:"justification"`
	LineItems      []lineItemRequest `json:"line_items"`
}

// buildProposal maps a request onto a model, deriving the revenue/capital
// split and total from the line items
func buildProposal(req proposalRequest, createdBy string) *models.BudgetProposal {
	p := &models.BudgetProposal{
		ProposalNumber: req.ProposalNumber,
		FinancialYear:  req.FinancialYear,
		SchemeID:       req.SchemeID,
		MinistryID:     req.MinistryID,
		DepartmentID:   req.DepartmentID,
		ProposalType:   models.ProposalType(req.ProposalType),
		Status:         models.StatusDraft,
		Justification:  req.Justification,
		CreatedBy:      createdBy,
	}

	for _, item := range req.LineItems {
		p.LineItems = append(p.LineItems, models.BudgetLineItem{
			HeadOfAccount: item.HeadOfAccount,
			Description:   item.Description,
			Amount:        item.Amount,
			BudgetType:    models.BudgetType(item.BudgetType),
		})
		p.TotalAmount += item.Amount
		switch models.BudgetType(item.BudgetType) {
		case models.BudgetRevenue:
			p.RevenueAmount += item.Amount
		case models.BudgetCapital:
			p.CapitalAmount += item.Amount
		}
	}

	return p
}

func (s *Server) handleCreateProposal(c *gin.Context) {
	profile := auth.CurrentUser(c)
	if !workflow.CanCreateBudgetProposal(profile) {
		forbidden(c)
		return
	}

	var req proposalRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		badRequest(c, "proposal_number, financial_year, scheme_id, ministry_id and proposal_type are required")
		return
	}
	if err := utils.ValidateFinancialYear(req.FinancialYear); err != nil {
		badRequest(c, err.Error())
		return
	}

	p := buildProposal(req, profile.ID)
	if err := s.proposals.Create(c.Request.Context(), p); err != nil {
		s.internalError(c, "failed to create proposal", err)
		return
	}

	c.JSON(http.StatusCreated, p)
}

func (s *Server) handleListProposals(c *gin.Context) {
	filter := repository.ProposalFilter{
		FinancialYear: c.Query("financial_year"),
		MinistryID:    c.Query("ministry_id"),
		DepartmentID:  c.Query("department_id"),
		SchemeID:      c.Query("scheme_id"),
		Status:        models.ProposalStatus(c.Query("status")),
		ProposalType:  models.ProposalType(c.Query("proposal_type")),
	}

	// Ministry-scoped roles only see their own ministry's proposals
	profile := auth.CurrentUser(c)
	if !workflow.CanViewAllData(profile) && profile.MinistryID != nil {
		filter.MinistryID = *profile.MinistryID
	}

	limit, offset := pagination(c)
	list, err := s.proposals.List(c.Request.Context(), filter, limit, offset)
	if err != nil {
		s.internalError(c, "failed to list proposals", err)
		return
	}
	c.JSON(http.StatusOK, list)
}

func (s *Server) handleGetProposal(c *gin.Context) {
	p, err := s.proposals.GetByID(c.Request.Context(), c.Param("id"))
	if err != nil {
		s.internalError(c, "failed to get proposal", err)
		return
	}
	if p == nil {
		notFound(c, "proposal not found")
		return
	}
	c.JSON(http.StatusOK, p)
}

func (s *Server) handleUpdateProposal(c *gin.Context) {
	p, err := s.proposals.GetByID(c.Request.Context(), c.Param("id"))
	if err != nil {
		s.internalError(c, "failed to get proposal", err)
		return
	}
	if p == nil {
		notFound(c, "proposal not found")
		return
	}

	if !workflow.CanEditProposal(auth.CurrentUser(c), p) {
		forbidden(c)
		return
	}

	var req proposalRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		badRequest(c, "proposal_number, financial_year, scheme_id, ministry_id and proposal_type are required")
		return
	}
	if err := utils.ValidateFinancialYear(req.FinancialYear); err != nil {
		badRequest(c, err.Error())
		return
	}

	updated := buildProposal(req, p.CreatedBy)
	updated.ID = p.ID
	updated.Status = p.Status
	updated.SubmittedAt = p.SubmittedAt
	for i := range updated.LineItems {
		updated.LineItems[i].ProposalID = p.ID
	}

	if err := s.proposals.Update(c.Request.Context(), updated); err != nil {
		s.internalError(c, "failed to update proposal", err)
		return
	}

	c.JSON(http.StatusOK, updated)
}

// handleSubmitProposal moves a draft into the approval pipeline: the proposal
// is stamped Submitted and a workflow with its stages is created
func (s *Server) handleSubmitProposal(c *gin.Context) {
	id := c.Param("id")
	profile := auth.CurrentUser(c)

	p, err := s.proposals.GetByID(c.Request.Context(), id)
	if err != nil {
		s.internalError(c, "failed to get proposal", err)
		return
	}
	if p == nil {
		notFound(c, "proposal not found")
		return
	}
	if !workflow.CanEditProposal(profile, p) {
		forbidden(c)
		return
	}
	if p.Status != models.StatusDraft {
		c.JSON(http.StatusConflict, gin.H{"error": "only draft proposals can be submitted"})
		return
	}

	// Stamp and workflow creation commit together so a failure leaves the
	// proposal editable
	var workflowID string
	err = s.tx.WithTransaction(c.Request.Context(), func(ctx context.Context) error {
		if err := s.proposals.MarkSubmitted(ctx, id, time.Now()); err != nil {
			return err
		}
		wfID, err := s.engine.CreateWorkflow(ctx, models.EntityBudgetProposal, id, profile.ID)
		if err != nil {
			return err
		}
		workflowID = wfID
		return nil
	})
	if err != nil {
		s.workflowError(c, err)
		return
	}

	c.JSON(http.StatusCreated, gin.H{"workflow_id": workflowID})
}
