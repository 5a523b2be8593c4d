package api

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/govbudget/budget-portal/internal/auth"
	"github.com/govbudget/budget-portal/internal/models"
	"github.com/govbudget/budget-portal/internal/workflow"
)

type allocationRequest struct {
	ProposalID   string   `json:"proposal_id" binding:"required"`
	Q1Allocation *float64 `json:"q1_allocation"`
	Q2Allocation *float64 `json:"q2_allocation"`
	Q3Allocation *float64 `json:"q3_allocation"`
	Q4Allocation *float64 `json:"q4_allocation"`
}

// handleCreateAllocation sanctions an approved proposal's budget. The
// sanctioned amount comes from the proposal; quarters default to an equal
// split when not given explicitly.
func (s *Server) handleCreateAllocation(c *gin.Context) {
	profile := auth.CurrentUser(c)
	if !workflow.HasRole(profile, models.RoleFinanceMinistryAdmin, models.RoleBudgetDivisionOfficer) {
		forbidden(c)
		return
	}

	var req allocationRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		badRequest(c, "proposal_id is required")
		return
	}

	p, err := s.proposals.GetByID(c.Request.Context(), req.ProposalID)
	if err != nil {
		s.internalError(c, "failed to get proposal", err)
		return
	}
	if p == nil {
		notFound(c, "proposal not found")
		return
	}
	if p.Status != models.StatusApproved {
		c.JSON(http.StatusConflict, gin.H{"error": "only approved proposals can be allocated"})
		return
	}

	existing, err := s.allocations.GetByProposal(c.Request.Context(), p.ID)
	if err != nil {
		s.internalError(c, "failed to check existing allocation", err)
		return
	}
	if existing != nil {
		c.JSON(http.StatusConflict, gin.H{"error": "proposal is already allocated"})
		return
	}

	quarter := p.TotalAmount / 4
	a := &models.BudgetAllocation{
		ProposalID:       p.ID,
		SchemeID:         p.SchemeID,
		FinancialYear:    p.FinancialYear,
		SanctionedAmount: p.TotalAmount,
		Q1Allocation:     quarter,
		Q2Allocation:     quarter,
		Q3Allocation:     quarter,
		Q4Allocation:     quarter,
		Status:           models.AllocationActive,
		SanctionedAt:     time.Now(),
		SanctionedBy:     profile.ID,
	}
	if req.Q1Allocation != nil {
		a.Q1Allocation = *req.Q1Allocation
	}
	if req.Q2Allocation != nil {
		a.Q2Allocation = *req.Q2Allocation
	}
	if req.Q3Allocation != nil {
		a.Q3Allocation = *req.Q3Allocation
	}
	if req.Q4Allocation != nil {
		a.Q4Allocation = *req.Q4Allocation
	}

	total := a.Q1Allocation + a.Q2Allocation + a.Q3Allocation + a.Q4Allocation
	if total > a.SanctionedAmount+0.01 {
		badRequest(c, "quarterly allocations exceed the sanctioned amount")
		return
	}

	if err := s.allocations.Create(c.Request.Context(), a); err != nil {
		s.internalError(c, "failed to create allocation", err)
		return
	}

	c.JSON(http.StatusCreated, a)
}

func (s *Server) handleListAllocations(c *gin.Context) {
	list, err := s.allocations.List(c.Request.Context(), c.Query("financial_year"))
	if err != nil {
		s.internalError(c, "failed to list allocations", err)
		return
	}
	c.JSON(http.StatusOK, list)
}

func (s *Server) handleGetAllocation(c *gin.Context) {
	a, err := s.allocations.GetByID(c.Request.Context(), c.Param("id"))
	if err != nil {
		s.internalError(c, "failed to get allocation", err)
		return
	}
	if a == nil {
		notFound(c, "allocation not found")
		return
	}
	c.JSON(http.StatusOK, a)
}
