package api

import (
	"context"
	"net/http"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/govbudget/budget-portal/internal/auth"
	"github.com/govbudget/budget-portal/internal/models"
	"github.com/govbudget/budget-portal/internal/repository"
	"github.com/govbudget/budget-portal/internal/workflow"
	"github.com/govbudget/budget-portal/pkg/utils"
)

type expenditureRequest struct {
	AllocationID    *string   `json:"allocation_id"`
	SchemeID        string    `json:"scheme_id" binding:"required"`
	MinistryID      string    `json:"ministry_id" binding:"required"`
	DepartmentID    *string   `json:"department_id"`
	FinancialYear   string    `json:"financial_year" binding:"required"`
	Month           int       `json:"month" binding:"required"`
	Amount          float64   `json:"amount" binding:"required"`
	ExpenditureType string    `json:"expenditure_type" binding:"required"`
	Description     string    `json:"description"`
	TransactionDate time.Time `json:"transaction_date" binding:"required"`
	VoucherNumber   string    `json:"voucher_number"`
}

func (s *Server) handleCreateExpenditure(c *gin.Context) {
	profile := auth.CurrentUser(c)
	if !workflow.CanRecordExpenditure(profile) {
		forbidden(c)
		return
	}

	var req expenditureRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		badRequest(c, "scheme_id, ministry_id, financial_year, month, amount, expenditure_type and transaction_date are required")
		return
	}
	if err := utils.ValidateFinancialYear(req.FinancialYear); err != nil {
		badRequest(c, err.Error())
		return
	}
	if err := utils.ValidateMonth(req.Month); err != nil {
		badRequest(c, err.Error())
		return
	}
	if err := utils.ValidateAmount(req.Amount); err != nil {
		badRequest(c, err.Error())
		return
	}

	e := &models.Expenditure{
		AllocationID:    req.AllocationID,
		SchemeID:        req.SchemeID,
		MinistryID:      req.MinistryID,
		DepartmentID:    req.DepartmentID,
		FinancialYear:   req.FinancialYear,
		Month:           req.Month,
		Amount:          req.Amount,
		ExpenditureType: models.BudgetType(req.ExpenditureType),
		Status:          models.StatusDraft,
		Description:     req.Description,
		TransactionDate: req.TransactionDate,
		VoucherNumber:   req.VoucherNumber,
		CreatedBy:       profile.ID,
	}
	if err := s.expenditures.Create(c.Request.Context(), e); err != nil {
		s.internalError(c, "failed to record expenditure", err)
		return
	}

	c.JSON(http.StatusCreated, e)
}

func (s *Server) handleListExpenditures(c *gin.Context) {
	month, _ := strconv.Atoi(c.Query("month"))
	filter := repository.ExpenditureFilter{
		FinancialYear: c.Query("financial_year"),
		SchemeID:      c.Query("scheme_id"),
		MinistryID:    c.Query("ministry_id"),
		DepartmentID:  c.Query("department_id"),
		Month:         month,
	}

	profile := auth.CurrentUser(c)
	if !workflow.CanViewAllData(profile) && profile.MinistryID != nil {
		filter.MinistryID = *profile.MinistryID
	}

	limit, offset := pagination(c)
	list, err := s.expenditures.List(c.Request.Context(), filter, limit, offset)
	if err != nil {
		s.internalError(c, "failed to list expenditures", err)
		return
	}
	c.JSON(http.StatusOK, list)
}

func (s *Server) handleGetExpenditure(c *gin.Context) {
	e, err := s.expenditures.GetByID(c.Request.Context(), c.Param("id"))
	if err != nil {
		s.internalError(c, "failed to get expenditure", err)
		return
	}
	if e == nil {
		notFound(c, "expenditure not found")
		return
	}
	c.JSON(http.StatusOK, e)
}

// handleSubmitExpenditure sends a draft expenditure into its two-stage
// approval workflow
func (s *Server) handleSubmitExpenditure(c *gin.Context) {
	id := c.Param("id")
	profile := auth.CurrentUser(c)

	e, err := s.expenditures.GetByID(c.Request.Context(), id)
	if err != nil {
		s.internalError(c, "failed to get expenditure", err)
		return
	}
	if e == nil {
		notFound(c, "expenditure not found")
		return
	}
	if !workflow.CanRecordExpenditure(profile) {
		forbidden(c)
		return
	}
	if e.Status != models.StatusDraft {
		c.JSON(http.StatusConflict, gin.H{"error": "only draft expenditures can be submitted"})
		return
	}

	var workflowID string
	err = s.tx.WithTransaction(c.Request.Context(), func(ctx context.Context) error {
		if err := s.expenditures.MarkSubmitted(ctx, id); err != nil {
			return err
		}
		wfID, err := s.engine.CreateWorkflow(ctx, models.EntityExpenditure, id, profile.ID)
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
