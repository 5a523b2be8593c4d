package api

import (
	"fmt"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/govbudget/budget-portal/pkg/utils"
)

func (s *Server) handleDashboardStats(c *gin.Context) {
	financialYear := c.Query("financial_year")
	if financialYear == "" {
		badRequest(c, "financial_year is required")
		return
	}
	if err := utils.ValidateFinancialYear(financialYear); err != nil {
		badRequest(c, err.Error())
		return
	}

	stats, err := s.stats.DashboardStats(c.Request.Context(), financialYear)
	if err != nil {
		s.internalError(c, "failed to compute dashboard stats", err)
		return
	}
	c.JSON(http.StatusOK, stats)
}

// handleUtilizationReport exports the scheme-wise utilization report.
// ?format=csv streams CSV; ?format=xlsx streams a workbook; the default is
// plain JSON.
func (s *Server) handleUtilizationReport(c *gin.Context) {
	financialYear := c.Query("financial_year")
	if financialYear == "" {
		badRequest(c, "financial_year is required")
		return
	}
	if err := utils.ValidateFinancialYear(financialYear); err != nil {
		badRequest(c, err.Error())
		return
	}

	switch c.DefaultQuery("format", "json") {
	case "csv":
		filename := fmt.Sprintf("budget-utilization-%s.csv", financialYear)
		c.Header("Content-Disposition", fmt.Sprintf("attachment; filename=%q", filename))
		c.Header("Content-Type", "text/csv")
		if err := s.exporter.WriteCSV(c.Request.Context(), c.Writer, financialYear); err != nil {
			s.internalError(c, "failed to export report", err)
		}
	case "xlsx":
		filename := fmt.Sprintf("budget-utilization-%s.xlsx", financialYear)
		c.Header("Content-Disposition", fmt.Sprintf("attachment; filename=%q", filename))
		c.Header("Content-Type", "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet")
		if err := s.exporter.WriteXLSX(c.Request.Context(), c.Writer, financialYear); err != nil {
			s.internalError(c, "failed to export report", err)
		}
	case "json":
		rows, err := s.stats.BudgetUtilization(c.Request.Context(), financialYear)
		if err != nil {
			s.internalError(c, "failed to load utilization report", err)
			return
		}
		c.JSON(http.StatusOK, rows)
	default:
		badRequest(c, "format must be json, csv or xlsx")
	}
}
