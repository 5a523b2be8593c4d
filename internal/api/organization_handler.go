package api

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/govbudget/budget-portal/internal/auth"
	"github.com/govbudget/budget-portal/internal/models"
	"github.com/govbudget/budget-portal/internal/workflow"
)

type ministryRequest struct {
	Name          string `json:"name" binding:"required"`
	Code          string `json:"code" binding:"required"`
	MinisterName  string `json:"minister_name"`
	SecretaryName string `json:"secretary_name"`
}

func (s *Server) handleCreateMinistry(c *gin.Context) {
	var req ministryRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		badRequest(c, "name and code are required")
		return
	}

	m := &models.Ministry{
		Name:          req.Name,
		Code:          req.Code,
		MinisterName:  req.MinisterName,
		SecretaryName: req.SecretaryName,
		IsActive:      true,
		CreatedBy:     auth.CurrentUser(c).ID,
	}
	if err := s.ministries.Create(c.Request.Context(), m); err != nil {
		s.internalError(c, "failed to create ministry", err)
		return
	}

	c.JSON(http.StatusCreated, m)
}

func (s *Server) handleListMinistries(c *gin.Context) {
	activeOnly := c.Query("active") == "true"
	list, err := s.ministries.List(c.Request.Context(), activeOnly)
	if err != nil {
		s.internalError(c, "failed to list ministries", err)
		return
	}
	c.JSON(http.StatusOK, list)
}

func (s *Server) handleGetMinistry(c *gin.Context) {
	m, err := s.ministries.GetByID(c.Request.Context(), c.Param("id"))
	if err != nil {
		s.internalError(c, "failed to get ministry", err)
		return
	}
	if m == nil {
		notFound(c, "ministry not found")
		return
	}
	c.JSON(http.StatusOK, m)
}

func (s *Server) handleUpdateMinistry(c *gin.Context) {
	id := c.Param("id")
	if !workflow.CanManageMinistry(auth.CurrentUser(c), id) {
		forbidden(c)
		return
	}

	m, err := s.ministries.GetByID(c.Request.Context(), id)
	if err != nil {
		s.internalError(c, "failed to get ministry", err)
		return
	}
	if m == nil {
		notFound(c, "ministry not found")
		return
	}

	var req ministryRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		badRequest(c, "name and code are required")
		return
	}

	m.Name = req.Name
	m.Code = req.Code
	m.MinisterName = req.MinisterName
	m.SecretaryName = req.SecretaryName
	if err := s.ministries.Update(c.Request.Context(), m); err != nil {
		s.internalError(c, "failed to update ministry", err)
		return
	}

	c.JSON(http.StatusOK, m)
}

func (s *Server) handleDeactivateMinistry(c *gin.Context) {
	if err := s.ministries.Deactivate(c.Request.Context(), c.Param("id")); err != nil {
		s.internalError(c, "failed to deactivate ministry", err)
		return
	}
	c.Status(http.StatusNoContent)
}

type departmentRequest struct {
	Name        string `json:"name" binding:"required"`
	Code        string `json:"code" binding:"required"`
	MinistryID  string `json:"ministry_id" binding:"required"`
	Description string `json:"description"`
}

func (s *Server) handleCreateDepartment(c *gin.Context) {
	var req departmentRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		badRequest(c, "name, code and ministry_id are required")
		return
	}

	profile := auth.CurrentUser(c)
	if !workflow.CanManageMinistry(profile, req.MinistryID) {
		forbidden(c)
		return
	}

	d := &models.Department{
		Name:        req.Name,
		Code:        req.Code,
		MinistryID:  req.MinistryID,
		Description: req.Description,
		IsActive:    true,
		CreatedBy:   profile.ID,
	}
	if err := s.departments.Create(c.Request.Context(), d); err != nil {
		s.internalError(c, "failed to create department", err)
		return
	}

	c.JSON(http.StatusCreated, d)
}

func (s *Server) handleListDepartments(c *gin.Context) {
	list, err := s.departments.ListByMinistry(c.Request.Context(), c.Param("id"))
	if err != nil {
		s.internalError(c, "failed to list departments", err)
		return
	}
	c.JSON(http.StatusOK, list)
}

func (s *Server) handleGetDepartment(c *gin.Context) {
	d, err := s.departments.GetByID(c.Request.Context(), c.Param("id"))
	if err != nil {
		s.internalError(c, "failed to get department", err)
		return
	}
	if d == nil {
		notFound(c, "department not found")
		return
	}
	c.JSON(http.StatusOK, d)
}

func (s *Server) handleUpdateDepartment(c *gin.Context) {
	d, err := s.departments.GetByID(c.Request.Context(), c.Param("id"))
	if err != nil {
		s.internalError(c, "failed to get department", err)
		return
	}
	if d == nil {
		notFound(c, "department not found")
		return
	}

	if !workflow.CanManageDepartment(auth.CurrentUser(c), d.ID, d.MinistryID) {
		forbidden(c)
		return
	}

	var req departmentRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		badRequest(c, "name, code and ministry_id are required")
		return
	}

	d.Name = req.Name
	d.Code = req.Code
	d.Description = req.Description
	if err := s.departments.Update(c.Request.Context(), d); err != nil {
		s.internalError(c, "failed to update department", err)
		return
	}

	c.JSON(http.StatusOK, d)
}
