package api

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/govbudget/budget-portal/internal/auth"
	"github.com/govbudget/budget-portal/internal/models"
	"github.com/govbudget/budget-portal/internal/repository"
	"github.com/govbudget/budget-portal/internal/workflow"
)

type schemeRequest struct {
	Name         string     `json:"name" binding:"required"`
	Code         string     `json:"code" binding:"required"`
	MinistryID   string     `json:"ministry_id" binding:"required"`
	DepartmentID *string    `json:"department_id"`
	SchemeType   string     `json:"scheme_type" binding:"required"`
	Description  string     `json:"description"`
	Objectives   string     `json:"objectives"`
	StartDate    *time.Time `json:"start_date"`
	EndDate      *time.Time `json:"end_date"`
}

func (s *Server) handleCreateScheme(c *gin.Context) {
	var req schemeRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		badRequest(c, "name, code, ministry_id and scheme_type are required")
		return
	}

	profile := auth.CurrentUser(c)
	if !workflow.CanManageMinistry(profile, req.MinistryID) {
		forbidden(c)
		return
	}

	scheme := &models.Scheme{
		Name:         req.Name,
		Code:         req.Code,
		MinistryID:   req.MinistryID,
		DepartmentID: req.DepartmentID,
		SchemeType:   models.SchemeType(req.SchemeType),
		Description:  req.Description,
		Objectives:   req.Objectives,
		StartDate:    req.StartDate,
		EndDate:      req.EndDate,
		IsActive:     true,
		CreatedBy:    profile.ID,
	}
	if err := s.schemes.Create(c.Request.Context(), scheme); err != nil {
		s.internalError(c, "failed to create scheme", err)
		return
	}

	c.JSON(http.StatusCreated, scheme)
}

func (s *Server) handleListSchemes(c *gin.Context) {
	filter := repository.SchemeFilter{
		MinistryID:   c.Query("ministry_id"),
		DepartmentID: c.Query("department_id"),
		SchemeType:   models.SchemeType(c.Query("scheme_type")),
		ActiveOnly:   c.Query("active") == "true",
	}

	list, err := s.schemes.List(c.Request.Context(), filter)
	if err != nil {
		s.internalError(c, "failed to list schemes", err)
		return
	}
	c.JSON(http.StatusOK, list)
}

func (s *Server) handleGetScheme(c *gin.Context) {
	scheme, err := s.schemes.GetByID(c.Request.Context(), c.Param("id"))
	if err != nil {
		s.internalError(c, "failed to get scheme", err)
		return
	}
	if scheme == nil {
		notFound(c, "scheme not found")
		return
	}
	c.JSON(http.StatusOK, scheme)
}

func (s *Server) handleUpdateScheme(c *gin.Context) {
	scheme, err := s.schemes.GetByID(c.Request.Context(), c.Param("id"))
	if err != nil {
		s.internalError(c, "failed to get scheme", err)
		return
	}
	if scheme == nil {
		notFound(c, "scheme not found")
		return
	}

	if !workflow.CanManageMinistry(auth.CurrentUser(c), scheme.MinistryID) {
		forbidden(c)
		return
	}

	var req schemeRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		badRequest(c, "name, code, ministry_id and scheme_type are required")
		return
	}

	scheme.Name = req.Name
	scheme.Code = req.Code
	scheme.DepartmentID = req.DepartmentID
	scheme.SchemeType = models.SchemeType(req.SchemeType)
	scheme.Description = req.Description
	scheme.Objectives = req.Objectives
	scheme.StartDate = req.StartDate
	scheme.EndDate = req.EndDate
	if err := s.schemes.Update(c.Request.Context(), scheme); err != nil {
		s.internalError(c, "failed to update scheme", err)
		return
	}

	c.JSON(http.StatusOK, scheme)
}
