package api

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/govbudget/budget-portal/internal/auth"
	"github.com/govbudget/budget-portal/internal/models"
	"github.com/govbudget/budget-portal/pkg/utils"
)

type createUserRequest struct {
	Email        string          `json:"email" binding:"required"`
	Password     string          `json:"password" binding:"required,min=8"`
	FullName     string          `json:"full_name" binding:"required"`
	Role         models.UserRole `json:"role" binding:"required"`
	MinistryID   *string         `json:"ministry_id"`
	DepartmentID *string         `json:"department_id"`
}

type updateUserRequest struct {
	FullName     string          `json:"full_name" binding:"required"`
	Role         models.UserRole `json:"role" binding:"required"`
	MinistryID   *string         `json:"ministry_id"`
	DepartmentID *string         `json:"department_id"`
	IsActive     *bool           `json:"is_active" binding:"required"`
}

func (s *Server) handleListUsers(c *gin.Context) {
	users, err := s.users.List(c.Request.Context())
	if err != nil {
		s.internalError(c, "failed to list users", err)
		return
	}
	c.JSON(http.StatusOK, users)
}

func (s *Server) handleGetUser(c *gin.Context) {
	u, err := s.users.GetByID(c.Request.Context(), c.Param("id"))
	if err != nil {
		s.internalError(c, "failed to get user", err)
		return
	}
	if u == nil {
		notFound(c, "user not found")
		return
	}
	c.JSON(http.StatusOK, u)
}

func (s *Server) handleCreateUser(c *gin.Context) {
	var req createUserRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		badRequest(c, "email, password, full_name and role are required; password must be at least 8 characters")
		return
	}
	if err := utils.ValidateEmail(req.Email); err != nil {
		badRequest(c, err.Error())
		return
	}
	if !req.Role.IsValid() {
		badRequest(c, "unknown role")
		return
	}

	existing, err := s.users.GetByEmail(c.Request.Context(), req.Email)
	if err != nil {
		s.internalError(c, "failed to check email", err)
		return
	}
	if existing != nil {
		c.JSON(http.StatusConflict, gin.H{"error": "email already registered"})
		return
	}

	hash, err := auth.HashPassword(req.Password)
	if err != nil {
		s.internalError(c, "failed to hash password", err)
		return
	}

	u := &models.UserProfile{
		Email:        req.Email,
		FullName:     req.FullName,
		Role:         req.Role,
		MinistryID:   req.MinistryID,
		DepartmentID: req.DepartmentID,
		IsActive:     true,
		PasswordHash: hash,
	}
	if err := s.users.Create(c.Request.Context(), u); err != nil {
		s.internalError(c, "failed to create user", err)
		return
	}

	c.JSON(http.StatusCreated, u)
}

func (s *Server) handleUpdateUser(c *gin.Context) {
	u, err := s.users.GetByID(c.Request.Context(), c.Param("id"))
	if err != nil {
		s.internalError(c, "failed to get user", err)
		return
	}
	if u == nil {
		notFound(c, "user not found")
		return
	}

	var req updateUserRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		badRequest(c, "full_name, role and is_active are required")
		return
	}
	if !req.Role.IsValid() {
		badRequest(c, "unknown role")
		return
	}

	u.FullName = req.FullName
	u.Role = req.Role
	u.MinistryID = req.MinistryID
	u.DepartmentID = req.DepartmentID
	u.IsActive = *req.IsActive

	if err := s.users.Update(c.Request.Context(), u); err != nil {
		s.internalError(c, "failed to update user", err)
		return
	}
	c.JSON(http.StatusOK, u)
}
