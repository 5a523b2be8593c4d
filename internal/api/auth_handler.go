package api

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/govbudget/budget-portal/internal/auth"
)

type loginRequest struct {
	Email    string `json:"email" binding:"required,email"`
	Password string `json:"password" binding:"required"`
}

func (s *Server) handleLogin(c *gin.Context) {
	var req loginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		badRequest(c, "email and password are required")
		return
	}

	result, err := s.auth.Login(c.Request.Context(), req.Email, req.Password)
	if err != nil {
		switch {
		case errors.Is(err, auth.ErrInvalidCredentials):
			c.JSON(http.StatusUnauthorized, gin.H{"error": "invalid email or password"})
		case errors.Is(err, auth.ErrAccountDisabled):
			c.JSON(http.StatusForbidden, gin.H{"error": "account is disabled"})
		default:
			s.internalError(c, "login failed", err)
		}
		return
	}

	c.JSON(http.StatusOK, result)
}

func (s *Server) handleMe(c *gin.Context) {
	c.JSON(http.StatusOK, auth.CurrentUser(c))
}
