package api

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/govbudget/budget-portal/internal/auth"
	"github.com/govbudget/budget-portal/internal/models"
	"github.com/govbudget/budget-portal/internal/report"
	"github.com/govbudget/budget-portal/internal/repository"
	"github.com/govbudget/budget-portal/internal/workflow"
)

// Server wires the HTTP API to the services and repositories behind it
type Server struct {
	auth         *auth.Service
	engine       *workflow.Engine
	tx           workflow.TxRunner
	users        *repository.UserRepository
	ministries   *repository.MinistryRepository
	departments  *repository.DepartmentRepository
	schemes      *repository.SchemeRepository
	proposals    *repository.ProposalRepository
	expenditures *repository.ExpenditureRepository
	allocations  *repository.AllocationRepository
	history      *repository.HistoryRepository
	stats        *repository.StatsRepository
	exporter     *report.Exporter
	logger       *zap.Logger
}

// Deps bundles everything the server needs
type Deps struct {
	Auth         *auth.Service
	Engine       *workflow.Engine
	Tx           workflow.TxRunner
	Users        *repository.UserRepository
	Ministries   *repository.MinistryRepository
	Departments  *repository.DepartmentRepository
	Schemes      *repository.SchemeRepository
	Proposals    *repository.ProposalRepository
	Expenditures *repository.ExpenditureRepository
	Allocations  *repository.AllocationRepository
	History      *repository.HistoryRepository
	Stats        *repository.StatsRepository
	Exporter     *report.Exporter
	Logger       *zap.Logger
}

func NewServer(d Deps) *Server {
	return &Server{
		auth:         d.Auth,
		engine:       d.Engine,
		tx:           d.Tx,
		users:        d.Users,
		ministries:   d.Ministries,
		departments:  d.Departments,
		schemes:      d.Schemes,
		proposals:    d.Proposals,
		expenditures: d.Expenditures,
		allocations:  d.Allocations,
		history:      d.History,
		stats:        d.Stats,
		exporter:     d.Exporter,
		logger:       d.Logger,
	}
}

// Router builds the gin engine with all routes registered
func (s *Server) Router() *gin.Engine {
	router := gin.New()
	router.Use(gin.Recovery())
	router.Use(loggingMiddleware(s.logger))
	router.Use(corsMiddleware())

	// Health check endpoint
	router.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{
			"status":  "healthy",
			"service": "budget-portal",
			"time":    time.Now().Format(time.RFC3339),
		})
	})

	api := router.Group("/api/v1")
	api.POST("/auth/login", s.handleLogin)

	authed := api.Group("")
	authed.Use(auth.Middleware(s.auth))
	{
		authed.GET("/auth/me", s.handleMe)

		adminOnly := auth.RequireRoles(models.RoleFinanceMinistryAdmin)
		authed.GET("/users", adminOnly, s.handleListUsers)
		authed.POST("/users", adminOnly, s.handleCreateUser)
		authed.GET("/users/:id", adminOnly, s.handleGetUser)
		authed.PUT("/users/:id", adminOnly, s.handleUpdateUser)

		authed.POST("/ministries", adminOnly, s.handleCreateMinistry)
		authed.PUT("/ministries/:id", s.handleUpdateMinistry)
		authed.DELETE("/ministries/:id", adminOnly, s.handleDeactivateMinistry)
		authed.GET("/ministries", s.handleListMinistries)
		authed.GET("/ministries/:id", s.handleGetMinistry)
		authed.GET("/ministries/:id/departments", s.handleListDepartments)

		authed.POST("/departments", s.handleCreateDepartment)
		authed.PUT("/departments/:id", s.handleUpdateDepartment)
		authed.GET("/departments/:id", s.handleGetDepartment)

		authed.POST("/schemes", s.handleCreateScheme)
		authed.GET("/schemes", s.handleListSchemes)
		authed.GET("/schemes/:id", s.handleGetScheme)
		authed.PUT("/schemes/:id", s.handleUpdateScheme)

		authed.POST("/proposals", s.handleCreateProposal)
		authed.GET("/proposals", s.handleListProposals)
		authed.GET("/proposals/:id", s.handleGetProposal)
		authed.PUT("/proposals/:id", s.handleUpdateProposal)
		authed.POST("/proposals/:id/submit", s.handleSubmitProposal)

		authed.POST("/expenditures", s.handleCreateExpenditure)
		authed.GET("/expenditures", s.handleListExpenditures)
		authed.GET("/expenditures/:id", s.handleGetExpenditure)
		authed.POST("/expenditures/:id/submit", s.handleSubmitExpenditure)

		authed.POST("/allocations", s.handleCreateAllocation)
		authed.GET("/allocations", s.handleListAllocations)
		authed.GET("/allocations/:id", s.handleGetAllocation)

		authed.GET("/workflows/entity/:entityType/:entityId", s.handleGetWorkflow)
		authed.GET("/workflows/:id/history", s.handleWorkflowHistory)
		authed.POST("/workflows/:id/stages/:stage/approve", s.handleApproveStage)
		authed.POST("/workflows/:id/stages/:stage/reject", s.handleRejectStage)
		authed.POST("/workflows/:id/stages/:stage/revise", s.handleRequestRevision)
		authed.POST("/workflows/:id/resubmit", s.handleResubmit)

		authed.GET("/dashboard/stats", s.handleDashboardStats)
		authed.GET("/reports/budget-utilization", s.handleUtilizationReport)
	}

	return router
}

// loggingMiddleware logs HTTP requests
func loggingMiddleware(logger *zap.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()
		path := c.Request.URL.Path
		query := c.Request.URL.RawQuery

		c.Next()

		latency := time.Since(start)

		logger.Info("HTTP request",
			zap.String("method", c.Request.Method),
			zap.String("path", path),
			zap.String("query", query),
			zap.Int("status", c.Writer.Status()),
			zap.Duration("latency", latency),
			zap.String("ip", c.ClientIP()),
		)
	}
}

// corsMiddleware adds CORS headers
func corsMiddleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		c.Writer.Header().Set("Access-Control-Allow-Origin", "*")
		c.Writer.Header().Set("Access-Control-Allow-Methods", "GET, POST, PUT, DELETE, OPTIONS")
		c.Writer.Header().Set("Access-Control-Allow-Headers", "Content-Type, Authorization")

		if c.Request.Method == "OPTIONS" {
			c.AbortWithStatus(http.StatusNoContent)
			return
		}

		c.Next()
	}
}

// parseEntityType maps a URL slug to the entity type vocabulary
func parseEntityType(param string) (models.EntityType, bool) {
	switch param {
	case "budget-proposal":
		return models.EntityBudgetProposal, true
	case "expenditure":
		return models.EntityExpenditure, true
	}
	if t := models.EntityType(param); t.IsValid() {
		return t, true
	}
	return "", false
}
