package api

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/govbudget/budget-portal/internal/auth"
	"github.com/govbudget/budget-portal/internal/models"
	"github.com/govbudget/budget-portal/internal/report"
	"github.com/govbudget/budget-portal/internal/repository"
	"github.com/govbudget/budget-portal/internal/workflow"
	"github.com/govbudget/budget-portal/pkg/database"
)

type testEnv struct {
	router *gin.Engine
	tokens map[string]string
	db     *database.DB
}

// newTestEnv builds the full server over a scratch database and seeds one
// user per role we exercise, keyed by a short handle
func newTestEnv(t *testing.T) (*testEnv, string, string) {
	t.Helper()
	gin.SetMode(gin.TestMode)
	logger := zap.NewNop()
	ctx := context.Background()

	db, err := database.New(database.Config{
		Path:            filepath.Join(t.TempDir(), "api.db"),
		MaxOpenConns:    1,
		MaxIdleConns:    1,
		ConnMaxLifetime: time.Minute,
	}, logger)
	require.NoError(t, err)
	t.Cleanup(func() { db.Close() })

	migrator := database.NewMigrator(db, logger)
	require.NoError(t, migrator.RunMigrations(ctx, "../../migrations"))

	userRepo := repository.NewUserRepository(db, logger)
	ministryRepo := repository.NewMinistryRepository(db, logger)
	departmentRepo := repository.NewDepartmentRepository(db, logger)
	schemeRepo := repository.NewSchemeRepository(db, logger)
	proposalRepo := repository.NewProposalRepository(db, logger)
	expenditureRepo := repository.NewExpenditureRepository(db, logger)
	allocationRepo := repository.NewAllocationRepository(db, logger)
	workflowRepo := repository.NewWorkflowRepository(db, logger)
	historyRepo := repository.NewHistoryRepository(db, logger)
	statsRepo := repository.NewStatsRepository(db, logger)

	engine := workflow.NewEngine(db, workflowRepo, historyRepo, proposalRepo, expenditureRepo, logger)
	tokenManager := auth.NewTokenManager("test-secret", time.Hour)
	authService := auth.NewService(userRepo, tokenManager, logger)
	exporter := report.NewExporter(statsRepo, logger)

	server := NewServer(Deps{
		Auth:         authService,
		Engine:       engine,
		Tx:           db,
		Users:        userRepo,
		Ministries:   ministryRepo,
		Departments:  departmentRepo,
		Schemes:      schemeRepo,
		Proposals:    proposalRepo,
		Expenditures: expenditureRepo,
		Allocations:  allocationRepo,
		History:      historyRepo,
		Stats:        statsRepo,
		Exporter:     exporter,
		Logger:       logger,
	})

	// Seed organization
	ministry := &models.Ministry{Name: "Ministry of Education", Code: "MOE", IsActive: true}
	require.NoError(t, ministryRepo.Create(ctx, ministry))
	department := &models.Department{Name: "Higher Education", Code: "HE", MinistryID: ministry.ID, IsActive: true}
	require.NoError(t, departmentRepo.Create(ctx, department))
	scheme := &models.Scheme{
		Name:         "Scholarship Scheme",
		Code:         "SCH-01",
		MinistryID:   ministry.ID,
		DepartmentID: &department.ID,
		SchemeType:   models.SchemeCentralSector,
		IsActive:     true,
	}
	require.NoError(t, schemeRepo.Create(ctx, scheme))

	// Seed one user per role in play
	hash, err := auth.HashPassword("password")
	require.NoError(t, err)
	users := map[string]*models.UserProfile{
		"admin": {
			ID: "admin", Email: "admin@finmin.gov.in", FullName: "Admin",
			Role: models.RoleFinanceMinistryAdmin, IsActive: true, PasswordHash: hash,
		},
		"secretary": {
			ID: "secretary", Email: "secretary@moe.gov.in", FullName: "Secretary",
			Role: models.RoleMinistrySecretary, MinistryID: &ministry.ID,
			IsActive: true, PasswordHash: hash,
		},
		"depthead": {
			ID: "depthead", Email: "head@he.moe.gov.in", FullName: "Department Head",
			Role: models.RoleDepartmentHead, MinistryID: &ministry.ID, DepartmentID: &department.ID,
			IsActive: true, PasswordHash: hash,
		},
	}
	env := &testEnv{router: server.Router(), tokens: make(map[string]string), db: db}
	for handle, u := range users {
		require.NoError(t, userRepo.Create(ctx, u))
		token, _, err := tokenManager.Issue(u)
		require.NoError(t, err)
		env.tokens[handle] = token
	}

	return env, ministry.ID, scheme.ID
}

func (e *testEnv) do(t *testing.T, method, path, as string, body interface{}) *httptest.ResponseRecorder {
	t.Helper()

	var reader *bytes.Reader
	if body != nil {
		b, err := json.Marshal(body)
		require.NoError(t, err)
		reader = bytes.NewReader(b)
	} else {
		reader = bytes.NewReader(nil)
	}

	req := httptest.NewRequest(method, path, reader)
	req.Header.Set("Content-Type", "application/json")
	if as != "" {
		req.Header.Set("Authorization", "Bearer "+e.tokens[as])
	}

	w := httptest.NewRecorder()
	e.router.ServeHTTP(w, req)
	return w
}

// doRaw sends an unmarshalled body as-is, for malformed payloads
func (e *testEnv) doRaw(t *testing.T, method, path, as, body string) *httptest.ResponseRecorder {
	t.Helper()

	req := httptest.NewRequest(method, path, strings.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	if as != "" {
		req.Header.Set("Authorization", "Bearer "+e.tokens[as])
	}

	w := httptest.NewRecorder()
	e.router.ServeHTTP(w, req)
	return w
}

func decodeJSON(t *testing.T, w *httptest.ResponseRecorder, into interface{}) {
	t.Helper()
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), into))
}

func TestLoginEndpoint(t *testing.T) {
	env, _, _ := newTestEnv(t)

	w := env.do(t, http.MethodPost, "/api/v1/auth/login", "", gin.H{
		"email": "admin@finmin.gov.in", "password": "password",
	})
	require.Equal(t, http.StatusOK, w.Code)

	var result auth.LoginResult
	decodeJSON(t, w, &result)
	assert.NotEmpty(t, result.Token)
	assert.Equal(t, "admin", result.User.ID)

	w = env.do(t, http.MethodPost, "/api/v1/auth/login", "", gin.H{
		"email": "admin@finmin.gov.in", "password": "nope",
	})
	assert.Equal(t, http.StatusUnauthorized, w.Code)
}

func TestUnauthenticatedRequestsRejected(t *testing.T) {
	env, _, _ := newTestEnv(t)

	w := env.do(t, http.MethodGet, "/api/v1/ministries", "", nil)
	assert.Equal(t, http.StatusUnauthorized, w.Code)
}

func TestProposalApprovalEndToEnd(t *testing.T) {
	env, ministryID, schemeID := newTestEnv(t)

	// Department head drafts a proposal
	w := env.do(t, http.MethodPost, "/api/v1/proposals", "depthead", gin.H{
		"proposal_number": "BP/2025-26/0001",
		"financial_year":  "2025-26",
		"scheme_id":       schemeID,
		"ministry_id":     ministryID,
		"proposal_type":   string(models.ProposalBudgetEstimate),
		"justification":   "coverage expansion",
		"line_items": []gin.H{
			{"head_of_account": "2202-01", "amount": 1000.0, "budget_type": "Revenue"},
			{"head_of_account": "4202-01", "amount": 500.0, "budget_type": "Capital"},
		},
	})
	require.Equal(t, http.StatusCreated, w.Code, w.Body.String())

	var proposal models.BudgetProposal
	decodeJSON(t, w, &proposal)
	assert.Equal(t, models.StatusDraft, proposal.Status)
	assert.Equal(t, 1500.0, proposal.TotalAmount)

	// Submit starts the three stage workflow
	w = env.do(t, http.MethodPost, "/api/v1/proposals/"+proposal.ID+"/submit", "depthead", nil)
	require.Equal(t, http.StatusCreated, w.Code, w.Body.String())

	var submitted struct {
		WorkflowID string `json:"workflow_id"`
	}
	decodeJSON(t, w, &submitted)
	require.NotEmpty(t, submitted.WorkflowID)

	// Resubmitting the same proposal conflicts
	w = env.do(t, http.MethodPost, "/api/v1/proposals/"+proposal.ID+"/submit", "depthead", nil)
	assert.Equal(t, http.StatusConflict, w.Code)

	wfPath := "/api/v1/workflows/" + submitted.WorkflowID

	// Secretary may not act on the department review stage
	w = env.do(t, http.MethodPost, wfPath+"/stages/1/approve", "secretary", nil)
	assert.Equal(t, http.StatusForbidden, w.Code)

	// Stage 1: department head
	w = env.do(t, http.MethodPost, wfPath+"/stages/1/approve", "depthead", nil)
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())

	// Acting on a passed stage conflicts
	w = env.do(t, http.MethodPost, wfPath+"/stages/1/approve", "depthead", nil)
	assert.Equal(t, http.StatusConflict, w.Code)

	// Stage 2: ministry secretary
	w = env.do(t, http.MethodPost, wfPath+"/stages/2/approve", "secretary", gin.H{"comments": "within ceiling"})
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())

	// Stage 3: finance ministry admin completes the workflow
	w = env.do(t, http.MethodPost, wfPath+"/stages/3/approve", "admin", nil)
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())

	// Entity is stamped Approved
	w = env.do(t, http.MethodGet, "/api/v1/proposals/"+proposal.ID, "depthead", nil)
	require.Equal(t, http.StatusOK, w.Code)
	var approved models.BudgetProposal
	decodeJSON(t, w, &approved)
	assert.Equal(t, models.StatusApproved, approved.Status)
	require.NotNil(t, approved.ApprovedBy)
	assert.Equal(t, "admin", *approved.ApprovedBy)

	// Workflow lookup by entity
	w = env.do(t, http.MethodGet, "/api/v1/workflows/entity/budget-proposal/"+proposal.ID, "depthead", nil)
	require.Equal(t, http.StatusOK, w.Code)
	var wf models.ApprovalWorkflow
	decodeJSON(t, w, &wf)
	assert.Equal(t, models.StatusApproved, wf.Status)
	assert.Len(t, wf.Stages, 3)

	// History records submit plus three approvals
	w = env.do(t, http.MethodGet, wfPath+"/history", "admin", nil)
	require.Equal(t, http.StatusOK, w.Code)
	var history []models.ApprovalHistory
	decodeJSON(t, w, &history)
	assert.Len(t, history, 4)

	// Admin sanctions the allocation
	w = env.do(t, http.MethodPost, "/api/v1/allocations", "admin", gin.H{"proposal_id": proposal.ID})
	require.Equal(t, http.StatusCreated, w.Code, w.Body.String())
	var allocation models.BudgetAllocation
	decodeJSON(t, w, &allocation)
	assert.Equal(t, 1500.0, allocation.SanctionedAmount)
	assert.Equal(t, 375.0, allocation.Q1Allocation)

	// Department head may not sanction allocations
	w = env.do(t, http.MethodPost, "/api/v1/allocations", "depthead", gin.H{"proposal_id": proposal.ID})
	assert.Equal(t, http.StatusForbidden, w.Code)
}

func TestRevisionRoundTrip(t *testing.T) {
	env, ministryID, schemeID := newTestEnv(t)

	w := env.do(t, http.MethodPost, "/api/v1/proposals", "depthead", gin.H{
		"proposal_number": "BP/2025-26/0002",
		"financial_year":  "2025-26",
		"scheme_id":       schemeID,
		"ministry_id":     ministryID,
		"proposal_type":   string(models.ProposalBudgetEstimate),
		"line_items": []gin.H{
			{"head_of_account": "2202-01", "amount": 800.0, "budget_type": "Revenue"},
		},
	})
	require.Equal(t, http.StatusCreated, w.Code)
	var proposal models.BudgetProposal
	decodeJSON(t, w, &proposal)

	w = env.do(t, http.MethodPost, "/api/v1/proposals/"+proposal.ID+"/submit", "depthead", nil)
	require.Equal(t, http.StatusCreated, w.Code)
	var submitted struct {
		WorkflowID string `json:"workflow_id"`
	}
	decodeJSON(t, w, &submitted)
	wfPath := "/api/v1/workflows/" + submitted.WorkflowID

	// Revision without comments is unprocessable
	w = env.do(t, http.MethodPost, wfPath+"/stages/1/revise", "depthead", nil)
	assert.Equal(t, http.StatusUnprocessableEntity, w.Code)

	w = env.do(t, http.MethodPost, wfPath+"/stages/1/revise", "depthead", gin.H{"comments": "split by head of account"})
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())

	w = env.do(t, http.MethodGet, "/api/v1/proposals/"+proposal.ID, "depthead", nil)
	var revised models.BudgetProposal
	decodeJSON(t, w, &revised)
	assert.Equal(t, models.StatusRevisionRequested, revised.Status)

	// Only the submitter or an admin may resubmit
	w = env.do(t, http.MethodPost, wfPath+"/resubmit", "secretary", nil)
	assert.Equal(t, http.StatusForbidden, w.Code)

	w = env.do(t, http.MethodPost, wfPath+"/resubmit", "depthead", nil)
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())

	w = env.do(t, http.MethodGet, "/api/v1/workflows/entity/budget-proposal/"+proposal.ID, "depthead", nil)
	var wf models.ApprovalWorkflow
	decodeJSON(t, w, &wf)
	assert.Equal(t, 1, wf.CurrentStage)
	assert.Equal(t, models.StatusSubmitted, wf.Status)
	for _, stage := range wf.Stages {
		assert.Equal(t, models.StagePending, stage.Status)
	}
}

func TestRejectionIsTerminal(t *testing.T) {
	env, ministryID, schemeID := newTestEnv(t)

	w := env.do(t, http.MethodPost, "/api/v1/expenditures", "depthead", gin.H{
		"scheme_id":        schemeID,
		"ministry_id":      ministryID,
		"financial_year":   "2025-26",
		"month":            7,
		"amount":           250.0,
		"expenditure_type": "Revenue",
		"transaction_date": time.Now().UTC().Format(time.RFC3339),
		"voucher_number":   "V-0042",
	})
	require.Equal(t, http.StatusCreated, w.Code, w.Body.String())
	var exp models.Expenditure
	decodeJSON(t, w, &exp)

	w = env.do(t, http.MethodPost, "/api/v1/expenditures/"+exp.ID+"/submit", "depthead", nil)
	require.Equal(t, http.StatusCreated, w.Code, w.Body.String())
	var submitted struct {
		WorkflowID string `json:"workflow_id"`
	}
	decodeJSON(t, w, &submitted)
	wfPath := "/api/v1/workflows/" + submitted.WorkflowID

	w = env.do(t, http.MethodPost, wfPath+"/stages/1/reject", "depthead", gin.H{"comments": "no supporting vouchers"})
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())

	w = env.do(t, http.MethodGet, "/api/v1/expenditures/"+exp.ID, "depthead", nil)
	var rejected models.Expenditure
	decodeJSON(t, w, &rejected)
	assert.Equal(t, models.StatusRejected, rejected.Status)

	// Closed workflows accept no further actions
	w = env.do(t, http.MethodPost, wfPath+"/stages/1/approve", "depthead", nil)
	assert.Equal(t, http.StatusConflict, w.Code)

	// Rejected is not revisable
	w = env.do(t, http.MethodPost, wfPath+"/resubmit", "depthead", nil)
	assert.Equal(t, http.StatusConflict, w.Code)
}

func TestDashboardAndReports(t *testing.T) {
	env, _, _ := newTestEnv(t)

	w := env.do(t, http.MethodGet, "/api/v1/dashboard/stats?financial_year=2025-26", "admin", nil)
	require.Equal(t, http.StatusOK, w.Code)
	var stats models.DashboardStats
	decodeJSON(t, w, &stats)
	assert.Equal(t, 1, stats.ActiveSchemes)

	w = env.do(t, http.MethodGet, "/api/v1/dashboard/stats", "admin", nil)
	assert.Equal(t, http.StatusBadRequest, w.Code)

	w = env.do(t, http.MethodGet, "/api/v1/reports/budget-utilization?financial_year=2025-26&format=csv", "admin", nil)
	require.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Header().Get("Content-Type"), "text/csv")
	assert.Contains(t, w.Body.String(), "Scheme Name")

	w = env.do(t, http.MethodGet, "/api/v1/reports/budget-utilization?financial_year=2025-26&format=xlsx", "admin", nil)
	require.Equal(t, http.StatusOK, w.Code)
	assert.NotEmpty(t, w.Body.Bytes())

	w = env.do(t, http.MethodGet, "/api/v1/reports/budget-utilization?financial_year=2025-26&format=pdf", "admin", nil)
	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestStageActionRejectsMalformedBody(t *testing.T) {
	env, ministryID, schemeID := newTestEnv(t)

	w := env.do(t, http.MethodPost, "/api/v1/proposals", "depthead", gin.H{
		"proposal_number": "BP/2025-26/0003",
		"financial_year":  "2025-26",
		"scheme_id":       schemeID,
		"ministry_id":     ministryID,
		"proposal_type":   string(models.ProposalBudgetEstimate),
		"line_items": []gin.H{
			{"head_of_account": "2202-01", "amount": 600.0, "budget_type": "Revenue"},
		},
	})
	require.Equal(t, http.StatusCreated, w.Code)
	var proposal models.BudgetProposal
	decodeJSON(t, w, &proposal)

	w = env.do(t, http.MethodPost, "/api/v1/proposals/"+proposal.ID+"/submit", "depthead", nil)
	require.Equal(t, http.StatusCreated, w.Code)
	var submitted struct {
		WorkflowID string `json:"workflow_id"`
	}
	decodeJSON(t, w, &submitted)
	wfPath := "/api/v1/workflows/" + submitted.WorkflowID

	// Truncated JSON is a bad request, not a silent empty comment
	w = env.doRaw(t, http.MethodPost, wfPath+"/stages/1/approve", "depthead", `{"comments":`)
	assert.Equal(t, http.StatusBadRequest, w.Code)

	w = env.doRaw(t, http.MethodPost, wfPath+"/stages/1/reject", "depthead", `{"comments": 42}`)
	assert.Equal(t, http.StatusBadRequest, w.Code)

	// The stage is untouched; a well-formed approve still goes through
	w = env.do(t, http.MethodPost, wfPath+"/stages/1/approve", "depthead", nil)
	assert.Equal(t, http.StatusOK, w.Code, w.Body.String())
}

func TestSubmitProposalIsAtomic(t *testing.T) {
	env, ministryID, schemeID := newTestEnv(t)

	w := env.do(t, http.MethodPost, "/api/v1/proposals", "depthead", gin.H{
		"proposal_number": "BP/2025-26/0004",
		"financial_year":  "2025-26",
		"scheme_id":       schemeID,
		"ministry_id":     ministryID,
		"proposal_type":   string(models.ProposalBudgetEstimate),
		"line_items": []gin.H{
			{"head_of_account": "2202-01", "amount": 300.0, "budget_type": "Revenue"},
		},
	})
	require.Equal(t, http.StatusCreated, w.Code)
	var proposal models.BudgetProposal
	decodeJSON(t, w, &proposal)

	// Break workflow creation so the submit transaction must roll back
	_, err := env.db.ExecContext(context.Background(), "DROP TABLE approval_stages")
	require.NoError(t, err)

	w = env.do(t, http.MethodPost, "/api/v1/proposals/"+proposal.ID+"/submit", "depthead", nil)
	assert.Equal(t, http.StatusInternalServerError, w.Code)

	// The proposal is not stranded in Submitted
	w = env.do(t, http.MethodGet, "/api/v1/proposals/"+proposal.ID, "depthead", nil)
	require.Equal(t, http.StatusOK, w.Code)
	var after models.BudgetProposal
	decodeJSON(t, w, &after)
	assert.Equal(t, models.StatusDraft, after.Status)
	assert.Nil(t, after.SubmittedAt)
}

func TestUserAdministration(t *testing.T) {
	env, ministryID, _ := newTestEnv(t)

	// Only admins manage users
	w := env.do(t, http.MethodGet, "/api/v1/users", "secretary", nil)
	assert.Equal(t, http.StatusForbidden, w.Code)

	w = env.do(t, http.MethodGet, "/api/v1/users", "admin", nil)
	require.Equal(t, http.StatusOK, w.Code)
	var users []models.UserProfile
	decodeJSON(t, w, &users)
	assert.Len(t, users, 3)

	w = env.do(t, http.MethodPost, "/api/v1/users", "admin", gin.H{
		"email":     "auditor@cag.gov.in",
		"password":  "field-audit-2025",
		"full_name": "Auditor",
		"role":      string(models.RoleAuditor),
	})
	require.Equal(t, http.StatusCreated, w.Code, w.Body.String())
	var auditor models.UserProfile
	decodeJSON(t, w, &auditor)
	assert.NotEmpty(t, auditor.ID)
	assert.NotContains(t, w.Body.String(), "password_hash")

	// The new account can log in
	w = env.do(t, http.MethodPost, "/api/v1/auth/login", "", gin.H{
		"email": "auditor@cag.gov.in", "password": "field-audit-2025",
	})
	assert.Equal(t, http.StatusOK, w.Code, w.Body.String())

	// Duplicate email conflicts
	w = env.do(t, http.MethodPost, "/api/v1/users", "admin", gin.H{
		"email":     "auditor@cag.gov.in",
		"password":  "field-audit-2025",
		"full_name": "Auditor Two",
		"role":      string(models.RoleAuditor),
	})
	assert.Equal(t, http.StatusConflict, w.Code)

	// Unknown roles and short passwords are rejected
	w = env.do(t, http.MethodPost, "/api/v1/users", "admin", gin.H{
		"email": "x@gov.in", "password": "long-enough-pw", "full_name": "X", "role": "Clerk",
	})
	assert.Equal(t, http.StatusBadRequest, w.Code)

	w = env.do(t, http.MethodPost, "/api/v1/users", "admin", gin.H{
		"email": "x@gov.in", "password": "short", "full_name": "X", "role": string(models.RoleAuditor),
	})
	assert.Equal(t, http.StatusBadRequest, w.Code)

	// Reassign the auditor into the ministry and deactivate them
	w = env.do(t, http.MethodPut, "/api/v1/users/"+auditor.ID, "admin", gin.H{
		"full_name":   "Auditor",
		"role":        string(models.RoleAuditor),
		"ministry_id": ministryID,
		"is_active":   false,
	})
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())
	var updated models.UserProfile
	decodeJSON(t, w, &updated)
	require.NotNil(t, updated.MinistryID)
	assert.Equal(t, ministryID, *updated.MinistryID)
	assert.False(t, updated.IsActive)

	// Deactivated accounts can no longer log in
	w = env.do(t, http.MethodPost, "/api/v1/auth/login", "", gin.H{
		"email": "auditor@cag.gov.in", "password": "field-audit-2025",
	})
	assert.Equal(t, http.StatusForbidden, w.Code)

	w = env.do(t, http.MethodPut, "/api/v1/users/missing", "admin", gin.H{
		"full_name": "X", "role": string(models.RoleAuditor), "is_active": true,
	})
	assert.Equal(t, http.StatusNotFound, w.Code)
}

func TestMinistryManagement(t *testing.T) {
	env, ministryID, _ := newTestEnv(t)

	// Only admins create ministries
	w := env.do(t, http.MethodPost, "/api/v1/ministries", "secretary", gin.H{"name": "Ministry of Finance", "code": "MOF"})
	assert.Equal(t, http.StatusForbidden, w.Code)

	w = env.do(t, http.MethodPost, "/api/v1/ministries", "admin", gin.H{"name": "Ministry of Finance", "code": "MOF"})
	require.Equal(t, http.StatusCreated, w.Code, w.Body.String())
	var created models.Ministry
	decodeJSON(t, w, &created)

	// Secretary updates their own ministry but not another
	w = env.do(t, http.MethodPut, "/api/v1/ministries/"+ministryID, "secretary", gin.H{"name": "Ministry of Education", "code": "MOE"})
	assert.Equal(t, http.StatusOK, w.Code, w.Body.String())

	w = env.do(t, http.MethodPut, "/api/v1/ministries/"+created.ID, "secretary", gin.H{"name": "X", "code": "MOF"})
	assert.Equal(t, http.StatusForbidden, w.Code)
}
