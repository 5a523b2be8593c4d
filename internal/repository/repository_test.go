package repository

import (
	"context"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/govbudget/budget-portal/internal/models"
	"github.com/govbudget/budget-portal/pkg/database"
)

// testDB opens a throwaway database with the full schema applied
func testDB(t *testing.T) *database.DB {
	t.Helper()

	db, err := database.New(database.Config{
		Path:            filepath.Join(t.TempDir(), "test.db"),
		MaxOpenConns:    1,
		MaxIdleConns:    1,
		ConnMaxLifetime: time.Minute,
	}, zap.NewNop())
	require.NoError(t, err)
	t.Cleanup(func() { db.Close() })

	migrator := database.NewMigrator(db, zap.NewNop())
	require.NoError(t, migrator.RunMigrations(context.Background(), "../../migrations"))

	return db
}

// seedScheme inserts the ministry, department and scheme rows proposals and
// expenditures reference
func seedScheme(t *testing.T, db *database.DB) (ministryID, departmentID, schemeID string) {
	t.Helper()
	ctx := context.Background()
	logger := zap.NewNop()

	m := &models.Ministry{Name: "Ministry of Education", Code: "MOE", IsActive: true}
	require.NoError(t, NewMinistryRepository(db, logger).Create(ctx, m))

	d := &models.Department{Name: "Higher Education", Code: "HE", MinistryID: m.ID, IsActive: true}
	require.NoError(t, NewDepartmentRepository(db, logger).Create(ctx, d))

	s := &models.Scheme{
		Name:         "Scholarship Scheme",
		Code:         "SCH-01",
		MinistryID:   m.ID,
		DepartmentID: &d.ID,
		SchemeType:   models.SchemeCentralSector,
		IsActive:     true,
	}
	require.NoError(t, NewSchemeRepository(db, logger).Create(ctx, s))

	return m.ID, d.ID, s.ID
}

func TestWorkflowRepositoryRoundTrip(t *testing.T) {
	db := testDB(t)
	repo := NewWorkflowRepository(db, zap.NewNop())
	ctx := context.Background()

	wf := &models.ApprovalWorkflow{
		ID:           "wf-1",
		EntityType:   models.EntityBudgetProposal,
		EntityID:     "bp-1",
		CurrentStage: 1,
		TotalStages:  3,
		Status:       models.StatusSubmitted,
		SubmittedBy:  "u1",
		SubmittedAt:  time.Now().UTC(),
	}
	stages := []models.ApprovalStage{
		{ID: "st-1", WorkflowID: "wf-1", StageNumber: 1, StageName: "Department Review", ApproverRole: models.RoleDepartmentHead, Status: models.StagePending},
		{ID: "st-2", WorkflowID: "wf-1", StageNumber: 2, StageName: "Ministry Review", ApproverRole: models.RoleMinistrySecretary, Status: models.StagePending},
		{ID: "st-3", WorkflowID: "wf-1", StageNumber: 3, StageName: "Finance Ministry Approval", ApproverRole: models.RoleFinanceMinistryAdmin, Status: models.StagePending},
	}
	require.NoError(t, repo.Create(ctx, wf, stages))

	got, err := repo.GetByID(ctx, "wf-1")
	require.NoError(t, err)
	require.NotNil(t, got)
	assert.Equal(t, models.StatusSubmitted, got.Status)
	assert.Equal(t, 1, got.CurrentStage)
	assert.Nil(t, got.CompletedAt)

	latest, err := repo.GetLatestByEntity(ctx, models.EntityBudgetProposal, "bp-1")
	require.NoError(t, err)
	require.NotNil(t, latest)
	assert.Equal(t, "wf-1", latest.ID)

	listed, err := repo.ListStages(ctx, "wf-1")
	require.NoError(t, err)
	require.Len(t, listed, 3)
	assert.Equal(t, models.RoleDepartmentHead, listed[0].ApproverRole)

	// Action a stage and advance the workflow
	comments := "checked against department ceiling"
	now := time.Now().UTC()
	require.NoError(t, repo.UpdateStage(ctx, "wf-1", 1, models.StageApproved, "approver-1", &comments, now))
	require.NoError(t, repo.UpdateProgress(ctx, "wf-1", 2, models.StatusUnderReview))

	stage, err := repo.GetStage(ctx, "wf-1", 1)
	require.NoError(t, err)
	require.NotNil(t, stage)
	assert.Equal(t, models.StageApproved, stage.Status)
	require.NotNil(t, stage.ApproverID)
	assert.Equal(t, "approver-1", *stage.ApproverID)
	require.NotNil(t, stage.Comments)

	got, err = repo.GetByID(ctx, "wf-1")
	require.NoError(t, err)
	assert.Equal(t, 2, got.CurrentStage)
	assert.Equal(t, models.StatusUnderReview, got.Status)

	// Complete, then reopen and reset
	require.NoError(t, repo.Complete(ctx, "wf-1", models.StatusApproved, now))
	got, _ = repo.GetByID(ctx, "wf-1")
	assert.Equal(t, models.StatusApproved, got.Status)
	require.NotNil(t, got.CompletedAt)

	require.NoError(t, repo.Reopen(ctx, "wf-1"))
	require.NoError(t, repo.ResetStages(ctx, "wf-1"))
	got, _ = repo.GetByID(ctx, "wf-1")
	assert.Equal(t, 1, got.CurrentStage)
	assert.Equal(t, models.StatusSubmitted, got.Status)
	assert.Nil(t, got.CompletedAt)

	stage, _ = repo.GetStage(ctx, "wf-1", 1)
	assert.Equal(t, models.StagePending, stage.Status)
	assert.Nil(t, stage.ApproverID)
}

func TestWorkflowRepositoryMissing(t *testing.T) {
	db := testDB(t)
	repo := NewWorkflowRepository(db, zap.NewNop())
	ctx := context.Background()

	got, err := repo.GetByID(ctx, "nope")
	require.NoError(t, err)
	assert.Nil(t, got)

	latest, err := repo.GetLatestByEntity(ctx, models.EntityExpenditure, "nope")
	require.NoError(t, err)
	assert.Nil(t, latest)

	err = repo.UpdateProgress(ctx, "nope", 2, models.StatusUnderReview)
	assert.Error(t, err)
}

func TestProposalRepositoryLifecycle(t *testing.T) {
	db := testDB(t)
	repo := NewProposalRepository(db, zap.NewNop())
	ctx := context.Background()

	ministryID, departmentID, schemeID := seedScheme(t, db)

	p := &models.BudgetProposal{
		ProposalNumber: "BP/2025-26/0001",
		FinancialYear:  "2025-26",
		SchemeID:       schemeID,
		MinistryID:     ministryID,
		DepartmentID:   &departmentID,
		ProposalType:   models.ProposalBudgetEstimate,
		Status:         models.StatusDraft,
		TotalAmount:    1500,
		RevenueAmount:  1000,
		CapitalAmount:  500,
		Justification:  "expansion of scholarship coverage",
		CreatedBy:      "u1",
		LineItems: []models.BudgetLineItem{
			{HeadOfAccount: "2202-01", Amount: 1000, BudgetType: models.BudgetRevenue},
			{HeadOfAccount: "4202-01", Amount: 500, BudgetType: models.BudgetCapital},
		},
	}
	require.NoError(t, repo.Create(ctx, p))
	require.NotEmpty(t, p.ID)

	got, err := repo.GetByID(ctx, p.ID)
	require.NoError(t, err)
	require.NotNil(t, got)
	assert.Equal(t, models.StatusDraft, got.Status)
	assert.Len(t, got.LineItems, 2)
	assert.Equal(t, 1500.0, got.TotalAmount)

	// Filtered listing
	list, err := repo.List(ctx, ProposalFilter{FinancialYear: "2025-26", MinistryID: ministryID}, 10, 0)
	require.NoError(t, err)
	require.Len(t, list, 1)

	list, err = repo.List(ctx, ProposalFilter{FinancialYear: "2024-25"}, 10, 0)
	require.NoError(t, err)
	assert.Empty(t, list)

	// Submit guards on Draft
	require.NoError(t, repo.MarkSubmitted(ctx, p.ID, time.Now().UTC()))
	got, _ = repo.GetByID(ctx, p.ID)
	assert.Equal(t, models.StatusSubmitted, got.Status)
	require.NotNil(t, got.SubmittedAt)

	err = repo.MarkSubmitted(ctx, p.ID, time.Now().UTC())
	assert.Error(t, err)

	// Workflow status sync with approval stamp
	approver := "admin-1"
	approvedAt := time.Now().UTC()
	require.NoError(t, repo.UpdateStatus(ctx, p.ID, models.StatusApproved, &approver, &approvedAt))
	got, _ = repo.GetByID(ctx, p.ID)
	assert.Equal(t, models.StatusApproved, got.Status)
	require.NotNil(t, got.ApprovedBy)
	assert.Equal(t, "admin-1", *got.ApprovedBy)
	require.NotNil(t, got.ApprovedAt)
}

func TestExpenditureRepositoryLifecycle(t *testing.T) {
	db := testDB(t)
	repo := NewExpenditureRepository(db, zap.NewNop())
	ctx := context.Background()

	ministryID, departmentID, schemeID := seedScheme(t, db)

	e := &models.Expenditure{
		SchemeID:        schemeID,
		MinistryID:      ministryID,
		DepartmentID:    &departmentID,
		FinancialYear:   "2025-26",
		Month:           7,
		Amount:          250,
		ExpenditureType: models.BudgetRevenue,
		Status:          models.StatusDraft,
		Description:     "monthly disbursement",
		TransactionDate: time.Now().UTC(),
		VoucherNumber:   "V-0042",
		CreatedBy:       "u1",
	}
	require.NoError(t, repo.Create(ctx, e))
	require.NotEmpty(t, e.ID)

	got, err := repo.GetByID(ctx, e.ID)
	require.NoError(t, err)
	require.NotNil(t, got)
	assert.Equal(t, 7, got.Month)
	assert.Equal(t, "V-0042", got.VoucherNumber)

	list, err := repo.List(ctx, ExpenditureFilter{FinancialYear: "2025-26", Month: 7}, 10, 0)
	require.NoError(t, err)
	require.Len(t, list, 1)

	require.NoError(t, repo.MarkSubmitted(ctx, e.ID))
	got, _ = repo.GetByID(ctx, e.ID)
	assert.Equal(t, models.StatusSubmitted, got.Status)
}

func TestHistoryRepository(t *testing.T) {
	db := testDB(t)
	repo := NewHistoryRepository(db, zap.NewNop())
	ctx := context.Background()

	first := &models.ApprovalHistory{
		WorkflowID: "wf-1",
		EntityType: models.EntityBudgetProposal,
		EntityID:   "bp-1",
		Action:     models.ActionSubmitted,
		ActorID:    "u1",
		NewStatus:  string(models.StatusSubmitted),
		Timestamp:  time.Now().UTC(),
	}
	require.NoError(t, repo.Append(ctx, first))
	assert.NotZero(t, first.ID)

	second := &models.ApprovalHistory{
		WorkflowID:  "wf-1",
		EntityType:  models.EntityBudgetProposal,
		EntityID:    "bp-1",
		StageNumber: 1,
		Action:      models.ActionApproved,
		ActorID:     "u2",
		NewStatus:   string(models.StatusUnderReview),
		Comments:    "cleared",
		Timestamp:   time.Now().UTC(),
	}
	require.NoError(t, repo.Append(ctx, second))

	entries, err := repo.ListByWorkflow(ctx, "wf-1")
	require.NoError(t, err)
	require.Len(t, entries, 2)
	assert.Equal(t, models.ActionSubmitted, entries[0].Action)
	assert.Equal(t, models.ActionApproved, entries[1].Action)
}

func TestStatsRepository(t *testing.T) {
	db := testDB(t)
	ctx := context.Background()
	logger := zap.NewNop()

	ministryID, departmentID, schemeID := seedScheme(t, db)

	proposals := NewProposalRepository(db, logger)
	p := &models.BudgetProposal{
		ProposalNumber: "BP/2025-26/0001",
		FinancialYear:  "2025-26",
		SchemeID:       schemeID,
		MinistryID:     ministryID,
		DepartmentID:   &departmentID,
		ProposalType:   models.ProposalBudgetEstimate,
		Status:         models.StatusApproved,
		TotalAmount:    1000,
		CreatedBy:      "u1",
	}
	require.NoError(t, proposals.Create(ctx, p))

	allocations := NewAllocationRepository(db, logger)
	require.NoError(t, allocations.Create(ctx, &models.BudgetAllocation{
		ProposalID:       p.ID,
		SchemeID:         schemeID,
		FinancialYear:    "2025-26",
		SanctionedAmount: 1000,
		Q1Allocation:     250, Q2Allocation: 250, Q3Allocation: 250, Q4Allocation: 250,
		Status:       models.AllocationActive,
		SanctionedAt: time.Now().UTC(),
		SanctionedBy: "admin-1",
	}))

	expenditures := NewExpenditureRepository(db, logger)
	e := &models.Expenditure{
		SchemeID:        schemeID,
		MinistryID:      ministryID,
		FinancialYear:   "2025-26",
		Month:           5,
		Amount:          400,
		ExpenditureType: models.BudgetRevenue,
		Status:          models.StatusDraft,
		TransactionDate: time.Now().UTC(),
		CreatedBy:       "u1",
	}
	require.NoError(t, expenditures.Create(ctx, e))
	approver := "admin-1"
	approvedAt := time.Now().UTC()
	require.NoError(t, expenditures.UpdateStatus(ctx, e.ID, models.StatusApproved, &approver, &approvedAt))

	stats := NewStatsRepository(db, logger)
	got, err := stats.DashboardStats(ctx, "2025-26")
	require.NoError(t, err)
	assert.Equal(t, 1000.0, got.TotalBudget)
	assert.Equal(t, 400.0, got.TotalExpenditure)
	assert.InDelta(t, 40.0, got.BudgetUtilization, 0.001)
	assert.Equal(t, 1, got.ActiveSchemes)
	assert.Equal(t, 1, got.TotalMinistries)

	rows, err := stats.BudgetUtilization(ctx, "2025-26")
	require.NoError(t, err)
	require.Len(t, rows, 1)
	assert.Equal(t, "Scholarship Scheme", rows[0].SchemeName)
	assert.Equal(t, 1000.0, rows[0].Allocated)
	assert.Equal(t, 400.0, rows[0].Spent)
	assert.InDelta(t, 40.0, rows[0].UtilizationPercentage, 0.001)
}
