package repository

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/google/uuid"
	"github.com/govbudget/budget-portal/internal/models"
	"github.com/govbudget/budget-portal/pkg/database"
	"go.uber.org/zap"
)

// AllocationRepository persists sanctioned budget allocations
type AllocationRepository struct {
	db     *database.DB
	logger *zap.Logger
}

// NewAllocationRepository creates a new allocation repository
func NewAllocationRepository(db *database.DB, logger *zap.Logger) *AllocationRepository {
	return &AllocationRepository{
		db:     db,
		logger: logger,
	}
}

const allocationColumns = `
	id, proposal_id, scheme_id, financial_year, sanctioned_amount,
	q1_allocation, q2_allocation, q3_allocation, q4_allocation, status,
	sanctioned_at, sanctioned_by, created_at, updated_at
`

// Create inserts a new allocation
func (r *AllocationRepository) Create(ctx context.Context, a *models.BudgetAllocation) error {
	if a.ID == "" {
		a.ID = uuid.NewString()
	}

	query := `
		INSERT INTO budget_allocations (
			id, proposal_id, scheme_id, financial_year, sanctioned_amount,
			q1_allocation, q2_allocation, q3_allocation, q4_allocation,
			status, sanctioned_at, sanctioned_by
		) VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)
	`
	_, err := r.db.Executor(ctx).ExecContext(ctx, query,
		a.ID, a.ProposalID, a.SchemeID, a.FinancialYear, a.SanctionedAmount,
		a.Q1Allocation, a.Q2Allocation, a.Q3Allocation, a.Q4Allocation,
		a.Status, a.SanctionedAt, a.SanctionedBy)
	if err != nil {
		r.logger.Error("Failed to create allocation", zap.Error(err))
		return fmt.Errorf("failed to create allocation: %w", err)
	}
	return nil
}

// GetByID retrieves an allocation by id, nil when missing
func (r *AllocationRepository) GetByID(ctx context.Context, id string) (*models.BudgetAllocation, error) {
	query := `SELECT ` + allocationColumns + ` FROM budget_allocations WHERE id = ?`

	a, err := scanAllocation(r.db.Executor(ctx).QueryRowContext(ctx, query, id))
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		r.logger.Error("Failed to get allocation", zap.String("id", id), zap.Error(err))
		return nil, fmt.Errorf("failed to get allocation: %w", err)
	}
	return a, nil
}

// GetByProposal retrieves the allocation sanctioned for a proposal, nil when none
func (r *AllocationRepository) GetByProposal(ctx context.Context, proposalID string) (*models.BudgetAllocation, error) {
	query := `SELECT ` + allocationColumns + ` FROM budget_allocations WHERE proposal_id = ?`

	a, err := scanAllocation(r.db.Executor(ctx).QueryRowContext(ctx, query, proposalID))
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		r.logger.Error("Failed to get allocation by proposal",
			zap.String("proposal_id", proposalID), zap.Error(err))
		return nil, fmt.Errorf("failed to get allocation by proposal: %w", err)
	}
	return a, nil
}

// List returns allocations for a financial year; empty year lists all
func (r *AllocationRepository) List(ctx context.Context, financialYear string) ([]*models.BudgetAllocation, error) {
	query := `SELECT ` + allocationColumns + ` FROM budget_allocations`
	var args []interface{}
	if financialYear != "" {
		query += " WHERE financial_year = ?"
		args = append(args, financialYear)
	}
	query += " ORDER BY sanctioned_at DESC"

	rows, err := r.db.Executor(ctx).QueryContext(ctx, query, args...)
	if err != nil {
		r.logger.Error("Failed to list allocations", zap.Error(err))
		return nil, fmt.Errorf("failed to list allocations: %w", err)
	}
	defer rows.Close()

	var allocations []*models.BudgetAllocation
	for rows.Next() {
		a, err := scanAllocation(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan allocation: %w", err)
		}
		allocations = append(allocations, a)
	}
	return allocations, rows.Err()
}

// UpdateStatus moves an allocation between Active, Frozen and Exhausted
func (r *AllocationRepository) UpdateStatus(ctx context.Context, id string, status models.AllocationStatus) error {
	query := `UPDATE budget_allocations SET status = ?, updated_at = CURRENT_TIMESTAMP WHERE id = ?`

	result, err := r.db.Executor(ctx).ExecContext(ctx, query, status, id)
	if err != nil {
		r.logger.Error("Failed to update allocation status", zap.String("id", id), zap.Error(err))
		return fmt.Errorf("failed to update allocation status: %w", err)
	}
	return requireRowAffected(result, "allocation")
}

func scanAllocation(row rowScanner) (*models.BudgetAllocation, error) {
	var a models.BudgetAllocation
	err := row.Scan(
		&a.ID, &a.ProposalID, &a.SchemeID, &a.FinancialYear, &a.SanctionedAmount,
		&a.Q1Allocation, &a.Q2Allocation, &a.Q3Allocation, &a.Q4Allocation,
		&a.Status, &a.SanctionedAt, &a.SanctionedBy, &a.CreatedAt, &a.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}
	return &a, nil
}
