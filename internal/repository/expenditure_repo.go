package repository

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/govbudget/budget-portal/internal/models"
	"github.com/govbudget/budget-portal/internal/workflow"
	"github.com/govbudget/budget-portal/pkg/database"
	"go.uber.org/zap"
)

// ExpenditureFilter narrows expenditure listings
type ExpenditureFilter struct {
	FinancialYear string
	SchemeID      string
	MinistryID    string
	DepartmentID  string
	Month         int
}

// ExpenditureRepository persists expenditure transactions
type ExpenditureRepository struct {
	db     *database.DB
	logger *zap.Logger
}

// NewExpenditureRepository creates a new expenditure repository
func NewExpenditureRepository(db *database.DB, logger *zap.Logger) *ExpenditureRepository {
	return &ExpenditureRepository{
		db:     db,
		logger: logger,
	}
}

const expenditureColumns = `
	id, allocation_id, scheme_id, ministry_id, department_id, financial_year,
	month, amount, expenditure_type, status, description, transaction_date,
	voucher_number, approved_by, approved_at, created_by, created_at
`

// Create inserts a new expenditure record
func (r *ExpenditureRepository) Create(ctx context.Context, e *models.Expenditure) error {
	if e.ID == "" {
		e.ID = uuid.NewString()
	}

	query := `
		INSERT INTO expenditures (
			id, allocation_id, scheme_id, ministry_id, department_id,
			financial_year, month, amount, expenditure_type, status,
			description, transaction_date, voucher_number, created_by
		) VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)
	`

	_, err := r.db.Executor(ctx).ExecContext(ctx, query,
		e.ID,
		e.AllocationID,
		e.SchemeID,
		e.MinistryID,
		e.DepartmentID,
		e.FinancialYear,
		e.Month,
		e.Amount,
		e.ExpenditureType,
		e.Status,
		e.Description,
		e.TransactionDate,
		e.VoucherNumber,
		e.CreatedBy,
	)
	if err != nil {
		r.logger.Error("Failed to create expenditure", zap.Error(err))
		return fmt.Errorf("failed to create expenditure: %w", err)
	}
	return nil
}

// GetByID retrieves an expenditure by id, nil when missing
func (r *ExpenditureRepository) GetByID(ctx context.Context, id string) (*models.Expenditure, error) {
	query := `SELECT ` + expenditureColumns + ` FROM expenditures WHERE id = ?`

	e, err := scanExpenditure(r.db.Executor(ctx).QueryRowContext(ctx, query, id))
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		r.logger.Error("Failed to get expenditure", zap.String("id", id), zap.Error(err))
		return nil, fmt.Errorf("failed to get expenditure: %w", err)
	}
	return e, nil
}

// List returns expenditures matching the filter, newest first
func (r *ExpenditureRepository) List(ctx context.Context, filter ExpenditureFilter, limit, offset int) ([]*models.Expenditure, error) {
	query := `SELECT ` + expenditureColumns + ` FROM expenditures WHERE 1=1`
	var args []interface{}

	if filter.FinancialYear != "" {
		query += " AND financial_year = ?"
		args = append(args, filter.FinancialYear)
	}
	if filter.SchemeID != "" {
		query += " AND scheme_id = ?"
		args = append(args, filter.SchemeID)
	}
	if filter.MinistryID != "" {
		query += " AND ministry_id = ?"
		args = append(args, filter.MinistryID)
	}
	if filter.DepartmentID != "" {
		query += " AND department_id = ?"
		args = append(args, filter.DepartmentID)
	}
	if filter.Month != 0 {
		query += " AND month = ?"
		args = append(args, filter.Month)
	}

	query += " ORDER BY transaction_date DESC LIMIT ? OFFSET ?"
	args = append(args, limit, offset)

	rows, err := r.db.Executor(ctx).QueryContext(ctx, query, args...)
	if err != nil {
		r.logger.Error("Failed to list expenditures", zap.Error(err))
		return nil, fmt.Errorf("failed to list expenditures: %w", err)
	}
	defer rows.Close()

	var expenditures []*models.Expenditure
	for rows.Next() {
		e, err := scanExpenditure(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan expenditure: %w", err)
		}
		expenditures = append(expenditures, e)
	}
	return expenditures, rows.Err()
}

// MarkSubmitted flips a draft expenditure to Submitted
func (r *ExpenditureRepository) MarkSubmitted(ctx context.Context, id string) error {
	query := `UPDATE expenditures SET status = ? WHERE id = ? AND status = ?`

	result, err := r.db.Executor(ctx).ExecContext(ctx, query,
		models.StatusSubmitted, id, models.StatusDraft)
	if err != nil {
		r.logger.Error("Failed to mark expenditure submitted", zap.String("id", id), zap.Error(err))
		return fmt.Errorf("failed to mark expenditure submitted: %w", err)
	}
	return requireRowAffected(result, "draft expenditure")
}

// UpdateStatus implements workflow.EntityStatusWriter for expenditures
func (r *ExpenditureRepository) UpdateStatus(ctx context.Context, entityID string, status models.ProposalStatus, approvedBy *string, approvedAt *time.Time) error {
	var result sql.Result
	var err error

	if approvedBy != nil {
		query := `UPDATE expenditures SET status = ?, approved_by = ?, approved_at = ? WHERE id = ?`
		result, err = r.db.Executor(ctx).ExecContext(ctx, query, status, approvedBy, approvedAt, entityID)
	} else {
		query := `UPDATE expenditures SET status = ? WHERE id = ?`
		result, err = r.db.Executor(ctx).ExecContext(ctx, query, status, entityID)
	}
	if err != nil {
		r.logger.Error("Failed to sync expenditure status",
			zap.String("id", entityID),
			zap.String("status", string(status)),
			zap.Error(err))
		return fmt.Errorf("failed to sync expenditure status: %w", err)
	}
	return requireRowAffected(result, "expenditure")
}

func scanExpenditure(row rowScanner) (*models.Expenditure, error) {
	var e models.Expenditure
	var allocationID, departmentID, approvedBy sql.NullString
	var approvedAt sql.NullTime

	err := row.Scan(
		&e.ID,
		&allocationID,
		&e.SchemeID,
		&e.MinistryID,
		&departmentID,
		&e.FinancialYear,
		&e.Month,
		&e.Amount,
		&e.ExpenditureType,
		&e.Status,
		&e.Description,
		&e.TransactionDate,
		&e.VoucherNumber,
		&approvedBy,
		&approvedAt,
		&e.CreatedBy,
		&e.CreatedAt,
	)
	if err != nil {
		return nil, err
	}

	if allocationID.Valid {
		e.AllocationID = &allocationID.String
	}
	if departmentID.Valid {
		e.DepartmentID = &departmentID.String
	}
	if approvedBy.Valid {
		e.ApprovedBy = &approvedBy.String
	}
	if approvedAt.Valid {
		e.ApprovedAt = &approvedAt.Time
	}
	return &e, nil
}

// Verify interface compliance
var _ workflow.EntityStatusWriter = (*ExpenditureRepository)(nil)
