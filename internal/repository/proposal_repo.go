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

// ProposalFilter narrows proposal listings
type ProposalFilter struct {
	FinancialYear string
	MinistryID    string
	DepartmentID  string
	SchemeID      string
	Status        models.ProposalStatus
	ProposalType  models.ProposalType
}

// ProposalRepository persists budget proposals and their line items
type ProposalRepository struct {
	db     *database.DB
	logger *zap.Logger
}

// NewProposalRepository creates a new proposal repository
func NewProposalRepository(db *database.DB, logger *zap.Logger) *ProposalRepository {
	return &ProposalRepository{
		db:     db,
		logger: logger,
	}
}

const proposalColumns = `
	id, proposal_number, financial_year, scheme_id, ministry_id, department_id,
	proposal_type, status, total_amount, revenue_amount, capital_amount,
	justification, submitted_at, approved_at, approved_by, created_by,
	created_at, updated_at
`

// Create inserts a proposal and its line items
func (r *ProposalRepository) Create(ctx context.Context, p *models.BudgetProposal) error {
	if p.ID == "" {
		p.ID = uuid.NewString()
	}

	return r.db.WithTransaction(ctx, func(txCtx context.Context) error {
		ex := r.db.Executor(txCtx)

		query := `
			INSERT INTO budget_proposals (
				id, proposal_number, financial_year, scheme_id, ministry_id,
				department_id, proposal_type, status, total_amount,
				revenue_amount, capital_amount, justification, created_by
			) VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)
		`
		_, err := ex.ExecContext(txCtx, query,
			p.ID,
			p.ProposalNumber,
			p.FinancialYear,
			p.SchemeID,
			p.MinistryID,
			p.DepartmentID,
			p.ProposalType,
			p.Status,
			p.TotalAmount,
			p.RevenueAmount,
			p.CapitalAmount,
			p.Justification,
			p.CreatedBy,
		)
		if err != nil {
			r.logger.Error("Failed to create proposal", zap.Error(err))
			return fmt.Errorf("failed to create proposal: %w", err)
		}

		for i := range p.LineItems {
			item := &p.LineItems[i]
			item.ProposalID = p.ID
			if item.ID == "" {
				item.ID = uuid.NewString()
			}
			if err := r.createLineItem(txCtx, ex, item); err != nil {
				return err
			}
		}
		return nil
	})
}

func (r *ProposalRepository) createLineItem(ctx context.Context, ex database.Executor, item *models.BudgetLineItem) error {
	query := `
		INSERT INTO budget_line_items (
			id, proposal_id, head_of_account, description, amount, budget_type
		) VALUES (?, ?, ?, ?, ?, ?)
	`
	_, err := ex.ExecContext(ctx, query,
		item.ID,
		item.ProposalID,
		item.HeadOfAccount,
		item.Description,
		item.Amount,
		item.BudgetType,
	)
	if err != nil {
		r.logger.Error("Failed to create line item", zap.String("proposal_id", item.ProposalID), zap.Error(err))
		return fmt.Errorf("failed to create line item: %w", err)
	}
	return nil
}

// GetByID retrieves a proposal with its line items, nil when missing
func (r *ProposalRepository) GetByID(ctx context.Context, id string) (*models.BudgetProposal, error) {
	query := `SELECT ` + proposalColumns + ` FROM budget_proposals WHERE id = ?`

	p, err := scanProposal(r.db.Executor(ctx).QueryRowContext(ctx, query, id))
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		r.logger.Error("Failed to get proposal", zap.String("id", id), zap.Error(err))
		return nil, fmt.Errorf("failed to get proposal: %w", err)
	}

	items, err := r.listLineItems(ctx, id)
	if err != nil {
		return nil, err
	}
	p.LineItems = items
	return p, nil
}

func (r *ProposalRepository) listLineItems(ctx context.Context, proposalID string) ([]models.BudgetLineItem, error) {
	query := `
		SELECT id, proposal_id, head_of_account, description, amount, budget_type, created_at
		FROM budget_line_items
		WHERE proposal_id = ?
		ORDER BY created_at ASC, id ASC
	`

	rows, err := r.db.Executor(ctx).QueryContext(ctx, query, proposalID)
	if err != nil {
		return nil, fmt.Errorf("failed to list line items: %w", err)
	}
	defer rows.Close()

	var items []models.BudgetLineItem
	for rows.Next() {
		var item models.BudgetLineItem
		err := rows.Scan(
			&item.ID,
			&item.ProposalID,
			&item.HeadOfAccount,
			&item.Description,
			&item.Amount,
			&item.BudgetType,
			&item.CreatedAt,
		)
		if err != nil {
			return nil, fmt.Errorf("failed to scan line item: %w", err)
		}
		items = append(items, item)
	}
	return items, rows.Err()
}

// List returns proposals matching the filter, newest first
func (r *ProposalRepository) List(ctx context.Context, filter ProposalFilter, limit, offset int) ([]*models.BudgetProposal, error) {
	query := `SELECT ` + proposalColumns + ` FROM budget_proposals WHERE 1=1`
	var args []interface{}

	if filter.FinancialYear != "" {
		query += " AND financial_year = ?"
		args = append(args, filter.FinancialYear)
	}
	if filter.MinistryID != "" {
		query += " AND ministry_id = ?"
		args = append(args, filter.MinistryID)
	}
	if filter.DepartmentID != "" {
		query += " AND department_id = ?"
		args = append(args, filter.DepartmentID)
	}
	if filter.SchemeID != "" {
		query += " AND scheme_id = ?"
		args = append(args, filter.SchemeID)
	}
	if filter.Status != "" {
		query += " AND status = ?"
		args = append(args, filter.Status)
	}
	if filter.ProposalType != "" {
		query += " AND proposal_type = ?"
		args = append(args, filter.ProposalType)
	}

	query += " ORDER BY created_at DESC LIMIT ? OFFSET ?"
	args = append(args, limit, offset)

	rows, err := r.db.Executor(ctx).QueryContext(ctx, query, args...)
	if err != nil {
		r.logger.Error("Failed to list proposals", zap.Error(err))
		return nil, fmt.Errorf("failed to list proposals: %w", err)
	}
	defer rows.Close()

	var proposals []*models.BudgetProposal
	for rows.Next() {
		p, err := scanProposal(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan proposal: %w", err)
		}
		proposals = append(proposals, p)
	}
	return proposals, rows.Err()
}

// Update rewrites the editable fields of a draft proposal and replaces its
// line items
func (r *ProposalRepository) Update(ctx context.Context, p *models.BudgetProposal) error {
	return r.db.WithTransaction(ctx, func(txCtx context.Context) error {
		ex := r.db.Executor(txCtx)

		query := `
			UPDATE budget_proposals
			SET financial_year = ?, scheme_id = ?, proposal_type = ?,
				total_amount = ?, revenue_amount = ?, capital_amount = ?,
				justification = ?, updated_at = CURRENT_TIMESTAMP
			WHERE id = ?
		`
		result, err := ex.ExecContext(txCtx, query,
			p.FinancialYear,
			p.SchemeID,
			p.ProposalType,
			p.TotalAmount,
			p.RevenueAmount,
			p.CapitalAmount,
			p.Justification,
			p.ID,
		)
		if err != nil {
			r.logger.Error("Failed to update proposal", zap.String("id", p.ID), zap.Error(err))
			return fmt.Errorf("failed to update proposal: %w", err)
		}
		if err := requireRowAffected(result, "proposal"); err != nil {
			return err
		}

		if _, err := ex.ExecContext(txCtx, "DELETE FROM budget_line_items WHERE proposal_id = ?", p.ID); err != nil {
			return fmt.Errorf("failed to clear line items: %w", err)
		}
		for i := range p.LineItems {
			item := &p.LineItems[i]
			item.ProposalID = p.ID
			if item.ID == "" {
				item.ID = uuid.NewString()
			}
			if err := r.createLineItem(txCtx, ex, item); err != nil {
				return err
			}
		}
		return nil
	})
}

// MarkSubmitted flips a draft to Submitted and stamps submitted_at
func (r *ProposalRepository) MarkSubmitted(ctx context.Context, id string, submittedAt time.Time) error {
	query := `
		UPDATE budget_proposals
		SET status = ?, submitted_at = ?, updated_at = CURRENT_TIMESTAMP
		WHERE id = ? AND status = ?
	`

	result, err := r.db.Executor(ctx).ExecContext(ctx, query,
		models.StatusSubmitted, submittedAt, id, models.StatusDraft)
	if err != nil {
		r.logger.Error("Failed to mark proposal submitted", zap.String("id", id), zap.Error(err))
		return fmt.Errorf("failed to mark proposal submitted: %w", err)
	}
	return requireRowAffected(result, "draft proposal")
}

// UpdateStatus implements workflow.EntityStatusWriter for budget proposals.
// approved_by and approved_at are written only when supplied (final approval).
func (r *ProposalRepository) UpdateStatus(ctx context.Context, entityID string, status models.ProposalStatus, approvedBy *string, approvedAt *time.Time) error {
	var result sql.Result
	var err error

	if approvedBy != nil {
		query := `
			UPDATE budget_proposals
			SET status = ?, approved_by = ?, approved_at = ?, updated_at = CURRENT_TIMESTAMP
			WHERE id = ?
		`
		result, err = r.db.Executor(ctx).ExecContext(ctx, query, status, approvedBy, approvedAt, entityID)
	} else {
		query := `
			UPDATE budget_proposals
			SET status = ?, updated_at = CURRENT_TIMESTAMP
			WHERE id = ?
		`
		result, err = r.db.Executor(ctx).ExecContext(ctx, query, status, entityID)
	}
	if err != nil {
		r.logger.Error("Failed to sync proposal status",
			zap.String("id", entityID),
			zap.String("status", string(status)),
			zap.Error(err))
		return fmt.Errorf("failed to sync proposal status: %w", err)
	}
	return requireRowAffected(result, "proposal")
}

func scanProposal(row rowScanner) (*models.BudgetProposal, error) {
	var p models.BudgetProposal
	var departmentID sql.NullString
	var submittedAt, approvedAt sql.NullTime
	var approvedBy sql.NullString

	err := row.Scan(
		&p.ID,
		&p.ProposalNumber,
		&p.FinancialYear,
		&p.SchemeID,
		&p.MinistryID,
		&departmentID,
		&p.ProposalType,
		&p.Status,
		&p.TotalAmount,
		&p.RevenueAmount,
		&p.CapitalAmount,
		&p.Justification,
		&submittedAt,
		&approvedAt,
		&approvedBy,
		&p.CreatedBy,
		&p.CreatedAt,
		&p.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}

	if departmentID.Valid {
		p.DepartmentID = &departmentID.String
	}
	if submittedAt.Valid {
		p.SubmittedAt = &submittedAt.Time
	}
	if approvedAt.Valid {
		p.ApprovedAt = &approvedAt.Time
	}
	if approvedBy.Valid {
		p.ApprovedBy = &approvedBy.String
	}
	return &p, nil
}

// Verify interface compliance
var _ workflow.EntityStatusWriter = (*ProposalRepository)(nil)
