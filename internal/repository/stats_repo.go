package repository

import (
	"context"
	"fmt"

	"github.com/govbudget/budget-portal/internal/models"
	"github.com/govbudget/budget-portal/pkg/database"
	"go.uber.org/zap"
)

// StatsRepository computes dashboard and report aggregates
type StatsRepository struct {
	db     *database.DB
	logger *zap.Logger
}

// NewStatsRepository creates a new stats repository
func NewStatsRepository(db *database.DB, logger *zap.Logger) *StatsRepository {
	return &StatsRepository{
		db:     db,
		logger: logger,
	}
}

// DashboardStats computes the portal-wide dashboard figures; an empty
// financial year aggregates across all years
func (r *StatsRepository) DashboardStats(ctx context.Context, financialYear string) (*models.DashboardStats, error) {
	ex := r.db.Executor(ctx)
	stats := &models.DashboardStats{}

	yearClause := ""
	var yearArgs []interface{}
	if financialYear != "" {
		yearClause = " WHERE financial_year = ?"
		yearArgs = append(yearArgs, financialYear)
	}

	err := ex.QueryRowContext(ctx,
		"SELECT COALESCE(SUM(sanctioned_amount), 0) FROM budget_allocations"+yearClause,
		yearArgs...).Scan(&stats.TotalBudget)
	if err != nil {
		return nil, fmt.Errorf("failed to sum allocations: %w", err)
	}

	err = ex.QueryRowContext(ctx,
		"SELECT COALESCE(SUM(amount), 0) FROM expenditures"+yearClause,
		yearArgs...).Scan(&stats.TotalExpenditure)
	if err != nil {
		return nil, fmt.Errorf("failed to sum expenditures: %w", err)
	}

	if stats.TotalBudget > 0 {
		stats.BudgetUtilization = stats.TotalExpenditure / stats.TotalBudget * 100
	}

	err = ex.QueryRowContext(ctx, `
		SELECT COUNT(*) FROM approval_workflows
		WHERE status IN (?, ?)
	`, models.StatusSubmitted, models.StatusUnderReview).Scan(&stats.PendingApprovals)
	if err != nil {
		return nil, fmt.Errorf("failed to count pending approvals: %w", err)
	}

	err = ex.QueryRowContext(ctx,
		"SELECT COUNT(*) FROM schemes WHERE is_active = 1").Scan(&stats.ActiveSchemes)
	if err != nil {
		return nil, fmt.Errorf("failed to count schemes: %w", err)
	}

	err = ex.QueryRowContext(ctx,
		"SELECT COUNT(*) FROM ministries WHERE is_active = 1").Scan(&stats.TotalMinistries)
	if err != nil {
		return nil, fmt.Errorf("failed to count ministries: %w", err)
	}

	return stats, nil
}

// BudgetUtilization computes scheme-wise allocated vs spent figures for the
// utilization report; an empty financial year covers all years
func (r *StatsRepository) BudgetUtilization(ctx context.Context, financialYear string) ([]models.BudgetUtilization, error) {
	query := `
		SELECT s.name, s.code,
			COALESCE(a.financial_year, ''),
			COALESCE(SUM(a.sanctioned_amount), 0) AS allocated,
			COALESCE((
				SELECT SUM(e.amount) FROM expenditures e
				WHERE e.scheme_id = s.id
				AND (? = '' OR e.financial_year = ?)
			), 0) AS spent
		FROM schemes s
		LEFT JOIN budget_allocations a ON a.scheme_id = s.id
			AND (? = '' OR a.financial_year = ?)
		WHERE s.is_active = 1
		GROUP BY s.id, s.name, s.code
		ORDER BY s.name ASC
	`

	rows, err := r.db.Executor(ctx).QueryContext(ctx, query,
		financialYear, financialYear, financialYear, financialYear)
	if err != nil {
		r.logger.Error("Failed to compute budget utilization", zap.Error(err))
		return nil, fmt.Errorf("failed to compute budget utilization: %w", err)
	}
	defer rows.Close()

	var report []models.BudgetUtilization
	for rows.Next() {
		var u models.BudgetUtilization
		if err := rows.Scan(&u.SchemeName, &u.SchemeCode, &u.FinancialYear, &u.Allocated, &u.Spent); err != nil {
			return nil, fmt.Errorf("failed to scan utilization row: %w", err)
		}
		if u.Allocated > 0 {
			u.UtilizationPercentage = u.Spent / u.Allocated * 100
		}
		report = append(report, u)
	}
	return report, rows.Err()
}
