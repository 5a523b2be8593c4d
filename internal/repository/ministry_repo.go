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

// MinistryRepository persists ministries
type MinistryRepository struct {
	db     *database.DB
	logger *zap.Logger
}

// NewMinistryRepository creates a new ministry repository
func NewMinistryRepository(db *database.DB, logger *zap.Logger) *MinistryRepository {
	return &MinistryRepository{
		db:     db,
		logger: logger,
	}
}

// Create inserts a new ministry
func (r *MinistryRepository) Create(ctx context.Context, m *models.Ministry) error {
	if m.ID == "" {
		m.ID = uuid.NewString()
	}

	query := `
		INSERT INTO ministries (id, name, code, minister_name, secretary_name, is_active, created_by)
		VALUES (?, ?, ?, ?, ?, ?, ?)
	`
	_, err := r.db.Executor(ctx).ExecContext(ctx, query,
		m.ID, m.Name, m.Code, m.MinisterName, m.SecretaryName, m.IsActive, m.CreatedBy)
	if err != nil {
		r.logger.Error("Failed to create ministry", zap.Error(err))
		return fmt.Errorf("failed to create ministry: %w", err)
	}
	return nil
}

// GetByID retrieves a ministry by id, nil when missing
func (r *MinistryRepository) GetByID(ctx context.Context, id string) (*models.Ministry, error) {
	query := `
		SELECT id, name, code, minister_name, secretary_name, is_active,
			created_by, created_at, updated_at
		FROM ministries WHERE id = ?
	`

	var m models.Ministry
	err := r.db.Executor(ctx).QueryRowContext(ctx, query, id).Scan(
		&m.ID, &m.Name, &m.Code, &m.MinisterName, &m.SecretaryName,
		&m.IsActive, &m.CreatedBy, &m.CreatedAt, &m.UpdatedAt,
	)
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		r.logger.Error("Failed to get ministry", zap.String("id", id), zap.Error(err))
		return nil, fmt.Errorf("failed to get ministry: %w", err)
	}
	return &m, nil
}

// List returns all ministries, optionally only active ones
func (r *MinistryRepository) List(ctx context.Context, activeOnly bool) ([]*models.Ministry, error) {
	query := `
		SELECT id, name, code, minister_name, secretary_name, is_active,
			created_by, created_at, updated_at
		FROM ministries
	`
	if activeOnly {
		query += " WHERE is_active = 1"
	}
	query += " ORDER BY name ASC"

	rows, err := r.db.Executor(ctx).QueryContext(ctx, query)
	if err != nil {
		r.logger.Error("Failed to list ministries", zap.Error(err))
		return nil, fmt.Errorf("failed to list ministries: %w", err)
	}
	defer rows.Close()

	var ministries []*models.Ministry
	for rows.Next() {
		var m models.Ministry
		err := rows.Scan(&m.ID, &m.Name, &m.Code, &m.MinisterName, &m.SecretaryName,
			&m.IsActive, &m.CreatedBy, &m.CreatedAt, &m.UpdatedAt)
		if err != nil {
			return nil, fmt.Errorf("failed to scan ministry: %w", err)
		}
		ministries = append(ministries, &m)
	}
	return ministries, rows.Err()
}

// Update rewrites a ministry's editable fields
func (r *MinistryRepository) Update(ctx context.Context, m *models.Ministry) error {
	query := `
		UPDATE ministries
		SET name = ?, code = ?, minister_name = ?, secretary_name = ?,
			is_active = ?, updated_at = CURRENT_TIMESTAMP
		WHERE id = ?
	`
	result, err := r.db.Executor(ctx).ExecContext(ctx, query,
		m.Name, m.Code, m.MinisterName, m.SecretaryName, m.IsActive, m.ID)
	if err != nil {
		r.logger.Error("Failed to update ministry", zap.String("id", m.ID), zap.Error(err))
		return fmt.Errorf("failed to update ministry: %w", err)
	}
	return requireRowAffected(result, "ministry")
}

// Deactivate soft-deletes a ministry
func (r *MinistryRepository) Deactivate(ctx context.Context, id string) error {
	query := `UPDATE ministries SET is_active = 0, updated_at = CURRENT_TIMESTAMP WHERE id = ?`

	result, err := r.db.Executor(ctx).ExecContext(ctx, query, id)
	if err != nil {
		r.logger.Error("Failed to deactivate ministry", zap.String("id", id), zap.Error(err))
		return fmt.Errorf("failed to deactivate ministry: %w", err)
	}
	return requireRowAffected(result, "ministry")
}
