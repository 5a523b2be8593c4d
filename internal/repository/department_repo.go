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

// DepartmentRepository persists departments
type DepartmentRepository struct {
	db     *database.DB
	logger *zap.Logger
}

// NewDepartmentRepository creates a new department repository
func NewDepartmentRepository(db *database.DB, logger *zap.Logger) *DepartmentRepository {
	return &DepartmentRepository{
		db:     db,
		logger: logger,
	}
}

// Create inserts a new department
func (r *DepartmentRepository) Create(ctx context.Context, d *models.Department) error {
	if d.ID == "" {
		d.ID = uuid.NewString()
	}

	query := `
		INSERT INTO departments (id, name, code, ministry_id, description, is_active, created_by)
		VALUES (?, ?, ?, ?, ?, ?, ?)
	`
	_, err := r.db.Executor(ctx).ExecContext(ctx, query,
		d.ID, d.Name, d.Code, d.MinistryID, d.Description, d.IsActive, d.CreatedBy)
	if err != nil {
		r.logger.Error("Failed to create department", zap.Error(err))
		return fmt.Errorf("failed to create department: %w", err)
	}
	return nil
}

// GetByID retrieves a department by id, nil when missing
func (r *DepartmentRepository) GetByID(ctx context.Context, id string) (*models.Department, error) {
	query := `
		SELECT id, name, code, ministry_id, description, is_active,
			created_by, created_at, updated_at
		FROM departments WHERE id = ?
	`

	var d models.Department
	err := r.db.Executor(ctx).QueryRowContext(ctx, query, id).Scan(
		&d.ID, &d.Name, &d.Code, &d.MinistryID, &d.Description,
		&d.IsActive, &d.CreatedBy, &d.CreatedAt, &d.UpdatedAt,
	)
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		r.logger.Error("Failed to get department", zap.String("id", id), zap.Error(err))
		return nil, fmt.Errorf("failed to get department: %w", err)
	}
	return &d, nil
}

// ListByMinistry returns a ministry's departments; empty ministryID lists all
func (r *DepartmentRepository) ListByMinistry(ctx context.Context, ministryID string) ([]*models.Department, error) {
	query := `
		SELECT id, name, code, ministry_id, description, is_active,
			created_by, created_at, updated_at
		FROM departments
	`
	var args []interface{}
	if ministryID != "" {
		query += " WHERE ministry_id = ?"
		args = append(args, ministryID)
	}
	query += " ORDER BY name ASC"

	rows, err := r.db.Executor(ctx).QueryContext(ctx, query, args...)
	if err != nil {
		r.logger.Error("Failed to list departments", zap.Error(err))
		return nil, fmt.Errorf("failed to list departments: %w", err)
	}
	defer rows.Close()

	var departments []*models.Department
	for rows.Next() {
		var d models.Department
		err := rows.Scan(&d.ID, &d.Name, &d.Code, &d.MinistryID, &d.Description,
			&d.IsActive, &d.CreatedBy, &d.CreatedAt, &d.UpdatedAt)
		if err != nil {
			return nil, fmt.Errorf("failed to scan department: %w", err)
		}
		departments = append(departments, &d)
	}
	return departments, rows.Err()
}

// Update rewrites a department's editable fields
func (r *DepartmentRepository) Update(ctx context.Context, d *models.Department) error {
	query := `
		UPDATE departments
		SET name = ?, code = ?, description = ?, is_active = ?,
			updated_at = CURRENT_TIMESTAMP
		WHERE id = ?
	`
	result, err := r.db.Executor(ctx).ExecContext(ctx, query,
		d.Name, d.Code, d.Description, d.IsActive, d.ID)
	if err != nil {
		r.logger.Error("Failed to update department", zap.String("id", d.ID), zap.Error(err))
		return fmt.Errorf("failed to update department: %w", err)
	}
	return requireRowAffected(result, "department")
}
