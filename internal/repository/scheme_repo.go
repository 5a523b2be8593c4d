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

// SchemeFilter narrows scheme listings
type SchemeFilter struct {
	MinistryID   string
	DepartmentID string
	SchemeType   models.SchemeType
	ActiveOnly   bool
}

// SchemeRepository persists government schemes
type SchemeRepository struct {
	db     *database.DB
	logger *zap.Logger
}

// NewSchemeRepository creates a new scheme repository
func NewSchemeRepository(db *database.DB, logger *zap.Logger) *SchemeRepository {
	return &SchemeRepository{
		db:     db,
		logger: logger,
	}
}

const schemeColumns = `
	id, name, code, ministry_id, department_id, scheme_type, description,
	objectives, start_date, end_date, is_active, created_by, created_at, updated_at
`

// Create inserts a new scheme
func (r *SchemeRepository) Create(ctx context.Context, s *models.Scheme) error {
	if s.ID == "" {
		s.ID = uuid.NewString()
	}

	query := `
		INSERT INTO schemes (
			id, name, code, ministry_id, department_id, scheme_type,
			description, objectives, start_date, end_date, is_active, created_by
		) VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)
	`
	_, err := r.db.Executor(ctx).ExecContext(ctx, query,
		s.ID, s.Name, s.Code, s.MinistryID, s.DepartmentID, s.SchemeType,
		s.Description, s.Objectives, s.StartDate, s.EndDate, s.IsActive, s.CreatedBy)
	if err != nil {
		r.logger.Error("Failed to create scheme", zap.Error(err))
		return fmt.Errorf("failed to create scheme: %w", err)
	}
	return nil
}

// GetByID retrieves a scheme by id, nil when missing
func (r *SchemeRepository) GetByID(ctx context.Context, id string) (*models.Scheme, error) {
	query := `SELECT ` + schemeColumns + ` FROM schemes WHERE id = ?`

	s, err := scanScheme(r.db.Executor(ctx).QueryRowContext(ctx, query, id))
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		r.logger.Error("Failed to get scheme", zap.String("id", id), zap.Error(err))
		return nil, fmt.Errorf("failed to get scheme: %w", err)
	}
	return s, nil
}

// List returns schemes matching the filter, alphabetically
func (r *SchemeRepository) List(ctx context.Context, filter SchemeFilter) ([]*models.Scheme, error) {
	query := `SELECT ` + schemeColumns + ` FROM schemes WHERE 1=1`
	var args []interface{}

	if filter.MinistryID != "" {
		query += " AND ministry_id = ?"
		args = append(args, filter.MinistryID)
	}
	if filter.DepartmentID != "" {
		query += " AND department_id = ?"
		args = append(args, filter.DepartmentID)
	}
	if filter.SchemeType != "" {
		query += " AND scheme_type = ?"
		args = append(args, filter.SchemeType)
	}
	if filter.ActiveOnly {
		query += " AND is_active = 1"
	}
	query += " ORDER BY name ASC"

	rows, err := r.db.Executor(ctx).QueryContext(ctx, query, args...)
	if err != nil {
		r.logger.Error("Failed to list schemes", zap.Error(err))
		return nil, fmt.Errorf("failed to list schemes: %w", err)
	}
	defer rows.Close()

	var schemes []*models.Scheme
	for rows.Next() {
		s, err := scanScheme(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan scheme: %w", err)
		}
		schemes = append(schemes, s)
	}
	return schemes, rows.Err()
}

// Update rewrites a scheme's editable fields
func (r *SchemeRepository) Update(ctx context.Context, s *models.Scheme) error {
	query := `
		UPDATE schemes
		SET name = ?, code = ?, department_id = ?, scheme_type = ?,
			description = ?, objectives = ?, start_date = ?, end_date = ?,
			is_active = ?, updated_at = CURRENT_TIMESTAMP
		WHERE id = ?
	`
	result, err := r.db.Executor(ctx).ExecContext(ctx, query,
		s.Name, s.Code, s.DepartmentID, s.SchemeType, s.Description,
		s.Objectives, s.StartDate, s.EndDate, s.IsActive, s.ID)
	if err != nil {
		r.logger.Error("Failed to update scheme", zap.String("id", s.ID), zap.Error(err))
		return fmt.Errorf("failed to update scheme: %w", err)
	}
	return requireRowAffected(result, "scheme")
}

func scanScheme(row rowScanner) (*models.Scheme, error) {
	var s models.Scheme
	var departmentID sql.NullString
	var startDate, endDate sql.NullTime

	err := row.Scan(
		&s.ID, &s.Name, &s.Code, &s.MinistryID, &departmentID, &s.SchemeType,
		&s.Description, &s.Objectives, &startDate, &endDate, &s.IsActive,
		&s.CreatedBy, &s.CreatedAt, &s.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}

	if departmentID.Valid {
		s.DepartmentID = &departmentID.String
	}
	if startDate.Valid {
		s.StartDate = &startDate.Time
	}
	if endDate.Valid {
		s.EndDate = &endDate.Time
	}
	return &s, nil
}
