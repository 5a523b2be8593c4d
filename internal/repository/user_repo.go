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

// UserRepository persists user profiles
type UserRepository struct {
	db     *database.DB
	logger *zap.Logger
}

// NewUserRepository creates a new user repository
func NewUserRepository(db *database.DB, logger *zap.Logger) *UserRepository {
	return &UserRepository{
		db:     db,
		logger: logger,
	}
}

const userColumns = `
	id, email, full_name, role, ministry_id, department_id, is_active,
	password_hash, created_at, updated_at
`

// Create inserts a new user profile
func (r *UserRepository) Create(ctx context.Context, u *models.UserProfile) error {
	if u.ID == "" {
		u.ID = uuid.NewString()
	}

	query := `
		INSERT INTO user_profiles (
			id, email, full_name, role, ministry_id, department_id,
			is_active, password_hash
		) VALUES (?, ?, ?, ?, ?, ?, ?, ?)
	`
	_, err := r.db.Executor(ctx).ExecContext(ctx, query,
		u.ID, u.Email, u.FullName, u.Role, u.MinistryID, u.DepartmentID,
		u.IsActive, u.PasswordHash)
	if err != nil {
		r.logger.Error("Failed to create user", zap.Error(err))
		return fmt.Errorf("failed to create user: %w", err)
	}
	return nil
}

// GetByID retrieves a user by id, nil when missing
func (r *UserRepository) GetByID(ctx context.Context, id string) (*models.UserProfile, error) {
	query := `SELECT ` + userColumns + ` FROM user_profiles WHERE id = ?`
	return r.scanOne(r.db.Executor(ctx).QueryRowContext(ctx, query, id))
}

// GetByEmail retrieves a user by email, nil when missing
func (r *UserRepository) GetByEmail(ctx context.Context, email string) (*models.UserProfile, error) {
	query := `SELECT ` + userColumns + ` FROM user_profiles WHERE email = ?`
	return r.scanOne(r.db.Executor(ctx).QueryRowContext(ctx, query, email))
}

// List returns all user profiles
func (r *UserRepository) List(ctx context.Context) ([]*models.UserProfile, error) {
	query := `SELECT ` + userColumns + ` FROM user_profiles ORDER BY full_name ASC`

	rows, err := r.db.Executor(ctx).QueryContext(ctx, query)
	if err != nil {
		r.logger.Error("Failed to list users", zap.Error(err))
		return nil, fmt.Errorf("failed to list users: %w", err)
	}
	defer rows.Close()

	var users []*models.UserProfile
	for rows.Next() {
		u, err := scanUser(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan user: %w", err)
		}
		users = append(users, u)
	}
	return users, rows.Err()
}

// Update rewrites a user's role and organizational scope
func (r *UserRepository) Update(ctx context.Context, u *models.UserProfile) error {
	query := `
		UPDATE user_profiles
		SET full_name = ?, role = ?, ministry_id = ?, department_id = ?,
			is_active = ?, updated_at = CURRENT_TIMESTAMP
		WHERE id = ?
	`
	result, err := r.db.Executor(ctx).ExecContext(ctx, query,
		u.FullName, u.Role, u.MinistryID, u.DepartmentID, u.IsActive, u.ID)
	if err != nil {
		r.logger.Error("Failed to update user", zap.String("id", u.ID), zap.Error(err))
		return fmt.Errorf("failed to update user: %w", err)
	}
	return requireRowAffected(result, "user")
}

func (r *UserRepository) scanOne(row rowScanner) (*models.UserProfile, error) {
	u, err := scanUser(row)
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		r.logger.Error("Failed to get user", zap.Error(err))
		return nil, fmt.Errorf("failed to get user: %w", err)
	}
	return u, nil
}

func scanUser(row rowScanner) (*models.UserProfile, error) {
	var u models.UserProfile
	var ministryID, departmentID sql.NullString

	err := row.Scan(
		&u.ID, &u.Email, &u.FullName, &u.Role, &ministryID, &departmentID,
		&u.IsActive, &u.PasswordHash, &u.CreatedAt, &u.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}

	if ministryID.Valid {
		u.MinistryID = &ministryID.String
	}
	if departmentID.Valid {
		u.DepartmentID = &departmentID.String
	}
	return &u, nil
}
