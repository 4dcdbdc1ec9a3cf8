package postgres

import (
	"context"
	"errors"
	"fmt"

	squirrel "github.com/Masterminds/squirrel"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/avdeev/module-certification/internal/core/domain"
	"github.com/avdeev/module-certification/internal/core/port"
	"github.com/avdeev/module-certification/internal/repository"
)

// UserProfileRepository implements port.UserProfileRepository using PostgreSQL.
type UserProfileRepository struct {
	exec    pgExecutor
	builder squirrel.StatementBuilderType
}

// NewUserProfileRepository wires a PostgreSQL-backed user profile repository.
func NewUserProfileRepository(pool *pgxpool.Pool) *UserProfileRepository {
	return &UserProfileRepository{exec: pool, builder: builder()}
}

// GetByID retrieves a user profile by identifier.
func (r *UserProfileRepository) GetByID(ctx context.Context, id string) (*domain.UserProfile, error) {
	stmt, args, err := r.builder.
		Select("id", "email", "display_name", "role", "active", "created_at", "updated_at").
		From("users").
		Where(squirrel.Eq{"id": id}).
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("build select user sql: %w", err)
	}

	var profile domain.UserProfile
	err = r.exec.QueryRow(ctx, stmt, args...).Scan(
		&profile.ID,
		&profile.Email,
		&profile.DisplayName,
		&profile.Role,
		&profile.Active,
		&profile.CreatedAt,
		&profile.UpdatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, repository.ErrNotFound
		}
		return nil, fmt.Errorf("select user: %w", err)
	}

	return &profile, nil
}

// Update rewrites the mutable profile fields.
func (r *UserProfileRepository) Update(ctx context.Context, profile domain.UserProfile) error {
	stmt, args, err := r.builder.
		Update("users").
		Set("email", profile.Email).
		Set("display_name", profile.DisplayName).
		Set("role", profile.Role).
		Set("active", profile.Active).
		Set("updated_at", profile.UpdatedAt).
		Where(squirrel.Eq{"id": profile.ID}).
		ToSql()
	if err != nil {
		return fmt.Errorf("build update user sql: %w", err)
	}

	tag, err := r.exec.Exec(ctx, stmt, args...)
	if err != nil {
		return fmt.Errorf("update user: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return repository.ErrNotFound
	}

	return nil
}

var _ port.UserProfileRepository = (*UserProfileRepository)(nil)
