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

// RoundRepository implements port.RoundRepository using PostgreSQL.
type RoundRepository struct {
	exec    pgExecutor
	builder squirrel.StatementBuilderType
}

// NewRoundRepository wires a PostgreSQL-backed round repository.
func NewRoundRepository(pool *pgxpool.Pool) *RoundRepository {
	return &RoundRepository{exec: pool, builder: builder()}
}

// Active returns the single round whose status is active, or
// repository.ErrNotFound when none exists.
func (r *RoundRepository) Active(ctx context.Context) (*domain.CertificationRound, error) {
	stmt, args, err := r.builder.
		Select("id", "name", "status", "start_date", "due_date", "created_by", "created_at", "updated_at").
		From("certification_rounds").
		Where(squirrel.Eq{"status": domain.RoundStatusActive}).
		Limit(1).
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("build select round sql: %w", err)
	}

	var round domain.CertificationRound
	err = r.exec.QueryRow(ctx, stmt, args...).Scan(
		&round.ID,
		&round.Name,
		&round.Status,
		&round.StartDate,
		&round.DueDate,
		&round.CreatedBy,
		&round.CreatedAt,
		&round.UpdatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, repository.ErrNotFound
		}
		return nil, fmt.Errorf("select active round: %w", err)
	}

	return &round, nil
}

// Create inserts a new certification round.
func (r *RoundRepository) Create(ctx context.Context, round domain.CertificationRound) error {
	stmt, args, err := r.builder.
		Insert("certification_rounds").
		Columns("id", "name", "status", "start_date", "due_date", "created_by", "created_at", "updated_at").
		Values(round.ID, round.Name, round.Status, round.StartDate, round.DueDate, round.CreatedBy, round.CreatedAt, round.UpdatedAt).
		ToSql()
	if err != nil {
		return fmt.Errorf("build insert round sql: %w", err)
	}

	if _, err := r.exec.Exec(ctx, stmt, args...); err != nil {
		return fmt.Errorf("insert round: %w", err)
	}

	return nil
}

var _ port.RoundRepository = (*RoundRepository)(nil)
