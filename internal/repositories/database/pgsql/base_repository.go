package pgsql

import (
	"context"
	"net/http"

	"github.com/Masterminds/squirrel"
	"github.com/SscSPs/finreport_backend/internal/apperrors"
	"github.com/georgysavva/scany/v2/pgxscan"
	"github.com/jackc/pgx/v5/pgxpool"
)

// BaseRepository provides common functionality for all repositories
type BaseRepository struct {
	Pool    *pgxpool.Pool
	Builder squirrel.StatementBuilderType
}

func newBaseRepository(pool *pgxpool.Pool) BaseRepository {
	return BaseRepository{
		Pool:    pool,
		Builder: squirrel.StatementBuilder.PlaceholderFormat(squirrel.Dollar),
	}
}

// selectInto renders q and scans every result row into dest.
func (r *BaseRepository) selectInto(ctx context.Context, dest any, q squirrel.Sqlizer, what string) error {
	query, args, err := q.ToSql()
	if err != nil {
		return apperrors.NewAppError(http.StatusInternalServerError, "failed to build "+what+" query", err)
	}
	if err := pgxscan.Select(ctx, r.Pool, dest, query, args...); err != nil {
		return apperrors.NewAppError(http.StatusInternalServerError, "failed to query "+what, err)
	}
	return nil
}
