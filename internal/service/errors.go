package service

import (
	"context"
	"errors"
	"log/slog"

	"github.com/jackc/pgx/v5/pgconn"

	"github.com/tuanvumaihuynh/product-catalog/internal/apperr"
	"github.com/tuanvumaihuynh/product-catalog/pkg/zerror"
)

const pgUniqueViolation = "23505"

// classifyError maps any failure to the catalog error taxonomy. Application errors
// pass through, unique violations become conflicts carrying the database detail,
// everything else is logged and hidden behind InternalErr.
func (s *catalogService) classifyError(ctx context.Context, err error) error {
	var zErr zerror.ZError
	if errors.As(err, &zErr) {
		return zErr
	}

	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) && pgErr.Code == pgUniqueViolation {
		detail := pgErr.Detail
		if detail == "" {
			detail = pgErr.Message
		}
		return apperr.ProductConflictErr.WithMsg(detail).WrapParent(err)
	}

	s.logger.ErrorContext(ctx, "unexpected catalog error", slog.Any("error", err))

	return apperr.InternalErr.WrapParent(err)
}
