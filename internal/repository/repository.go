// Package repository handles all interactions with the database.
//
// It contains raw SQL queries and methods to fetch, persist,
// or update data, abstracting SQL logic away from the service layer.
package repository

import (
	"context"

	"github.com/deppfellow/lightbnb/internal/errs"
	"github.com/deppfellow/lightbnb/internal/logger"
	"github.com/deppfellow/lightbnb/internal/sqlerr"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/newrelic/go-agent/v3/integrations/nrpkgerrors"
	"github.com/newrelic/go-agent/v3/newrelic"
	"github.com/pkg/errors"
	"github.com/rs/zerolog"
)

// DBTX is the connection resource every repository runs against.
// It is satisfied by *pgxpool.Pool and pgx.Tx, so repositories work both
// inside and outside a transaction.
type DBTX interface {
	Exec(ctx context.Context, sql string, arguments ...any) (pgconn.CommandTag, error)
	Query(ctx context.Context, sql string, args ...any) (pgx.Rows, error)
	QueryRow(ctx context.Context, sql string, args ...any) pgx.Row
}

// Options tunes repository behaviour.
type Options struct {
	// LegacyReadErrors makes GetAllProperties and GetAllReservations log a
	// failed query and return a nil result instead of an error.
	LegacyReadErrors bool
}

// base carries what every repository shares.
type base struct {
	db     DBTX
	logger *zerolog.Logger
	opts   Options
}

func (b *base) log(ctx context.Context) *zerolog.Logger {
	return logger.FromContext(ctx, b.logger)
}

// fail logs err, notices it on the current New Relic transaction and wraps
// it into an *errs.QueryExecutionError.
func (b *base) fail(ctx context.Context, op string, err error) error {
	wrapped := errors.WithStack(err)

	b.log(ctx).Error().
		Stack().
		Err(wrapped).
		Str("op", op).
		Str("sql_code", string(sqlerr.ErrCode(err))).
		Msg("query execution failed")

	if txn := newrelic.FromContext(ctx); txn != nil {
		txn.NoticeError(nrpkgerrors.Wrap(wrapped))
	}

	return errs.NewQueryExecutionError(op, wrapped, sqlerr.HandleError(err))
}

// failRead is fail for the list reads, honouring LegacyReadErrors.
func (b *base) failRead(ctx context.Context, op string, err error) error {
	qerr := b.fail(ctx, op, err)
	if b.opts.LegacyReadErrors {
		b.log(ctx).Warn().Str("op", op).Msg("returning empty result for failed read")
		return nil
	}
	return qerr
}

// Repositories is a container for all repository instances.
type Repositories struct {
	Users        *UserRepository
	Properties   *PropertyRepository
	Reservations *ReservationRepository
}

// NewRepositories constructs the repository container over db.
func NewRepositories(db DBTX, logger *zerolog.Logger, opts Options) *Repositories {
	b := base{db: db, logger: logger, opts: opts}

	return &Repositories{
		Users:        &UserRepository{base: b},
		Properties:   &PropertyRepository{base: b},
		Reservations: &ReservationRepository{base: b},
	}
}
