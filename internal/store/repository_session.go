package store

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/MKhiriev/go-job-tracker/internal/logger"
	"github.com/MKhiriev/go-job-tracker/models"
)

type sessionRepository struct {
	logger *logger.Logger
	db     *DB
	now    func() time.Time
}

// NewSessionRepository constructs a [SessionRepository] over the "sessions"
// table.
func NewSessionRepository(db *DB, logger *logger.Logger) SessionRepository {
	logger.Debug().Msg("creating session repository")
	return &sessionRepository{
		db:     db,
		logger: logger,
		now:    func() time.Time { return time.Now().UTC() },
	}
}

func (r *sessionRepository) CreateSession(ctx context.Context, session models.Session) error {
	log := logger.FromContext(ctx)

	query, args, err := buildInsertSessionQuery(r.db.builder, session)
	if err != nil {
		return fmt.Errorf("%w: %w", ErrBuildingSQLQuery, err)
	}

	if _, err = r.db.ExecContext(ctx, query, args...); err != nil {
		log.Err(err).Str("func", "*sessionRepository.CreateSession").Msg("error inserting session")
		return fmt.Errorf("%w: %w", ErrExecutingStatement, err)
	}

	return nil
}

func (r *sessionRepository) FindSessionByID(ctx context.Context, sessionID string) (models.Session, error) {
	log := logger.FromContext(ctx)

	query, args, err := buildSelectSessionByIDQuery(r.db.builder, sessionID)
	if err != nil {
		return models.Session{}, fmt.Errorf("%w: %w", ErrBuildingSQLQuery, err)
	}

	var (
		session   models.Session
		revokedAt sql.NullTime
	)
	row := r.db.QueryRowContext(ctx, query, args...)
	err = row.Scan(
		&session.SessionID,
		&session.UserID,
		&session.TokenHash,
		&session.ExpiresAt,
		&revokedAt,
		&session.CreatedAt,
		&session.UpdatedAt,
	)
	switch {
	case errors.Is(err, sql.ErrNoRows):
		return models.Session{}, ErrSessionNotFound
	case err != nil:
		log.Err(err).Str("func", "*sessionRepository.FindSessionByID").Msg("error: scanning error")
		return models.Session{}, fmt.Errorf("%w: %w", ErrScanningRow, err)
	}

	if revokedAt.Valid {
		session.RevokedAt = &revokedAt.Time
	}

	return session, nil
}

func (r *sessionRepository) RotateSession(ctx context.Context, sessionID, oldHash, newHash string, expiresAt time.Time) error {
	query, args, err := buildRotateSessionQuery(r.db.builder, sessionID, oldHash, newHash, expiresAt.UTC(), r.now())
	if err != nil {
		return fmt.Errorf("%w: %w", ErrBuildingSQLQuery, err)
	}

	return r.execExpectingRow(ctx, "*sessionRepository.RotateSession", query, args)
}

func (r *sessionRepository) RevokeSession(ctx context.Context, sessionID, tokenHash string) error {
	query, args, err := buildRevokeSessionQuery(r.db.builder, sessionID, tokenHash, r.now())
	if err != nil {
		return fmt.Errorf("%w: %w", ErrBuildingSQLQuery, err)
	}

	return r.execExpectingRow(ctx, "*sessionRepository.RevokeSession", query, args)
}

func (r *sessionRepository) RevokeUserSessions(ctx context.Context, userID string) (int64, error) {
	query, args, err := buildRevokeUserSessionsQuery(r.db.builder, userID, r.now())
	if err != nil {
		return 0, fmt.Errorf("%w: %w", ErrBuildingSQLQuery, err)
	}

	return r.exec(ctx, "*sessionRepository.RevokeUserSessions", query, args)
}

func (r *sessionRepository) DeleteExpiredSessions(ctx context.Context, before time.Time) (int64, error) {
	query, args, err := buildDeleteExpiredSessionsQuery(r.db.builder, before.UTC())
	if err != nil {
		return 0, fmt.Errorf("%w: %w", ErrBuildingSQLQuery, err)
	}

	return r.exec(ctx, "*sessionRepository.DeleteExpiredSessions", query, args)
}

func (r *sessionRepository) execExpectingRow(ctx context.Context, fn, query string, args []any) error {
	n, err := r.exec(ctx, fn, query, args)
	if err != nil {
		return err
	}
	if n == 0 {
		return ErrSessionNotFound
	}
	return nil
}

func (r *sessionRepository) exec(ctx context.Context, fn, query string, args []any) (int64, error) {
	log := logger.FromContext(ctx)

	res, err := r.db.ExecContext(ctx, query, args...)
	if err != nil {
		log.Err(err).Str("func", fn).Str("class", r.db.classify(err).String()).Msg("error executing statement")
		return 0, fmt.Errorf("%w: %w", ErrExecutingStatement, err)
	}

	n, err := res.RowsAffected()
	if err != nil {
		return 0, fmt.Errorf("%w: %w", ErrExecutingStatement, err)
	}

	return n, nil
}
