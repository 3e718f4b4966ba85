// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package store

import (
	"time"

	sq "github.com/Masterminds/squirrel"

	"github.com/MKhiriev/go-job-tracker/models"
)

const (
	usersTable    = "users"
	sessionsTable = "sessions"
)

var (
	userColumns = []string{
		"user_id",
		"username",
		"email",
		"password_hash",
		"created_at",
	}

	sessionColumns = []string{
		"session_id",
		"user_id",
		"token_hash",
		"expires_at",
		"revoked_at",
		"created_at",
		"updated_at",
	}

	liveSession = sq.Eq{"revoked_at": nil}
)

func buildInsertUserQuery(b sq.StatementBuilderType, user models.User) (string, []any, error) {
	return b.Insert(usersTable).
		Columns(userColumns...).
		Values(user.UserID, user.Username, user.Email, user.PasswordHash, user.CreatedAt).
		ToSql()
}

func buildSelectUserByEmailQuery(b sq.StatementBuilderType, email string) (string, []any, error) {
	return b.Select(userColumns...).
		From(usersTable).
		Where(sq.Eq{"email": email}).
		ToSql()
}

func buildSelectUserByIDQuery(b sq.StatementBuilderType, userID string) (string, []any, error) {
	return b.Select(userColumns...).
		From(usersTable).
		Where(sq.Eq{"user_id": userID}).
		ToSql()
}

func buildSelectAllUsersQuery(b sq.StatementBuilderType) (string, []any, error) {
	return b.Select(userColumns...).
		From(usersTable).
		OrderBy("created_at", "user_id").
		ToSql()
}

func buildUpdatePasswordHashQuery(b sq.StatementBuilderType, userID, passwordHash string) (string, []any, error) {
	return b.Update(usersTable).
		Set("password_hash", passwordHash).
		Where(sq.Eq{"user_id": userID}).
		ToSql()
}

func buildInsertSessionQuery(b sq.StatementBuilderType, s models.Session) (string, []any, error) {
	return b.Insert(sessionsTable).
		Columns(sessionColumns...).
		Values(s.SessionID, s.UserID, s.TokenHash, s.ExpiresAt, s.RevokedAt, s.CreatedAt, s.UpdatedAt).
		ToSql()
}

func buildSelectSessionByIDQuery(b sq.StatementBuilderType, sessionID string) (string, []any, error) {
	return b.Select(sessionColumns...).
		From(sessionsTable).
		Where(sq.Eq{"session_id": sessionID}).
		ToSql()
}

// buildRotateSessionQuery only matches a live session whose hash is still
// oldHash.
func buildRotateSessionQuery(b sq.StatementBuilderType, sessionID, oldHash, newHash string, expiresAt, now time.Time) (string, []any, error) {
	return b.Update(sessionsTable).
		Set("token_hash", newHash).
		Set("expires_at", expiresAt).
		Set("updated_at", now).
		Where(sq.Eq{"session_id": sessionID}).
		Where(sq.Eq{"token_hash": oldHash}).
		Where(liveSession).
		ToSql()
}

func buildRevokeSessionQuery(b sq.StatementBuilderType, sessionID, tokenHash string, now time.Time) (string, []any, error) {
	return b.Update(sessionsTable).
		Set("revoked_at", now).
		Set("updated_at", now).
		Where(sq.Eq{"session_id": sessionID}).
		Where(sq.Eq{"token_hash": tokenHash}).
		Where(liveSession).
		ToSql()
}

func buildRevokeUserSessionsQuery(b sq.StatementBuilderType, userID string, now time.Time) (string, []any, error) {
	return b.Update(sessionsTable).
		Set("revoked_at", now).
		Set("updated_at", now).
		Where(sq.Eq{"user_id": userID}).
		Where(liveSession).
		ToSql()
}

func buildDeleteExpiredSessionsQuery(b sq.StatementBuilderType, before time.Time) (string, []any, error) {
	return b.Delete(sessionsTable).
		Where(sq.Or{
			sq.Lt{"expires_at": before},
			sq.Lt{"revoked_at": before},
		}).
		ToSql()
}
