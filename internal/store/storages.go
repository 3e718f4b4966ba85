package store

import "github.com/MKhiriev/go-job-tracker/internal/logger"

// Storages groups the repositories the services depend on.
type Storages struct {
	UserRepository    UserRepository
	SessionRepository SessionRepository
}

// NewStorages builds every repository over db.
func NewStorages(db *DB, log *logger.Logger) *Storages {
	return &Storages{
		UserRepository:    NewUserRepository(db, log),
		SessionRepository: NewSessionRepository(db, log),
	}
}
