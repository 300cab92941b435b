package storage

import "github.com/clearday/clearday/pkg/sobriety"

// Store is the external record store: one profile per user plus an
// append-only log of reset events. Computed streak state is never
// written here.
type Store interface {
	PutProfile(userID string, p sobriety.Profile) error
	GetProfile(userID string) (*sobriety.Profile, error)
	PutResetEvent(userID string, e sobriety.ResetEvent) error
	LatestResetEvent(userID string) (*sobriety.ResetEvent, error)
	ListResetEvents(userID string) ([]sobriety.ResetEvent, error)
	Close() error
}
