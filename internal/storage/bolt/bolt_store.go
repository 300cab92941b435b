package bolt

import (
	"encoding/json"
	"fmt"

	"github.com/clearday/clearday/internal/storage"
	"github.com/clearday/clearday/pkg/sobriety"
	"go.etcd.io/bbolt"
)

const rootBucket = "users"
const defaultUserID = "default"

const (
	profileKey   = "profile"
	resetsBucket = "resets"
)

type Store struct {
	db *bbolt.DB
}

func Open(path string) (*Store, error) {
	db, err := bbolt.Open(path, 0600, nil)
	if err != nil {
		return nil, err
	}

	s := &Store{db: db}

	if err := db.Update(func(tx *bbolt.Tx) error {
		_, err := tx.CreateBucketIfNotExists([]byte(rootBucket))
		return err
	}); err != nil {
		_ = db.Close()
		return nil, err
	}

	return s, nil
}

func (s *Store) Close() error {
	return s.db.Close()
}

func normalizeUser(userID string) []byte {
	if userID == "" {
		userID = defaultUserID
	}
	return []byte(userID)
}

func ensureUserBucket(tx *bbolt.Tx, userID string) (*bbolt.Bucket, error) {
	return tx.Bucket([]byte(rootBucket)).CreateBucketIfNotExists(normalizeUser(userID))
}

// lookupUserBucket is the read-side counterpart; nil means the user has
// no records at all.
func lookupUserBucket(tx *bbolt.Tx, userID string) *bbolt.Bucket {
	return tx.Bucket([]byte(rootBucket)).Bucket(normalizeUser(userID))
}

func (s *Store) PutProfile(userID string, p sobriety.Profile) error {
	return s.db.Update(func(tx *bbolt.Tx) error {
		bucket, err := ensureUserBucket(tx, userID)
		if err != nil {
			return err
		}
		val, err := json.Marshal(p)
		if err != nil {
			return err
		}
		return bucket.Put([]byte(profileKey), val)
	})
}

// GetProfile returns nil without error when the user has no profile yet.
func (s *Store) GetProfile(userID string) (*sobriety.Profile, error) {
	var out *sobriety.Profile
	err := s.db.View(func(tx *bbolt.Tx) error {
		bucket := lookupUserBucket(tx, userID)
		if bucket == nil {
			return nil
		}
		val := bucket.Get([]byte(profileKey))
		if val == nil {
			return nil
		}
		var p sobriety.Profile
		if err := json.Unmarshal(val, &p); err != nil {
			return err
		}
		out = &p
		return nil
	})
	return out, err
}

// Reset events are keyed occurredOn/restartDate/id. ISO dates sort
// lexicographically in chronological order, so the bucket cursor's Last
// position is the most recent event, with equal occurred-on dates tie
// broken by the later restart date.
func resetKey(e sobriety.ResetEvent) []byte {
	return fmt.Appendf(nil, "%s/%s/%s", e.OccurredOn, e.RestartDate, e.ID)
}

func (s *Store) PutResetEvent(userID string, e sobriety.ResetEvent) error {
	return s.db.Update(func(tx *bbolt.Tx) error {
		bucket, err := ensureUserBucket(tx, userID)
		if err != nil {
			return err
		}
		resets, err := bucket.CreateBucketIfNotExists([]byte(resetsBucket))
		if err != nil {
			return err
		}
		val, err := json.Marshal(e)
		if err != nil {
			return err
		}
		return resets.Put(resetKey(e), val)
	})
}

// LatestResetEvent returns nil without error when no reset was ever logged.
func (s *Store) LatestResetEvent(userID string) (*sobriety.ResetEvent, error) {
	var out *sobriety.ResetEvent
	err := s.db.View(func(tx *bbolt.Tx) error {
		bucket := lookupUserBucket(tx, userID)
		if bucket == nil {
			return nil
		}
		resets := bucket.Bucket([]byte(resetsBucket))
		if resets == nil {
			return nil
		}
		_, val := resets.Cursor().Last()
		if val == nil {
			return nil
		}
		var e sobriety.ResetEvent
		if err := json.Unmarshal(val, &e); err != nil {
			return err
		}
		out = &e
		return nil
	})
	return out, err
}

func (s *Store) ListResetEvents(userID string) ([]sobriety.ResetEvent, error) {
	var out []sobriety.ResetEvent
	err := s.db.View(func(tx *bbolt.Tx) error {
		bucket := lookupUserBucket(tx, userID)
		if bucket == nil {
			return nil
		}
		resets := bucket.Bucket([]byte(resetsBucket))
		if resets == nil {
			return nil
		}
		return resets.ForEach(func(_, v []byte) error {
			var e sobriety.ResetEvent
			if err := json.Unmarshal(v, &e); err != nil {
				return err
			}
			out = append(out, e)
			return nil
		})
	})
	return out, err
}

var _ storage.Store = (*Store)(nil)
