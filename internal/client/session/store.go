// Package session persists the login session (bearer token, account email,
// expiry) in a local BoltDB file between CLI invocations.
package session

import (
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"go.etcd.io/bbolt"
)

var bucketSession = []byte("session")

var sessionKey = []byte("current")

// ErrNoSession indicates that no session is stored.
var ErrNoSession = errors.New("not logged in")

// Session is the stored login state. The token is the complete session:
// nothing else needs to survive between commands.
type Session struct {
	AccessToken string    `json:"access_token"`
	Email       string    `json:"email"`
	ExpiresAt   time.Time `json:"expires_at"`
}

// Expired reports whether the stored token's lifetime has passed.
func (s *Session) Expired() bool {
	return time.Now().After(s.ExpiresAt)
}

// Store is the BoltDB-backed session store.
type Store struct {
	db *bbolt.DB
}

// Open opens (or creates) the session database at dbPath.
func Open(dbPath string) (*Store, error) {
	db, err := bbolt.Open(dbPath, 0600, &bbolt.Options{Timeout: time.Second})
	if err != nil {
		return nil, fmt.Errorf("failed to open session database: %w", err)
	}

	err = db.Update(func(tx *bbolt.Tx) error {
		_, err := tx.CreateBucketIfNotExists(bucketSession)
		return err
	})
	if err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to initialize session bucket: %w", err)
	}

	return &Store{db: db}, nil
}

// Close closes the database.
func (s *Store) Close() error {
	if s.db == nil {
		return nil
	}
	return s.db.Close()
}

// Save stores the session, replacing any previous one.
func (s *Store) Save(sess *Session) error {
	if sess == nil {
		return fmt.Errorf("session is nil")
	}

	data, err := json.Marshal(sess)
	if err != nil {
		return fmt.Errorf("failed to marshal session: %w", err)
	}

	return s.db.Update(func(tx *bbolt.Tx) error {
		return tx.Bucket(bucketSession).Put(sessionKey, data)
	})
}

// Get returns the stored session or ErrNoSession.
func (s *Store) Get() (*Session, error) {
	var data []byte
	err := s.db.View(func(tx *bbolt.Tx) error {
		if v := tx.Bucket(bucketSession).Get(sessionKey); v != nil {
			data = make([]byte, len(v))
			copy(data, v)
		}
		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("failed to read session: %w", err)
	}
	if data == nil {
		return nil, ErrNoSession
	}

	var sess Session
	if err := json.Unmarshal(data, &sess); err != nil {
		return nil, fmt.Errorf("failed to unmarshal session: %w", err)
	}

	return &sess, nil
}

// Delete removes the stored session. Deleting a missing session is not an
// error.
func (s *Store) Delete() error {
	return s.db.Update(func(tx *bbolt.Tx) error {
		return tx.Bucket(bucketSession).Delete(sessionKey)
	})
}

// Current returns the stored session if it is still valid; an expired
// session is treated as absent.
func (s *Store) Current() (*Session, error) {
	sess, err := s.Get()
	if err != nil {
		return nil, err
	}
	if sess.Expired() {
		return nil, ErrNoSession
	}
	return sess, nil
}
