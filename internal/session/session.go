// Package session reads the locally persisted user session. The login
// flow is its sole writer; the client only checks it before routing into
// employee views.
package session

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"go.etcd.io/bbolt"
)

const bucketName = "session"

var (
	userKey  = []byte("user")
	tokenKey = []byte("jwt")
	hashKey  = []byte("lastHash")
)

// Type is the role of the connected user.
type Type string

const (
	TypeEmployee Type = "Employee"
	TypeAdmin    Type = "Admin"
)

// User identifies the connected employee or admin.
type User struct {
	Type  Type   `json:"type"`
	Email string `json:"email"`
}

func (u *User) IsEmployee() bool {
	return u != nil && u.Type == TypeEmployee
}

// Store is the bbolt-backed local key-value store holding the session.
type Store struct {
	db *bbolt.DB
}

func Open(path string) (*Store, error) {
	if dir := filepath.Dir(path); dir != "." {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return nil, fmt.Errorf("creating session directory: %w", err)
		}
	}

	db, err := bbolt.Open(path, 0o600, &bbolt.Options{Timeout: 1 * time.Second})
	if err != nil {
		return nil, fmt.Errorf("opening session store: %w", err)
	}

	err = db.Update(func(tx *bbolt.Tx) error {
		_, err := tx.CreateBucketIfNotExists([]byte(bucketName))
		return err
	})
	if err != nil {
		db.Close()
		return nil, fmt.Errorf("creating session bucket: %w", err)
	}

	return &Store{db: db}, nil
}

// User returns the persisted user, or nil when nobody is connected.
// Absence is a routing precondition, not an error.
func (s *Store) User() (*User, error) {
	var user *User

	err := s.db.View(func(tx *bbolt.Tx) error {
		data := tx.Bucket([]byte(bucketName)).Get(userKey)
		if data == nil {
			return nil
		}

		return json.Unmarshal(data, &user)
	})
	if err != nil {
		return nil, fmt.Errorf("reading session user: %w", err)
	}

	return user, nil
}

func (s *Store) SetUser(u *User) error {
	data, err := json.Marshal(u)
	if err != nil {
		return fmt.Errorf("marshaling user: %w", err)
	}

	return s.db.Update(func(tx *bbolt.Tx) error {
		return tx.Bucket([]byte(bucketName)).Put(userKey, data)
	})
}

// Token returns the persisted API token, empty when absent.
func (s *Store) Token() (string, error) {
	var token string

	err := s.db.View(func(tx *bbolt.Tx) error {
		if data := tx.Bucket([]byte(bucketName)).Get(tokenKey); data != nil {
			token = string(data)
		}

		return nil
	})
	if err != nil {
		return "", fmt.Errorf("reading session token: %w", err)
	}

	return token, nil
}

func (s *Store) SetToken(token string) error {
	return s.db.Update(func(tx *bbolt.Tx) error {
		return tx.Bucket([]byte(bucketName)).Put(tokenKey, []byte(token))
	})
}

// LastHash returns the location fragment persisted by the previous run,
// used to restore the view on startup when the role still matches.
func (s *Store) LastHash() string {
	var hash string

	_ = s.db.View(func(tx *bbolt.Tx) error {
		if data := tx.Bucket([]byte(bucketName)).Get(hashKey); data != nil {
			hash = string(data)
		}

		return nil
	})

	return hash
}

func (s *Store) SetLastHash(hash string) error {
	return s.db.Update(func(tx *bbolt.Tx) error {
		return tx.Bucket([]byte(bucketName)).Put(hashKey, []byte(hash))
	})
}

// Valid reports whether the session allows routing into employee views:
// a user must be present and, when a token exists, it must not be expired.
// The token signature is the server's business; only the expiry claim is
// inspected here.
func (s *Store) Valid() bool {
	user, err := s.User()
	if err != nil || user == nil {
		return false
	}

	token, err := s.Token()
	if err != nil {
		return false
	}

	if token == "" {
		return true
	}

	return !tokenExpired(token)
}

func (s *Store) Close() error {
	return s.db.Close()
}

func tokenExpired(raw string) bool {
	parsed, _, err := jwt.NewParser().ParseUnverified(raw, jwt.MapClaims{})
	if err != nil {
		return true
	}

	exp, err := parsed.Claims.GetExpirationTime()
	if err != nil || exp == nil {
		return false
	}

	return exp.Before(time.Now())
}
