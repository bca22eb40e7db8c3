package storage

import (
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/opsbook-cli/opsbook/idgen"
	"github.com/opsbook-cli/opsbook/runbook"
	bolt "go.etcd.io/bbolt"
)

var bucketRunbooks = []byte("runbooks")

var ErrNotFound = errors.New("runbook not found")

// Info identifies a stored runbook without its steps.
type Info struct {
	ID    string
	Title string
}

// Store persists runbooks in a local bolt database. Runbooks are stored as
// JSON values keyed by their rb- id.
type Store struct {
	db *bolt.DB
}

// Open opens or creates the database at path, creating parent directories
// as needed.
func Open(path string) (*Store, error) {
	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return nil, err
	}

	db, err := bolt.Open(path, 0600, &bolt.Options{Timeout: 5 * time.Second})
	if err != nil {
		return nil, fmt.Errorf("open runbook store: %w", err)
	}

	err = db.Update(func(tx *bolt.Tx) error {
		_, err := tx.CreateBucketIfNotExists(bucketRunbooks)
		return err
	})
	if err != nil {
		db.Close()
		return nil, fmt.Errorf("create bucket: %w", err)
	}

	return &Store{db: db}, nil
}

func (s *Store) Close() error {
	return s.db.Close()
}

// Save stores the runbook under a fresh id and returns it.
func (s *Store) Save(rb *runbook.Runbook) (string, error) {
	id := idgen.New(idgen.RunbookPrefix)
	err := s.db.Update(func(tx *bolt.Tx) error {
		b := tx.Bucket(bucketRunbooks)
		if b == nil {
			return fmt.Errorf("bucket %q not found", bucketRunbooks)
		}
		data, err := json.Marshal(rb)
		if err != nil {
			return err
		}
		return b.Put([]byte(id), data)
	})
	if err != nil {
		return "", err
	}
	return id, nil
}

func (s *Store) Get(id string) (*runbook.Runbook, error) {
	var rb runbook.Runbook
	err := s.db.View(func(tx *bolt.Tx) error {
		b := tx.Bucket(bucketRunbooks)
		if b == nil {
			return fmt.Errorf("bucket %q not found", bucketRunbooks)
		}
		data := b.Get([]byte(id))
		if data == nil {
			return fmt.Errorf("runbook %s: %w", id, ErrNotFound)
		}
		return json.Unmarshal(data, &rb)
	})
	if err != nil {
		return nil, err
	}
	return &rb, nil
}

func (s *Store) Delete(id string) error {
	return s.db.Update(func(tx *bolt.Tx) error {
		b := tx.Bucket(bucketRunbooks)
		if b == nil {
			return fmt.Errorf("bucket %q not found", bucketRunbooks)
		}
		if b.Get([]byte(id)) == nil {
			return fmt.Errorf("runbook %s: %w", id, ErrNotFound)
		}
		return b.Delete([]byte(id))
	})
}

func (s *Store) List() ([]Info, error) {
	var infos []Info
	err := s.db.View(func(tx *bolt.Tx) error {
		b := tx.Bucket(bucketRunbooks)
		if b == nil {
			return nil
		}
		infos = make([]Info, 0, b.Stats().KeyN)
		return b.ForEach(func(k, v []byte) error {
			var rb runbook.Runbook
			if err := json.Unmarshal(v, &rb); err != nil {
				return err
			}
			infos = append(infos, Info{ID: string(k), Title: rb.Title})
			return nil
		})
	})
	return infos, err
}
