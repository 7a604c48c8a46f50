// Package store persists the AniDB login info and the file lookup cache
// in a single bbolt database under the user's data directory.
package store

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"time"

	bolt "go.etcd.io/bbolt"

	"github.com/Ennea/shisho/anidb"
)

// Bucket and key names
var (
	bucketMeta      = []byte("meta")
	bucketFileCache = []byte("file_cache")
	keyUser         = []byte("user")
	keyPass         = []byte("pass")
)

// Store implements anidb.Store on top of bbolt. Cache entries and login
// info are written once and kept indefinitely; nothing is ever expired
// or deleted here.
type Store struct {
	db *bolt.DB
}

var _ anidb.Store = (*Store)(nil)

// Open opens the database at dir/shisho.db, creating the directory, the
// file and the buckets on first run.
func Open(dir string) (*Store, error) {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, fmt.Errorf("store: create data directory: %w", err)
	}

	db, err := bolt.Open(filepath.Join(dir, "shisho.db"), 0o600, &bolt.Options{Timeout: time.Second})
	if err != nil {
		return nil, fmt.Errorf("store: open database: %w", err)
	}

	err = db.Update(func(tx *bolt.Tx) error {
		for _, bucket := range [][]byte{bucketMeta, bucketFileCache} {
			if _, err := tx.CreateBucketIfNotExists(bucket); err != nil {
				return err
			}
		}
		return nil
	})
	if err != nil {
		db.Close()
		return nil, fmt.Errorf("store: create buckets: %w", err)
	}

	return &Store{db: db}, nil
}

// DefaultDir returns the per-user data directory, honouring XDG_DATA_HOME.
func DefaultDir() (string, error) {
	if dir := os.Getenv("XDG_DATA_HOME"); dir != "" {
		return filepath.Join(dir, "shisho"), nil
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(home, ".local", "share", "shisho"), nil
}

func (s *Store) Close() error {
	return s.db.Close()
}

// Credentials returns the stored login info. A record is only complete
// when both fields are present.
func (s *Store) Credentials() (anidb.Credentials, bool, error) {
	var creds anidb.Credentials
	err := s.db.View(func(tx *bolt.Tx) error {
		bucket := tx.Bucket(bucketMeta)
		creds.User = string(bucket.Get(keyUser))
		creds.Pass = string(bucket.Get(keyPass))
		return nil
	})
	if err != nil {
		return anidb.Credentials{}, false, err
	}
	return creds, creds.User != "" && creds.Pass != "", nil
}

// PutCredentials stores the login info, replacing any previous record.
func (s *Store) PutCredentials(creds anidb.Credentials) error {
	return s.db.Update(func(tx *bolt.Tx) error {
		bucket := tx.Bucket(bucketMeta)
		if err := bucket.Put(keyUser, []byte(creds.User)); err != nil {
			return err
		}
		return bucket.Put(keyPass, []byte(creds.Pass))
	})
}

// File returns the cached metadata for an ed2k hash.
func (s *Store) File(ed2k string) (anidb.FileMetadata, bool, error) {
	var data []byte
	err := s.db.View(func(tx *bolt.Tx) error {
		if value := tx.Bucket(bucketFileCache).Get([]byte(ed2k)); value != nil {
			data = append([]byte(nil), value...)
		}
		return nil
	})
	if err != nil {
		return anidb.FileMetadata{}, false, err
	}
	if data == nil {
		return anidb.FileMetadata{}, false, nil
	}

	var meta anidb.FileMetadata
	if err := json.Unmarshal(data, &meta); err != nil {
		return anidb.FileMetadata{}, false, fmt.Errorf("store: decode cache entry: %w", err)
	}
	return meta, true, nil
}

// PutFile stores the metadata for an ed2k hash.
func (s *Store) PutFile(ed2k string, meta anidb.FileMetadata) error {
	data, err := json.Marshal(meta)
	if err != nil {
		return fmt.Errorf("store: encode cache entry: %w", err)
	}
	return s.db.Update(func(tx *bolt.Tx) error {
		return tx.Bucket(bucketFileCache).Put([]byte(ed2k), data)
	})
}
