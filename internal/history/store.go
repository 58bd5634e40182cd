// Package history persists per-run scan summaries in a local BoltDB
// file so past probing sessions can be listed without re-running them.
package history

import (
	"encoding/json"
	"fmt"
	"time"

	bolt "go.etcd.io/bbolt"
)

var bucketRuns = []byte("runs")

// Record summarizes one completed scan run.
type Record struct {
	When        time.Time `json:"when"`
	DocumentURL string    `json:"document_url"`
	Title       string    `json:"title"`
	Version     string    `json:"version"`
	Total       int       `json:"total"`
	Probed      int       `json:"probed"`
	Skipped     int       `json:"skipped"`
	HTMLPath    string    `json:"html_path"`
	CSVPath     string    `json:"csv_path"`
}

// Store is a disk-backed run history using BoltDB.
type Store struct {
	db *bolt.DB
}

// Open opens (or creates) the history database at path.
func Open(path string) (*Store, error) {
	db, err := bolt.Open(path, 0600, &bolt.Options{
		Timeout: 5 * time.Second,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to open history database: %w", err)
	}

	err = db.Update(func(tx *bolt.Tx) error {
		_, err := tx.CreateBucketIfNotExists(bucketRuns)
		return err
	})
	if err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to create history bucket: %w", err)
	}

	return &Store{db: db}, nil
}

// Record appends a run record. Keys are the run timestamps, so the
// bucket iterates in chronological order.
func (s *Store) Record(rec Record) error {
	if rec.When.IsZero() {
		rec.When = time.Now()
	}

	data, err := json.Marshal(rec)
	if err != nil {
		return err
	}

	return s.db.Update(func(tx *bolt.Tx) error {
		return tx.Bucket(bucketRuns).Put(
			[]byte(rec.When.UTC().Format(time.RFC3339Nano)), data)
	})
}

// List returns all recorded runs, oldest first.
func (s *Store) List() ([]Record, error) {
	var records []Record
	err := s.db.View(func(tx *bolt.Tx) error {
		return tx.Bucket(bucketRuns).ForEach(func(k, v []byte) error {
			var rec Record
			if err := json.Unmarshal(v, &rec); err != nil {
				return nil // skip unreadable entries
			}
			records = append(records, rec)
			return nil
		})
	})
	if err != nil {
		return nil, err
	}
	return records, nil
}

// Close closes the underlying database.
func (s *Store) Close() error {
	return s.db.Close()
}
