package history

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"consolidator/core/database"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// DefaultLimit is the number of runs List returns when no limit is given.
const DefaultLimit = 20

var (
	// ErrRunNotFound is returned when no run has the requested id.
	ErrRunNotFound = errors.New("run not found")
	// ErrDisabled is returned by queries when no database is configured.
	ErrDisabled = errors.New("run history is disabled")
)

// Store persists runs through GORM.
type Store struct {
	db *gorm.DB
}

// NewStore creates a store. A nil db yields a disabled store.
func NewStore(db *gorm.DB) *Store {
	return &Store{db: db}
}

// Enabled reports whether the store has a database behind it.
func (s *Store) Enabled() bool {
	return s != nil && s.db != nil
}

// Migrate creates or updates the runs table and verifies its columns.
func (s *Store) Migrate(ctx context.Context) error {
	if !s.Enabled() {
		return nil
	}
	if err := s.db.WithContext(ctx).AutoMigrate(&Run{}); err != nil {
		return fmt.Errorf("failed to migrate runs: %w", err)
	}
	missing, err := s.Verify()
	if err != nil {
		return err
	}
	if len(missing) > 0 {
		return fmt.Errorf("runs table is missing columns: %s", strings.Join(missing, ", "))
	}
	return nil
}

// Verify returns the Run columns absent from the live table.
func (s *Store) Verify() ([]string, error) {
	if !s.Enabled() {
		return nil, ErrDisabled
	}
	return database.MissingColumns(s.db, Run{}.TableName(), Columns())
}

// Record saves run. It is a no-op on a disabled store.
func (s *Store) Record(ctx context.Context, run *Run) error {
	if !s.Enabled() || run == nil {
		return nil
	}
	if run.ID == "" {
		run.ID = uuid.NewString()
	}
	if err := s.db.WithContext(ctx).Save(run).Error; err != nil {
		return fmt.Errorf("failed to record run %s: %w", run.ID, err)
	}
	return nil
}

// List returns the most recent runs, newest first, optionally filtered by kind.
func (s *Store) List(ctx context.Context, kind string, limit int) ([]Run, error) {
	if !s.Enabled() {
		return nil, ErrDisabled
	}
	if limit <= 0 {
		limit = DefaultLimit
	}

	q := s.db.WithContext(ctx).Order("started_at desc").Limit(limit)
	if kind != "" {
		q = q.Where("kind = ?", kind)
	}

	var runs []Run
	if err := q.Find(&runs).Error; err != nil {
		return nil, fmt.Errorf("failed to list runs: %w", err)
	}
	return runs, nil
}

// Get returns the run with the given id.
func (s *Store) Get(ctx context.Context, id string) (*Run, error) {
	if !s.Enabled() {
		return nil, ErrDisabled
	}

	var run Run
	err := s.db.WithContext(ctx).Where("id = ?", id).First(&run).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, ErrRunNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get run %s: %w", id, err)
	}
	return &run, nil
}
