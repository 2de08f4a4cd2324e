package history

import (
	"reflect"
	"strings"
	"time"

	"github.com/google/uuid"
)

// Run kinds.
const (
	KindConsolidate = "consolidate"
	KindSync        = "sync"
	KindMerge       = "merge"
	KindClean       = "clean"
)

// Run statuses.
const (
	StatusRunning = "running"
	StatusOK      = "ok"
	StatusNoOp    = "noop"
	StatusFailed  = "failed"
)

// Run is one execution of a pipeline stage.
type Run struct {
	ID         string    `gorm:"primaryKey;column:id;type:varchar(36)" json:"id"`
	Kind       string    `gorm:"column:kind;type:varchar(32);index" json:"kind"`
	Status     string    `gorm:"column:status;type:varchar(16)" json:"status"`
	DryRun     bool      `gorm:"column:dry_run" json:"dry_run"`
	StartedAt  time.Time `gorm:"column:started_at;index" json:"started_at"`
	FinishedAt time.Time `gorm:"column:finished_at" json:"finished_at"`
	Target     string    `gorm:"column:target;type:varchar(512)" json:"target"`
	Backup     string    `gorm:"column:backup;type:varchar(512)" json:"backup,omitempty"`
	Read       int       `gorm:"column:records_read" json:"records_read"`
	Written    int       `gorm:"column:records_written" json:"records_written"`
	Duplicates int       `gorm:"column:duplicates" json:"duplicates"`
	Matched    int       `gorm:"column:matched" json:"matched"`
	Unmatched  int       `gorm:"column:unmatched" json:"unmatched"`
	Balanced   bool      `gorm:"column:balanced" json:"balanced"`
	Error      string    `gorm:"column:error;type:text" json:"error,omitempty"`
}

func (Run) TableName() string {
	return "runs"
}

// NewRun starts a run of the given kind.
func NewRun(kind string) *Run {
	return &Run{
		ID:        uuid.NewString(),
		Kind:      kind,
		Status:    StatusRunning,
		StartedAt: time.Now().UTC(),
		Balanced:  true,
	}
}

// Finish stamps the run with its outcome and returns it.
// A run already marked as a no-op keeps that status when err is nil.
func (r *Run) Finish(err error) *Run {
	r.FinishedAt = time.Now().UTC()
	switch {
	case err != nil:
		r.Status = StatusFailed
		r.Error = err.Error()
	case r.Status != StatusNoOp:
		r.Status = StatusOK
	}
	return r
}

// Duration returns how long the run took, or zero while it is running.
func (r *Run) Duration() time.Duration {
	if r.FinishedAt.IsZero() {
		return 0
	}
	return r.FinishedAt.Sub(r.StartedAt)
}

// Columns returns the column names declared by Run's gorm tags.
func Columns() []string {
	t := reflect.TypeOf(Run{})
	var cols []string
	for i := 0; i < t.NumField(); i++ {
		if col := parseGormColumn(t.Field(i).Tag.Get("gorm")); col != "" {
			cols = append(cols, col)
		}
	}
	return cols
}

func parseGormColumn(tag string) string {
	for _, p := range strings.Split(tag, ";") {
		if strings.HasPrefix(p, "column:") {
			return strings.TrimPrefix(p, "column:")
		}
	}
	return ""
}
