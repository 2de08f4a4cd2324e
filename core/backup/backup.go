package backup

import (
	"context"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"sort"
	"strconv"
	"strings"
	"time"

	"consolidator/core/storage"
	"consolidator/core/utils"

	"github.com/minio/minio-go/v7"
	"go.uber.org/zap"
)

// Marker separates the file stem from the timestamp in backup names.
const Marker = "-backup-"

// maxCollisions bounds the "-N" suffixes tried for backups taken in the same millisecond.
const maxCollisions = 99

const xlsxContentType = "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet"

// Manager takes backups and optionally mirrors them to object storage.
type Manager struct {
	cfg    Config
	store  storage.Client
	bucket string
	logger *zap.Logger
	now    func() time.Time
}

// NewManager creates a backup manager. store may be nil to disable mirroring.
func NewManager(cfg Config, store storage.Client, bucket string, logger *zap.Logger) *Manager {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Manager{
		cfg:    cfg,
		store:  store,
		bucket: bucket,
		logger: logger,
		now:    time.Now,
	}
}

// Name returns the backup file name for path taken at t.
func Name(path string, t time.Time) string {
	ext := filepath.Ext(path)
	return utils.Stem(path) + Marker + strconv.FormatInt(t.UnixMilli(), 10) + ext
}

// IsBackup reports whether name looks like a backup produced by this package.
func IsBackup(name string) bool {
	return strings.Contains(filepath.Base(name), Marker)
}

// Dir returns the directory backups of path are written to.
func (m *Manager) Dir(path string) string {
	if m.cfg.Dir != "" {
		return m.cfg.Dir
	}
	return filepath.Join(filepath.Dir(path), "backups")
}

// Backup copies path into the backup directory and returns the copy's path.
// A missing path returns "" and no error.
func (m *Manager) Backup(ctx context.Context, path string) (string, error) {
	exists, err := utils.FileExists(path)
	if err != nil {
		return "", fmt.Errorf("failed to stat %s: %w", path, err)
	}
	if !exists {
		m.logger.Debug("Nothing to back up", zap.String("path", path))
		return "", nil
	}

	dir := m.Dir(path)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return "", fmt.Errorf("failed to create backup directory: %w", err)
	}

	dst, err := m.copyUnique(path, dir, m.now())
	if err != nil {
		return "", fmt.Errorf("failed to back up %s: %w", path, err)
	}
	m.logger.Info("Backup created", zap.String("source", path), zap.String("backup", dst))

	if m.store != nil {
		if err := m.mirror(ctx, dst); err != nil {
			m.logger.Warn("Backup mirror failed", zap.String("backup", dst), zap.Error(err))
		}
	}

	if m.cfg.Keep > 0 {
		removed, err := m.Prune(path)
		if err != nil {
			m.logger.Warn("Backup pruning failed", zap.Error(err))
		} else if removed > 0 {
			m.logger.Info("Old backups removed", zap.Int("count", removed))
		}
	}

	return dst, nil
}

// copyUnique copies path into dir under a name no earlier backup uses.
// Backups taken within the same millisecond get a "-N" suffix.
func (m *Manager) copyUnique(path, dir string, t time.Time) (string, error) {
	base := Name(path, t)
	ext := filepath.Ext(base)
	for n := 0; n <= maxCollisions; n++ {
		name := base
		if n > 0 {
			name = strings.TrimSuffix(base, ext) + "-" + strconv.Itoa(n) + ext
		}
		dst := filepath.Join(dir, name)
		err := utils.CopyFile(path, dst)
		if errors.Is(err, fs.ErrExist) {
			continue
		}
		if err != nil {
			return "", err
		}
		return dst, nil
	}
	return "", fmt.Errorf("too many backups of %s at %d", path, t.UnixMilli())
}

func (m *Manager) mirror(ctx context.Context, path string) error {
	f, err := os.Open(path)
	if err != nil {
		return err
	}
	defer f.Close()

	info, err := f.Stat()
	if err != nil {
		return err
	}

	_, err = m.store.PutObject(ctx, m.bucket, filepath.Base(path), f, info.Size(), minio.PutObjectOptions{
		ContentType: xlsxContentType,
	})
	return err
}

// Prune removes the oldest backups of path beyond the configured Keep count.
func (m *Manager) Prune(path string) (int, error) {
	if m.cfg.Keep <= 0 {
		return 0, nil
	}
	pattern := filepath.Join(m.Dir(path), utils.Stem(path)+Marker+"*"+filepath.Ext(path))
	matches, err := filepath.Glob(pattern)
	if err != nil {
		return 0, err
	}
	if len(matches) <= m.cfg.Keep {
		return 0, nil
	}

	sort.Slice(matches, func(i, j int) bool {
		mi, ni := stamp(matches[i])
		mj, nj := stamp(matches[j])
		if mi != mj {
			return mi < mj
		}
		return ni < nj
	})

	removed := 0
	for _, old := range matches[:len(matches)-m.cfg.Keep] {
		if err := os.Remove(old); err != nil {
			return removed, fmt.Errorf("failed to remove %s: %w", old, err)
		}
		removed++
	}
	return removed, nil
}

// stamp returns the millisecond timestamp and collision suffix of a backup name.
func stamp(path string) (int64, int) {
	name := utils.Stem(path)
	idx := strings.LastIndex(name, Marker)
	if idx < 0 {
		return 0, 0
	}
	ms, suffix, _ := strings.Cut(name[idx+len(Marker):], "-")
	at, _ := strconv.ParseInt(ms, 10, 64)
	n, _ := strconv.Atoi(suffix)
	return at, n
}
