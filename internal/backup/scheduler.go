package backup

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"time"

	"github.com/robfig/cron/v3"
	"go.uber.org/zap"
)

const (
	filePrefix = "projects-"
	fileSuffix = ".json"
	timeLayout = "20060102T150405.000"
)

// Snapshotter returns the serialized project list.
type Snapshotter interface {
	Snapshot() ([]byte, error)
}

// Scheduler periodically writes snapshots of the project list to dir and
// keeps only the newest keep files.
type Scheduler struct {
	source Snapshotter
	dir    string
	keep   int
	logger *zap.Logger
	cron   *cron.Cron
	now    func() time.Time
}

func NewScheduler(source Snapshotter, dir string, keep int, logger *zap.Logger) *Scheduler {
	if logger == nil {
		logger = zap.NewNop()
	}
	if keep < 1 {
		keep = 1
	}
	return &Scheduler{
		source: source,
		dir:    dir,
		keep:   keep,
		logger: logger,
		now:    time.Now,
	}
}

// Start registers the backup job on a cron spec with a seconds field,
// e.g. "0 0 0 * * *" for every midnight.
func (s *Scheduler) Start(spec string) error {
	c := cron.New(cron.WithSeconds())

	if _, err := c.AddFunc(spec, func() {
		if _, err := s.RunOnce(); err != nil {
			s.logger.Error("backup failed", zap.Error(err))
		}
	}); err != nil {
		return fmt.Errorf("schedule backup %q: %w", spec, err)
	}

	s.cron = c
	c.Start()
	s.logger.Info("backup scheduler started", zap.String("schedule", spec), zap.String("dir", s.dir))
	return nil
}

// Stop halts the scheduler. The returned context is done once a running
// job has finished.
func (s *Scheduler) Stop() context.Context {
	if s.cron == nil {
		ctx, cancel := context.WithCancel(context.Background())
		cancel()
		return ctx
	}
	return s.cron.Stop()
}

// RunOnce writes one snapshot and prunes old ones. It returns the file written.
func (s *Scheduler) RunOnce() (string, error) {
	data, err := s.source.Snapshot()
	if err != nil {
		return "", fmt.Errorf("snapshot: %w", err)
	}

	path, err := WriteSnapshot(s.dir, data, s.now())
	if err != nil {
		return "", err
	}

	if err := Prune(s.dir, s.keep); err != nil {
		// the snapshot itself was written
		s.logger.Warn("failed to prune old backups", zap.Error(err))
	}

	s.logger.Info("backup written", zap.String("file", path), zap.Int("bytes", len(data)))
	return path, nil
}

// WriteSnapshot stores data in dir under a timestamped name.
func WriteSnapshot(dir string, data []byte, at time.Time) (string, error) {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return "", fmt.Errorf("create backup dir: %w", err)
	}

	path := filepath.Join(dir, filePrefix+at.UTC().Format(timeLayout)+fileSuffix)
	if err := os.WriteFile(path, data, 0o644); err != nil {
		return "", fmt.Errorf("write backup: %w", err)
	}
	return path, nil
}

// Prune removes the oldest snapshots so that at most keep remain.
func Prune(dir string, keep int) error {
	files, err := filepath.Glob(filepath.Join(dir, filePrefix+"*"+fileSuffix))
	if err != nil {
		return err
	}
	if len(files) <= keep {
		return nil
	}

	// the timestamp layout sorts chronologically
	sort.Strings(files)

	for _, f := range files[:len(files)-keep] {
		if err := os.Remove(f); err != nil {
			return fmt.Errorf("remove %s: %w", f, err)
		}
	}
	return nil
}
