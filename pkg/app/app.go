package app

import (
	"context"
	"fmt"
	"os"
	"path/filepath"

	"github.com/sirupsen/logrus"
	"github.com/spf13/afero"

	"benchpark/pkg/defaults"
	bperrors "benchpark/pkg/errors"
	"benchpark/pkg/log"
	"benchpark/pkg/ports"
)

type Config struct {
	// BatchTimeout overrides the system batch time limit, in minutes, when set.
	BatchTimeout int
}

type App struct {
	cfg   *Config
	ports *ports.Collection
}

func New(cfg *Config, ports *ports.Collection) *App {
	return &App{
		cfg:   cfg,
		ports: ports,
	}
}

var _ ports.BenchparkUseCases = (*App)(nil)

// artifact is one file an operation writes.
type artifact struct {
	path string
	data []byte
	perm os.FileMode
}

// ensureEmpty fails when dir exists and has entries.
func (a *App) ensureEmpty(dir string) error {
	exists, err := afero.DirExists(a.ports.FileSystem, dir)
	if err != nil {
		return fmt.Errorf("checking %s: %w", dir, err)
	}

	if !exists {
		return nil
	}

	empty, err := afero.IsEmpty(a.ports.FileSystem, dir)
	if err != nil {
		return fmt.Errorf("checking %s: %w", dir, err)
	}

	if !empty {
		return fmt.Errorf("%w: %s", bperrors.ErrDestinationNotEmpty, dir)
	}

	return nil
}

// write stores every artifact, creating parent directories, and counts them
// against operation.
func (a *App) write(ctx context.Context, operation string, artifacts []artifact) ([]string, error) {
	logger := a.logger(ctx, operation)

	written := make([]string, 0, len(artifacts))

	for _, f := range artifacts {
		if err := a.ports.FileSystem.MkdirAll(filepath.Dir(f.path), defaults.DataDirPerm); err != nil {
			return written, fmt.Errorf("creating directory for %s: %w", f.path, err)
		}

		perm := f.perm
		if perm == 0 {
			perm = defaults.DataFilePerm
		}

		if err := afero.WriteFile(a.ports.FileSystem, f.path, f.data, perm); err != nil {
			return written, fmt.Errorf("writing %s: %w", f.path, err)
		}

		logger.Debugf("wrote %s", f.path)

		written = append(written, f.path)
	}

	a.ports.Metrics.ArtifactsWritten.WithLabelValues(operation).Add(float64(len(written)))

	return written, nil
}

func (a *App) logger(ctx context.Context, action string) *logrus.Entry {
	return log.GetLogger(ctx).WithField("action", action)
}
