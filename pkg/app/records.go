package app

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/spf13/afero"
	"gopkg.in/yaml.v2"

	"benchpark/pkg/defaults"
	bperrors "benchpark/pkg/errors"
	"benchpark/pkg/spec"
)

// experimentRecord is the content of experiment.yaml.
type experimentRecord struct {
	Benchmark   string    `yaml:"benchmark"`
	Spec        string    `yaml:"spec"`
	Created     time.Time `yaml:"created"`
	Experiments []string  `yaml:"experiments"`
}

func loadExperimentRecord(fs afero.Fs, dir string) (*experimentRecord, *spec.Spec, error) {
	path := filepath.Join(dir, defaults.ExperimentFile)

	data, err := afero.ReadFile(fs, path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, nil, fmt.Errorf("%w: %s", bperrors.ErrExperimentDescRequired, path)
		}

		return nil, nil, fmt.Errorf("reading %s: %w", path, err)
	}

	record := &experimentRecord{}
	if err := yaml.Unmarshal(data, record); err != nil {
		return nil, nil, fmt.Errorf("decoding %s: %w", path, err)
	}

	if record.Spec == "" {
		return nil, nil, fmt.Errorf("%w: %s has no spec", bperrors.ErrExperimentDescRequired, path)
	}

	s, err := spec.Parse(strings.Fields(record.Spec))
	if err != nil {
		return nil, nil, fmt.Errorf("parsing spec in %s: %w", path, err)
	}

	return record, s, nil
}

// artifactRecord is one entry of manifest.yaml.
type artifactRecord struct {
	Path   string `yaml:"path"`
	Digest string `yaml:"digest"`
}

// manifest is the content of manifest.yaml.
type manifest struct {
	WorkspaceID string           `yaml:"workspace_id"`
	Created     time.Time        `yaml:"created"`
	Experiment  string           `yaml:"experiment"`
	System      string           `yaml:"system"`
	Artifacts   []artifactRecord `yaml:"artifacts"`
}
