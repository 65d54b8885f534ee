package system

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/spf13/afero"

	"benchpark/pkg/defaults"
	bperrors "benchpark/pkg/errors"
	"benchpark/pkg/ramble"
)

// Write stores the description files under dir and returns the paths written.
func Write(fs afero.Fs, dir string, d *Description) ([]string, error) {
	if err := fs.MkdirAll(dir, defaults.DataDirPerm); err != nil {
		return nil, fmt.Errorf("creating system dir %s: %w", dir, err)
	}

	desc, err := d.Encode()
	if err != nil {
		return nil, err
	}

	vars, err := ramble.Marshal(d.VariablesDocument())
	if err != nil {
		return nil, err
	}

	software, err := ramble.Marshal(d.SoftwareDocument())
	if err != nil {
		return nil, err
	}

	files := []struct {
		name string
		data []byte
	}{
		{defaults.SystemFile, desc},
		{defaults.VariablesFile, vars},
		{defaults.SoftwareFile, software},
	}

	written := make([]string, 0, len(files))

	for _, f := range files {
		path := filepath.Join(dir, f.name)
		if err := afero.WriteFile(fs, path, f.data, defaults.DataFilePerm); err != nil {
			return written, fmt.Errorf("writing %s: %w", path, err)
		}

		written = append(written, path)
	}

	return written, nil
}

// Load reads system.toml from dir.
func Load(fs afero.Fs, dir string) (*Description, error) {
	path := filepath.Join(dir, defaults.SystemFile)

	data, err := afero.ReadFile(fs, path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, fmt.Errorf("%w: %s", bperrors.ErrSystemDescRequired, path)
		}

		return nil, fmt.Errorf("reading %s: %w", path, err)
	}

	return Decode(data)
}
