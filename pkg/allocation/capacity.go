package allocation

import (
	"fmt"

	"github.com/docker/go-units"
	"github.com/hashicorp/go-multierror"

	bperrors "benchpark/pkg/errors"
)

// SystemCapacity is the per-node hardware a system declares.
type SystemCapacity struct {
	// CoresPerNode is the number of cores on each node. Required.
	CoresPerNode int `toml:"cores_per_node" yaml:"sys_cores_per_node"`
	// GPUsPerNode is the number of GPUs on each node, zero for CPU only systems.
	GPUsPerNode int `toml:"gpus_per_node" yaml:"sys_gpus_per_node"`
	// MemPerNode is the memory on each node in bytes. Required.
	MemPerNode int64 `toml:"mem_per_node" yaml:"sys_mem_per_node"`
	// Nodes is the number of nodes in the system, zero when undeclared.
	Nodes int `toml:"nodes,omitempty" yaml:"sys_nodes,omitempty"`
}

// Validate checks that the required capacity fields are present and sane.
func (c SystemCapacity) Validate() error {
	var result *multierror.Error

	if c.CoresPerNode <= 0 {
		result = multierror.Append(result, fmt.Errorf("%w: cores_per_node must be positive, got %d",
			bperrors.ErrInvalidCapacity, c.CoresPerNode))
	}

	if c.GPUsPerNode < 0 {
		result = multierror.Append(result, fmt.Errorf("%w: gpus_per_node must not be negative, got %d",
			bperrors.ErrInvalidCapacity, c.GPUsPerNode))
	}

	if c.MemPerNode <= 0 {
		result = multierror.Append(result, fmt.Errorf("%w: mem_per_node must be positive, got %d",
			bperrors.ErrInvalidCapacity, c.MemPerNode))
	}

	if c.Nodes < 0 {
		result = multierror.Append(result, fmt.Errorf("%w: nodes must not be negative, got %d",
			bperrors.ErrInvalidCapacity, c.Nodes))
	}

	return result.ErrorOrNil()
}

// String returns a short human readable description.
func (c SystemCapacity) String() string {
	s := fmt.Sprintf("%d cores, %d gpus, %s per node", c.CoresPerNode, c.GPUsPerNode, FormatMemory(c.MemPerNode))
	if c.Nodes > 0 {
		s += fmt.Sprintf(", %d nodes", c.Nodes)
	}

	return s
}

// ParseMemory parses sizes such as "512GB" or "256GiB" into bytes.
// Decimal and binary suffixes are both treated as powers of 1024.
func ParseMemory(size string) (int64, error) {
	bytes, err := units.RAMInBytes(size)
	if err != nil {
		return 0, fmt.Errorf("parsing memory size %q: %w", size, err)
	}

	if bytes <= 0 {
		return 0, fmt.Errorf("%w: memory size %q must be positive", bperrors.ErrInvalidRequest, size)
	}

	return bytes, nil
}

// FormatMemory renders bytes using binary units, e.g. "512GiB".
func FormatMemory(bytes int64) string {
	return units.BytesSize(float64(bytes))
}
