package system

import (
	"fmt"
	"sort"

	"github.com/pelletier/go-toml/v2"

	"benchpark/pkg/allocation"
	"benchpark/pkg/defaults"
	bperrors "benchpark/pkg/errors"
	"benchpark/pkg/ramble"
	"benchpark/pkg/spec"
)

// System is a target machine the catalogue knows how to describe.
type System struct {
	Name        string
	Summary     string
	Scheduler   string
	Capacity    allocation.SystemCapacity
	VariantDefs []spec.VariantDef
	// configure applies variant choices to the description.
	configure func(s *spec.Spec, d *Description) error
}

// Hardware is the capacity section of system.toml.
type Hardware struct {
	CoresPerNode int    `toml:"cores_per_node"`
	GPUsPerNode  int    `toml:"gpus_per_node"`
	MemPerNode   string `toml:"mem_per_node"`
	Nodes        int    `toml:"nodes,omitempty"`
}

// Description is a concrete system, persisted as system.toml.
type Description struct {
	Name      string            `toml:"name"`
	Spec      string            `toml:"spec"`
	Scheduler string            `toml:"scheduler"`
	Timeout   int               `toml:"timeout"`
	Hardware  Hardware          `toml:"hardware"`
	Externals []string          `toml:"externals,omitempty"`
	Compilers []string          `toml:"compilers,omitempty"`
	Variables map[string]string `toml:"variables,omitempty"`
	// Software maps package aliases such as default-mpi to package specs.
	Software map[string]string `toml:"software,omitempty"`
}

// Describe validates s against the system variants and builds a description.
func (sys *System) Describe(s *spec.Spec) (*Description, error) {
	if err := s.Validate(sys.VariantDefs, nil); err != nil {
		return nil, fmt.Errorf("validating %s: %w", s.Name, err)
	}

	s.ApplyDefaults(sys.VariantDefs)

	d := &Description{
		Name:      sys.Name,
		Scheduler: sys.Scheduler,
		Timeout:   defaults.BatchTimeout,
		Hardware: Hardware{
			CoresPerNode: sys.Capacity.CoresPerNode,
			GPUsPerNode:  sys.Capacity.GPUsPerNode,
			MemPerNode:   allocation.FormatMemory(sys.Capacity.MemPerNode),
			Nodes:        sys.Capacity.Nodes,
		},
		Variables: map[string]string{},
		Software:  map[string]string{},
	}

	if sys.configure != nil {
		if err := sys.configure(s, d); err != nil {
			return nil, fmt.Errorf("configuring %s: %w", sys.Name, err)
		}
	}

	d.Spec = s.String()

	if _, err := d.Capacity(); err != nil {
		return nil, err
	}

	return d, nil
}

// Capacity parses the hardware section.
func (d *Description) Capacity() (allocation.SystemCapacity, error) {
	c := allocation.SystemCapacity{
		CoresPerNode: d.Hardware.CoresPerNode,
		GPUsPerNode:  d.Hardware.GPUsPerNode,
		Nodes:        d.Hardware.Nodes,
	}

	if d.Hardware.MemPerNode == "" {
		return c, fmt.Errorf("%w: %s declares no mem_per_node", bperrors.ErrInvalidCapacity, d.Name)
	}

	mem, err := allocation.ParseMemory(d.Hardware.MemPerNode)
	if err != nil {
		return c, fmt.Errorf("%w: %s: %v", bperrors.ErrInvalidCapacity, d.Name, err)
	}

	c.MemPerNode = mem

	if err := c.Validate(); err != nil {
		return c, fmt.Errorf("system %s: %w", d.Name, err)
	}

	return c, nil
}

// RambleVariables returns the variables written to variables.yaml.
func (d *Description) RambleVariables() map[string]interface{} {
	vars := map[string]interface{}{
		"scheduler":          d.Scheduler,
		"timeout":            d.Timeout,
		"sys_cores_per_node": d.Hardware.CoresPerNode,
		"sys_gpus_per_node":  d.Hardware.GPUsPerNode,
		"sys_mem_per_node":   d.Hardware.MemPerNode,
	}

	if d.Hardware.Nodes > 0 {
		vars["sys_nodes"] = d.Hardware.Nodes
	}

	for k, v := range d.Variables {
		vars[k] = v
	}

	return vars
}

// SoftwareAliases returns the software aliases sorted by name.
func (d *Description) SoftwareAliases() []string {
	names := make([]string, 0, len(d.Software))
	for name := range d.Software {
		names = append(names, name)
	}

	sort.Strings(names)

	return names
}

// Encode renders the description as TOML.
func (d *Description) Encode() ([]byte, error) {
	data, err := toml.Marshal(d)
	if err != nil {
		return nil, fmt.Errorf("encoding system %s: %w", d.Name, err)
	}

	return data, nil
}

// Decode parses a system.toml.
func Decode(data []byte) (*Description, error) {
	d := &Description{}
	if err := toml.Unmarshal(data, d); err != nil {
		return nil, fmt.Errorf("decoding system description: %w", err)
	}

	if d.Name == "" {
		return nil, fmt.Errorf("%w: missing name", bperrors.ErrSystemDescRequired)
	}

	if !knownScheduler(d.Scheduler) {
		return nil, fmt.Errorf("system %s: %w %q", d.Name, bperrors.ErrUnsupportedScheduler, d.Scheduler)
	}

	return d, nil
}

func knownScheduler(scheduler string) bool {
	if scheduler == "" {
		return true
	}

	for _, name := range allocation.Schedulers() {
		if name == scheduler {
			return true
		}
	}

	return false
}

// VariablesDocument returns the contents of variables.yaml.
func (d *Description) VariablesDocument() *ramble.VariablesDocument {
	return &ramble.VariablesDocument{Variables: d.RambleVariables()}
}

// SoftwareDocument returns the contents of software.yaml.
func (d *Description) SoftwareDocument() *ramble.SoftwareDocument {
	doc := &ramble.SoftwareDocument{
		Software: ramble.Software{Packages: make(map[string]ramble.Package, len(d.Software))},
	}

	for _, alias := range d.SoftwareAliases() {
		doc.Software.Packages[alias] = ramble.Package{PkgSpec: d.Software[alias]}
	}

	return doc
}
