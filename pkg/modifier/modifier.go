package modifier

import (
	"fmt"
	"sort"
	"strings"

	"github.com/hashicorp/go-multierror"

	bperrors "benchpark/pkg/errors"
	"benchpark/pkg/spec"
)

const (
	AllocationName = "allocation"
	CaliperName    = "caliper"

	// CaliperVariant is the experiment variant that enables profiling.
	CaliperVariant = "caliper"
	// CaliperDisabled turns profiling off.
	CaliperDisabled = "none"

	// CaliperDataFile is where each experiment writes its profile.
	CaliperDataFile = "{experiment_run_dir}/{experiment_name}.cali"

	caliperPackage = "caliper@main+adiak+mpi"
)

// Modifier is a ramble modifier entry.
type Modifier struct {
	Name string `yaml:"name"`
	Mode string `yaml:"mode,omitempty"`
}

type caliperMode struct {
	name        string
	config      string
	description string
	// requires names the programming model the mode needs, if any.
	requires string
	variants  string
}

var caliperModes = []caliperMode{
	{name: "time", config: "time.exclusive", description: "Platform-independent collection of time"},
	{name: "mpi", config: "profile.mpi,mpi.message.size,mpi.message.count", description: "Profile MPI functions"},
	{name: "cuda", config: "profile.cuda,cuda.gputime,cuda.memcpy.duration", description: "Profile CUDA API functions", requires: "cuda", variants: "+cuda"},
	{name: "topdown-counters-all", config: "topdown-counters.all", description: "Raw counter values for Intel top-down analysis (all levels)", variants: "+papi"},
	{name: "topdown-counters-toplevel", config: "topdown-counters.toplevel", description: "Raw counter values for Intel top-down analysis (top level)", variants: "+papi"},
	{name: "topdown-all", config: "topdown.all", description: "Top-down analysis for Intel CPUs (all levels)", variants: "+papi"},
	{name: "topdown-toplevel", config: "topdown.toplevel", description: "Top-down analysis for Intel CPUs (top level)", variants: "+papi"},
}

// CaliperModes returns the valid caliper variant values.
func CaliperModes() []string {
	names := make([]string, 0, len(caliperModes))
	for _, m := range caliperModes {
		names = append(names, m.name)
	}

	return names
}

// Describe returns one line per available modifier mode, sorted.
func Describe() []string {
	lines := []string{AllocationName + ": computes node, rank and gpu counts from system capacity"}
	for _, m := range caliperModes {
		lines = append(lines, fmt.Sprintf("%s=%s: %s", CaliperName, m.name, m.description))
	}

	sort.Strings(lines)

	return lines
}

// Variant declares the caliper experiment variant.
func Variant() spec.VariantDef {
	return spec.VariantDef{
		Name:        CaliperVariant,
		Default:     CaliperDisabled,
		Values:      append([]string{CaliperDisabled}, CaliperModes()...),
		Description: "Enable the Caliper profiling modifier",
		Multi:       true,
	}
}

// Caliper is the profiling modifier configured for one experiment.
type Caliper struct {
	modes []caliperMode
}

// NewCaliper selects the caliper modes in values. model is the experiment's
// programming model, checked against modes that need one.
func NewCaliper(values []string, model string) (*Caliper, error) {
	c := &Caliper{}

	var result *multierror.Error

	seen := map[string]bool{}

	for _, v := range values {
		if v == CaliperDisabled || seen[v] {
			continue
		}

		seen[v] = true

		mode, ok := lookup(v)
		if !ok {
			result = multierror.Append(result, fmt.Errorf("%w: caliper=%s, expected one of %s",
				bperrors.ErrInvalidVariantValue, v, strings.Join(CaliperModes(), ", ")))

			continue
		}

		if mode.requires != "" && mode.requires != model {
			result = multierror.Append(result, fmt.Errorf("%w: caliper=%s requires the %s programming model, experiment uses %s",
				bperrors.ErrInvalidModifier, v, mode.requires, model))

			continue
		}

		c.modes = append(c.modes, mode)
	}

	if err := result.ErrorOrNil(); err != nil {
		return nil, err
	}

	return c, nil
}

// Enabled reports whether any caliper mode was selected.
func (c *Caliper) Enabled() bool {
	return c != nil && len(c.modes) > 0
}

// Modes returns the selected mode names.
func (c *Caliper) Modes() []string {
	if c == nil {
		return nil
	}

	names := make([]string, 0, len(c.modes))
	for _, m := range c.modes {
		names = append(names, m.name)
	}

	return names
}

// Config returns the CALI_CONFIG value.
func (c *Caliper) Config() string {
	opts := []string{"output=" + CaliperDataFile}
	for _, m := range c.modes {
		opts = append(opts, m.config)
	}

	return fmt.Sprintf("spot(%s)", strings.Join(opts, ","))
}

// EnvVars returns the environment variables the modifier sets.
func (c *Caliper) EnvVars() map[string]string {
	if !c.Enabled() {
		return map[string]string{}
	}

	return map[string]string{"CALI_CONFIG": c.Config()}
}

// PackageSpec returns the caliper package the benchmark must depend on.
func (c *Caliper) PackageSpec() string {
	if !c.Enabled() {
		return ""
	}

	variants := map[string]bool{}
	for _, m := range c.modes {
		if m.variants != "" {
			variants[m.variants] = true
		}
	}

	extra := make([]string, 0, len(variants))
	for v := range variants {
		extra = append(extra, v)
	}

	sort.Strings(extra)

	return caliperPackage + strings.Join(extra, "")
}

// Modifiers returns the ramble modifier entries: allocation always, caliper when enabled.
func (c *Caliper) Modifiers() []Modifier {
	mods := []Modifier{{Name: AllocationName}}
	for _, m := range c.Modes() {
		mods = append(mods, Modifier{Name: CaliperName, Mode: m})
	}

	return mods
}

func lookup(name string) (caliperMode, bool) {
	for _, m := range caliperModes {
		if m.name == name {
			return m, true
		}
	}

	return caliperMode{}, false
}
