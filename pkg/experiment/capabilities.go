package experiment

import (
	"fmt"

	bperrors "benchpark/pkg/errors"
	"benchpark/pkg/scaling"
	"benchpark/pkg/spec"
)

// ProgrammingModel is how a benchmark is parallelised on a node.
type ProgrammingModel string

const (
	Serial ProgrammingModel = "serial"
	OpenMP ProgrammingModel = "openmp"
	CUDA   ProgrammingModel = "cuda"
	ROCm   ProgrammingModel = "rocm"
)

// selectable models are switched on with +<model>; serial is the absence of all of them.
var selectableModels = []ProgrammingModel{OpenMP, CUDA, ROCm}

// UsesGPUs reports whether the model runs on GPUs.
func (m ProgrammingModel) UsesGPUs() bool {
	return m == CUDA || m == ROCm
}

// Capabilities are the independently selectable features of a benchmark.
type Capabilities struct {
	// ProgrammingModels lists supported models; the first is the default.
	ProgrammingModels []ProgrammingModel
	// ScalingStrategies lists supported strategies, empty for none.
	ScalingStrategies []string
	// Profiling enables the caliper modifier.
	Profiling bool
}

func (c Capabilities) supportsModel(m ProgrammingModel) bool {
	for _, s := range c.ProgrammingModels {
		if s == m {
			return true
		}
	}

	return false
}

func (c Capabilities) supportsScaling(strategy string) bool {
	for _, s := range c.ScalingStrategies {
		if s == strategy {
			return true
		}
	}

	return false
}

// variants returns the variant declarations implied by the capabilities.
func (c Capabilities) variants() []spec.VariantDef {
	var defs []spec.VariantDef

	for _, m := range c.ProgrammingModels {
		if m != Serial {
			defs = append(defs, spec.BoolVariant(string(m), false, fmt.Sprintf("Build and run with %s", m)))
		}
	}

	for _, s := range c.ScalingStrategies {
		defs = append(defs, spec.BoolVariant(s, false, fmt.Sprintf("%s scaling", s)))
	}

	if len(c.ScalingStrategies) > 0 {
		defs = append(defs, scaling.Variants()...)
	}

	return defs
}

func (c Capabilities) selectModel(s *spec.Spec) (ProgrammingModel, error) {
	var chosen []ProgrammingModel

	for _, m := range selectableModels {
		if !s.Bool(string(m)) {
			continue
		}

		if !c.supportsModel(m) {
			return "", fmt.Errorf("%w: %s does not support %s", bperrors.ErrUnsupportedModel, s.Name, m)
		}

		chosen = append(chosen, m)
	}

	switch len(chosen) {
	case 0:
		if len(c.ProgrammingModels) == 0 {
			return Serial, nil
		}

		return c.ProgrammingModels[0], nil
	case 1:
		return chosen[0], nil
	default:
		return "", fmt.Errorf("%w: %v", bperrors.ErrConflictingModels, chosen)
	}
}

func (c Capabilities) selectScaling(s *spec.Spec) (string, error) {
	var chosen []string

	for _, strategy := range scaling.Strategies() {
		if !s.Bool(strategy) {
			continue
		}

		if !c.supportsScaling(strategy) {
			return "", fmt.Errorf("%w: %s does not support %s scaling", bperrors.ErrUnsupportedScaling, s.Name, strategy)
		}

		chosen = append(chosen, strategy)
	}

	switch len(chosen) {
	case 0:
		return "", nil
	case 1:
		return chosen[0], nil
	default:
		return "", fmt.Errorf("%w: %v", bperrors.ErrConflictingScaling, chosen)
	}
}
