package experiment

import (
	"fmt"

	"benchpark/pkg/allocation"
	"benchpark/pkg/scaling"
	"benchpark/pkg/spec"
)

var (
	amgProcessorGrid = []string{"px", "py", "pz"}
	amgProblemSize   = []string{"nx", "ny", "nz"}
)

// AMG2023 is the algebraic multigrid solver benchmark.
type AMG2023 struct{}

func (AMG2023) Name() string { return "amg2023" }

func (AMG2023) Description() string {
	return "parallel algebraic multigrid solver for linear systems on unstructured grids"
}

func (AMG2023) Capabilities() Capabilities {
	return Capabilities{
		ProgrammingModels: []ProgrammingModel{OpenMP, CUDA, ROCm},
		ScalingStrategies: scaling.Strategies(),
		Profiling:         true,
	}
}

func (AMG2023) Variants() []spec.VariantDef {
	return []spec.VariantDef{
		{Name: "workload", Default: "problem1", Values: []string{"problem1", "problem2"}, Description: "problem to solve"},
		{Name: "version", Default: "develop", Values: []string{"develop"}, Description: "app version"},
	}
}

func (a AMG2023) Workload(e *Experiment) (*Workload, error) {
	workload := e.Spec.Value("workload")

	problem := 1
	if workload == "problem2" {
		problem = 2
	}

	size := 80
	if e.Model.UsesGPUs() {
		size = 40
	}

	grid := scaling.Vector(amgProcessorGrid, []int{2, 2, 2})
	sizes := scaling.Vector(amgProblemSize, []int{size, size, size})

	var (
		series map[string][]int
		err    error
	)

	switch e.Scaling {
	case scaling.Strong:
		series, err = scaling.StrongScaling([]scaling.Variable{grid}, e.Factor, e.Iterations)
	case scaling.Weak:
		series, err = scaling.WeakScaling([]scaling.Variable{grid}, []scaling.Variable{sizes}, e.Factor, e.Iterations)
	case scaling.Throughput:
		series, err = scaling.ThroughputScaling([]scaling.Variable{sizes}, e.Factor, e.Iterations)
	default:
		series, err = scaling.Scale([]scaling.Variable{grid, sizes}, 1, 1, "")
	}

	if err != nil {
		return nil, fmt.Errorf("scaling amg2023 variables: %w", err)
	}

	w := &Workload{
		Name:       workload,
		Executable: "amg -P {px} {py} {pz} -n {nx} {ny} {nz} -problem {problem}",
		Variables:  map[string]interface{}{"problem": problem},
	}

	for _, vars := range zip(withDefaults(series, grid, sizes), e.Iterations) {
		ranks := vars["px"] * vars["py"] * vars["pz"]

		inst := Instance{
			Name: e.Name(vars["px"], vars["py"], vars["pz"], vars["nx"], vars["ny"], vars["nz"]),
			Variables: map[string]interface{}{
				"px": vars["px"], "py": vars["py"], "pz": vars["pz"],
				"nx": vars["nx"], "ny": vars["ny"], "nz": vars["nz"],
			},
		}

		if e.Model.UsesGPUs() {
			inst.Request = allocation.Request{NGPUs: allocation.Int(ranks)}
		} else {
			inst.Request = allocation.Request{NRanks: allocation.Int(ranks)}
		}

		w.Instances = append(w.Instances, inst)
	}

	return w, nil
}

// withDefaults adds the initial values of variables a strategy leaves unscaled.
func withDefaults(series map[string][]int, vars ...scaling.Variable) map[string][]int {
	for _, v := range vars {
		for i, name := range v.Names {
			if _, ok := series[name]; !ok {
				series[name] = []int{v.Values[i]}
			}
		}
	}

	return series
}
