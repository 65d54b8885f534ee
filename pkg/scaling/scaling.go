// Package scaling generates the variable values for a series of scaling experiments.
//
// Variables are either scalars (one name, one value) or vectors (several names,
// one value per name, e.g. px/py/pz). Each experiment after the first multiplies
// every scalar by the scaling factor and one dimension of every vector; the
// dimension cycles round-robin starting at the smallest value of the scaling variable.
package scaling

import (
	"fmt"
	"strings"

	"benchpark/pkg/defaults"
	bperrors "benchpark/pkg/errors"
	"benchpark/pkg/spec"
)

const (
	Strong     = "strong"
	Weak       = "weak"
	Throughput = "throughput"

	FactorVariant     = "scaling-factor"
	IterationsVariant = "scaling-iterations"
)

// Variable is a named scalar or vector of initial values.
type Variable struct {
	Names  []string
	Values []int
}

// Scalar returns a single valued variable.
func Scalar(name string, value int) Variable {
	return Variable{Names: []string{name}, Values: []int{value}}
}

// Vector returns a variable with one value per dimension.
func Vector(names []string, values []int) Variable {
	return Variable{Names: names, Values: values}
}

// Key identifies the variable, names joined by commas.
func (v Variable) Key() string {
	return strings.Join(v.Names, ",")
}

func (v Variable) isVector() bool {
	return len(v.Names) > 1
}

// Strategies returns the scaling strategy names.
func Strategies() []string {
	return []string{Strong, Weak, Throughput}
}

// Variants returns the variants every scaling experiment accepts.
func Variants() []spec.VariantDef {
	return []spec.VariantDef{
		{
			Name:        FactorVariant,
			Default:     fmt.Sprint(defaults.ScalingFactor),
			Values:      spec.IntValues,
			Description: "Factor by which to scale values of problem variables",
		},
		{
			Name:        IterationsVariant,
			Default:     fmt.Sprint(defaults.ScalingIterations),
			Values:      spec.IntValues,
			Description: "Number of experiments to be generated",
		},
	}
}

// Order returns the dimension indexes in scaling order: starting at the smallest
// value of the scaling variable and proceeding round-robin.
func Order(vars []Variable, scalingVar string) ([]int, error) {
	dims := 1

	for _, v := range vars {
		if v.isVector() {
			dims = len(v.Values)
			break
		}
	}

	sv, ok := find(vars, scalingVar)
	if !ok {
		return nil, fmt.Errorf("%w: unknown scaling variable %q", bperrors.ErrInvalidScaling, scalingVar)
	}

	minDim := 0
	if sv.isVector() {
		for i, value := range sv.Values {
			if value < sv.Values[minDim] {
				minDim = i
			}
		}
	}

	order := make([]int, dims)
	for i := range order {
		order[i] = (minDim + i) % dims
	}

	return order, nil
}

// Scale produces n values for every variable name. An empty scalingVar selects
// the first variable.
func Scale(vars []Variable, factor, n int, scalingVar string) (map[string][]int, error) {
	if len(vars) == 0 {
		return map[string][]int{}, nil
	}

	if factor <= 0 || n <= 0 {
		return nil, fmt.Errorf("%w: factor %d and iterations %d must be positive", bperrors.ErrInvalidScaling, factor, n)
	}

	if scalingVar == "" {
		scalingVar = vars[0].Key()
	}

	if err := validate(vars); err != nil {
		return nil, err
	}

	order, err := Order(vars, scalingVar)
	if err != nil {
		return nil, err
	}

	// series[v][d] is the list of values of dimension d of variable v
	series := make([][][]int, len(vars))
	for i, v := range vars {
		series[i] = make([][]int, len(v.Values))
		for d, value := range v.Values {
			series[i][d] = []int{value}
		}
	}

	for exp := 0; exp < n-1; exp++ {
		scaled := order[exp%len(order)]

		for _, dims := range series {
			for d, values := range dims {
				last := values[len(values)-1]
				if len(dims) == 1 || d == scaled {
					last *= factor
				}

				dims[d] = append(values, last)
			}
		}
	}

	out := make(map[string][]int)

	for i, v := range vars {
		for d, name := range v.Names {
			out[name] = series[i][d]
		}
	}

	return out, nil
}

// StrongScaling scales the resources while the problem size stays fixed.
func StrongScaling(resources []Variable, factor, n int) (map[string][]int, error) {
	return Scale(resources, factor, n, "")
}

// WeakScaling scales resources and problem size together, ordered by the first resource.
func WeakScaling(resources, problem []Variable, factor, n int) (map[string][]int, error) {
	if len(resources) == 0 {
		return nil, fmt.Errorf("%w: weak scaling needs a resource variable", bperrors.ErrInvalidScaling)
	}

	vars := make([]Variable, 0, len(resources)+len(problem))
	vars = append(vars, resources...)
	vars = append(vars, problem...)

	return Scale(vars, factor, n, resources[0].Key())
}

// ThroughputScaling scales the problem size while the resources stay fixed.
func ThroughputScaling(problem []Variable, factor, n int) (map[string][]int, error) {
	return Scale(problem, factor, n, "")
}

func validate(vars []Variable) error {
	dims := 0
	seen := map[string]bool{}

	for _, v := range vars {
		if len(v.Names) == 0 {
			return fmt.Errorf("%w: variable without a name", bperrors.ErrInvalidScaling)
		}

		if len(v.Names) != len(v.Values) {
			return fmt.Errorf("%w: length of key %v does not match the length of value %v",
				bperrors.ErrInvalidScaling, v.Names, v.Values)
		}

		for _, name := range v.Names {
			if seen[name] {
				return fmt.Errorf("%w: %s appears more than once", bperrors.ErrInvalidScaling, name)
			}

			seen[name] = true
		}

		if !v.isVector() {
			continue
		}

		if dims == 0 {
			dims = len(v.Values)
		}

		if len(v.Values) != dims {
			return fmt.Errorf("%w: variables to be scaled have different dimensions", bperrors.ErrInvalidScaling)
		}
	}

	return nil
}

func find(vars []Variable, key string) (Variable, bool) {
	for _, v := range vars {
		if v.Key() == key {
			return v, true
		}
	}

	return Variable{}, false
}
