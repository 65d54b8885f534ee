package spec

import (
	"fmt"
	"sort"
	"strconv"
	"strings"

	"github.com/hashicorp/go-multierror"

	bperrors "benchpark/pkg/errors"
)

// IntValues marks a variant whose values must parse as positive integers.
var IntValues = []string{"<int>"}

// VariantDef declares a variant a benchmark or system accepts.
type VariantDef struct {
	Name        string
	Default     string
	Values      []string
	Description string
	// Multi allows more than one comma separated value.
	Multi bool
}

// BoolVariant declares a +/~ variant.
func BoolVariant(name string, def bool, description string) VariantDef {
	return VariantDef{
		Name:        name,
		Default:     strconv.FormatBool(def),
		Values:      []string{"true", "false"},
		Description: description,
	}
}

func (d VariantDef) allows(value string) bool {
	if len(d.Values) == 0 {
		return true
	}

	if len(d.Values) == 1 && d.Values[0] == IntValues[0] {
		n, err := strconv.Atoi(value)

		return err == nil && n > 0
	}

	for _, v := range d.Values {
		if v == value {
			return true
		}
	}

	return false
}

// Passthrough names keys that are accepted without a declaration.
type Passthrough func(key string) bool

// Validate checks every variant in the spec against defs, reporting all problems.
// Keys accepted by passthrough are skipped.
func (s *Spec) Validate(defs []VariantDef, passthrough Passthrough) error {
	byName := make(map[string]VariantDef, len(defs))
	known := make([]string, 0, len(defs))

	for _, d := range defs {
		byName[d.Name] = d
		known = append(known, d.Name)
	}

	sort.Strings(known)

	keys := make([]string, 0, len(s.Variants))
	for k := range s.Variants {
		keys = append(keys, k)
	}

	sort.Strings(keys)

	var result *multierror.Error

	for _, key := range keys {
		def, ok := byName[key]
		if !ok {
			if passthrough != nil && passthrough(key) {
				continue
			}

			result = multierror.Append(result, bperrors.UnknownVariantError{Target: s.Name, Variant: key, Known: known})

			continue
		}

		values := s.Variants[key]
		if len(values) > 1 && !def.Multi {
			result = multierror.Append(result, fmt.Errorf("%w: %s accepts a single value, got %s",
				bperrors.ErrInvalidVariantValue, key, strings.Join(values, ",")))
		}

		for _, v := range values {
			if !def.allows(v) {
				result = multierror.Append(result, fmt.Errorf("%w: %s=%s, expected one of %s",
					bperrors.ErrInvalidVariantValue, key, v, strings.Join(def.Values, ", ")))
			}
		}
	}

	return result.ErrorOrNil()
}

// ApplyDefaults sets every declared variant the spec leaves unset.
func (s *Spec) ApplyDefaults(defs []VariantDef) {
	for _, d := range defs {
		if s.Has(d.Name) || d.Default == "" {
			continue
		}

		s.Variants[d.Name] = strings.Split(d.Default, ",")
	}
}

// Int returns a variant value as an integer.
func (s *Spec) Int(name string) (int, bool, error) {
	v := s.Value(name)
	if v == "" {
		return 0, false, nil
	}

	n, err := strconv.Atoi(v)
	if err != nil {
		return 0, true, fmt.Errorf("%w: %s=%s is not an integer", bperrors.ErrInvalidVariantValue, name, v)
	}

	return n, true, nil
}
