package spec

import (
	"fmt"
	"sort"
	"strings"

	bperrors "benchpark/pkg/errors"
)

// Spec is a name plus its variant selections, e.g. "amg2023+cuda~openmp caliper=mpi".
type Spec struct {
	Name     string
	Variants map[string][]string
}

// Parse builds a spec from command line tokens. The first token is the name and
// may carry attached +/~ variants; later tokens are +variant, ~variant or key=value.
func Parse(args []string) (*Spec, error) {
	if len(args) == 0 || args[0] == "" {
		return nil, bperrors.ErrSpecRequired
	}

	s := &Spec{Variants: map[string][]string{}}

	name, rest := splitAttached(args[0])
	if name == "" {
		return nil, bperrors.ErrSpecRequired
	}

	s.Name = name

	tokens := append(rest, args[1:]...)
	for _, token := range tokens {
		if err := s.addToken(token); err != nil {
			return nil, err
		}
	}

	return s, nil
}

// MustParse is Parse for literals known to be valid.
func MustParse(spec string) *Spec {
	s, err := Parse(strings.Fields(spec))
	if err != nil {
		panic(err)
	}

	return s
}

func (s *Spec) addToken(token string) error {
	var (
		key    string
		values []string
	)

	switch {
	case strings.HasPrefix(token, "+"):
		key, values = token[1:], []string{"true"}
	case strings.HasPrefix(token, "~"):
		key, values = token[1:], []string{"false"}
	case strings.Contains(token, "="):
		parts := strings.SplitN(token, "=", 2)
		key = parts[0]
		for _, v := range strings.Split(parts[1], ",") {
			if v = strings.TrimSpace(v); v != "" {
				values = append(values, v)
			}
		}

		if len(values) == 0 {
			return fmt.Errorf("%w: %q has no value", bperrors.ErrInvalidVariantValue, token)
		}
	default:
		return fmt.Errorf("%w: cannot parse %q, expected +variant, ~variant or key=value",
			bperrors.ErrInvalidVariantValue, token)
	}

	if key == "" {
		return fmt.Errorf("%w: %q has no variant name", bperrors.ErrInvalidVariantValue, token)
	}

	if _, ok := s.Variants[key]; ok {
		return fmt.Errorf("%w: %s", bperrors.ErrDuplicateVariant, key)
	}

	s.Variants[key] = values

	return nil
}

// splitAttached splits "name+a~b" into "name" and ["+a", "~b"].
func splitAttached(token string) (string, []string) {
	idx := strings.IndexAny(token, "+~")
	if idx < 0 || strings.Contains(token, "=") {
		return token, nil
	}

	name := token[:idx]

	var variants []string

	rest := token[idx:]
	for len(rest) > 0 {
		next := strings.IndexAny(rest[1:], "+~")
		if next < 0 {
			variants = append(variants, rest)
			break
		}

		variants = append(variants, rest[:next+1])
		rest = rest[next+1:]
	}

	return name, variants
}

// Value returns the first value of a variant, or "" when unset.
func (s *Spec) Value(name string) string {
	if v := s.Variants[name]; len(v) > 0 {
		return v[0]
	}

	return ""
}

// Values returns every value of a variant.
func (s *Spec) Values(name string) []string {
	return s.Variants[name]
}

// Bool reports whether a boolean variant is enabled.
func (s *Spec) Bool(name string) bool {
	return s.Value(name) == "true"
}

// Has reports whether the variant was set at all.
func (s *Spec) Has(name string) bool {
	_, ok := s.Variants[name]

	return ok
}

// Satisfies checks a single constraint: "+name", "~name" or "name=value".
func (s *Spec) Satisfies(constraint string) bool {
	switch {
	case strings.HasPrefix(constraint, "+"):
		return s.Bool(constraint[1:])
	case strings.HasPrefix(constraint, "~"):
		return s.Has(constraint[1:]) && !s.Bool(constraint[1:])
	case strings.Contains(constraint, "="):
		parts := strings.SplitN(constraint, "=", 2)
		for _, v := range s.Variants[parts[0]] {
			if v == parts[1] {
				return true
			}
		}

		return false
	default:
		return s.Name == constraint
	}
}

// String renders the spec in canonical form: boolean variants attached and
// sorted, then sorted key=value pairs.
func (s *Spec) String() string {
	keys := make([]string, 0, len(s.Variants))
	for k := range s.Variants {
		keys = append(keys, k)
	}

	sort.Strings(keys)

	var (
		b     strings.Builder
		pairs []string
	)

	b.WriteString(s.Name)

	for _, k := range keys {
		v := s.Variants[k]
		switch {
		case len(v) == 1 && v[0] == "true":
			b.WriteString("+" + k)
		case len(v) == 1 && v[0] == "false":
			b.WriteString("~" + k)
		default:
			pairs = append(pairs, k+"="+strings.Join(v, ","))
		}
	}

	for _, p := range pairs {
		b.WriteString(" " + p)
	}

	return b.String()
}
