package system

import (
	"sort"

	bperrors "benchpark/pkg/errors"
)

// Catalog is the set of systems descriptions can be generated for.
type Catalog struct {
	systems map[string]*System
}

// NewCatalog returns a catalogue of the supplied systems.
func NewCatalog(systems ...*System) *Catalog {
	c := &Catalog{systems: make(map[string]*System, len(systems))}
	for _, s := range systems {
		c.systems[s.Name] = s
	}

	return c
}

// DefaultCatalog returns every built in system.
func DefaultCatalog() *Catalog {
	return NewCatalog(Tioga(), Dane(), Host())
}

// Get looks up a system by name.
func (c *Catalog) Get(name string) (*System, error) {
	s, ok := c.systems[name]
	if !ok {
		return nil, bperrors.NewSystemNotFound(name, c.Names())
	}

	return s, nil
}

// Names returns the system names, sorted.
func (c *Catalog) Names() []string {
	names := make([]string, 0, len(c.systems))
	for name := range c.systems {
		names = append(names, name)
	}

	sort.Strings(names)

	return names
}
