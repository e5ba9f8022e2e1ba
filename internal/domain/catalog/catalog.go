// Package catalog holds the fixed archetype registry: each archetype's
// weighted trait profile, loaded once and immutable at runtime.
package catalog

import (
	"fmt"

	"github.com/mirall/archetype/internal/domain/trait"
)

// Weight bounds per tier. A trait absent from all three maps carries the
// implicit default weight.
const (
	DefaultWeight   = 1.0
	primaryWeightLo = 1.6
	primaryWeightHi = 1.8
	secondaryLo     = 1.2
	secondaryHi     = 1.3
	avoidWeightLo   = 0.4
	avoidWeightHi   = 0.8
)

// Archetype is one named personality profile. The three weight maps are
// disjoint; any trait listed in none of them weighs DefaultWeight.
type Archetype struct {
	ID      string `json:"id" koanf:"id"`
	Name    string `json:"name" koanf:"name"`
	Tagline string `json:"tagline" koanf:"tagline"`

	Primary   map[trait.Key]float64 `json:"primary" koanf:"primary"`
	Secondary map[trait.Key]float64 `json:"secondary" koanf:"secondary"`
	Avoid     map[trait.Key]float64 `json:"avoid" koanf:"avoid"`

	// LowEnergy marks archetypes the base bank systematically
	// under-detects; the low-energy calibration family targets them.
	LowEnergy bool `json:"low_energy" koanf:"low_energy"`
}

// Weight resolves the effective weight for one trait.
func (a Archetype) Weight(k trait.Key) float64 {
	if w, ok := a.Primary[k]; ok {
		return w
	}
	if w, ok := a.Secondary[k]; ok {
		return w
	}
	if w, ok := a.Avoid[k]; ok {
		return w
	}
	return DefaultWeight
}

// TotalWeight sums the effective weights across all six traits. It is the
// denominator that makes weighted sums comparable across archetypes.
func (a Archetype) TotalWeight() float64 {
	var total float64
	for _, k := range trait.Keys() {
		total += a.Weight(k)
	}
	return total
}

// Catalog is the ordered, read-only archetype registry. Declaration order
// is the documented tie-break order for equal match scores.
type Catalog struct {
	archetypes []Archetype
	byID       map[string]Archetype
}

// New builds and validates a catalog from the given archetypes.
func New(archetypes []Archetype) (*Catalog, error) {
	if len(archetypes) < 2 {
		return nil, fmt.Errorf("%w: need at least two archetypes", ErrInvalidCatalog)
	}
	c := &Catalog{
		archetypes: archetypes,
		byID:       make(map[string]Archetype, len(archetypes)),
	}
	for _, a := range archetypes {
		if err := validateArchetype(a); err != nil {
			return nil, err
		}
		if _, dup := c.byID[a.ID]; dup {
			return nil, fmt.Errorf("%w: duplicate archetype id %q", ErrInvalidCatalog, a.ID)
		}
		c.byID[a.ID] = a
	}
	return c, nil
}

func validateArchetype(a Archetype) error {
	if a.ID == "" || a.Name == "" {
		return fmt.Errorf("%w: archetype needs id and name", ErrInvalidCatalog)
	}
	if len(a.Primary) == 0 {
		return fmt.Errorf("%w: archetype %q has no primary traits", ErrInvalidCatalog, a.ID)
	}
	seen := make(map[trait.Key]string)
	check := func(tier string, m map[trait.Key]float64, lo, hi float64) error {
		for k, w := range m {
			if prior, dup := seen[k]; dup {
				return fmt.Errorf("%w: archetype %q lists trait %s in both %s and %s",
					ErrInvalidCatalog, a.ID, k, prior, tier)
			}
			seen[k] = tier
			if w < lo || w > hi {
				return fmt.Errorf("%w: archetype %q %s weight for %s is %.2f, want [%.1f, %.1f]",
					ErrInvalidCatalog, a.ID, tier, k, w, lo, hi)
			}
		}
		return nil
	}
	if err := check("primary", a.Primary, primaryWeightLo, primaryWeightHi); err != nil {
		return err
	}
	if err := check("secondary", a.Secondary, secondaryLo, secondaryHi); err != nil {
		return err
	}
	return check("avoid", a.Avoid, avoidWeightLo, avoidWeightHi)
}

// All returns every archetype in declaration order.
func (c *Catalog) All() []Archetype {
	return c.archetypes
}

// Get returns the archetype with the given id.
func (c *Catalog) Get(id string) (Archetype, error) {
	a, ok := c.byID[id]
	if !ok {
		return Archetype{}, fmt.Errorf("%w: %q", ErrNotFound, id)
	}
	return a, nil
}

// LowEnergy returns the archetypes flagged as under-detected, in
// declaration order.
func (c *Catalog) LowEnergy() []Archetype {
	var out []Archetype
	for _, a := range c.archetypes {
		if a.LowEnergy {
			out = append(out, a)
		}
	}
	return out
}

// Len returns the number of archetypes.
func (c *Catalog) Len() int {
	return len(c.archetypes)
}
