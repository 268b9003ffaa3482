package sim

import (
	"fmt"
	"sort"
)

// ShipClass is the coarse hull tier used for class-scoped research bonuses.
type ShipClass int

const (
	ClassStrike ShipClass = iota
	ClassEscort
	ClassLine
	ClassCapital
)

func (c ShipClass) String() string {
	switch c {
	case ClassStrike:
		return "strike"
	case ClassEscort:
		return "escort"
	case ClassLine:
		return "line"
	case ClassCapital:
		return "capital"
	default:
		return "unknown"
	}
}

// ParseShipClass converts a content-file class string to a ShipClass.
func ParseShipClass(s string) (ShipClass, error) {
	switch s {
	case "strike":
		return ClassStrike, nil
	case "escort":
		return ClassEscort, nil
	case "line":
		return ClassLine, nil
	case "capital":
		return ClassCapital, nil
	default:
		return 0, fmt.Errorf("%w: unknown ship class %q", ErrBadContent, s)
	}
}

// ShipDefinition is the immutable stat block for one hull type.
// Definitions are registered once at catalog construction and never mutated;
// runtime ships hold a pointer to their definition and copy the mutable stats.
type ShipDefinition struct {
	Name        string
	Class       ShipClass
	Role        string
	Cost        float64
	BuildTime   float64 // seconds
	Health      float64
	Armor       float64
	Shields     float64
	Energy      float64
	EnergyRegen float64 // per second
	FlightSpeed float64 // world units per second
	VisualRange float64
	RadarRange  float64
	FiringRange float64
	WeaponDamage float64
}

// FacilityDefinition is the immutable stat block for a base-attached facility.
type FacilityDefinition struct {
	Type      string
	Cost      float64
	BuildTime float64
	Health    float64
	Shields   float64
}

// Catalog is the immutable lookup table for ship and facility definitions.
// Constructed once at startup and passed by reference into every component
// that needs it; there is no ambient global registry.
type Catalog struct {
	ships      map[string]*ShipDefinition
	facilities map[string]*FacilityDefinition
}

// NewCatalog validates and indexes the given definitions.
// Duplicate names, empty names and non-positive build times are content
// errors: a bad catalog should fail at startup, not at first lookup.
func NewCatalog(ships []ShipDefinition, facilities []FacilityDefinition) (*Catalog, error) {
	c := &Catalog{
		ships:      make(map[string]*ShipDefinition, len(ships)),
		facilities: make(map[string]*FacilityDefinition, len(facilities)),
	}
	for i := range ships {
		d := ships[i]
		if d.Name == "" {
			return nil, fmt.Errorf("%w: ship %d has empty name", ErrBadContent, i)
		}
		if d.BuildTime <= 0 {
			return nil, fmt.Errorf("%w: ship %q has non-positive build time", ErrBadContent, d.Name)
		}
		if _, dup := c.ships[d.Name]; dup {
			return nil, fmt.Errorf("%w: duplicate ship %q", ErrBadContent, d.Name)
		}
		c.ships[d.Name] = &d
	}
	for i := range facilities {
		d := facilities[i]
		if d.Type == "" {
			return nil, fmt.Errorf("%w: facility %d has empty type", ErrBadContent, i)
		}
		if _, dup := c.facilities[d.Type]; dup {
			return nil, fmt.Errorf("%w: duplicate facility %q", ErrBadContent, d.Type)
		}
		c.facilities[d.Type] = &d
	}
	return c, nil
}

// ShipByName returns the definition for a hull name.
func (c *Catalog) ShipByName(name string) (*ShipDefinition, error) {
	d, ok := c.ships[name]
	if !ok {
		return nil, fmt.Errorf("ship %q: %w", name, ErrNotFound)
	}
	return d, nil
}

// FacilityByType returns the definition for a facility type identifier.
func (c *Catalog) FacilityByType(ftype string) (*FacilityDefinition, error) {
	d, ok := c.facilities[ftype]
	if !ok {
		return nil, fmt.Errorf("facility %q: %w", ftype, ErrNotFound)
	}
	return d, nil
}

// HasShip reports whether a hull name is registered.
func (c *Catalog) HasShip(name string) bool {
	_, ok := c.ships[name]
	return ok
}

// HasFacility reports whether a facility type is registered.
func (c *Catalog) HasFacility(ftype string) bool {
	_, ok := c.facilities[ftype]
	return ok
}

// ShipNames returns all registered hull names, sorted.
func (c *Catalog) ShipNames() []string {
	names := make([]string, 0, len(c.ships))
	for n := range c.ships {
		names = append(names, n)
	}
	sort.Strings(names)
	return names
}

// FacilityTypes returns all registered facility types, sorted.
func (c *Catalog) FacilityTypes() []string {
	types := make([]string, 0, len(c.facilities))
	for t := range c.facilities {
		types = append(types, t)
	}
	sort.Strings(types)
	return types
}
