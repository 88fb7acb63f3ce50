// Package catalog defines the fixed set of entities the telemetry engine
// tracks: measured parameters, water-quality sensors, and the electrical
// topology of farms, generators and circuits.
package catalog

import (
	"fmt"

	"kaylife/kaydash/internal/telemetry/domain"
)

// Entity is a named, immutable member of an enumeration (sensor, farm...).
type Entity struct {
	ID    string `json:"id" yaml:"id"`
	Label string `json:"label" yaml:"label"`
}

// Generator groups the farms it powers.
type Generator struct {
	Entity `yaml:",inline"`
	Farms  []string `json:"farms" yaml:"farms"`
}

// Catalog is the full, validated entity set. It is built once at startup
// and never mutated afterwards.
type Catalog struct {
	Parameters []domain.Parameter `json:"parameters"`
	Sensors    []Entity           `json:"sensors"`
	Farms      []Entity           `json:"farms"`
	Generators []Generator        `json:"generators"`
	Circuits   []Entity           `json:"circuits"`
}

// Default sizes of the demo plant.
const (
	DefaultSensorCount    = 10
	DefaultFarmCount      = 10
	DefaultGeneratorCount = 4
)

// DefaultParameters returns the water-quality parameters tracked by default.
func DefaultParameters() []domain.Parameter {
	return []domain.Parameter{
		{Key: "temp", Label: "Temperatura", Unit: "°C", Min: 17, Max: 32, Precision: 1},
		{Key: "ph", Label: "pH", Unit: "", Min: 6.5, Max: 8.5, Precision: 2},
		{Key: "o2", Label: "Oxígeno disuelto", Unit: "mg/L", Min: 4, Max: 10, Precision: 1},
		{Key: "turb", Label: "Turbidez", Unit: "NTU", Min: 0, Max: 50, Precision: 1},
		{Key: "cond", Label: "Conductividad", Unit: "µS/cm", Min: 100, Max: 1200, Precision: 1},
	}
}

// DefaultCircuits returns the electrical circuits monitored on every farm.
func DefaultCircuits() []Entity {
	return []Entity{
		{ID: "gm1", Label: "GM1"},
		{ID: "gm2", Label: "GM2"},
		{ID: "ol1", Label: "OL1"},
		{ID: "ol2", Label: "OL2"},
		{ID: "aire1", Label: "Aireador 1"},
		{ID: "aire2", Label: "Aireador 2"},
		{ID: "op1", Label: "Op. Mod 1"},
		{ID: "op2", Label: "Op. Mod 2"},
		{ID: "esd", Label: "ESD"},
		{ID: "tc", Label: "TC"},
	}
}

// Default returns the demo plant: five parameters, ten sensors, ten farms
// spread over four generators, and ten circuits per farm.
func Default() *Catalog {
	c, err := Build(DefaultParameters(), DefaultSensorCount, DefaultFarmCount, DefaultGeneratorCount, DefaultCircuits())
	if err != nil {
		panic(fmt.Sprintf("catalog: default catalog is invalid: %v", err))
	}
	return c
}

// Build assembles and validates a catalog from counts. Farms are assigned to
// generators in contiguous blocks, earlier generators taking the remainder
// (10 farms over 4 generators gives 3, 3, 2, 2).
func Build(params []domain.Parameter, sensors, farms, generators int, circuits []Entity) (*Catalog, error) {
	if generators > farms {
		return nil, domain.NewConfigError("generators", "%d generators cannot share %d farms", generators, farms)
	}

	c := &Catalog{
		Parameters: append([]domain.Parameter(nil), params...),
		Sensors:    enumerate("sensor", "Sensor", sensors),
		Farms:      enumerate("farm", "Granja", farms),
		Circuits:   append([]Entity(nil), circuits...),
	}

	if generators > 0 {
		base, extra := farms/generators, farms%generators
		next := 0
		for i, gen := range enumerate("gen", "Generador", generators) {
			size := base
			if i < extra {
				size++
			}
			g := Generator{Entity: gen}
			for _, f := range c.Farms[next : next+size] {
				g.Farms = append(g.Farms, f.ID)
			}
			next += size
			c.Generators = append(c.Generators, g)
		}
	}

	if err := c.Validate(); err != nil {
		return nil, err
	}
	return c, nil
}

func enumerate(idPrefix, labelPrefix string, n int) []Entity {
	out := make([]Entity, 0, max(n, 0))
	for i := 1; i <= n; i++ {
		out = append(out, Entity{
			ID:    fmt.Sprintf("%s-%d", idPrefix, i),
			Label: fmt.Sprintf("%s %d", labelPrefix, i),
		})
	}
	return out
}

// Validate checks every invariant the engine relies on.
func (c *Catalog) Validate() error {
	if len(c.Parameters) == 0 {
		return domain.NewConfigError("parameters", "at least one parameter is required")
	}
	seen := make(map[string]bool, len(c.Parameters))
	for _, p := range c.Parameters {
		if err := p.Validate(); err != nil {
			return err
		}
		if seen[p.Key] {
			return domain.NewConfigError("parameters["+p.Key+"]", "duplicate key")
		}
		seen[p.Key] = true
	}

	for field, n := range map[string]int{"sensors": len(c.Sensors), "farms": len(c.Farms), "generators": len(c.Generators)} {
		if n == 0 {
			return domain.NewConfigError(field, "at least one entry is required")
		}
	}

	if err := uniqueIDs("sensors", c.Sensors); err != nil {
		return err
	}
	if err := uniqueIDs("farms", c.Farms); err != nil {
		return err
	}
	if err := uniqueIDs("circuits", c.Circuits); err != nil {
		return err
	}
	if len(c.Farms) > 0 && len(c.Circuits) == 0 {
		return domain.NewConfigError("circuits", "farms require at least one circuit")
	}

	owner := make(map[string]string, len(c.Farms))
	for _, g := range c.Generators {
		for _, f := range g.Farms {
			if _, ok := c.Farm(f); !ok {
				return domain.NewConfigError("generators["+g.ID+"]", "unknown farm %s", f)
			}
			if prev, ok := owner[f]; ok {
				return domain.NewConfigError("generators["+g.ID+"]", "farm %s already belongs to %s", f, prev)
			}
			owner[f] = g.ID
		}
	}
	return nil
}

func uniqueIDs(field string, entities []Entity) error {
	seen := make(map[string]bool, len(entities))
	for _, e := range entities {
		if e.ID == "" {
			return domain.NewConfigError(field, "entity id must not be empty")
		}
		if seen[e.ID] {
			return domain.NewConfigError(field+"["+e.ID+"]", "duplicate id")
		}
		seen[e.ID] = true
	}
	return nil
}

// Parameter looks up a parameter by key.
func (c *Catalog) Parameter(key string) (domain.Parameter, bool) {
	for _, p := range c.Parameters {
		if p.Key == key {
			return p, true
		}
	}
	return domain.Parameter{}, false
}

// Sensor looks up a sensor by id.
func (c *Catalog) Sensor(id string) (Entity, bool) {
	return find(c.Sensors, id)
}

// Farm looks up a farm by id.
func (c *Catalog) Farm(id string) (Entity, bool) {
	return find(c.Farms, id)
}

func find(entities []Entity, id string) (Entity, bool) {
	for _, e := range entities {
		if e.ID == id {
			return e, true
		}
	}
	return Entity{}, false
}

// GeneratorOf returns the generator that powers farm, if any.
func (c *Catalog) GeneratorOf(farm string) (Generator, bool) {
	for _, g := range c.Generators {
		for _, f := range g.Farms {
			if f == farm {
				return g, true
			}
		}
	}
	return Generator{}, false
}

// SeriesIDs lists every tracked series: one plant-wide series per parameter
// followed by one per (sensor, parameter) pair.
func (c *Catalog) SeriesIDs() []domain.SeriesID {
	ids := make([]domain.SeriesID, 0, len(c.Parameters)*(1+len(c.Sensors)))
	for _, p := range c.Parameters {
		ids = append(ids, domain.ParamSeries(p.Key))
	}
	for _, s := range c.Sensors {
		for _, p := range c.Parameters {
			ids = append(ids, domain.SensorSeries(s.ID, p.Key))
		}
	}
	return ids
}
