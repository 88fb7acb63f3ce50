package catalog

import (
	"fmt"
	"os"

	"kaylife/kaydash/internal/telemetry/domain"

	"gopkg.in/yaml.v3"
)

// Profile is the on-disk (YAML) description of a plant. Omitted sections
// fall back to the demo defaults.
//
//	parameters:
//	  - key: ph
//	    label: pH
//	    min: 6.5
//	    max: 8.5
//	    precision: 2
//	sensors: 10
//	farms: 10
//	generators: 4
type Profile struct {
	Parameters []ProfileParameter `yaml:"parameters"`
	Sensors    int                `yaml:"sensors"`
	Farms      int                `yaml:"farms"`
	Generators int                `yaml:"generators"`
	Circuits   []Entity           `yaml:"circuits"`
}

// ProfileParameter mirrors domain.Parameter with an optional precision.
type ProfileParameter struct {
	Key       string  `yaml:"key"`
	Label     string  `yaml:"label"`
	Unit      string  `yaml:"unit"`
	Min       float64 `yaml:"min"`
	Max       float64 `yaml:"max"`
	Precision *int    `yaml:"precision"`
}

// LoadProfile reads a YAML profile from path and builds the catalog it
// describes.
func LoadProfile(path string) (*Catalog, error) {
	raw, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("catalog: failed to read profile %s: %w", path, err)
	}
	return ParseProfile(raw)
}

// ParseProfile builds a catalog from YAML bytes.
func ParseProfile(raw []byte) (*Catalog, error) {
	var p Profile
	if err := yaml.Unmarshal(raw, &p); err != nil {
		return nil, fmt.Errorf("catalog: failed to parse profile: %w", err)
	}
	p.applyDefaults()
	return p.Build()
}

func (p *Profile) applyDefaults() {
	if p.Sensors == 0 {
		p.Sensors = DefaultSensorCount
	}
	if p.Farms == 0 {
		p.Farms = DefaultFarmCount
	}
	if p.Generators == 0 {
		p.Generators = min(DefaultGeneratorCount, p.Farms)
	}
	if len(p.Circuits) == 0 {
		p.Circuits = DefaultCircuits()
	}
	for i := range p.Parameters {
		if p.Parameters[i].Label == "" {
			p.Parameters[i].Label = p.Parameters[i].Key
		}
	}
}

// Build converts the profile into a validated Catalog.
func (p *Profile) Build() (*Catalog, error) {
	if p.Sensors < 0 || p.Farms < 0 || p.Generators < 0 {
		return nil, domain.NewConfigError("profile", "entity counts must not be negative")
	}

	params := DefaultParameters()
	if len(p.Parameters) > 0 {
		params = make([]domain.Parameter, 0, len(p.Parameters))
		for _, pp := range p.Parameters {
			precision := 1
			if pp.Precision != nil {
				precision = *pp.Precision
			}
			params = append(params, domain.Parameter{
				Key:       pp.Key,
				Label:     pp.Label,
				Unit:      pp.Unit,
				Min:       pp.Min,
				Max:       pp.Max,
				Precision: precision,
			})
		}
	}

	return Build(params, p.Sensors, p.Farms, p.Generators, p.Circuits)
}
