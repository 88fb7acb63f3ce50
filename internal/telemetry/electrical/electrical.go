// Package electrical produces the farm × circuit status matrix shown on the
// electrical views. Every regeneration is independent of the previous one.
package electrical

import (
	"time"

	"kaylife/kaydash/internal/telemetry/catalog"
	"kaylife/kaydash/internal/telemetry/domain"
	"kaylife/kaydash/internal/telemetry/walk"
)

// DefaultFaultProbability is the chance a cell reports a fault (1 in 4).
const DefaultFaultProbability = 0.25

// Cell identifies one (farm, circuit) pair.
type Cell struct {
	Farm    string `json:"farm"`
	Circuit string `json:"circuit"`
}

// Matrix is an immutable snapshot of every cell's status.
type Matrix struct {
	Seq uint64    `json:"seq"`
	At  time.Time `json:"at"`

	farms    []string
	circuits []string
	status   map[Cell]domain.Status
}

// Status returns the status of (farm, circuit). The boolean is false for
// cells outside the topology.
func (m *Matrix) Status(farm, circuit string) (domain.Status, bool) {
	if m == nil {
		return "", false
	}
	s, ok := m.status[Cell{Farm: farm, Circuit: circuit}]
	return s, ok
}

// Farms returns the row order.
func (m *Matrix) Farms() []string {
	if m == nil {
		return nil
	}
	return append([]string(nil), m.farms...)
}

// Circuits returns the column order.
func (m *Matrix) Circuits() []string {
	if m == nil {
		return nil
	}
	return append([]string(nil), m.circuits...)
}

// Faults lists every cell in critical state, in row-major order.
func (m *Matrix) Faults() []Cell {
	if m == nil {
		return nil
	}
	var out []Cell
	for _, f := range m.farms {
		for _, c := range m.circuits {
			cell := Cell{Farm: f, Circuit: c}
			if m.status[cell] == domain.StatusCritical {
				out = append(out, cell)
			}
		}
	}
	return out
}

// Counts returns the number of cells per status.
func (m *Matrix) Counts() map[domain.Status]int {
	out := map[domain.Status]int{domain.StatusOK: 0, domain.StatusCritical: 0}
	if m == nil {
		return out
	}
	for _, s := range m.status {
		out[s]++
	}
	return out
}

// Rows returns the matrix as farm → circuit → status, for encoding.
func (m *Matrix) Rows() map[string]map[string]domain.Status {
	out := make(map[string]map[string]domain.Status)
	if m == nil {
		return out
	}
	for cell, s := range m.status {
		row, ok := out[cell.Farm]
		if !ok {
			row = make(map[string]domain.Status, len(m.circuits))
			out[cell.Farm] = row
		}
		row[cell.Circuit] = s
	}
	return out
}

// Generator draws matrices for a fixed topology. Not safe for concurrent
// use.
type Generator struct {
	farms    []string
	circuits []string
	fault    float64
	src      walk.Source
	seq      uint64
}

// NewGenerator returns a generator for the catalog's farms and circuits.
// faultProbability outside [0, 1] is a configuration error.
func NewGenerator(c *catalog.Catalog, faultProbability float64, src walk.Source) (*Generator, error) {
	if faultProbability < 0 || faultProbability > 1 {
		return nil, domain.NewConfigError("electrical.fault_probability", "must be within [0, 1], got %g", faultProbability)
	}
	g := &Generator{fault: faultProbability, src: src}
	for _, f := range c.Farms {
		g.farms = append(g.farms, f.ID)
	}
	for _, ci := range c.Circuits {
		g.circuits = append(g.circuits, ci.ID)
	}
	return g, nil
}

// Generate draws a fresh matrix stamped with now.
func (g *Generator) Generate(now time.Time) *Matrix {
	g.seq++
	m := &Matrix{
		Seq:      g.seq,
		At:       now,
		farms:    g.farms,
		circuits: g.circuits,
		status:   make(map[Cell]domain.Status, len(g.farms)*len(g.circuits)),
	}
	for _, f := range g.farms {
		for _, c := range g.circuits {
			s := domain.StatusOK
			if g.src.Float64() < g.fault {
				s = domain.StatusCritical
			}
			m.status[Cell{Farm: f, Circuit: c}] = s
		}
	}
	return m
}
