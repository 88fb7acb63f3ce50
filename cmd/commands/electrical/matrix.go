package electrical

import (
	"encoding/json"
	"fmt"
	"text/tabwriter"
	"time"

	"kaylife/kaydash/internal/services/plant"
	"kaylife/kaydash/internal/telemetry/catalog"
	"kaylife/kaydash/internal/telemetry/domain"
	"kaylife/kaydash/internal/telemetry/electrical"
	"kaylife/kaydash/internal/telemetry/engine"

	"github.com/spf13/cobra"
)

type generatorOutput struct {
	ID     string                              `json:"id"`
	Label  string                              `json:"label"`
	Faults int                                 `json:"faults"`
	Farms  map[string]map[string]domain.Status `json:"farms"`
}

type matrixOutput struct {
	Seed       uint64                `json:"seed"`
	Seq        uint64                `json:"seq"`
	At         time.Time             `json:"at"`
	Counts     map[domain.Status]int `json:"counts"`
	Generators []generatorOutput     `json:"generators"`
}

// MatrixCommand returns the "electrical matrix" command.
func MatrixCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "matrix",
		Short: "Draw one electrical status matrix",
		Long: `Draw farms × circuits once and print it grouped by generator. Each
cell is independently critical with probability 0.25.

Examples:
  kaydash electrical matrix
  kaydash electrical matrix --draws 5 --seed 42
  kaydash electrical matrix -o json`,
		Args:         cobra.NoArgs,
		RunE:         runMatrix,
		SilenceUsage: true,
	}

	cmd.Flags().Int("draws", 1, "Matrices to draw; the last one is printed")
	cmd.Flags().StringP("output", "o", "table", "Output format: table or json")

	return cmd
}

func buildOutput(c *catalog.Catalog, m *electrical.Matrix, seed uint64) matrixOutput {
	rows := m.Rows()
	out := matrixOutput{
		Seed:   seed,
		Seq:    m.Seq,
		At:     m.At,
		Counts: m.Counts(),
	}
	for _, g := range c.Generators {
		gen := generatorOutput{ID: g.ID, Label: g.Label, Farms: make(map[string]map[string]domain.Status, len(g.Farms))}
		for _, farm := range g.Farms {
			gen.Farms[farm] = rows[farm]
			for _, s := range rows[farm] {
				if s == domain.StatusCritical {
					gen.Faults++
				}
			}
		}
		out.Generators = append(out.Generators, gen)
	}
	return out
}

func runMatrix(cmd *cobra.Command, args []string) error {
	output, _ := cmd.Flags().GetString("output")
	if output != "table" && output != "json" {
		return fmt.Errorf("unsupported output format %q", output)
	}
	draws, _ := cmd.Flags().GetInt("draws")
	if draws < 1 {
		return fmt.Errorf("--draws must be at least 1, got %d", draws)
	}

	start := time.Now().UTC().Truncate(time.Second)
	eng, err := plant.Open(cmd, cmd.ErrOrStderr(), engine.Deps{Clock: func() time.Time { return start }})
	if err != nil {
		return err
	}
	defer eng.Close()

	eng.Prime()
	step := eng.Options().ElectricalInterval
	for i := 1; i < draws; i++ {
		eng.TickElectrical(start.Add(time.Duration(i) * step))
	}

	c := eng.Catalog()
	m := eng.Electrical()
	result := buildOutput(c, m, eng.Seed())

	if output == "json" {
		encoder := json.NewEncoder(cmd.OutOrStdout())
		encoder.SetIndent("", "  ")
		return encoder.Encode(result)
	}

	fmt.Fprintf(cmd.OutOrStdout(), "Electrical matrix #%d (seed %d): %d ok, %d critical\n",
		result.Seq, result.Seed, result.Counts[domain.StatusOK], result.Counts[domain.StatusCritical])

	w := tabwriter.NewWriter(cmd.OutOrStdout(), 0, 0, 2, ' ', 0)
	header := "GENERATOR\tFARM"
	for _, circuit := range c.Circuits {
		header += "\t" + circuit.Label
	}
	fmt.Fprintln(w, header)

	for _, g := range c.Generators {
		for _, farmID := range g.Farms {
			farm, _ := c.Farm(farmID)
			line := g.Label + "\t" + farm.Label
			for _, circuit := range c.Circuits {
				s, _ := m.Status(farmID, circuit.ID)
				line += "\t" + cellGlyph(s)
			}
			fmt.Fprintln(w, line)
		}
	}
	if err := w.Flush(); err != nil {
		return err
	}

	fmt.Fprintln(cmd.OutOrStdout())
	for _, g := range result.Generators {
		fmt.Fprintf(cmd.OutOrStdout(), "%s: %d/%d fallas\n", g.Label, g.Faults, len(g.Farms)*len(c.Circuits))
	}
	fmt.Fprintln(cmd.OutOrStdout(), "\n● Normal   ✕ Falla")
	return nil
}

func cellGlyph(s domain.Status) string {
	if s == domain.StatusCritical {
		return "✕"
	}
	return "●"
}
