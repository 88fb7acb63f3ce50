package tui

import (
	"errors"
	"fmt"
	"os"

	"kaylife/kaydash/internal/telemetry/catalog"
	"kaylife/kaydash/internal/telemetry/domain"

	"github.com/charmbracelet/huh"
)

// ErrPickAborted is returned when the user cancels a picker.
var ErrPickAborted = errors.New("selection aborted")

// AllSensors is the picker value for the plant-wide series.
const AllSensors = ""

// buildParameterOptions lists parameters as "Label (unit) [min–max]".
func buildParameterOptions(params []domain.Parameter) []huh.Option[string] {
	options := make([]huh.Option[string], 0, len(params))
	for _, p := range params {
		label := fmt.Sprintf("%s  [%g–%g]", p.DisplayLabel(), p.Min, p.Max)
		options = append(options, huh.NewOption(label, p.Key))
	}
	return options
}

func buildSensorOptions(sensors []catalog.Entity) []huh.Option[string] {
	options := make([]huh.Option[string], 0, len(sensors)+1)
	options = append(options, huh.NewOption("Plant-wide", AllSensors))
	for _, s := range sensors {
		options = append(options, huh.NewOption(s.Label, s.ID))
	}
	return options
}

// PickSeries asks for a parameter and a sensor. An empty sensor selects the
// plant-wide series.
func PickSeries(c *catalog.Catalog) (param, sensor string, err error) {
	accessible := os.Getenv("ACCESSIBLE") != ""

	form := huh.NewForm(
		huh.NewGroup(
			huh.NewSelect[string]().
				Title("Parameter").
				Options(buildParameterOptions(c.Parameters)...).
				Value(&param),
			huh.NewSelect[string]().
				Title("Sensor").
				Options(buildSensorOptions(c.Sensors)...).
				Height(min(len(c.Sensors)+3, 12)).
				Value(&sensor),
		),
	).WithAccessible(accessible)

	if err := form.Run(); err != nil {
		if errors.Is(err, huh.ErrUserAborted) {
			return "", "", ErrPickAborted
		}
		return "", "", err
	}
	return param, sensor, nil
}
