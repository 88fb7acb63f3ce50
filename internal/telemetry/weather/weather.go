// Package weather derives the ambient conditions card from the latest
// plant-wide water readings.
package weather

import (
	"math"
	"time"

	"kaylife/kaydash/internal/telemetry/walk"
)

// Fallback readings used before the water series have any samples.
const (
	FallbackTemp = 24.0
	FallbackO2   = 6.0
)

// Conditions is one weather card reading.
type Conditions struct {
	At          time.Time `json:"at"`
	AmbientTemp float64   `json:"ambient_temp_c"`
	Wind        float64   `json:"wind_kmh"`
	Rain        float64   `json:"rain_24h_mm"`
	Humidity    float64   `json:"humidity_pct"`
	Pressure    float64   `json:"pressure_hpa"`
}

// Derive computes conditions from the water temperature and dissolved
// oxygen. Ambient and wind follow the readings; rain, humidity and pressure
// are drawn from src.
func Derive(temp, o2 float64, src walk.Source, now time.Time) Conditions {
	return Conditions{
		At:          now,
		AmbientTemp: math.Round(temp + 3),
		Wind:        5 + math.Floor(math.Mod(o2, 4)),
		Rain:        walk.Round(src.Float64()*2, 2),
		Humidity:    60 + math.Round(src.Float64()*25),
		Pressure:    1010 + math.Round(src.Float64()*8),
	}
}

// DeriveLatest is Derive with fallbacks for missing readings.
func DeriveLatest(temp float64, haveTemp bool, o2 float64, haveO2 bool, src walk.Source, now time.Time) Conditions {
	if !haveTemp {
		temp = FallbackTemp
	}
	if !haveO2 {
		o2 = FallbackO2
	}
	return Derive(temp, o2, src, now)
}
