package domain

import (
	"fmt"
	"strings"
	"time"
)

// Sample is a single timestamped reading.
type Sample struct {
	Timestamp time.Time `json:"timestamp"`
	Value     float64   `json:"value"`
}

// SeriesID identifies a tracked series. Sensor is empty for the plant-wide
// series of a parameter.
type SeriesID struct {
	Sensor string `json:"sensor,omitempty"`
	Param  string `json:"param"`
}

// ParamSeries returns the id of the plant-wide series for param.
func ParamSeries(param string) SeriesID {
	return SeriesID{Param: param}
}

// SensorSeries returns the id of a per-sensor series.
func SensorSeries(sensor, param string) SeriesID {
	return SeriesID{Sensor: sensor, Param: param}
}

// String renders "param" or "sensor/param".
func (id SeriesID) String() string {
	if id.Sensor == "" {
		return id.Param
	}
	return id.Sensor + "/" + id.Param
}

// ParseSeriesID is the inverse of SeriesID.String.
func ParseSeriesID(s string) (SeriesID, error) {
	s = strings.TrimSpace(s)
	if s == "" {
		return SeriesID{}, fmt.Errorf("series id must not be empty")
	}
	sensor, param, found := strings.Cut(s, "/")
	if !found {
		return SeriesID{Param: sensor}, nil
	}
	if sensor == "" || param == "" {
		return SeriesID{}, fmt.Errorf("malformed series id %q", s)
	}
	return SeriesID{Sensor: sensor, Param: param}, nil
}

// Series is a time-ordered (ascending) sequence of samples.
type Series []Sample

// Latest returns the newest sample, or false when the series is empty.
func (s Series) Latest() (Sample, bool) {
	if len(s) == 0 {
		return Sample{}, false
	}
	return s[len(s)-1], true
}

// Since returns the suffix of s whose timestamps are not before cutoff.
// The returned slice shares memory with s.
func (s Series) Since(cutoff time.Time) Series {
	// Series are ascending, so the first match starts the suffix.
	lo, hi := 0, len(s)
	for lo < hi {
		mid := int(uint(lo+hi) >> 1)
		if s[mid].Timestamp.Before(cutoff) {
			lo = mid + 1
		} else {
			hi = mid
		}
	}
	return s[lo:]
}

// Values extracts the sample values in order.
func (s Series) Values() []float64 {
	out := make([]float64, len(s))
	for i, sample := range s {
		out[i] = sample.Value
	}
	return out
}
