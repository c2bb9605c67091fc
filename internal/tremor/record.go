// Package tremor holds the sensor record type and the pure functions the
// dashboard, CLI and API derive from it: validation, summary statistics,
// chart series, gauge thresholds, and display formatting.
//
// Nothing in this package performs I/O. Tremor detection itself happens
// upstream; IsTremor is only read and displayed.
package tremor

import (
	"errors"
	"fmt"
	"math"
	"time"
)

// ErrMalformedRecord is returned when a store row cannot be mapped to a valid SensorRecord.
var ErrMalformedRecord = errors.New("malformed sensor record")

// SensorRecord is one timestamped reading bundle with a precomputed tremor flag.
// Records are read-only copies of rows owned by the remote store.
type SensorRecord struct {
	ID             int64     `json:"id"`
	CreatedAt      time.Time `json:"created_at"`
	Timestamp      int64     `json:"timestamp"`
	AccelRMS       float64   `json:"accel_rms"`
	GyroRMS        float64   `json:"gyro_rms"`
	AccelIntensity float64   `json:"accel_intensity"`
	GyroIntensity  float64   `json:"gyro_intensity"`
	AvgBPM         float64   `json:"avg_bpm"`
	GSR            float64   `json:"gsr"`
	IsTremor       bool      `json:"is_tremor"`
}

// Validate checks the invariants every record taken from the store must satisfy.
// The returned error wraps ErrMalformedRecord and names the offending field.
func Validate(r SensorRecord) error {
	if r.ID <= 0 {
		return malformed("id", "must be positive, got %d", r.ID)
	}
	if r.CreatedAt.IsZero() {
		return malformed("created_at", "is missing")
	}

	motion := []struct {
		field string
		value float64
	}{
		{"accel_rms", r.AccelRMS},
		{"gyro_rms", r.GyroRMS},
		{"accel_intensity", r.AccelIntensity},
		{"gyro_intensity", r.GyroIntensity},
	}
	for _, m := range motion {
		if !isFinite(m.value) {
			return malformed(m.field, "is not a finite number")
		}
		if m.value < 0 {
			return malformed(m.field, "must be non-negative, got %g", m.value)
		}
	}

	if !isFinite(r.GSR) {
		return malformed("gsr", "is not a finite number")
	}
	if r.AvgBPM < 0 {
		return malformed("avg_bpm", "must be non-negative, got %g", r.AvgBPM)
	}
	return nil
}

func malformed(field, format string, args ...interface{}) error {
	return fmt.Errorf("%w: %s %s", ErrMalformedRecord, field, fmt.Sprintf(format, args...))
}

func isFinite(v float64) bool {
	return !math.IsNaN(v) && !math.IsInf(v, 0)
}
