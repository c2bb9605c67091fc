package tremor

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestGaugePercent(t *testing.T) {
	tests := []struct {
		name   string
		value  float64
		max    float64
		expect float64
	}{
		{name: "below warning", value: 2.9, max: 5, expect: 58},
		{name: "above warning", value: 3.1, max: 5, expect: 62},
		{name: "above critical", value: 4.1, max: 5, expect: 82},
		{name: "clamped at 100", value: 12, max: 5, expect: 100},
		{name: "gyro scale", value: 50, max: 200, expect: 25},
		{name: "zero", value: 0, max: 5, expect: 0},
		{name: "non-positive max saturates", value: 1, max: 0, expect: 100},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.InDelta(t, tt.expect, GaugePercent(tt.value, tt.max), 1e-9)
		})
	}
}

func TestGaugeLevelFor(t *testing.T) {
	tests := []struct {
		name   string
		value  float64
		max    float64
		expect GaugeLevel
	}{
		{name: "2.9 of 5 is green", value: 2.9, max: 5, expect: GaugeGreen},
		{name: "3.1 of 5 is yellow", value: 3.1, max: 5, expect: GaugeYellow},
		{name: "4.1 of 5 is red", value: 4.1, max: 5, expect: GaugeRed},
		{name: "exactly 60 is green", value: 3, max: 5, expect: GaugeGreen},
		{name: "exactly 80 is yellow", value: 160, max: 200, expect: GaugeYellow},
		{name: "saturated is red", value: 400, max: 200, expect: GaugeRed},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			pct := GaugePercent(tt.value, tt.max)
			assert.Equal(t, tt.expect, GaugeLevelFor(pct, DefaultWarningPercent, DefaultCriticalPercent))
		})
	}
}

func TestGaugeLevel_String(t *testing.T) {
	assert.Equal(t, "green", GaugeGreen.String())
	assert.Equal(t, "yellow", GaugeYellow.String())
	assert.Equal(t, "red", GaugeRed.String())
	assert.Equal(t, "unknown", GaugeLevel(9).String())
}

func TestMovementGauges(t *testing.T) {
	gauges := MovementGauges(SensorRecord{AccelRMS: 4.1, GyroRMS: 20}, AccelRMSMax, GyroRMSMax)

	assert.Len(t, gauges, 2)
	assert.Equal(t, "Acceleration RMS", gauges[0].Title)
	assert.Equal(t, "g", gauges[0].Unit)
	assert.Equal(t, GaugeRed, gauges[0].Level(DefaultThresholds()))

	assert.Equal(t, "Gyroscope RMS", gauges[1].Title)
	assert.Equal(t, "°/s", gauges[1].Unit)
	assert.InDelta(t, 10.0, gauges[1].Percent(), 1e-9)
	assert.Equal(t, GaugeGreen, gauges[1].Level(DefaultThresholds()))
}
