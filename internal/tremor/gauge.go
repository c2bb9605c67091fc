package tremor

import "math"

// Gauge scale defaults for the real-time movement metrics.
const (
	AccelRMSMax = 5.0
	GyroRMSMax  = 200.0

	// Percent thresholds: green up to Warning, yellow up to Critical, red above.
	DefaultWarningPercent  = 60.0
	DefaultCriticalPercent = 80.0
)

// GaugeLevel is the traffic-light band a gauge reading falls into.
type GaugeLevel int

const (
	GaugeGreen GaugeLevel = iota
	GaugeYellow
	GaugeRed
)

// String returns the color name of the level.
func (l GaugeLevel) String() string {
	switch l {
	case GaugeGreen:
		return "green"
	case GaugeYellow:
		return "yellow"
	case GaugeRed:
		return "red"
	default:
		return "unknown"
	}
}

// GaugePercent returns min(value/maxVal*100, 100). A non-positive maxVal yields
// 100 so a misconfigured scale reads as saturated.
func GaugePercent(value, maxVal float64) float64 {
	if maxVal <= 0 {
		return 100
	}
	return math.Min(value/maxVal*100, 100)
}

// GaugeLevelFor maps a percentage onto a band: green if pct <= warning,
// yellow if warning < pct <= critical, red if pct > critical.
func GaugeLevelFor(pct, warning, critical float64) GaugeLevel {
	switch {
	case pct > critical:
		return GaugeRed
	case pct > warning:
		return GaugeYellow
	default:
		return GaugeGreen
	}
}

// Thresholds holds the warning and critical percentages for gauges.
type Thresholds struct {
	Warning  float64
	Critical float64
}

// DefaultThresholds returns the 60/80 split.
func DefaultThresholds() Thresholds {
	return Thresholds{Warning: DefaultWarningPercent, Critical: DefaultCriticalPercent}
}

// Gauge describes one bar on the movement metrics card.
type Gauge struct {
	Title string
	Unit  string
	Value float64
	Max   float64
}

// Percent returns the clamped fill percentage of the gauge.
func (g Gauge) Percent() float64 {
	return GaugePercent(g.Value, g.Max)
}

// Level returns the traffic-light band for the gauge under th.
func (g Gauge) Level(th Thresholds) GaugeLevel {
	return GaugeLevelFor(g.Percent(), th.Warning, th.Critical)
}

// MovementGauges returns the acceleration and gyroscope gauges for a record.
func MovementGauges(r SensorRecord, accelMax, gyroMax float64) []Gauge {
	return []Gauge{
		{Title: "Acceleration RMS", Unit: "g", Value: r.AccelRMS, Max: accelMax},
		{Title: "Gyroscope RMS", Unit: "°/s", Value: r.GyroRMS, Max: gyroMax},
	}
}
