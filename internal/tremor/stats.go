package tremor

import (
	"time"
)

// DefaultEventLogLimit is how many tremor events the event log keeps.
const DefaultEventLogLimit = 25

// TremorEventCount returns the number of records flagged as tremor.
func TremorEventCount(records []SensorRecord) int {
	count := 0
	for _, r := range records {
		if r.IsTremor {
			count++
		}
	}
	return count
}

// AverageHeartRate returns the mean of the raw AvgBPM values rounded to the
// nearest integer, with halves rounded up. Returns 0 for an empty slice.
func AverageHeartRate(records []SensorRecord) int {
	if len(records) == 0 {
		return 0
	}
	var sum float64
	for _, r := range records {
		sum += r.AvgBPM
	}
	return RoundBPM(sum / float64(len(records)))
}

// TremorEventLog returns the tremor records in the order given (newest first
// as returned by the store), truncated to limit entries. A non-positive limit
// falls back to DefaultEventLogLimit.
func TremorEventLog(records []SensorRecord, limit int) []SensorRecord {
	if limit <= 0 {
		limit = DefaultEventLogLimit
	}
	events := make([]SensorRecord, 0, min(limit, len(records)))
	for _, r := range records {
		if !r.IsTremor {
			continue
		}
		events = append(events, r)
		if len(events) == limit {
			break
		}
	}
	return events
}

// ChartPoint is a record annotated for plotting on a shared time axis.
type ChartPoint struct {
	SensorRecord
	Time     string  `json:"time"`
	FullTime string  `json:"full_time"`
	Tremor   float64 `json:"tremor"`
}

// ChartSeries reverses the newest-first records into oldest-first order and
// annotates each with its axis labels and a 0/1 tremor projection.
// Labels are rendered in loc; nil means time.Local.
func ChartSeries(records []SensorRecord, loc *time.Location) []ChartPoint {
	points := make([]ChartPoint, len(records))
	for i, r := range records {
		p := ChartPoint{
			SensorRecord: r,
			Time:         ShortTime(r.CreatedAt, loc),
			FullTime:     FullTime(r.CreatedAt, loc),
		}
		if r.IsTremor {
			p.Tremor = 1
		}
		points[len(records)-1-i] = p
	}
	return points
}

// Summary bundles the derivations the historical views display.
type Summary struct {
	Records          int           `json:"records"`
	TremorEventCount int           `json:"tremor_event_count"`
	AverageHeartRate int           `json:"average_heart_rate"`
	EventLog         []ChartPoint  `json:"event_log"`
	Series           []ChartPoint  `json:"series"`
	Span             time.Duration `json:"span_ns"`
}

// Summarize computes every historical derivation in one pass over the fetched records.
func Summarize(records []SensorRecord, eventLogLimit int, loc *time.Location) Summary {
	log := TremorEventLog(records, eventLogLimit)
	annotated := make([]ChartPoint, len(log))
	for i, r := range log {
		annotated[i] = ChartPoint{
			SensorRecord: r,
			Time:         ShortTime(r.CreatedAt, loc),
			FullTime:     FullTime(r.CreatedAt, loc),
			Tremor:       1,
		}
	}

	s := Summary{
		Records:          len(records),
		TremorEventCount: TremorEventCount(records),
		AverageHeartRate: AverageHeartRate(records),
		EventLog:         annotated,
		Series:           ChartSeries(records, loc),
	}
	if len(records) > 1 {
		s.Span = records[0].CreatedAt.Sub(records[len(records)-1].CreatedAt)
	}
	return s
}

// Column extracts one numeric series from chart points, in point order.
func Column(points []ChartPoint, pick func(ChartPoint) float64) []float64 {
	out := make([]float64, len(points))
	for i, p := range points {
		out[i] = pick(p)
	}
	return out
}
