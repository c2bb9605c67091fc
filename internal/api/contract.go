package api

import "github.com/rileyhilliard/tremor/internal/tremor"

type GetRecentResponse struct {
	Records []tremor.SensorRecord `json:"records"`
}

type GetSummaryResponse struct {
	Records          int                `json:"records"`
	TremorEventCount int                `json:"tremor_event_count"`
	AverageHeartRate int                `json:"average_heart_rate"`
	EventLog         []tremor.ChartPoint `json:"event_log"`
	Series           []tremor.ChartPoint `json:"series"`
}

type ErrorResponse struct {
	Error string `json:"error"`
}
