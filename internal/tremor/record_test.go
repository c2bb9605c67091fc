package tremor

import (
	"errors"
	"math"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func validRecord() SensorRecord {
	return SensorRecord{
		ID:             42,
		CreatedAt:      time.Date(2025, 3, 14, 9, 26, 53, 0, time.UTC),
		AccelRMS:       1.2,
		GyroRMS:        35.5,
		AccelIntensity: 0.8,
		GyroIntensity:  12,
		AvgBPM:         72,
		GSR:            1004,
	}
}

func TestValidate(t *testing.T) {
	tests := []struct {
		name   string
		mutate func(r *SensorRecord)
		field  string
	}{
		{name: "valid", mutate: func(r *SensorRecord) {}},
		{name: "zero id", mutate: func(r *SensorRecord) { r.ID = 0 }, field: "id"},
		{name: "missing created_at", mutate: func(r *SensorRecord) { r.CreatedAt = time.Time{} }, field: "created_at"},
		{name: "negative accel", mutate: func(r *SensorRecord) { r.AccelRMS = -0.1 }, field: "accel_rms"},
		{name: "NaN gyro", mutate: func(r *SensorRecord) { r.GyroRMS = math.NaN() }, field: "gyro_rms"},
		{name: "inf accel intensity", mutate: func(r *SensorRecord) { r.AccelIntensity = math.Inf(1) }, field: "accel_intensity"},
		{name: "negative gyro intensity", mutate: func(r *SensorRecord) { r.GyroIntensity = -3 }, field: "gyro_intensity"},
		{name: "NaN gsr", mutate: func(r *SensorRecord) { r.GSR = math.NaN() }, field: "gsr"},
		{name: "negative bpm", mutate: func(r *SensorRecord) { r.AvgBPM = -1 }, field: "avg_bpm"},
		{name: "negative gsr is allowed", mutate: func(r *SensorRecord) { r.GSR = -12 }},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			r := validRecord()
			tt.mutate(&r)

			err := Validate(r)
			if tt.field == "" {
				assert.NoError(t, err)
				return
			}
			require.Error(t, err)
			assert.True(t, errors.Is(err, ErrMalformedRecord))
			assert.Contains(t, err.Error(), tt.field)
		})
	}
}
