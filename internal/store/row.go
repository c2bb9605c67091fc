package store

import (
	"database/sql"
	"fmt"
	"math"
	"strings"
	"time"

	"github.com/rileyhilliard/tremor/internal/tremor"
)

// columns is the explicit select list shared by every backend. "timestamp"
// is a keyword in most dialects, so callers quote it themselves.
var columns = []string{
	"id",
	"created_at",
	"timestamp",
	"accel_rms",
	"gyro_rms",
	"accel_intensity",
	"gyro_intensity",
	"avg_bpm",
	"gsr",
	"is_tremor",
}

// selectList renders columns with quote applied to each name.
func selectList(quote func(string) string) string {
	quoted := make([]string, len(columns))
	for i, c := range columns {
		quoted[i] = quote(c)
	}
	return strings.Join(quoted, ", ")
}

// sensorRow is the nullable scan target. Upstream writers are not trusted to
// fill every column, so NULLs are caught here instead of becoming zero values.
type sensorRow struct {
	ID             sql.NullInt64   `db:"id" gorm:"column:id"`
	CreatedAt      sql.NullTime    `db:"created_at" gorm:"column:created_at"`
	Timestamp      sql.NullInt64   `db:"timestamp" gorm:"column:timestamp"`
	AccelRMS       sql.NullFloat64 `db:"accel_rms" gorm:"column:accel_rms"`
	GyroRMS        sql.NullFloat64 `db:"gyro_rms" gorm:"column:gyro_rms"`
	AccelIntensity sql.NullFloat64 `db:"accel_intensity" gorm:"column:accel_intensity"`
	GyroIntensity  sql.NullFloat64 `db:"gyro_intensity" gorm:"column:gyro_intensity"`
	AvgBPM         sql.NullFloat64 `db:"avg_bpm" gorm:"column:avg_bpm"`
	GSR            sql.NullFloat64 `db:"gsr" gorm:"column:gsr"`
	IsTremor       sql.NullBool    `db:"is_tremor" gorm:"column:is_tremor"`
}

// record maps the row to a validated SensorRecord.
func (r sensorRow) record() (tremor.SensorRecord, error) {
	required := []struct {
		field string
		valid bool
	}{
		{"id", r.ID.Valid},
		{"created_at", r.CreatedAt.Valid},
		{"accel_rms", r.AccelRMS.Valid},
		{"gyro_rms", r.GyroRMS.Valid},
		{"accel_intensity", r.AccelIntensity.Valid},
		{"gyro_intensity", r.GyroIntensity.Valid},
		{"avg_bpm", r.AvgBPM.Valid},
		{"gsr", r.GSR.Valid},
		{"is_tremor", r.IsTremor.Valid},
	}
	for _, c := range required {
		if !c.valid {
			return tremor.SensorRecord{}, fmt.Errorf("%w: %s is NULL (row id %d)", tremor.ErrMalformedRecord, c.field, r.ID.Int64)
		}
	}

	if math.IsNaN(r.AvgBPM.Float64) || math.IsInf(r.AvgBPM.Float64, 0) {
		return tremor.SensorRecord{}, fmt.Errorf("%w: avg_bpm is not a finite number (row id %d)", tremor.ErrMalformedRecord, r.ID.Int64)
	}

	rec := tremor.SensorRecord{
		ID:             r.ID.Int64,
		CreatedAt:      r.CreatedAt.Time,
		AccelRMS:       r.AccelRMS.Float64,
		GyroRMS:        r.GyroRMS.Float64,
		AccelIntensity: r.AccelIntensity.Float64,
		GyroIntensity:  r.GyroIntensity.Float64,
		AvgBPM:         r.AvgBPM.Float64,
		GSR:            r.GSR.Float64,
		IsTremor:       r.IsTremor.Bool,
	}
	if r.Timestamp.Valid {
		rec.Timestamp = r.Timestamp.Int64
	}

	if err := tremor.Validate(rec); err != nil {
		return tremor.SensorRecord{}, fmt.Errorf("%w (row id %d)", err, r.ID.Int64)
	}
	return rec, nil
}

// sensorModel is the schema gorm AutoMigrate creates for local development.
// It is never used to write rows.
type sensorModel struct {
	ID             int64     `gorm:"column:id;primaryKey;autoIncrement"`
	CreatedAt      time.Time `gorm:"column:created_at;not null;index"`
	Timestamp      int64     `gorm:"column:timestamp"`
	AccelRMS       float64   `gorm:"column:accel_rms;not null"`
	GyroRMS        float64   `gorm:"column:gyro_rms;not null"`
	AccelIntensity float64   `gorm:"column:accel_intensity;not null"`
	GyroIntensity  float64   `gorm:"column:gyro_intensity;not null"`
	AvgBPM         float64   `gorm:"column:avg_bpm;not null"`
	GSR            float64   `gorm:"column:gsr;not null"`
	IsTremor       bool      `gorm:"column:is_tremor;not null;default:false"`
}
