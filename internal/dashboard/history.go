package dashboard

import (
	"sync"

	"github.com/rileyhilliard/tremor/internal/tremor"
)

// DefaultHistorySize is the number of polled readings kept for the real-time sparklines.
const DefaultHistorySize = 60

// History keeps the readings polled during the current mount of the
// real-time view in ring buffers, one per sparkline.
type History struct {
	mu     sync.RWMutex
	size   int
	lastID int64

	accel     *ringBuffer
	gyro      *ringBuffer
	heartRate *ringBuffer
	gsr       *ringBuffer
}

// ringBuffer is a fixed-size circular buffer for float64 values.
type ringBuffer struct {
	data  []float64
	head  int
	count int
	size  int
}

// NewHistory creates a history holding up to size readings.
func NewHistory(size int) *History {
	if size <= 0 {
		size = DefaultHistorySize
	}
	h := &History{size: size}
	h.reset()
	return h
}

// Push records a reading. Polling faster than the sensor writes returns the
// same row again; a repeat of the last pushed ID is ignored so the
// sparklines only move on new readings. Reports whether the reading was kept.
func (h *History) Push(rec tremor.SensorRecord) bool {
	h.mu.Lock()
	defer h.mu.Unlock()

	if h.accel.count > 0 && rec.ID == h.lastID {
		return false
	}
	h.lastID = rec.ID

	h.accel.push(rec.AccelRMS)
	h.gyro.push(rec.GyroRMS)
	h.heartRate.push(rec.AvgBPM)
	h.gsr.push(rec.GSR)
	return true
}

// Accel returns the last count acceleration RMS values, oldest first.
func (h *History) Accel(count int) []float64 {
	h.mu.RLock()
	defer h.mu.RUnlock()
	return h.accel.getLast(count)
}

// Gyro returns the last count gyroscope RMS values, oldest first.
func (h *History) Gyro(count int) []float64 {
	h.mu.RLock()
	defer h.mu.RUnlock()
	return h.gyro.getLast(count)
}

// HeartRate returns the last count heart rate values, oldest first.
func (h *History) HeartRate(count int) []float64 {
	h.mu.RLock()
	defer h.mu.RUnlock()
	return h.heartRate.getLast(count)
}

// GSR returns the last count GSR values, oldest first.
func (h *History) GSR(count int) []float64 {
	h.mu.RLock()
	defer h.mu.RUnlock()
	return h.gsr.getLast(count)
}

// Len returns the number of readings stored.
func (h *History) Len() int {
	h.mu.RLock()
	defer h.mu.RUnlock()
	return h.accel.count
}

// Size returns the capacity.
func (h *History) Size() int {
	return h.size
}

// Clear drops every stored reading.
func (h *History) Clear() {
	h.mu.Lock()
	defer h.mu.Unlock()
	h.reset()
}

// reset must be called with h.mu held (or before h is shared).
func (h *History) reset() {
	h.lastID = 0
	h.accel = newRingBuffer(h.size)
	h.gyro = newRingBuffer(h.size)
	h.heartRate = newRingBuffer(h.size)
	h.gsr = newRingBuffer(h.size)
}

func newRingBuffer(size int) *ringBuffer {
	return &ringBuffer{
		data: make([]float64, size),
		size: size,
	}
}

func (r *ringBuffer) push(value float64) {
	r.data[r.head] = value
	r.head = (r.head + 1) % r.size
	if r.count < r.size {
		r.count++
	}
}

// getLast returns the last count values in chronological order (oldest first).
func (r *ringBuffer) getLast(count int) []float64 {
	if count <= 0 || r.count == 0 {
		return nil
	}
	if count > r.count {
		count = r.count
	}

	result := make([]float64, count)

	// head is the next write position, so the newest value is at head-1.
	start := (r.head - count + r.size) % r.size
	for i := 0; i < count; i++ {
		result[i] = r.data[(start+i)%r.size]
	}
	return result
}
