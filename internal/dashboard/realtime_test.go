package dashboard

import (
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	dashtesting "github.com/rileyhilliard/tremor/internal/dashboard/testing"
	"github.com/rileyhilliard/tremor/internal/logger"
	"github.com/rileyhilliard/tremor/internal/store"
	storetesting "github.com/rileyhilliard/tremor/internal/store/testing"
	"github.com/rileyhilliard/tremor/internal/tremor"
)

func newRealtime(t *testing.T, st *storetesting.FakeStore) (*RealtimeView, *dashtesting.ManualScheduler, *logger.BufferLogger) {
	t.Helper()
	sched := dashtesting.NewManualScheduler(testStart)
	log := logger.NewBufferLogger()
	v := NewRealtimeView(testOptions(st, sched, log))
	return &v, sched, log
}

func TestViewState_String(t *testing.T) {
	tests := []struct {
		state  ViewState
		expect string
	}{
		{StateLoading, "loading"},
		{StateReady, "ready"},
		{StateError, "error"},
		{ViewState(99), "unknown"},
	}

	for _, tt := range tests {
		t.Run(tt.expect, func(t *testing.T) {
			assert.Equal(t, tt.expect, tt.state.String())
		})
	}
}

func TestRealtimeView_InitialState(t *testing.T) {
	v, _, _ := newRealtime(t, storetesting.NewFakeStore())

	assert.Equal(t, StateLoading, v.State())
	assert.False(t, v.Mounted())
	_, ok := v.Record()
	assert.False(t, ok)
	assert.True(t, v.LastUpdated().IsZero())
}

func TestRealtimeView_MountFetchesOnce(t *testing.T) {
	st := storetesting.NewFakeStore(reading(1, false))
	v, sched, _ := newRealtime(t, st)

	msgs := runCmd(v.Mount())

	latest, _ := st.Calls()
	assert.Equal(t, 1, latest, "mount should issue exactly one fetch")
	assert.Equal(t, []time.Duration{testInterval}, sched.Delays)
	assert.Equal(t, 1, sched.Pending())

	pump(v.Update, msgs...)

	assert.Equal(t, StateReady, v.State())
	rec, ok := v.Record()
	require.True(t, ok)
	assert.Equal(t, int64(1), rec.ID)
	assert.Equal(t, testStart, v.LastUpdated())
	assert.Empty(t, v.Err())
}

func TestRealtimeView_OneFetchPerTick(t *testing.T) {
	st := storetesting.NewFakeStore(reading(1, false))
	v, sched, _ := newRealtime(t, st)

	pump(v.Update, runCmd(v.Mount())...)

	for i := 1; i <= 3; i++ {
		ticks := sched.Advance(testInterval)
		require.Len(t, ticks, 1)
		pump(v.Update, ticks...)

		latest, _ := st.Calls()
		assert.Equal(t, 1+i, latest)
		assert.Equal(t, 1, sched.Pending(), "each tick schedules the next")
	}

	// Nothing fires before the interval elapses.
	assert.Empty(t, sched.Advance(testInterval-time.Millisecond))
}

func TestRealtimeView_NoPollAfterUnmount(t *testing.T) {
	st := storetesting.NewFakeStore(reading(1, false))
	v, sched, _ := newRealtime(t, st)

	pump(v.Update, runCmd(v.Mount())...)
	v.Unmount()
	assert.False(t, v.Mounted())

	// The tick scheduled before teardown still fires, but is dropped.
	pump(v.Update, sched.Advance(testInterval)...)
	pump(v.Update, sched.Advance(time.Minute)...)

	latest, _ := st.Calls()
	assert.Equal(t, 1, latest)
	assert.Equal(t, 0, sched.Pending(), "a dropped tick is not rescheduled")
}

func TestRealtimeView_RemountStartsFresh(t *testing.T) {
	st := storetesting.NewFakeStore(reading(1, false))
	v, sched, _ := newRealtime(t, st)

	pump(v.Update, runCmd(v.Mount())...)
	require.Equal(t, StateReady, v.State())
	v.Unmount()

	mountMsgs := runCmd(v.Mount())
	assert.Equal(t, StateLoading, v.State())
	_, ok := v.Record()
	assert.False(t, ok)
	assert.Equal(t, 0, v.History().Len())

	// The old tick and the new tick are both pending; only the new one polls.
	pump(v.Update, mountMsgs...)
	pump(v.Update, sched.Advance(testInterval)...)

	latest, _ := st.Calls()
	assert.Equal(t, 3, latest, "first mount, second mount, one tick of the second mount")
	assert.Equal(t, 1, sched.Pending())
}

func TestRealtimeView_ResponseAfterUnmountIgnored(t *testing.T) {
	st := storetesting.NewFakeStore(reading(1, false))
	v, _, _ := newRealtime(t, st)

	msgs := runCmd(v.Mount())
	v.Unmount()
	pump(v.Update, msgs...)

	_, ok := v.Record()
	assert.False(t, ok)
}

func TestRealtimeView_StaleResponseDiscarded(t *testing.T) {
	st := storetesting.NewFakeStore()
	st.QueueLatest(reading(1, false), nil).QueueLatest(reading(2, true), nil)
	v, _, log := newRealtime(t, st)

	first := runCmd(v.Mount())
	second := runCmd(v.Refresh())
	require.Len(t, first, 1)
	require.Len(t, second, 1)

	// Responses land out of order.
	pump(v.Update, second...)
	pump(v.Update, first...)

	rec, ok := v.Record()
	require.True(t, ok)
	assert.Equal(t, int64(2), rec.ID, "the older response must not overwrite the newer one")
	assert.True(t, log.Contains("debug", "discarding stale response"))
}

func TestRealtimeView_ErrorAndRecovery(t *testing.T) {
	st := storetesting.NewFakeStore(reading(7, false))
	st.SetLatestError(errors.New("connection refused"))
	v, sched, log := newRealtime(t, st)

	msgs := runCmd(v.Mount())
	require.Len(t, msgs, 1)

	notice := runCmd(v.Update(msgs[0]))
	require.Len(t, notice, 1)
	assert.Equal(t, noticeMsg{notice: Notice{Kind: NoticeError, Text: "Failed to fetch data"}}, notice[0])

	assert.Equal(t, StateError, v.State())
	assert.Equal(t, "Failed to fetch data. Please try again later.", v.Err())
	assert.True(t, log.Contains("error", "connection refused"))

	// The next tick is the recovery path.
	st.SetLatestError(nil)
	pump(v.Update, sched.Advance(testInterval)...)

	assert.Equal(t, StateReady, v.State())
	assert.Empty(t, v.Err())
	rec, ok := v.Record()
	require.True(t, ok)
	assert.Equal(t, int64(7), rec.ID)
}

func TestRealtimeView_EmptyStoreIsError(t *testing.T) {
	st := storetesting.NewFakeStore()
	v, _, log := newRealtime(t, st)

	pump(v.Update, runCmd(v.Mount())...)

	assert.Equal(t, StateError, v.State())
	assert.True(t, log.Contains("error", store.ErrNoRows.Error()))
}

func TestRealtimeView_ReadyWhilePolling(t *testing.T) {
	st := storetesting.NewFakeStore(reading(1, false))
	v, sched, _ := newRealtime(t, st)

	pump(v.Update, runCmd(v.Mount())...)

	// A poll in flight leaves the view Ready with the previous record.
	ticks := sched.Advance(testInterval)
	inFlight := runCmd(v.Update(ticks[0]))
	assert.Equal(t, StateReady, v.State())
	rec, _ := v.Record()
	assert.Equal(t, int64(1), rec.ID)

	pump(v.Update, inFlight...)
	assert.Equal(t, testStart.Add(testInterval), v.LastUpdated())
}

func TestRealtimeView_RefreshWhileUnmounted(t *testing.T) {
	st := storetesting.NewFakeStore(reading(1, false))
	v, _, _ := newRealtime(t, st)

	assert.Nil(t, v.Refresh())
	latest, _ := st.Calls()
	assert.Equal(t, 0, latest)
}

func TestRealtimeView_HistoryTracksNewReadings(t *testing.T) {
	st := storetesting.NewFakeStore(reading(1, false))
	v, sched, _ := newRealtime(t, st)

	pump(v.Update, runCmd(v.Mount())...)
	pump(v.Update, sched.Advance(testInterval)...)
	assert.Equal(t, 1, v.History().Len(), "a repeated row is not a new sample")

	st.Records = []tremor.SensorRecord{reading(2, true)}
	pump(v.Update, sched.Advance(testInterval)...)
	assert.Equal(t, 2, v.History().Len())
}

func TestRealtimeView_Gauges(t *testing.T) {
	rec := reading(1, false)
	rec.AccelRMS = 4.1
	rec.GyroRMS = 116
	st := storetesting.NewFakeStore(rec)
	v, _, _ := newRealtime(t, st)

	pump(v.Update, runCmd(v.Mount())...)

	gauges := v.Gauges()
	require.Len(t, gauges, 2)
	th := tremor.DefaultThresholds()
	assert.Equal(t, tremor.GaugeRed, gauges[0].Level(th))
	assert.InDelta(t, 82, gauges[0].Percent(), 1e-9)
	assert.Equal(t, tremor.GaugeGreen, gauges[1].Level(th))
	assert.InDelta(t, 58, gauges[1].Percent(), 1e-9)
}

func TestRealtimeView_View(t *testing.T) {
	t.Run("loading", func(t *testing.T) {
		st := storetesting.NewFakeStore(reading(1, false))
		v, _, _ := newRealtime(t, st)
		v.Mount()

		out := v.View(120, "*")
		assert.Contains(t, out, "Real-time Monitor")
		assert.Contains(t, out, "Updating...")
		assert.Contains(t, out, "Loading latest reading")
	})

	t.Run("tremor detected", func(t *testing.T) {
		rec := reading(1, true)
		rec.AccelRMS = 4.1
		st := storetesting.NewFakeStore(rec)
		v, _, _ := newRealtime(t, st)
		pump(v.Update, runCmd(v.Mount())...)

		out := v.View(120, "*")
		assert.Contains(t, out, "Last updated: 09:00:00")
		assert.Contains(t, out, "Tremor Detected")
		assert.Contains(t, out, "Timestamp: 09:00:01")
		assert.Contains(t, out, "Movement Metrics")
		assert.Contains(t, out, "4.10 g")
		assert.Contains(t, out, "40.00 °/s")
		assert.Contains(t, out, "1.25")
		assert.Contains(t, out, "Biometric Data")
		assert.Contains(t, out, "72")
		assert.Contains(t, out, "1002")
		assert.Contains(t, out, "995")
	})

	t.Run("no tremor narrow", func(t *testing.T) {
		st := storetesting.NewFakeStore(reading(1, false))
		v, _, _ := newRealtime(t, st)
		pump(v.Update, runCmd(v.Mount())...)

		out := v.View(70, "*")
		assert.Contains(t, out, "No Tremor")
		assert.NotContains(t, out, "Tremor Detected")
	})

	t.Run("error", func(t *testing.T) {
		st := storetesting.NewFakeStore()
		v, _, _ := newRealtime(t, st)
		pump(v.Update, runCmd(v.Mount())...)

		out := v.View(120, "*")
		assert.Contains(t, out, "Failed to fetch data. Please try again later.")
		assert.NotContains(t, out, "Movement Metrics")
	})
}
