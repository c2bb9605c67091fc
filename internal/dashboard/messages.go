package dashboard

import (
	"time"

	"github.com/rileyhilliard/tremor/internal/tremor"
)

// realtimeTickMsg asks the real-time view to poll. epoch is the mount it was
// scheduled under.
type realtimeTickMsg struct {
	epoch uint64
	at    time.Time
}

// latestFetchedMsg carries one FetchLatest result.
type latestFetchedMsg struct {
	epoch  uint64
	seq    uint64
	record tremor.SensorRecord
	err    error
}

// recentFetchedMsg carries one FetchRecent result.
type recentFetchedMsg struct {
	epoch   uint64
	seq     uint64
	records []tremor.SensorRecord
	err     error
}

// noticeMsg raises a transient notice in the shell.
type noticeMsg struct {
	notice Notice
}

// noticeExpiredMsg clears the notice with the given id if it is still shown.
type noticeExpiredMsg struct {
	id int
}
