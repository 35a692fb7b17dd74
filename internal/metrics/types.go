package metrics

import "github.com/prometheus/client_golang/prometheus"

// Service holds all the Prometheus metrics for the application.
type Service struct {
	GridBuilds         prometheus.Counter
	GridBuildFailures  prometheus.Counter
	GridBuildDuration  prometheus.Histogram
	SlotReplacements   prometheus.Counter
	TimeOffChanges     prometheus.Counter
	EventsPublished    prometheus.Counter
	SlackNotifSent     prometheus.Counter
	SlackNotifFailed   prometheus.Counter
	StartupTimeSeconds prometheus.Gauge
}

// CounterKey names a persisted lifetime counter.
type CounterKey string

const (
	KeyGridsBuilt       CounterKey = "grids_built"
	KeySlotSetsReplaced CounterKey = "slot_sets_replaced"
	KeyTimeOffAdded     CounterKey = "time_off_added"
	KeyTimeOffRemoved   CounterKey = "time_off_removed"
	KeySummariesPosted  CounterKey = "summaries_posted"
)

// CounterKeys lists every tracked counter.
var CounterKeys = []CounterKey{
	KeyGridsBuilt,
	KeySlotSetsReplaced,
	KeyTimeOffAdded,
	KeyTimeOffRemoved,
	KeySummariesPosted,
}

func (k CounterKey) Valid() bool {
	for _, known := range CounterKeys {
		if k == known {
			return true
		}
	}
	return false
}
