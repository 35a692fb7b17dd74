package metrics

// Metrics defines the interface for collecting application metrics.
// This decouples the application from the specific metrics implementation (e.g., Prometheus).
type Metrics interface {
	IncGridBuilds()
	IncGridBuildFailures()
	ObserveGridBuildDuration(duration float64)
	IncSlotReplacements()
	IncTimeOffChanges()
	IncEventsPublished()
	IncSlackNotifSent()
	IncSlackNotifFailed()
	SetStartupTime(duration float64)
}

// CounterStore persists lifetime usage counters across restarts.
type CounterStore interface {
	Increment(key CounterKey)
	GetAll() (map[CounterKey]int, error)
}
