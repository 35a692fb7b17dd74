package metrics

import (
	"net/http"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

var _ Metrics = (*Service)(nil)

// NewMetricsHandler returns an http.Handler for the given Gatherer.
// If no gatherer is provided, it uses the default one.
func NewMetricsHandler(gatherer ...prometheus.Gatherer) http.Handler {
	gath := prometheus.DefaultGatherer
	if len(gatherer) > 0 {
		gath = gatherer[0]
	}
	return promhttp.HandlerFor(gath, promhttp.HandlerOpts{})
}

// NewService creates and registers the Prometheus metrics.
// If no registerer is provided, it uses the default Prometheus registerer.
func NewService(registerer ...prometheus.Registerer) *Service {
	reg := prometheus.DefaultRegisterer
	if len(registerer) > 0 {
		reg = registerer[0]
	}

	s := &Service{
		GridBuilds: prometheus.NewCounter(prometheus.CounterOpts{
			Name: "scrim_grid_builds_total",
			Help: "The total number of availability grids built.",
		}),
		GridBuildFailures: prometheus.NewCounter(prometheus.CounterOpts{
			Name: "scrim_grid_build_failures_total",
			Help: "The total number of availability grid builds that aborted.",
		}),
		GridBuildDuration: prometheus.NewHistogram(prometheus.HistogramOpts{
			Name:    "scrim_grid_build_duration_seconds",
			Help:    "The duration of loading and building one availability grid.",
			Buckets: []float64{0.001, 0.005, 0.01, 0.025, 0.05, 0.1, 0.25, 0.5, 1, 2.5},
		}),
		SlotReplacements: prometheus.NewCounter(prometheus.CounterOpts{
			Name: "scrim_slot_replacements_total",
			Help: "The total number of weekly slot sets replaced.",
		}),
		TimeOffChanges: prometheus.NewCounter(prometheus.CounterOpts{
			Name: "scrim_time_off_changes_total",
			Help: "The total number of time-off exceptions added or removed.",
		}),
		EventsPublished: prometheus.NewCounter(prometheus.CounterOpts{
			Name: "scrim_events_published_total",
			Help: "The total number of availability-changed events published.",
		}),
		SlackNotifSent: prometheus.NewCounter(prometheus.CounterOpts{
			Name: "scrim_slack_notifications_sent_total",
			Help: "The total number of Slack notifications successfully sent.",
		}),
		SlackNotifFailed: prometheus.NewCounter(prometheus.CounterOpts{
			Name: "scrim_slack_notifications_failed_total",
			Help: "The total number of Slack notifications that failed to send.",
		}),
		StartupTimeSeconds: prometheus.NewGauge(prometheus.GaugeOpts{
			Name: "scrim_startup_duration_seconds",
			Help: "The duration of the application startup in seconds.",
		}),
	}

	reg.MustRegister(
		s.GridBuilds,
		s.GridBuildFailures,
		s.GridBuildDuration,
		s.SlotReplacements,
		s.TimeOffChanges,
		s.EventsPublished,
		s.SlackNotifSent,
		s.SlackNotifFailed,
		s.StartupTimeSeconds,
	)

	return s
}

func (s *Service) IncGridBuilds() {
	s.GridBuilds.Inc()
}

func (s *Service) IncGridBuildFailures() {
	s.GridBuildFailures.Inc()
}

func (s *Service) ObserveGridBuildDuration(duration float64) {
	s.GridBuildDuration.Observe(duration)
}

func (s *Service) IncSlotReplacements() {
	s.SlotReplacements.Inc()
}

func (s *Service) IncTimeOffChanges() {
	s.TimeOffChanges.Inc()
}

func (s *Service) IncEventsPublished() {
	s.EventsPublished.Inc()
}

func (s *Service) IncSlackNotifSent() {
	s.SlackNotifSent.Inc()
}

func (s *Service) IncSlackNotifFailed() {
	s.SlackNotifFailed.Inc()
}

func (s *Service) SetStartupTime(duration float64) {
	s.StartupTimeSeconds.Set(duration)
}
