package http

import (
	"net/http"

	"github.com/mauv0809/scrim-scheduler/internal/availability"
	"github.com/mauv0809/scrim-scheduler/internal/config"
	"github.com/mauv0809/scrim-scheduler/internal/metrics"
	"github.com/mauv0809/scrim-scheduler/internal/notifier"
	"github.com/mauv0809/scrim-scheduler/internal/planner"
	"github.com/mauv0809/scrim-scheduler/internal/pubsub"
	"github.com/mauv0809/scrim-scheduler/internal/roster"
)

func NewServer(rosterStore roster.RosterStore, availabilityStore availability.AvailabilityStore, planner *planner.Planner, metricsSvc metrics.Metrics, metricsHandler http.Handler, counters metrics.CounterStore, cfg config.Config, notifier notifier.Notifier, pubsub pubsub.PubSubClient) *Server {
	server := &Server{
		Roster:         rosterStore,
		Availability:   availabilityStore,
		Planner:        planner,
		Metrics:        metricsSvc,
		MetricsHandler: metricsHandler,
		Counters:       counters,
		Cfg:            cfg,
		Notifier:       notifier,
		Router:         http.NewServeMux(),
		pubsub:         pubsub,
		validate:       newValidator(),
	}

	server.routes()
	return server
}

func (s *Server) routes() {
	// All handlers are wrapped with middleware using the Chain helper.
	// The rate limiter is built once so every route draws on the same per-IP budget.
	limit := rateLimitMiddleware(s.Cfg.RateLimitPerMinute)
	api := func(h http.Handler) http.Handler {
		return Chain(h, paramsMiddleware, limit)
	}

	s.Router.Handle("/metrics", s.MetricsHandler)
	s.Router.Handle("GET /health", Chain(s.HealthCheckHandler(), paramsMiddleware))
	s.Router.Handle("GET /stats", api(s.StatsHandler()))
	s.Router.Handle("POST /clear", api(s.ClearStoreHandler()))
	s.Router.Handle("GET /hours", api(s.HoursHandler()))

	s.Router.Handle("GET /players", api(s.ListPlayersHandler()))
	s.Router.Handle("POST /players", api(s.CreatePlayerHandler()))
	s.Router.Handle("GET /players/{id}", api(s.GetPlayerHandler()))
	s.Router.Handle("PUT /players/{id}/timezone", api(s.UpdatePlayerTimeZoneHandler()))
	s.Router.Handle("GET /players/{id}/slots", api(s.GetSlotsHandler()))
	s.Router.Handle("PUT /players/{id}/slots", api(s.ReplaceSlotsHandler()))
	s.Router.Handle("DELETE /players/{id}/slots", api(s.ClearSlotsHandler()))
	s.Router.Handle("GET /players/{id}/timeoff", api(s.ListTimeOffHandler()))
	s.Router.Handle("POST /players/{id}/timeoff", api(s.AddTimeOffHandler()))
	s.Router.Handle("DELETE /players/{id}/timeoff/{timeOffID}", api(s.RemoveTimeOffHandler()))
	s.Router.Handle("GET /players/{id}/availability", api(s.PlayerGridHandler()))

	s.Router.Handle("GET /franchises", api(s.ListFranchisesHandler()))
	s.Router.Handle("POST /franchises", api(s.CreateFranchiseHandler()))
	s.Router.Handle("POST /teams", api(s.CreateTeamHandler()))
	s.Router.Handle("GET /teams/{id}", api(s.GetTeamHandler()))
	s.Router.Handle("POST /teams/{id}/members/{playerID}", api(s.AddTeamMemberHandler()))
	s.Router.Handle("DELETE /teams/{id}/members/{playerID}", api(s.RemoveTeamMemberHandler()))
	s.Router.Handle("GET /teams/{id}/availability", api(s.TeamGridHandler()))

	s.Router.Handle("POST /pubsub/availability-changed", Chain(s.AvailabilityChangedHandler(), paramsMiddleware))
	s.Router.Handle("POST /slack/command/availability", Chain(s.AvailabilityCommandHandler(), paramsMiddleware, slackVerificationMiddleware(s.Cfg.Slack.SigningSecret)))
}

func (s *Server) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	s.Router.ServeHTTP(w, r)
}
