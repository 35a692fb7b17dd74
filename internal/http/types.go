package http

import (
	"net/http"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/mauv0809/scrim-scheduler/internal/availability"
	"github.com/mauv0809/scrim-scheduler/internal/config"
	"github.com/mauv0809/scrim-scheduler/internal/metrics"
	"github.com/mauv0809/scrim-scheduler/internal/notifier"
	"github.com/mauv0809/scrim-scheduler/internal/planner"
	"github.com/mauv0809/scrim-scheduler/internal/pubsub"
	"github.com/mauv0809/scrim-scheduler/internal/roster"
	"github.com/mauv0809/scrim-scheduler/internal/schedule"
)

type Server struct {
	Roster         roster.RosterStore
	Availability   availability.AvailabilityStore
	Planner        *planner.Planner
	Metrics        metrics.Metrics
	MetricsHandler http.Handler
	Counters       metrics.CounterStore
	Cfg            config.Config
	Notifier       notifier.Notifier
	Router         *http.ServeMux
	pubsub         pubsub.PubSubClient
	validate       *validator.Validate
}

type CreatePlayerRequest struct {
	Name          string `json:"name" validate:"required,max=64"`
	TimeZone      string `json:"timeZoneId" validate:"omitempty,timezone"`
	DiscordHandle string `json:"discordHandle" validate:"omitempty,max=64"`
}

type UpdateTimeZoneRequest struct {
	TimeZone string `json:"timeZoneId" validate:"required,timezone"`
}

type ReplaceSlotsRequest struct {
	Slots []schedule.WeeklySlot `json:"slots" validate:"dive"`
}

type TimeOffRequest struct {
	StartTime time.Time `json:"startTime" validate:"required"`
	EndTime   time.Time `json:"endTime" validate:"required,gtfield=StartTime"`
	Comment   string    `json:"comment" validate:"max=280"`
}

type CreateTeamRequest struct {
	Name        string `json:"name" validate:"required,max=64"`
	FranchiseID string `json:"franchiseId"`
}

type CreateFranchiseRequest struct {
	Name string `json:"name" validate:"required,max=64"`
}

// HoursResponse lists the hour ticks and the configured column order.
type HoursResponse struct {
	Hours []schedule.HourOfDay `json:"hours"`
	Days  []schedule.DayOfWeek `json:"days"`
}

// pushMessage is the envelope of a Pub/Sub push subscription request.
type pushMessage struct {
	Subscription string `json:"subscription"`
	Message      struct {
		Data      string `json:"data"`
		MessageID string `json:"messageId"`
	} `json:"message"`
}
