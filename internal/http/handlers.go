package http

import (
	"encoding/base64"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"strings"

	"github.com/charmbracelet/log"
	"github.com/go-playground/validator/v10"
	"github.com/mauv0809/scrim-scheduler/internal/availability"
	"github.com/mauv0809/scrim-scheduler/internal/planner"
	"github.com/mauv0809/scrim-scheduler/internal/pubsub"
	"github.com/mauv0809/scrim-scheduler/internal/roster"
	"github.com/mauv0809/scrim-scheduler/internal/schedule"
	"github.com/slack-go/slack"
)

var errInvalidDate = errors.New("invalid date")

func (s *Server) HealthCheckHandler() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		log.Debug("Received health check request")
		w.WriteHeader(http.StatusOK)
		fmt.Fprintf(w, "OK!")
	}
}

func (s *Server) ClearStoreHandler() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		log.Info("Received request to clear entire store")
		s.Availability.Clear()
		s.Roster.Clear()
		w.WriteHeader(http.StatusOK)
		fmt.Fprint(w, "Store cleared!")
		log.Info("Store cleared successfully")
	}
}

// StatsHandler serves the lifetime usage counters.
func (s *Server) StatsHandler() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		counters, err := s.Counters.GetAll()
		if err != nil {
			http.Error(w, "Failed to get stats", http.StatusInternalServerError)
			log.Error("Failed to get counters from store", "error", err)
			return
		}
		respondWithJSON(w, http.StatusOK, counters)
	}
}

// HoursHandler serves the hour ticks and the configured day order, for clients
// that render grid pickers.
func (s *Server) HoursHandler() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		respondWithJSON(w, http.StatusOK, HoursResponse{
			Hours: schedule.HoursOfDay(),
			Days:  s.Planner.Week(),
		})
	}
}

// AvailabilityChangedHandler consumes availability-changed events from a
// Pub/Sub push subscription and posts the team summary.
func (s *Server) AvailabilityChangedHandler() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		bodyBytes, err := io.ReadAll(r.Body)
		if err != nil {
			log.Error("Failed to read request body", "error", err)
			http.Error(w, "Failed to read request body", http.StatusInternalServerError)
			return
		}
		log.Debug("Received availability changed message", "body", string(bodyBytes))

		var pubsubMsg pushMessage
		if err := json.Unmarshal(bodyBytes, &pubsubMsg); err != nil {
			log.Error("Failed to unmarshal wrapper JSON", "error", err)
			http.Error(w, "Invalid JSON", http.StatusBadRequest)
			return
		}

		rawData, err := base64.StdEncoding.DecodeString(pubsubMsg.Message.Data)
		if err != nil {
			log.Error("Failed to decode base64 data", "error", err)
			http.Error(w, "Invalid base64 data", http.StatusBadRequest)
			return
		}

		var event pubsub.AvailabilityChanged
		if err := s.pubsub.ProcessMessage(rawData, &event); err != nil {
			log.Error("Failed to decode availability event", "messageId", pubsubMsg.Message.MessageID, "error", err)
			http.Error(w, "Invalid event payload", http.StatusBadRequest)
			return
		}

		err = s.Planner.HandleAvailabilityChanged(r.Context(), event, isDryRunFromContext(r))
		switch {
		case err == nil:
		case errors.Is(err, planner.ErrMissingTeam), errors.Is(err, roster.ErrTeamNotFound):
			// Redelivery cannot fix these, so the message is acked.
			log.Warn("Dropping availability event", "team", event.TeamID, "error", err)
		default:
			log.Error("Failed to handle availability event", "team", event.TeamID, "error", err)
			http.Error(w, "Failed to handle event", http.StatusInternalServerError)
			return
		}
		w.Write([]byte("OK"))
	}
}

// AvailabilityCommandHandler returns a handler for the /availability Slack
// command. The text is a team name or ID optionally followed by a zone.
func (s *Server) AvailabilityCommandHandler() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		cmd, err := slack.SlashCommandParse(r)
		if err != nil {
			http.Error(w, "Error parsing form", http.StatusBadRequest)
			return
		}
		query, zone := splitCommandText(cmd.Text)
		if query == "" {
			http.Error(w, "Team name is required.", http.StatusBadRequest)
			return
		}

		log.Info("Received availability command", "team", query, "zone", zone, "user", cmd.UserName)

		msg, err := s.Planner.TeamSummary(r.Context(), query, zone)
		if err != nil {
			http.Error(w, "Failed to format team availability", http.StatusInternalServerError)
			log.Error("Failed to build team summary", "team", query, "error", err)
			return
		}

		slackMsg, ok := msg.(slack.Message)
		if !ok {
			http.Error(w, "Invalid message format for Slack", http.StatusInternalServerError)
			log.Error("Failed to cast message to slack.Message")
			return
		}
		respondWithSlackMsg(w, slackMsg)
	}
}

// splitCommandText treats the last word as a zone only when it loads, so
// multi-word team names work without quoting.
func splitCommandText(text string) (query, zone string) {
	fields := strings.Fields(text)
	if len(fields) > 1 {
		last := fields[len(fields)-1]
		if _, err := schedule.LoadZone(last); err == nil {
			return strings.Join(fields[:len(fields)-1], " "), last
		}
	}
	return strings.Join(fields, " "), ""
}

// respondWithSlackMsg is a helper to format and write a Slack message as an HTTP response.
func respondWithSlackMsg(w http.ResponseWriter, msg slack.Message) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusOK)
	if err := json.NewEncoder(w).Encode(msg); err != nil {
		log.Error("Failed to encode slack message to JSON", "error", err)
	}
}

func respondWithJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(v); err != nil {
		log.Error("Failed to write response", "error", err)
	}
}

// decodeAndValidate reads a JSON body into v and runs the struct validators.
func (s *Server) decodeAndValidate(r *http.Request, v any) error {
	if err := json.NewDecoder(r.Body).Decode(v); err != nil {
		return fmt.Errorf("invalid JSON body: %w", err)
	}
	return s.validate.Struct(v)
}

// statusFor maps store and engine errors onto HTTP status codes.
func statusFor(err error) int {
	var validationErrs validator.ValidationErrors
	var syntaxErr *json.SyntaxError
	var typeErr *json.UnmarshalTypeError
	switch {
	case errors.Is(err, roster.ErrPlayerNotFound),
		errors.Is(err, roster.ErrTeamNotFound),
		errors.Is(err, availability.ErrTimeOffNotFound):
		return http.StatusNotFound
	case errors.As(err, &validationErrs),
		errors.As(err, &syntaxErr),
		errors.As(err, &typeErr),
		errors.Is(err, io.EOF),
		errors.Is(err, io.ErrUnexpectedEOF),
		errors.Is(err, errInvalidDate),
		errors.Is(err, schedule.ErrUnknownZone),
		errors.Is(err, schedule.ErrInvalidClock),
		errors.Is(err, schedule.ErrUnknownDay),
		errors.Is(err, availability.ErrInvalidTimeOff):
		return http.StatusBadRequest
	default:
		return http.StatusInternalServerError
	}
}

func respondWithError(w http.ResponseWriter, msg string, err error) {
	status := statusFor(err)
	if status == http.StatusInternalServerError {
		log.Error(msg, "error", err)
		http.Error(w, msg, status)
		return
	}
	log.Warn(msg, "status", status, "error", err)
	http.Error(w, fmt.Sprintf("%s: %v", msg, err), status)
}

// gridParams reads the tz and date query parameters. An invalid zone is
// rejected here so later engine failures can be reported as server errors.
// The date stays a calendar date; the planner places it in the render zone.
func gridParams(r *http.Request) (string, planner.Date, error) {
	zone := r.URL.Query().Get("tz")
	if zone != "" {
		if _, err := schedule.LoadZone(zone); err != nil {
			return "", planner.Date{}, err
		}
	}
	var date planner.Date
	if raw := r.URL.Query().Get("date"); raw != "" {
		d, err := planner.ParseDate(raw)
		if err != nil {
			return "", planner.Date{}, fmt.Errorf("%w: %q is not YYYY-MM-DD", errInvalidDate, raw)
		}
		date = d
	}
	return zone, date, nil
}

func respondWithGrid(w http.ResponseWriter, res *planner.GridResult, err error) {
	if err != nil {
		if statusFor(err) == http.StatusNotFound {
			respondWithError(w, "Not found", err)
			return
		}
		log.Error("Failed to build availability grid", "error", err)
		http.Error(w, "Failed to build availability grid", http.StatusInternalServerError)
		return
	}
	respondWithJSON(w, http.StatusOK, res)
}
