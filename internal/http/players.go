package http

import (
	"net/http"

	"github.com/charmbracelet/log"
	"github.com/mauv0809/scrim-scheduler/internal/roster"
	"github.com/mauv0809/scrim-scheduler/internal/schedule"
)

func (s *Server) ListPlayersHandler() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		players, err := s.Roster.GetAllPlayers()
		if err != nil {
			http.Error(w, "Failed to get players", http.StatusInternalServerError)
			log.Error("Failed to get players from store", "error", err)
			return
		}
		respondWithJSON(w, http.StatusOK, players)
	}
}

func (s *Server) CreatePlayerHandler() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var req CreatePlayerRequest
		if err := s.decodeAndValidate(r, &req); err != nil {
			respondWithError(w, "Invalid player", err)
			return
		}
		player, err := s.Roster.AddPlayer(roster.Player{Name: req.Name, TimeZone: req.TimeZone, DiscordHandle: req.DiscordHandle})
		if err != nil {
			respondWithError(w, "Failed to add player", err)
			return
		}
		respondWithJSON(w, http.StatusCreated, player)
	}
}

func (s *Server) GetPlayerHandler() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		player, err := s.Roster.GetPlayer(r.PathValue("id"))
		if err != nil {
			respondWithError(w, "Failed to get player", err)
			return
		}
		respondWithJSON(w, http.StatusOK, player)
	}
}

func (s *Server) UpdatePlayerTimeZoneHandler() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		id := r.PathValue("id")
		var req UpdateTimeZoneRequest
		if err := s.decodeAndValidate(r, &req); err != nil {
			respondWithError(w, "Invalid time zone", err)
			return
		}
		if err := s.Roster.UpdatePlayerTimeZone(id, req.TimeZone); err != nil {
			respondWithError(w, "Failed to update time zone", err)
			return
		}
		player, err := s.Roster.GetPlayer(id)
		if err != nil {
			respondWithError(w, "Failed to get player", err)
			return
		}
		respondWithJSON(w, http.StatusOK, player)
	}
}

func (s *Server) GetSlotsHandler() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		id := r.PathValue("id")
		if _, err := s.Roster.GetPlayer(id); err != nil {
			respondWithError(w, "Failed to get player", err)
			return
		}
		slots, err := s.Availability.GetWeeklySlots(id)
		if err != nil {
			respondWithError(w, "Failed to get weekly slots", err)
			return
		}
		if slots == nil {
			slots = []schedule.WeeklySlot{}
		}
		respondWithJSON(w, http.StatusOK, ReplaceSlotsRequest{Slots: slots})
	}
}

// ReplaceSlotsHandler swaps the player's whole weekly set. An empty list
// leaves the player with no recurring availability.
func (s *Server) ReplaceSlotsHandler() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var req ReplaceSlotsRequest
		if err := s.decodeAndValidate(r, &req); err != nil {
			respondWithError(w, "Invalid weekly slots", err)
			return
		}
		stored, err := s.Planner.ReplaceWeeklySlots(r.Context(), r.PathValue("id"), req.Slots)
		if err != nil {
			respondWithError(w, "Failed to replace weekly slots", err)
			return
		}
		if stored == nil {
			stored = []schedule.WeeklySlot{}
		}
		respondWithJSON(w, http.StatusOK, ReplaceSlotsRequest{Slots: stored})
	}
}

func (s *Server) ClearSlotsHandler() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if err := s.Planner.ClearWeeklySlots(r.Context(), r.PathValue("id")); err != nil {
			respondWithError(w, "Failed to clear weekly slots", err)
			return
		}
		w.WriteHeader(http.StatusNoContent)
	}
}

func (s *Server) ListTimeOffHandler() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		id := r.PathValue("id")
		if _, err := s.Roster.GetPlayer(id); err != nil {
			respondWithError(w, "Failed to get player", err)
			return
		}
		timeOff, err := s.Availability.GetAllTimeOff(id)
		if err != nil {
			respondWithError(w, "Failed to get time off", err)
			return
		}
		if timeOff == nil {
			timeOff = []schedule.TimeOffException{}
		}
		respondWithJSON(w, http.StatusOK, timeOff)
	}
}

func (s *Server) AddTimeOffHandler() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var req TimeOffRequest
		if err := s.decodeAndValidate(r, &req); err != nil {
			respondWithError(w, "Invalid time off", err)
			return
		}
		exception, err := s.Planner.AddTimeOff(r.Context(), r.PathValue("id"), req.StartTime, req.EndTime, req.Comment)
		if err != nil {
			respondWithError(w, "Failed to add time off", err)
			return
		}
		respondWithJSON(w, http.StatusCreated, exception)
	}
}

func (s *Server) RemoveTimeOffHandler() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if err := s.Planner.RemoveTimeOff(r.Context(), r.PathValue("id"), r.PathValue("timeOffID")); err != nil {
			respondWithError(w, "Failed to remove time off", err)
			return
		}
		w.WriteHeader(http.StatusNoContent)
	}
}

// PlayerGridHandler renders one player's week. tz defaults to the player's
// own zone; date picks the week and defaults to now.
func (s *Server) PlayerGridHandler() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		zone, date, err := gridParams(r)
		if err != nil {
			respondWithError(w, "Invalid grid parameters", err)
			return
		}
		res, err := s.Planner.PlayerGrid(r.Context(), r.PathValue("id"), zone, date)
		respondWithGrid(w, res, err)
	}
}
