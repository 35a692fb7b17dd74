package http

import (
	"net/http"

	"github.com/charmbracelet/log"
)

func (s *Server) ListFranchisesHandler() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		franchises, err := s.Roster.GetFranchises()
		if err != nil {
			http.Error(w, "Failed to get franchises", http.StatusInternalServerError)
			log.Error("Failed to get franchises from store", "error", err)
			return
		}
		respondWithJSON(w, http.StatusOK, franchises)
	}
}

func (s *Server) CreateFranchiseHandler() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var req CreateFranchiseRequest
		if err := s.decodeAndValidate(r, &req); err != nil {
			respondWithError(w, "Invalid franchise", err)
			return
		}
		franchise, err := s.Roster.AddFranchise(req.Name)
		if err != nil {
			respondWithError(w, "Failed to add franchise", err)
			return
		}
		respondWithJSON(w, http.StatusCreated, franchise)
	}
}

func (s *Server) CreateTeamHandler() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var req CreateTeamRequest
		if err := s.decodeAndValidate(r, &req); err != nil {
			respondWithError(w, "Invalid team", err)
			return
		}
		team, err := s.Roster.AddTeam(req.Name, req.FranchiseID)
		if err != nil {
			respondWithError(w, "Failed to add team", err)
			return
		}
		respondWithJSON(w, http.StatusCreated, team)
	}
}

func (s *Server) GetTeamHandler() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		team, err := s.Roster.GetTeam(r.PathValue("id"))
		if err != nil {
			respondWithError(w, "Failed to get team", err)
			return
		}
		respondWithJSON(w, http.StatusOK, team)
	}
}

func (s *Server) AddTeamMemberHandler() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if err := s.Planner.AddTeamMember(r.Context(), r.PathValue("id"), r.PathValue("playerID")); err != nil {
			respondWithError(w, "Failed to add team member", err)
			return
		}
		w.WriteHeader(http.StatusNoContent)
	}
}

func (s *Server) RemoveTeamMemberHandler() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if err := s.Planner.RemoveTeamMember(r.Context(), r.PathValue("id"), r.PathValue("playerID")); err != nil {
			respondWithError(w, "Failed to remove team member", err)
			return
		}
		w.WriteHeader(http.StatusNoContent)
	}
}

// TeamGridHandler renders the aggregate week of a team's members.
func (s *Server) TeamGridHandler() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		zone, date, err := gridParams(r)
		if err != nil {
			respondWithError(w, "Invalid grid parameters", err)
			return
		}
		res, err := s.Planner.TeamGrid(r.Context(), r.PathValue("id"), zone, date)
		respondWithGrid(w, res, err)
	}
}
