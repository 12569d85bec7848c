package http

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"

	"github.com/charmbracelet/log"
	"github.com/sabocue/arena/internal/sabo"
)

func (s *Server) HealthCheckHandler() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		log.Debug("Received health check request")
		w.WriteHeader(http.StatusOK)
		fmt.Fprintf(w, "OK!")
	}
}

// TournamentsHandler creates a tournament on POST and lists tournaments on GET.
func (s *Server) TournamentsHandler() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		switch r.Method {
		case http.MethodPost:
			s.createTournament(w, r)
		case http.MethodGet:
			tournaments, err := s.Tournaments.ListTournaments()
			if err != nil {
				writeError(w, err)
				return
			}
			respondJSON(w, http.StatusOK, tournaments)
		default:
			http.Error(w, "Method not allowed", http.StatusMethodNotAllowed)
		}
	}
}

type createTournamentRequest struct {
	ClubID string   `json:"club_id"`
	GroupA []string `json:"group_a"`
	GroupB []string `json:"group_b"`
	RaceTo int      `json:"race_to"`
}

func (s *Server) createTournament(w http.ResponseWriter, r *http.Request) {
	var req createTournamentRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, "Invalid request body", http.StatusBadRequest)
		return
	}

	t, err := s.Tournaments.CreateTournament(req.ClubID, req.GroupA, req.GroupB, req.RaceTo)
	if err != nil {
		writeError(w, err)
		return
	}
	respondJSON(w, http.StatusCreated, t)
}

func (s *Server) StateHandler() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		tournamentID := r.URL.Query().Get("tournamentID")
		if tournamentID == "" {
			http.Error(w, "Missing tournamentID parameter", http.StatusBadRequest)
			return
		}

		state, err := s.Tournaments.GetState(tournamentID)
		if err != nil {
			writeError(w, err)
			return
		}
		respondJSON(w, http.StatusOK, state)
	}
}

func (s *Server) ReadyMatchesHandler() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		tournamentID := r.URL.Query().Get("tournamentID")
		if tournamentID == "" {
			http.Error(w, "Missing tournamentID parameter", http.StatusBadRequest)
			return
		}

		var groupID *sabo.GroupID
		if g := r.URL.Query().Get("group"); g != "" {
			gid := sabo.GroupID(g)
			groupID = &gid
		}

		ready, err := s.Tournaments.ListReadyMatches(tournamentID, groupID)
		if err != nil {
			writeError(w, err)
			return
		}
		respondJSON(w, http.StatusOK, ready)
	}
}

type submitScoreRequest struct {
	TournamentID string `json:"tournament_id"`
	MatchID      string `json:"match_id"`
	Score1       int    `json:"score1"`
	Score2       int    `json:"score2"`
}

type submitScoreResponse struct {
	Match              *sabo.Match `json:"match"`
	FinalStageUnlocked bool        `json:"final_stage_unlocked"`
}

func (s *Server) SubmitScoreHandler() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if r.Method != http.MethodPost {
			http.Error(w, "Method not allowed", http.StatusMethodNotAllowed)
			return
		}

		var req submitScoreRequest
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			http.Error(w, "Invalid request body", http.StatusBadRequest)
			return
		}

		match, unlocked, err := s.Tournaments.SubmitScore(req.TournamentID, req.MatchID, req.Score1, req.Score2)
		if err != nil {
			writeError(w, err)
			return
		}
		respondJSON(w, http.StatusOK, submitScoreResponse{Match: match, FinalStageUnlocked: unlocked})
	}
}

func respondJSON(w http.ResponseWriter, status int, payload any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(payload); err != nil {
		log.Error("Failed to encode response", "error", err)
	}
}

// writeError maps domain errors onto HTTP status codes.
func writeError(w http.ResponseWriter, err error) {
	status := http.StatusInternalServerError
	switch {
	case errors.Is(err, sabo.ErrMatchNotFound), errors.Is(err, sabo.ErrTournamentNotFound):
		status = http.StatusNotFound
	case errors.Is(err, sabo.ErrSlotAlreadyOccupied),
		errors.Is(err, sabo.ErrScoreAlreadyFinalized),
		errors.Is(err, sabo.ErrMatchNotReady):
		status = http.StatusConflict
	case errors.Is(err, sabo.ErrInvalidScore),
		errors.Is(err, sabo.ErrInvalidParticipantCount),
		errors.Is(err, sabo.ErrDuplicateParticipant),
		errors.Is(err, sabo.ErrIncompleteQualifiers):
		status = http.StatusUnprocessableEntity
	}
	if status == http.StatusInternalServerError {
		log.Error("Request failed", "error", err)
	}
	http.Error(w, err.Error(), status)
}
