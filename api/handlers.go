/* Copyright © 2026 Mike Brown. All Rights Reserved.
 *
 * See LICENSE file at the root of this repository for license terms
 */
package api

import (
	"errors"
	"fmt"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"

	"github.com/mikeb26/chessclub-swiss/internal"
	"github.com/mikeb26/chessclub-swiss/standings"
	"github.com/mikeb26/chessclub-swiss/swiss"
)

type pairingsRequest struct {
	Participants []map[string]any `json:"participants"`
	Options      swiss.Options    `json:"options"`
}

// handleGeneratePairings runs the engine on caller supplied standings without
// touching any stored tournament.
func (s *Server) handleGeneratePairings(w http.ResponseWriter, r *http.Request) {
	var req pairingsRequest
	if err := readJSON(w, r, &req); err != nil {
		badRequestResponse(w, err)
		return
	}

	players, err := standings.ParticipantsFromRows(req.Participants)
	if err != nil {
		mapErrorToHTTP(w, r, err)
		return
	}
	pairings, err := swiss.GeneratePairings(players, req.Options)
	if err != nil {
		mapErrorToHTTP(w, r, err)
		return
	}

	writeJSON(w, http.StatusOK, pairings)
}

type createTournamentRequest struct {
	Name      string        `json:"name"`
	Rounds    int           `json:"rounds"`
	Options   swiss.Options `json:"options"`
	ByePoints *float64      `json:"byePoints"`
}

func (s *Server) handleCreateTournament(w http.ResponseWriter, r *http.Request) {
	var req createTournamentRequest
	if err := readJSON(w, r, &req); err != nil {
		badRequestResponse(w, err)
		return
	}
	byePoints := internal.DefaultByePoints
	if req.ByePoints != nil {
		byePoints = *req.ByePoints
	}

	t, err := s.backend.CreateTournament(r.Context(), req.Name, req.Rounds,
		req.Options, byePoints)
	if err != nil {
		mapErrorToHTTP(w, r, err)
		return
	}

	writeJSON(w, http.StatusCreated, t)
}

func (s *Server) handleGetTournament(w http.ResponseWriter, r *http.Request) {
	t, err := s.backend.Tournament(r.Context(), chi.URLParam(r, "id"))
	if err != nil {
		mapErrorToHTTP(w, r, err)
		return
	}

	writeJSON(w, http.StatusOK, t)
}

type addParticipantRequest struct {
	Name   string `json:"name"`
	Rating int    `json:"rating"`
}

func (s *Server) handleAddParticipant(w http.ResponseWriter, r *http.Request) {
	var req addParticipantRequest
	if err := readJSON(w, r, &req); err != nil {
		badRequestResponse(w, err)
		return
	}

	entry, err := s.backend.AddParticipant(r.Context(), chi.URLParam(r, "id"),
		req.Name, req.Rating)
	if err != nil {
		mapErrorToHTTP(w, r, err)
		return
	}

	writeJSON(w, http.StatusCreated, entry)
}

func (s *Server) handleListParticipants(w http.ResponseWriter, r *http.Request) {
	entries, err := s.backend.Participants(r.Context(), chi.URLParam(r, "id"))
	if err != nil {
		mapErrorToHTTP(w, r, err)
		return
	}

	writeJSON(w, http.StatusOK, jsonResponse{"participants": entries})
}

// handleStandings returns the standings in ranking order, as JSON or, with
// ?format=text, as a table.
func (s *Server) handleStandings(w http.ResponseWriter, r *http.Request) {
	players, err := s.backend.Standings(r.Context(), chi.URLParam(r, "id"))
	if err != nil {
		mapErrorToHTTP(w, r, err)
		return
	}

	if r.URL.Query().Get("format") == "text" {
		writeText(w, http.StatusOK, standings.BuildStandingsOutput(players))
		return
	}
	writeJSON(w, http.StatusOK, jsonResponse{"standings": swiss.Rank(players)})
}

func (s *Server) handlePairRound(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")
	round, err := s.backend.PairNextRound(r.Context(), id)
	if err != nil {
		mapErrorToHTTP(w, r, err)
		return
	}

	if s.publisher != nil {
		t, err := s.backend.Tournament(r.Context(), id)
		if err != nil {
			mapErrorToHTTP(w, r, err)
			return
		}
		s.publisher.Publish(r.Context(), t, round)
	}

	writeJSON(w, http.StatusCreated, round)
}

func (s *Server) handleGetRound(w http.ResponseWriter, r *http.Request) {
	number, err := strconv.Atoi(chi.URLParam(r, "round"))
	if err != nil || number < 1 {
		badRequestResponse(w, fmt.Errorf("invalid round %q",
			chi.URLParam(r, "round")))
		return
	}

	matches, err := s.backend.Matches(r.Context(), chi.URLParam(r, "id"),
		number)
	if err != nil {
		mapErrorToHTTP(w, r, err)
		return
	}
	if len(matches) == 0 {
		errorResponse(w, http.StatusNotFound,
			fmt.Sprintf("round %d has not been paired", number))
		return
	}

	writeJSON(w, http.StatusOK, jsonResponse{"round": number,
		"matches": matches})
}

func (s *Server) handleCompleteRound(w http.ResponseWriter, r *http.Request) {
	t, err := s.backend.CompleteRound(r.Context(), chi.URLParam(r, "id"))
	if err != nil {
		mapErrorToHTTP(w, r, err)
		return
	}

	writeJSON(w, http.StatusOK, t)
}

type submitResultRequest struct {
	Result string `json:"result"`
}

func (s *Server) handleSubmitResult(w http.ResponseWriter, r *http.Request) {
	var req submitResultRequest
	if err := readJSON(w, r, &req); err != nil {
		badRequestResponse(w, err)
		return
	}
	result, err := standings.ParseResult(req.Result)
	if err != nil {
		mapErrorToHTTP(w, r, err)
		return
	}
	if result.Pending() {
		badRequestResponse(w, errors.New("result is required"))
		return
	}

	m, err := s.backend.SubmitResult(r.Context(), chi.URLParam(r, "id"),
		result)
	if err != nil {
		mapErrorToHTTP(w, r, err)
		return
	}

	writeJSON(w, http.StatusOK, m)
}

func (s *Server) handleVerifyResult(w http.ResponseWriter, r *http.Request) {
	m, err := s.backend.VerifyResult(r.Context(), chi.URLParam(r, "id"))
	if err != nil {
		mapErrorToHTTP(w, r, err)
		return
	}

	writeJSON(w, http.StatusOK, m)
}
