/* Copyright © 2026 Mike Brown. All Rights Reserved.
 *
 * See LICENSE file at the root of this repository for license terms
 */

// Package api exposes the pairing engine and tournament rounds over HTTP.
package api

import (
	"context"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	chiMiddleware "github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"

	"github.com/mikeb26/chessclub-swiss/standings"
	"github.com/mikeb26/chessclub-swiss/store"
	"github.com/mikeb26/chessclub-swiss/swiss"
)

// Backend is the tournament storage the server drives; *store.Store
// implements it.
type Backend interface {
	CreateTournament(ctx context.Context, name string, rounds int,
		opts swiss.Options, byePoints float64) (*store.Tournament, error)
	Tournament(ctx context.Context, id string) (*store.Tournament, error)
	AddParticipant(ctx context.Context, tournamentID string, name string,
		rating int) (*standings.Entry, error)
	Participants(ctx context.Context, tournamentID string) ([]standings.Entry, error)
	Standings(ctx context.Context, tournamentID string) ([]swiss.Participant, error)
	PairNextRound(ctx context.Context, tournamentID string) (*store.Round, error)
	Matches(ctx context.Context, tournamentID string,
		round int) ([]standings.Match, error)
	CompleteRound(ctx context.Context, tournamentID string) (*store.Tournament, error)
	SubmitResult(ctx context.Context, matchID string,
		result standings.Result) (*standings.Match, error)
	VerifyResult(ctx context.Context, matchID string) (*standings.Match, error)
}

// Publisher is told about every newly paired round, e.g. to archive it or to
// announce it to players. Publishing is best effort.
type Publisher interface {
	Publish(ctx context.Context, t *store.Tournament, round *store.Round)
}

type Server struct {
	backend   Backend
	publisher Publisher
	// timeout bounds each request
	timeout time.Duration
}

// NewServer returns a server over backend. publisher may be nil.
func NewServer(backend Backend, publisher Publisher) *Server {
	return &Server{
		backend:   backend,
		publisher: publisher,
		timeout:   30 * time.Second,
	}
}

func (s *Server) Routes() http.Handler {
	router := chi.NewRouter()

	router.Use(chiMiddleware.RequestID)
	router.Use(chiMiddleware.Logger)
	router.Use(chiMiddleware.Recoverer)
	router.Use(chiMiddleware.Timeout(s.timeout))
	router.Use(cors.Handler(cors.Options{
		AllowedOrigins: []string{"https://*", "http://*"},
		AllowedMethods: []string{"GET", "POST", "OPTIONS"},
		AllowedHeaders: []string{"Accept", "Content-Type"},
		MaxAge:         300,
	}))

	router.Route("/v1", func(r chi.Router) {
		r.Post("/pairings", s.handleGeneratePairings)

		r.Route("/tournaments", func(r chi.Router) {
			r.Post("/", s.handleCreateTournament)
			r.Route("/{id}", func(r chi.Router) {
				r.Get("/", s.handleGetTournament)
				r.Post("/participants", s.handleAddParticipant)
				r.Get("/participants", s.handleListParticipants)
				r.Get("/standings", s.handleStandings)
				r.Post("/rounds", s.handlePairRound)
				r.Post("/rounds/complete", s.handleCompleteRound)
				r.Get("/rounds/{round}", s.handleGetRound)
			})
		})

		r.Post("/matches/{id}/result", s.handleSubmitResult)
		r.Post("/matches/{id}/verify", s.handleVerifyResult)
	})

	return router
}
