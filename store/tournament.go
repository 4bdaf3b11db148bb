/* Copyright © 2026 Mike Brown. All Rights Reserved.
 *
 * See LICENSE file at the root of this repository for license terms
 */
package store

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/mikeb26/chessclub-swiss/internal"
	"github.com/mikeb26/chessclub-swiss/standings"
	"github.com/mikeb26/chessclub-swiss/swiss"
)

type Tournament struct {
	ID           string               `json:"id"`
	Name         string               `json:"name"`
	Rounds       int                  `json:"rounds"`
	CurrentRound int                  `json:"currentRound"`
	State        standings.RoundState `json:"state"`
	Options      swiss.Options        `json:"options"`
	ByePoints    float64              `json:"byePoints"`
	CreatedAt    time.Time            `json:"createdAt"`
}

func (s *Store) CreateTournament(ctx context.Context, name string, rounds int,
	opts swiss.Options, byePoints float64) (*Tournament, error) {

	name = strings.TrimSpace(name)
	if name == "" {
		return nil, fmt.Errorf("%w: tournament name is required", ErrInvalid)
	}
	if rounds < 1 {
		return nil, fmt.Errorf("%w: a tournament needs at least one round",
			ErrInvalid)
	}
	if byePoints != 0 && byePoints != 0.5 && byePoints != 1 {
		return nil, fmt.Errorf("%w: bye points must be 0, 0.5 or 1",
			ErrInvalid)
	}

	created := s.timestamp()
	t := &Tournament{
		ID:        uuid.NewString(),
		Name:      name,
		Rounds:    rounds,
		State:     standings.AwaitingPairing,
		Options:   opts,
		ByePoints: byePoints,
	}
	t.CreatedAt, _ = internal.ParseDateOrZero(created)

	_, err := s.db.ExecContext(ctx, `
		INSERT INTO tournaments (id, name, rounds, current_round, state,
			rematches, colors, bye_points, created_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)`,
		t.ID, t.Name, t.Rounds, t.CurrentRound, t.State.String(),
		t.Options.Rematches.String(), t.Options.Colors.String(), t.ByePoints,
		created)
	if err != nil {
		return nil, fmt.Errorf("failed to insert tournament: %w", err)
	}

	return t, nil
}

func (s *Store) Tournament(ctx context.Context, id string) (*Tournament, error) {
	return getTournament(ctx, s.db, id)
}

func getTournament(ctx context.Context, q querier,
	id string) (*Tournament, error) {

	var t Tournament
	var state, rematches, colors, created string
	err := q.QueryRowContext(ctx, `
		SELECT id, name, rounds, current_round, state, rematches, colors,
			bye_points, created_at
		FROM tournaments WHERE id = $1`, id).Scan(&t.ID, &t.Name, &t.Rounds,
		&t.CurrentRound, &state, &rematches, &colors, &t.ByePoints, &created)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, fmt.Errorf("tournament %v: %w", id, ErrNotFound)
	}
	if err != nil {
		return nil, fmt.Errorf("failed to load tournament %v: %w", id, err)
	}

	if t.State, err = standings.ParseRoundState(state); err != nil {
		return nil, fmt.Errorf("tournament %v: %w", id, err)
	}
	if err := t.Options.Rematches.UnmarshalText([]byte(rematches)); err != nil {
		return nil, fmt.Errorf("tournament %v: %w", id, err)
	}
	if err := t.Options.Colors.UnmarshalText([]byte(colors)); err != nil {
		return nil, fmt.Errorf("tournament %v: %w", id, err)
	}
	if t.CreatedAt, err = internal.ParseDateOrZero(created); err != nil {
		return nil, fmt.Errorf("tournament %v: invalid created_at: %w", id, err)
	}

	return &t, nil
}

func updateTournamentState(ctx context.Context, q querier, t *Tournament) error {
	res, err := q.ExecContext(ctx, `
		UPDATE tournaments SET state = $1, current_round = $2 WHERE id = $3`,
		t.State.String(), t.CurrentRound, t.ID)
	if err != nil {
		return fmt.Errorf("failed to update tournament %v: %w", t.ID, err)
	}
	return checkAffectedRows(res, fmt.Errorf("tournament %v: %w", t.ID,
		ErrNotFound))
}

// AddParticipant registers a player. Registration is open whenever the
// tournament is waiting for its next round to be paired; late entrants start
// on zero points.
func (s *Store) AddParticipant(ctx context.Context, tournamentID string,
	name string, rating int) (*standings.Entry, error) {

	name = strings.TrimSpace(name)
	if name == "" {
		return nil, fmt.Errorf("%w: participant name is required", ErrInvalid)
	}
	if rating < 0 {
		return nil, fmt.Errorf("%w: rating must not be negative", ErrInvalid)
	}

	unlock := s.lock(tournamentID)
	defer unlock()

	var entry *standings.Entry
	err := s.inTx(ctx, func(tx *sql.Tx) error {
		t, err := getTournament(ctx, tx, tournamentID)
		if err != nil {
			return err
		}
		if t.State != standings.AwaitingPairing {
			return fmt.Errorf("tournament %v is %v: %w", t.ID, t.State,
				ErrRegistrationClosed)
		}

		var number int
		err = tx.QueryRowContext(ctx, `
			SELECT COALESCE(MAX(number), 0) + 1 FROM participants
			WHERE tournament_id = $1`, t.ID).Scan(&number)
		if err != nil {
			return fmt.Errorf("failed to assign pairing number: %w", err)
		}

		registered := s.timestamp()
		entry = &standings.Entry{
			ID:     uuid.NewString(),
			Name:   name,
			Number: number,
			Rating: rating,
		}
		entry.Registered, _ = internal.ParseDateOrZero(registered)
		_, err = tx.ExecContext(ctx, `
			INSERT INTO participants (id, tournament_id, number, name, rating,
				registered_at)
			VALUES ($1, $2, $3, $4, $5, $6)`,
			entry.ID, t.ID, entry.Number, entry.Name, entry.Rating, registered)
		if err != nil {
			return fmt.Errorf("failed to insert participant: %w", err)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	return entry, nil
}

// Participants lists the registered players in pairing number order.
func (s *Store) Participants(ctx context.Context,
	tournamentID string) ([]standings.Entry, error) {

	if _, err := getTournament(ctx, s.db, tournamentID); err != nil {
		return nil, err
	}
	return listParticipants(ctx, s.db, tournamentID)
}

func listParticipants(ctx context.Context, q querier,
	tournamentID string) ([]standings.Entry, error) {

	rows, err := q.QueryContext(ctx, `
		SELECT id, name, number, rating, registered_at FROM participants
		WHERE tournament_id = $1 ORDER BY number`, tournamentID)
	if err != nil {
		return nil, fmt.Errorf("failed to list participants: %w", err)
	}
	defer rows.Close()

	var entries []standings.Entry
	for rows.Next() {
		var e standings.Entry
		var registered string
		if err := rows.Scan(&e.ID, &e.Name, &e.Number, &e.Rating,
			&registered); err != nil {
			return nil, fmt.Errorf("failed to scan participant: %w", err)
		}
		if e.Registered, err = internal.ParseDateOrZero(registered); err != nil {
			return nil, fmt.Errorf("participant %v: invalid registered_at: %w",
				e.ID, err)
		}
		entries = append(entries, e)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to list participants: %w", err)
	}

	return entries, nil
}

// Standings recomputes the current standings from the recorded matches.
func (s *Store) Standings(ctx context.Context,
	tournamentID string) ([]swiss.Participant, error) {

	t, err := getTournament(ctx, s.db, tournamentID)
	if err != nil {
		return nil, err
	}
	return computeStandings(ctx, s.db, t)
}

func computeStandings(ctx context.Context, q querier,
	t *Tournament) ([]swiss.Participant, error) {

	entries, err := listParticipants(ctx, q, t.ID)
	if err != nil {
		return nil, err
	}
	matches, err := listMatches(ctx, q, t.ID, 0)
	if err != nil {
		return nil, err
	}
	players, err := standings.Compute(entries, matches, t.ByePoints)
	if err != nil {
		return nil, fmt.Errorf("tournament %v: %w", t.ID, err)
	}

	return players, nil
}
