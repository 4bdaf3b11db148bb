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

	"github.com/google/uuid"

	"github.com/mikeb26/chessclub-swiss/standings"
	"github.com/mikeb26/chessclub-swiss/swiss"
)

// Round is a freshly paired round together with the standings it was paired
// from.
type Round struct {
	TournamentID string              `json:"tournamentId"`
	Number       int                 `json:"number"`
	Pairings     *swiss.Pairings     `json:"pairings"`
	Matches      []standings.Match   `json:"matches"`
	Standings    []swiss.Participant `json:"standings"`
}

// PairNextRound pairs the next round from the verified results so far and
// records one match per pair. Concurrent calls for the same tournament are
// serialized; only the first of them finds the tournament awaiting pairing.
func (s *Store) PairNextRound(ctx context.Context,
	tournamentID string) (*Round, error) {

	unlock := s.lock(tournamentID)
	defer unlock()

	var round *Round
	err := s.inTx(ctx, func(tx *sql.Tx) error {
		t, err := getTournament(ctx, tx, tournamentID)
		if err != nil {
			return err
		}
		if t.State.Terminal() {
			return fmt.Errorf("tournament %v: %w", t.ID, ErrTournamentOver)
		}
		state, err := t.State.Transition(standings.Paired)
		if err != nil {
			return fmt.Errorf("tournament %v: %w", t.ID, err)
		}
		if t.CurrentRound >= t.Rounds {
			return fmt.Errorf("tournament %v: %w", t.ID, ErrTournamentOver)
		}

		players, err := computeStandings(ctx, tx, t)
		if err != nil {
			return err
		}
		pairings, err := swiss.GeneratePairings(players, t.Options)
		if err != nil {
			return fmt.Errorf("tournament %v round %v: %w", t.ID,
				t.CurrentRound+1, err)
		}

		round = &Round{
			TournamentID: t.ID,
			Number:       t.CurrentRound + 1,
			Pairings:     pairings,
			Matches:      standings.MatchesFromPairings(t.CurrentRound+1, pairings),
			Standings:    players,
		}
		for i := range round.Matches {
			round.Matches[i].ID = uuid.NewString()
			if err := insertMatch(ctx, tx, t.ID, &round.Matches[i]); err != nil {
				return err
			}
		}

		if state, err = state.Transition(standings.ResultsPending); err != nil {
			return fmt.Errorf("tournament %v: %w", t.ID, err)
		}
		t.State = state
		t.CurrentRound = round.Number
		return updateTournamentState(ctx, tx, t)
	})
	if err != nil {
		return nil, err
	}

	return round, nil
}

func insertMatch(ctx context.Context, q querier, tournamentID string,
	m *standings.Match) error {

	_, err := q.ExecContext(ctx, `
		INSERT INTO matches (id, tournament_id, round, board, player1_id,
			player2_id, player1_color, result, verified)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)`,
		m.ID, tournamentID, m.Round, m.Board, m.Player1,
		nullString(m.Player2), m.Player1Color.String(),
		nullString(m.Result.String()), m.Verified)
	if err != nil {
		return fmt.Errorf("failed to insert match: %w", err)
	}
	return nil
}

// Matches lists a tournament's matches in round and board order, byes last
// within their round. A round of 0 lists every round.
func (s *Store) Matches(ctx context.Context, tournamentID string,
	round int) ([]standings.Match, error) {

	if _, err := getTournament(ctx, s.db, tournamentID); err != nil {
		return nil, err
	}
	return listMatches(ctx, s.db, tournamentID, round)
}

const matchColumns = `id, round, board, player1_id, player2_id, player1_color,
	result, verified`

func listMatches(ctx context.Context, q querier, tournamentID string,
	round int) ([]standings.Match, error) {

	query := `SELECT ` + matchColumns + ` FROM matches
		WHERE tournament_id = $1 AND ($2 = 0 OR round = $2)
		ORDER BY round, CASE WHEN board = 0 THEN 1 ELSE 0 END, board`
	rows, err := q.QueryContext(ctx, query, tournamentID, round)
	if err != nil {
		return nil, fmt.Errorf("failed to list matches: %w", err)
	}
	defer rows.Close()

	var matches []standings.Match
	for rows.Next() {
		m, err := scanMatch(rows)
		if err != nil {
			return nil, err
		}
		matches = append(matches, *m)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to list matches: %w", err)
	}

	return matches, nil
}

type scanner interface {
	Scan(dest ...any) error
}

func scanMatch(row scanner) (*standings.Match, error) {
	var m standings.Match
	var player2, result sql.NullString
	var color string
	err := row.Scan(&m.ID, &m.Round, &m.Board, &m.Player1, &player2, &color,
		&result, &m.Verified)
	if err != nil {
		return nil, err
	}
	m.Player2 = player2.String
	if err := m.Player1Color.UnmarshalText([]byte(color)); err != nil {
		return nil, fmt.Errorf("match %v: %w", m.ID, err)
	}
	if m.Result, err = standings.ParseResult(result.String); err != nil {
		return nil, fmt.Errorf("match %v: %w", m.ID, err)
	}

	return &m, nil
}

func (s *Store) Match(ctx context.Context, matchID string) (*standings.Match, error) {
	_, m, err := getMatch(ctx, s.db, matchID)
	return m, err
}

func getMatch(ctx context.Context, q querier,
	matchID string) (string, *standings.Match, error) {

	var tournamentID string
	err := q.QueryRowContext(ctx, `SELECT tournament_id FROM matches
		WHERE id = $1`, matchID).Scan(&tournamentID)
	if errors.Is(err, sql.ErrNoRows) {
		return "", nil, fmt.Errorf("match %v: %w", matchID, ErrNotFound)
	}
	if err != nil {
		return "", nil, fmt.Errorf("failed to load match %v: %w", matchID, err)
	}

	m, err := scanMatch(q.QueryRowContext(ctx, `SELECT `+matchColumns+`
		FROM matches WHERE id = $1`, matchID))
	if errors.Is(err, sql.ErrNoRows) {
		return "", nil, fmt.Errorf("match %v: %w", matchID, ErrNotFound)
	}
	if err != nil {
		return "", nil, fmt.Errorf("failed to load match %v: %w", matchID, err)
	}

	return tournamentID, m, nil
}

// updateMatch loads a match of the round currently collecting results,
// applies fn to it and stores the new result and verification flag.
func (s *Store) updateMatch(ctx context.Context, matchID string,
	fn func(m *standings.Match) error) (*standings.Match, error) {

	tournamentID, _, err := getMatch(ctx, s.db, matchID)
	if err != nil {
		return nil, err
	}
	unlock := s.lock(tournamentID)
	defer unlock()

	var updated *standings.Match
	err = s.inTx(ctx, func(tx *sql.Tx) error {
		t, err := getTournament(ctx, tx, tournamentID)
		if err != nil {
			return err
		}
		_, m, err := getMatch(ctx, tx, matchID)
		if err != nil {
			return err
		}
		if t.State != standings.ResultsPending || m.Round != t.CurrentRound {
			return fmt.Errorf("match %v of round %v: %w", m.ID, m.Round,
				ErrRoundClosed)
		}
		if m.IsBye() {
			return fmt.Errorf("match %v: %w", m.ID, ErrByeResult)
		}
		if err := fn(m); err != nil {
			return err
		}

		res, err := tx.ExecContext(ctx, `
			UPDATE matches SET result = $1, verified = $2 WHERE id = $3`,
			nullString(m.Result.String()), m.Verified, m.ID)
		if err != nil {
			return fmt.Errorf("failed to update match %v: %w", m.ID, err)
		}
		if err := checkAffectedRows(res, fmt.Errorf("match %v: %w", m.ID,
			ErrNotFound)); err != nil {
			return err
		}
		updated = m
		return nil
	})
	if err != nil {
		return nil, err
	}

	return updated, nil
}

// SubmitResult records a reported result. A new report replaces any earlier
// one and must be verified again.
func (s *Store) SubmitResult(ctx context.Context, matchID string,
	result standings.Result) (*standings.Match, error) {

	if result.Pending() {
		return nil, fmt.Errorf("match %v: %w", matchID, ErrResultMissing)
	}
	return s.updateMatch(ctx, matchID, func(m *standings.Match) error {
		m.Result = result
		m.Verified = false
		return nil
	})
}

// VerifyResult confirms a reported result so that it counts in the standings.
func (s *Store) VerifyResult(ctx context.Context,
	matchID string) (*standings.Match, error) {

	return s.updateMatch(ctx, matchID, func(m *standings.Match) error {
		if m.Result.Pending() {
			return fmt.Errorf("match %v: %w", m.ID, ErrResultMissing)
		}
		m.Verified = true
		return nil
	})
}

// CompleteRound closes the current round once every result is verified. The
// tournament then awaits the next pairing, or is completed after its final
// round.
func (s *Store) CompleteRound(ctx context.Context,
	tournamentID string) (*Tournament, error) {

	unlock := s.lock(tournamentID)
	defer unlock()

	var ret *Tournament
	err := s.inTx(ctx, func(tx *sql.Tx) error {
		t, err := getTournament(ctx, tx, tournamentID)
		if err != nil {
			return err
		}
		state, err := t.State.Transition(standings.RoundComplete)
		if err != nil {
			return fmt.Errorf("tournament %v: %w", t.ID, err)
		}

		var unverified int
		err = tx.QueryRowContext(ctx, `
			SELECT COUNT(*) FROM matches
			WHERE tournament_id = $1 AND round = $2 AND verified = $3`,
			t.ID, t.CurrentRound, false).Scan(&unverified)
		if err != nil {
			return fmt.Errorf("failed to count unverified matches: %w", err)
		}
		if unverified > 0 {
			return fmt.Errorf("tournament %v round %v: %d left: %w", t.ID,
				t.CurrentRound, unverified, ErrRoundIncomplete)
		}

		next := standings.AwaitingPairing
		if t.CurrentRound >= t.Rounds {
			next = standings.Completed
		}
		if t.State, err = state.Transition(next); err != nil {
			return fmt.Errorf("tournament %v: %w", t.ID, err)
		}
		ret = t
		return updateTournamentState(ctx, tx, t)
	})
	if err != nil {
		return nil, err
	}

	return ret, nil
}
