/* Copyright © 2026 Mike Brown. All Rights Reserved.
 *
 * See LICENSE file at the root of this repository for license terms
 */

// Package standings turns match records into the participant standings the
// pairing engine consumes, and renders them for tournament directors.
package standings

import (
	"errors"
	"fmt"
	"sort"
	"time"

	"github.com/mikeb26/chessclub-swiss/swiss"
)

var ErrUnknownParticipant = errors.New("unknown participant")

// Entry is a registered participant.
type Entry struct {
	ID   string `json:"id"`
	Name string `json:"name"`
	// Number is the pairing number, assigned in registration order.
	Number     int       `json:"number"`
	Rating     int       `json:"rating"`
	Registered time.Time `json:"registered"`
}

// Match is one persisted game, or a bye when Player2 is empty.
type Match struct {
	ID           string      `json:"id"`
	Round        int         `json:"round"`
	Board        int         `json:"board"`
	Player1      string      `json:"player1"`
	Player2      string      `json:"player2,omitempty"`
	Player1Color swiss.Color `json:"player1Color,omitempty"`
	Result       Result      `json:"result"`
	Verified     bool        `json:"verified"`
}

func (m Match) IsBye() bool {
	return m.Player2 == ""
}

// Counts reports whether the match contributes to the standings. Byes count
// as soon as they are recorded; games once their result is verified.
func (m Match) Counts() bool {
	if m.IsBye() {
		return true
	}
	return m.Verified && !m.Result.Pending()
}

// MatchesFromPairings converts a round's pairings into unplayed match
// records.
func MatchesFromPairings(round int, p *swiss.Pairings) []Match {
	matches := make([]Match, 0, len(p.Pairs))
	for _, mp := range p.Pairs {
		m := Match{
			Round:        round,
			Board:        mp.Board,
			Player1:      mp.Player1,
			Player2:      mp.Player2,
			Player1Color: mp.Player1Color,
		}
		if mp.IsBye() {
			m.Verified = true
		}
		matches = append(matches, m)
	}

	return matches
}

// Compute recomputes every entry's score, color history, opponent history
// and bye count from the counted matches. Byes are worth byePoints. The
// result keeps the order of entries; ratings become the tiebreak.
func Compute(entries []Entry, matches []Match,
	byePoints float64) ([]swiss.Participant, error) {

	idx := make(map[string]int, len(entries))
	ret := make([]swiss.Participant, len(entries))
	for i, e := range entries {
		idx[e.ID] = i
		ret[i] = swiss.Participant{
			ID:       e.ID,
			Name:     e.Name,
			Tiebreak: float64(e.Rating),
		}
	}

	ordered := make([]Match, len(matches))
	copy(ordered, matches)
	sort.SliceStable(ordered, func(i, j int) bool {
		if ordered[i].Round != ordered[j].Round {
			return ordered[i].Round < ordered[j].Round
		}
		return ordered[i].Board < ordered[j].Board
	})

	for _, m := range ordered {
		if !m.Counts() {
			continue
		}
		i, ok := idx[m.Player1]
		if !ok {
			return nil, fmt.Errorf("%w %q in round %v", ErrUnknownParticipant,
				m.Player1, m.Round)
		}
		p1 := &ret[i]
		if m.IsBye() {
			p1.Score += byePoints
			p1.Byes++
			p1.Opponents = append(p1.Opponents, swiss.ByeMarker)
			continue
		}
		j, ok := idx[m.Player2]
		if !ok {
			return nil, fmt.Errorf("%w %q in round %v", ErrUnknownParticipant,
				m.Player2, m.Round)
		}
		p2 := &ret[j]

		pts1, pts2 := m.Result.Points()
		p1.Score += pts1
		p2.Score += pts2
		if !m.Result.Played() {
			continue
		}
		p1.Opponents = append(p1.Opponents, p2.ID)
		p2.Opponents = append(p2.Opponents, p1.ID)
		if m.Player1Color != swiss.NoColor {
			p1.Colors = append(p1.Colors, m.Player1Color)
			p2.Colors = append(p2.Colors, m.Player1Color.Opposite())
		}
	}

	return ret, nil
}
