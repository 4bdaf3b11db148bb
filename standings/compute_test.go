/* Copyright © 2026 Mike Brown. All Rights Reserved.
 *
 * See LICENSE file at the root of this repository for license terms
 */
package standings

import (
	"errors"
	"reflect"
	"testing"

	"github.com/mikeb26/chessclub-swiss/swiss"
)

func TestCompute(t *testing.T) {
	got, err := Compute(sampleEntries(), sampleMatches(), 1)
	if err != nil {
		t.Fatalf("Compute returned error: %v", err)
	}

	want := []swiss.Participant{
		{ID: "alice", Name: "Alice Anders", Score: 1.5, Tiebreak: 1800,
			Colors:    []swiss.Color{swiss.White, swiss.Black},
			Opponents: []string{"carol", "bob"}},
		{ID: "bob", Name: "Bob Baker", Score: 1.5, Tiebreak: 1650,
			Colors:    []swiss.Color{swiss.Black, swiss.White},
			Opponents: []string{"dave", "alice"}},
		{ID: "carol", Name: "Carol Chen", Score: 1, Tiebreak: 1500,
			Colors:    []swiss.Color{swiss.Black},
			Opponents: []string{"alice"}},
		{ID: "dave", Name: "Dave Diaz", Score: 2, Tiebreak: 1400,
			Colors:    []swiss.Color{swiss.White},
			Opponents: []string{"bob", swiss.ByeMarker, swiss.ByeMarker},
			Byes:      2},
		{ID: "erin", Name: "Erin Evans", Score: 1,
			Opponents: []string{swiss.ByeMarker}, Byes: 1},
	}
	if !reflect.DeepEqual(got, want) {
		t.Errorf("unexpected standings:\n got %+v\nwant %+v", got, want)
	}
}

func TestComputeHalfPointBye(t *testing.T) {
	entries := []Entry{{ID: "a"}, {ID: "b"}, {ID: "c"}}
	matches := []Match{
		{Round: 1, Board: 1, Player1: "a", Player2: "b",
			Player1Color: swiss.White, Result: ResultDraw, Verified: true},
		{Round: 1, Player1: "c", Verified: true},
	}

	got, err := Compute(entries, matches, 0.5)
	if err != nil {
		t.Fatalf("Compute returned error: %v", err)
	}
	for _, p := range got {
		if p.Score != 0.5 {
			t.Errorf("%v: expected 0.5 points, got %v", p.ID, p.Score)
		}
	}
	if !got[2].HadBye() {
		t.Errorf("expected c to have had a bye")
	}
}

func TestComputeUnknownParticipant(t *testing.T) {
	matches := []Match{{Round: 1, Board: 1, Player1: "a", Player2: "ghost",
		Result: ResultPlayer1Wins, Verified: true}}

	_, err := Compute([]Entry{{ID: "a"}}, matches, 1)
	if !errors.Is(err, ErrUnknownParticipant) {
		t.Fatalf("expected ErrUnknownParticipant, got %v", err)
	}
}

func TestComputeFeedsNextRound(t *testing.T) {
	ps, err := Compute(sampleEntries(), sampleMatches()[:6], 1)
	if err != nil {
		t.Fatalf("Compute returned error: %v", err)
	}

	got, err := swiss.GeneratePairings(ps, swiss.Options{})
	if err != nil {
		t.Fatalf("GeneratePairings returned error: %v", err)
	}
	for _, mp := range got.Pairs {
		if mp.Rematch {
			t.Errorf("unexpected rematch %+v", mp)
		}
	}
	if bye, ok := got.Bye(); !ok || bye.Player1 == "dave" || bye.Player1 == "erin" {
		t.Errorf("expected the bye to go to a player without one, got %+v", bye)
	}

	round3 := MatchesFromPairings(3, got)
	if len(round3) != len(got.Pairs) {
		t.Fatalf("expected %d matches, got %d", len(got.Pairs), len(round3))
	}
	for _, m := range round3 {
		if m.Round != 3 || m.IsBye() != m.Verified {
			t.Errorf("unexpected match record %+v", m)
		}
	}
}
