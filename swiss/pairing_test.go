/* Copyright © 2026 Mike Brown. All Rights Reserved.
 *
 * See LICENSE file at the root of this repository for license terms
 */
package swiss

import (
	"errors"
	"math"
	"reflect"
	"testing"
)

func pairIDs(mp MatchPair) [2]string {
	return [2]string{mp.Player1, mp.Player2}
}

func TestGeneratePairingsScoreGroups(t *testing.T) {
	ps := []Participant{
		{ID: "a", Score: 3},
		{ID: "b", Score: 2},
		{ID: "c", Score: 2},
		{ID: "d", Score: 1},
	}

	got, err := GeneratePairings(ps, Options{})
	if err != nil {
		t.Fatalf("GeneratePairings returned error: %v", err)
	}
	if len(got.Pairs) != 2 {
		t.Fatalf("expected 2 pairs, got %+v", got.Pairs)
	}
	if _, ok := got.Bye(); ok {
		t.Errorf("expected no bye for an even field")
	}
	if pairIDs(got.Pairs[0]) != [2]string{"a", "b"} {
		t.Errorf("board 1: expected a vs b, got %+v", got.Pairs[0])
	}
	if pairIDs(got.Pairs[1]) != [2]string{"c", "d"} {
		t.Errorf("board 2: expected c vs d, got %+v", got.Pairs[1])
	}
	if got.Relaxed() {
		t.Errorf("expected no relaxations, got %v", got.Relaxations)
	}
}

func TestGeneratePairingsOddFieldBye(t *testing.T) {
	ps := []Participant{
		{ID: "a", Score: 2},
		{ID: "b", Score: 2},
		{ID: "c", Score: 1},
		{ID: "d", Score: 1},
		{ID: "e", Score: 0},
	}

	got, err := GeneratePairings(ps, Options{})
	if err != nil {
		t.Fatalf("GeneratePairings returned error: %v", err)
	}
	if len(got.Pairs) != 3 {
		t.Fatalf("expected 2 pairs and a bye, got %+v", got.Pairs)
	}
	bye, ok := got.Bye()
	if !ok {
		t.Fatalf("expected a bye")
	}
	if bye.Player1 != "e" || bye.Board != 0 {
		t.Errorf("expected bye for e on board 0, got %+v", bye)
	}
	if pairIDs(got.Pairs[0]) != [2]string{"a", "b"} ||
		pairIDs(got.Pairs[1]) != [2]string{"c", "d"} {
		t.Errorf("unexpected pairs %+v", got.Pairs)
	}
}

func TestGeneratePairingsFallsBackToRematch(t *testing.T) {
	ps := []Participant{
		{ID: "a", Score: 1, Opponents: []string{"b"}, Byes: 1},
		{ID: "b", Score: 1, Opponents: []string{"a"}, Byes: 1},
		{ID: "c", Score: 0},
	}

	got, err := GeneratePairings(ps, Options{})
	if err != nil {
		t.Fatalf("GeneratePairings returned error: %v", err)
	}
	if len(got.Pairs) != 2 {
		t.Fatalf("expected a pair and a bye, got %+v", got.Pairs)
	}
	if pairIDs(got.Pairs[0]) != [2]string{"a", "b"} || !got.Pairs[0].Rematch {
		t.Errorf("expected flagged rematch a vs b, got %+v", got.Pairs[0])
	}
	if bye, _ := got.Bye(); bye.Player1 != "c" {
		t.Errorf("expected bye for c, got %+v", bye)
	}
	if len(got.Relaxations) != 1 || got.Relaxations[0].Kind != RelaxRematch {
		t.Errorf("expected one rematch relaxation, got %v", got.Relaxations)
	}
}

func TestGeneratePairingsRematchForbidden(t *testing.T) {
	ps := []Participant{
		{ID: "a", Score: 1, Opponents: []string{"b"}},
		{ID: "b", Score: 0, Opponents: []string{"a"}},
	}

	_, err := GeneratePairings(ps, Options{Rematches: RematchForbid})
	var pie *PairingImpossibleError
	if !errors.As(err, &pie) {
		t.Fatalf("expected PairingImpossibleError, got %v", err)
	}
}

func TestGeneratePairingsEmpty(t *testing.T) {
	got, err := GeneratePairings(nil, Options{})
	var pie *PairingImpossibleError
	if !errors.As(err, &pie) {
		t.Fatalf("expected PairingImpossibleError, got %v", err)
	}
	if got != nil {
		t.Errorf("expected no pairings, got %+v", got)
	}
}

func TestGeneratePairingsSingleParticipant(t *testing.T) {
	got, err := GeneratePairings([]Participant{{ID: "solo"}}, Options{})
	if err != nil {
		t.Fatalf("GeneratePairings returned error: %v", err)
	}
	if len(got.Pairs) != 1 || !got.Pairs[0].IsBye() {
		t.Errorf("expected a lone bye, got %+v", got.Pairs)
	}
}

func TestGeneratePairingsValidation(t *testing.T) {
	cases := []struct {
		name  string
		ps    []Participant
		field string
	}{
		{"duplicate id", []Participant{{ID: "a"}, {ID: "a"}}, "id"},
		{"empty id", []Participant{{ID: "a"}, {ID: " "}}, "id"},
		{"reserved id", []Participant{{ID: ByeMarker}}, "id"},
		{"negative score", []Participant{{ID: "a", Score: -1}}, "score"},
		{"nan score", []Participant{{ID: "a", Score: math.NaN()}}, "score"},
		{"negative byes", []Participant{{ID: "a", Byes: -1}}, "byes"},
		{"bad color", []Participant{{ID: "a", Colors: []Color{NoColor}}}, "colors"},
		{"self opponent", []Participant{{ID: "a", Opponents: []string{"a"}}}, "opponents"},
	}
	for _, c := range cases {
		t.Run(c.name, func(t *testing.T) {
			_, err := GeneratePairings(c.ps, Options{})
			var ve *ValidationError
			if !errors.As(err, &ve) {
				t.Fatalf("expected ValidationError, got %v", err)
			}
			if ve.Field != c.field {
				t.Errorf("expected field %q, got %q (%v)", c.field, ve.Field, ve)
			}
		})
	}
}

func TestGeneratePairingsFloatsAroundRematch(t *testing.T) {
	ps := []Participant{
		{ID: "a", Score: 2, Opponents: []string{"b"}},
		{ID: "b", Score: 2, Opponents: []string{"a"}},
		{ID: "c", Score: 2},
		{ID: "d", Score: 1},
		{ID: "e", Score: 1},
		{ID: "f", Score: 0},
	}

	got, err := GeneratePairings(ps, Options{})
	if err != nil {
		t.Fatalf("GeneratePairings returned error: %v", err)
	}
	want := [][2]string{{"a", "c"}, {"b", "d"}, {"e", "f"}}
	for i, w := range want {
		if pairIDs(got.Pairs[i]) != w {
			t.Errorf("board %d: expected %v, got %+v", i+1, w, got.Pairs[i])
		}
	}
}

func TestGeneratePairingsTiebreakOrder(t *testing.T) {
	ps := []Participant{
		{ID: "low", Score: 1, Tiebreak: 1200},
		{ID: "high", Score: 1, Tiebreak: 1800},
		{ID: "mid", Score: 1, Tiebreak: 1500},
		{ID: "none", Score: 1},
	}

	got, err := GeneratePairings(ps, Options{})
	if err != nil {
		t.Fatalf("GeneratePairings returned error: %v", err)
	}
	if pairIDs(got.Pairs[0]) != [2]string{"high", "mid"} ||
		pairIDs(got.Pairs[1]) != [2]string{"low", "none"} {
		t.Errorf("unexpected pairs %+v", got.Pairs)
	}
}

func TestGeneratePairingsByeFairness(t *testing.T) {
	ps := []Participant{
		{ID: "a", Score: 2},
		{ID: "b", Score: 1},
		{ID: "c", Score: 0, Opponents: []string{ByeMarker}},
	}

	got, err := GeneratePairings(ps, Options{})
	if err != nil {
		t.Fatalf("GeneratePairings returned error: %v", err)
	}
	bye, _ := got.Bye()
	if bye.Player1 != "b" {
		t.Errorf("expected bye for b, got %+v", bye)
	}
	if got.Relaxed() {
		t.Errorf("expected no relaxations, got %v", got.Relaxations)
	}
}

func TestGeneratePairingsRepeatByeFlagged(t *testing.T) {
	ps := []Participant{
		{ID: "a", Score: 2, Byes: 1},
		{ID: "b", Score: 1, Byes: 1},
		{ID: "c", Score: 0, Byes: 1},
	}

	got, err := GeneratePairings(ps, Options{})
	if err != nil {
		t.Fatalf("GeneratePairings returned error: %v", err)
	}
	bye, _ := got.Bye()
	if bye.Player1 != "c" {
		t.Errorf("expected bye for lowest scoring c, got %+v", bye)
	}
	if len(got.Relaxations) != 1 || got.Relaxations[0].Kind != RelaxRepeatBye {
		t.Errorf("expected a repeat-bye relaxation, got %v", got.Relaxations)
	}
}

func TestGeneratePairingsDoesNotMutateInput(t *testing.T) {
	ps := []Participant{
		{ID: "b", Score: 0, Colors: []Color{White}, Opponents: []string{"a"}},
		{ID: "a", Score: 1, Colors: []Color{Black}, Opponents: []string{"b"}},
		{ID: "c", Score: 1},
	}
	orig := make([]Participant, len(ps))
	copy(orig, ps)

	first, err := GeneratePairings(ps, Options{})
	if err != nil {
		t.Fatalf("GeneratePairings returned error: %v", err)
	}
	if !reflect.DeepEqual(ps, orig) {
		t.Errorf("input was modified: %+v", ps)
	}
	second, err := GeneratePairings(ps, Options{})
	if err != nil {
		t.Fatalf("GeneratePairings returned error: %v", err)
	}
	if !reflect.DeepEqual(first, second) {
		t.Errorf("pairings differ between calls: %+v vs %+v", first, second)
	}
}

// Color preferences never move the bye: the lowest ranked fresh player keeps
// it and the clash is reported instead.
func TestGeneratePairingsByeIgnoresColorPreference(t *testing.T) {
	ps := []Participant{
		{ID: "a", Score: 2, Colors: []Color{Black, Black}},
		{ID: "b", Score: 1, Colors: []Color{Black, Black}},
		{ID: "c", Score: 0},
	}

	got, err := GeneratePairings(ps, Options{})
	if err != nil {
		t.Fatalf("GeneratePairings returned error: %v", err)
	}
	if bye, _ := got.Bye(); bye.Player1 != "c" {
		t.Errorf("expected bye for c, got %+v", bye)
	}
	if pairIDs(got.Pairs[0]) != [2]string{"a", "b"} {
		t.Errorf("expected a vs b, got %+v", got.Pairs[0])
	}
	if len(got.Relaxations) != 1 || got.Relaxations[0].Kind != RelaxColor {
		t.Errorf("expected one color relaxation, got %v", got.Relaxations)
	}
}

// Strict colors make the clash a hard constraint, so the bye moves up.
func TestGeneratePairingsStrictColorsMoveBye(t *testing.T) {
	ps := []Participant{
		{ID: "a", Score: 2, Colors: []Color{Black, Black}},
		{ID: "b", Score: 1, Colors: []Color{Black, Black}},
		{ID: "c", Score: 0},
	}

	got, err := GeneratePairings(ps, Options{Colors: ColorStrict})
	if err != nil {
		t.Fatalf("GeneratePairings returned error: %v", err)
	}
	if bye, _ := got.Bye(); bye.Player1 != "b" {
		t.Errorf("expected bye for b, got %+v", bye)
	}
	if pairIDs(got.Pairs[0]) != [2]string{"a", "c"} ||
		got.Pairs[0].Player1Color != White {
		t.Errorf("expected a(white) vs c, got %+v", got.Pairs[0])
	}
	if got.Relaxed() {
		t.Errorf("expected no relaxations, got %v", got.Relaxations)
	}
}

// Avoiding a rematch may move the bye to a higher ranked player.
func TestGeneratePairingsByeMovesToAvoidRematch(t *testing.T) {
	ps := []Participant{
		{ID: "a", Score: 1, Opponents: []string{"b"}},
		{ID: "b", Score: 1, Opponents: []string{"a"}},
		{ID: "c", Score: 0},
	}

	got, err := GeneratePairings(ps, Options{})
	if err != nil {
		t.Fatalf("GeneratePairings returned error: %v", err)
	}
	if bye, _ := got.Bye(); bye.Player1 != "b" {
		t.Errorf("expected bye for b, got %+v", bye)
	}
	if pairIDs(got.Pairs[0]) != [2]string{"a", "c"} || got.Pairs[0].Rematch {
		t.Errorf("expected fresh a vs c, got %+v", got.Pairs[0])
	}
	if got.Relaxed() {
		t.Errorf("expected no relaxations, got %v", got.Relaxations)
	}
}
