/* Copyright © 2026 Mike Brown. All Rights Reserved.
 *
 * See LICENSE file at the root of this repository for license terms
 */
package swiss

import (
	"encoding/json"
	"errors"
	"testing"
)

func TestAssignColors(t *testing.T) {
	cases := []struct {
		name       string
		a, b       []Color
		board      int
		wantA      Color
		wantForced bool
	}{
		{"first round odd board", nil, nil, 1, White, false},
		{"first round even board", nil, nil, 2, Black, false},
		{"fewer whites gets white", []Color{Black}, []Color{White}, 1, White, false},
		{"lower ranked fewer whites", []Color{White}, []Color{Black}, 1, Black, false},
		{"two whites running must get black", []Color{White, White}, []Color{Black, White}, 1, Black, false},
		{"opponent must get white", []Color{White, Black}, []Color{Black, Black}, 1, Black, false},
		{"alternate from last game", []Color{White, Black}, []Color{Black, White}, 1, White, false},
		{"clash larger deficit wins", []Color{White, White}, []Color{White, Black, White, White, White}, 1, White, true},
		{"clash rank breaks tie", []Color{Black, White, White}, []Color{Black, White, White}, 1, Black, true},
	}
	for _, c := range cases {
		t.Run(c.name, func(t *testing.T) {
			ca, cb, forced := assignColors(newColorState(c.a),
				newColorState(c.b), c.board)
			if ca != c.wantA {
				t.Errorf("expected a=%v, got %v", c.wantA, ca)
			}
			if cb != ca.Opposite() {
				t.Errorf("colors not opposite: %v %v", ca, cb)
			}
			if forced != c.wantForced {
				t.Errorf("expected forced=%v, got %v", c.wantForced, forced)
			}
		})
	}
}

func TestGeneratePairingsAvoidsColorClash(t *testing.T) {
	// a and b both played black twice running; c and d are free
	ps := []Participant{
		{ID: "a", Score: 2, Colors: []Color{Black, Black}, Opponents: []string{"x", "y"}},
		{ID: "b", Score: 2, Colors: []Color{Black, Black}, Opponents: []string{"z", "w"}},
		{ID: "c", Score: 2, Colors: []Color{White, Black}, Opponents: []string{"x", "z"}},
		{ID: "d", Score: 2, Colors: []Color{Black, White}, Opponents: []string{"y", "w"}},
	}

	got, err := GeneratePairings(ps, Options{})
	if err != nil {
		t.Fatalf("GeneratePairings returned error: %v", err)
	}
	if pairIDs(got.Pairs[0]) != [2]string{"a", "c"} ||
		pairIDs(got.Pairs[1]) != [2]string{"b", "d"} {
		t.Fatalf("unexpected pairs %+v", got.Pairs)
	}
	if got.Pairs[0].White() != "a" || got.Pairs[1].White() != "b" {
		t.Errorf("expected a and b to receive white, got %+v", got.Pairs)
	}
	if got.Relaxed() {
		t.Errorf("expected no relaxations, got %v", got.Relaxations)
	}
}

func TestGeneratePairingsColorClashPolicies(t *testing.T) {
	ps := []Participant{
		{ID: "a", Score: 2, Colors: []Color{White, White}},
		{ID: "b", Score: 2, Colors: []Color{White, White}},
	}

	got, err := GeneratePairings(ps, Options{})
	if err != nil {
		t.Fatalf("best effort: unexpected error: %v", err)
	}
	if len(got.Relaxations) != 1 || got.Relaxations[0].Kind != RelaxColor {
		t.Errorf("best effort: expected a color relaxation, got %v",
			got.Relaxations)
	}

	_, err = GeneratePairings(ps, Options{Colors: ColorStrict})
	var pie *PairingImpossibleError
	if !errors.As(err, &pie) {
		t.Errorf("strict: expected PairingImpossibleError, got %v", err)
	}
}

func TestOptionsJSON(t *testing.T) {
	var opts Options
	err := json.Unmarshal([]byte(`{"rematches":"forbid","colors":"strict"}`),
		&opts)
	if err != nil {
		t.Fatalf("unmarshal: %v", err)
	}
	if opts.Rematches != RematchForbid || opts.Colors != ColorStrict {
		t.Errorf("unexpected options %+v", opts)
	}
	if err := json.Unmarshal([]byte(`{"rematches":"sometimes"}`), &opts); err == nil {
		t.Errorf("expected error for unknown rematch policy")
	}

	var p Participant
	err = json.Unmarshal([]byte(`{"id":"a","score":1.5,"colors":["w","black"]}`), &p)
	if err != nil {
		t.Fatalf("unmarshal participant: %v", err)
	}
	if len(p.Colors) != 2 || p.Colors[0] != White || p.Colors[1] != Black {
		t.Errorf("unexpected colors %v", p.Colors)
	}
}
