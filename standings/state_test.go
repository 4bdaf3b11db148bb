/* Copyright © 2026 Mike Brown. All Rights Reserved.
 *
 * See LICENSE file at the root of this repository for license terms
 */
package standings

import (
	"errors"
	"testing"
)

func TestRoundStateLifecycle(t *testing.T) {
	state := AwaitingPairing
	var err error
	for round := 1; round <= 3; round++ {
		for _, next := range []RoundState{Paired, ResultsPending, RoundComplete} {
			state, err = state.Transition(next)
			if err != nil {
				t.Fatalf("round %d: %v", round, err)
			}
		}
		if round < 3 {
			state, err = state.Transition(AwaitingPairing)
		} else {
			state, err = state.Transition(Completed)
		}
		if err != nil {
			t.Fatalf("round %d: %v", round, err)
		}
	}
	if !state.Terminal() {
		t.Errorf("expected terminal state, got %v", state)
	}
}

func TestRoundStateInvalidTransitions(t *testing.T) {
	cases := []struct {
		from, to RoundState
	}{
		{AwaitingPairing, ResultsPending},
		{AwaitingPairing, Completed},
		{Paired, AwaitingPairing},
		{ResultsPending, AwaitingPairing},
		{ResultsPending, Completed},
		{Completed, AwaitingPairing},
	}
	for _, c := range cases {
		t.Run(c.from.String()+"->"+c.to.String(), func(t *testing.T) {
			got, err := c.from.Transition(c.to)
			if !errors.Is(err, ErrInvalidTransition) {
				t.Fatalf("expected ErrInvalidTransition, got %v", err)
			}
			if got != c.from {
				t.Errorf("state changed to %v on failure", got)
			}
		})
	}
}

func TestParseRoundState(t *testing.T) {
	for _, s := range []RoundState{AwaitingPairing, Paired, ResultsPending,
		RoundComplete, Completed} {

		got, err := ParseRoundState(s.String())
		if err != nil || got != s {
			t.Errorf("ParseRoundState(%q): got %v %v", s.String(), got, err)
		}
	}
	if _, err := ParseRoundState("paused"); err == nil {
		t.Errorf("expected error for unknown state")
	}
}
