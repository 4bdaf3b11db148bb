/* Copyright © 2026 Mike Brown. All Rights Reserved.
 *
 * See LICENSE file at the root of this repository for license terms
 */
package standings

import (
	"errors"
	"fmt"
)

var ErrInvalidTransition = errors.New("invalid round state transition")

// RoundState tracks where a tournament is within its current round.
type RoundState int

const (
	AwaitingPairing RoundState = iota
	Paired
	ResultsPending
	RoundComplete
	Completed
)

var roundStateNames = map[RoundState]string{
	AwaitingPairing: "awaiting-pairing",
	Paired:          "paired",
	ResultsPending:  "results-pending",
	RoundComplete:   "round-complete",
	Completed:       "completed",
}

var roundTransitions = map[RoundState][]RoundState{
	AwaitingPairing: {Paired},
	Paired:          {ResultsPending},
	ResultsPending:  {RoundComplete},
	RoundComplete:   {AwaitingPairing, Completed},
}

func (s RoundState) String() string {
	if name, ok := roundStateNames[s]; ok {
		return name
	}
	return fmt.Sprintf("RoundState(%d)", int(s))
}

func ParseRoundState(s string) (RoundState, error) {
	for state, name := range roundStateNames {
		if name == s {
			return state, nil
		}
	}
	return AwaitingPairing, fmt.Errorf("unknown round state %q", s)
}

func (s RoundState) MarshalText() ([]byte, error) {
	return []byte(s.String()), nil
}

func (s *RoundState) UnmarshalText(text []byte) error {
	v, err := ParseRoundState(string(text))
	if err != nil {
		return err
	}
	*s = v
	return nil
}

func (s RoundState) CanTransition(to RoundState) bool {
	for _, next := range roundTransitions[s] {
		if next == to {
			return true
		}
	}
	return false
}

// Transition returns the new state, or ErrInvalidTransition when the move is
// not allowed from s.
func (s RoundState) Transition(to RoundState) (RoundState, error) {
	if !s.CanTransition(to) {
		return s, fmt.Errorf("%w: %v -> %v", ErrInvalidTransition, s, to)
	}
	return to, nil
}

func (s RoundState) Terminal() bool {
	return s == Completed
}
