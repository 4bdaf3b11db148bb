/* Copyright © 2026 Mike Brown. All Rights Reserved.
 *
 * See LICENSE file at the root of this repository for license terms
 */
package swiss

import (
	"fmt"
	"strings"
)

// ByeMarker is the synthetic opponent id recorded in a participant's
// opponent history for a round in which they received a bye.
const ByeMarker = "BYE"

type Color int

const (
	NoColor Color = iota
	White
	Black
)

func (c Color) String() string {
	switch c {
	case White:
		return "white"
	case Black:
		return "black"
	default:
		return ""
	}
}

func (c Color) Opposite() Color {
	switch c {
	case White:
		return Black
	case Black:
		return White
	default:
		return NoColor
	}
}

func (c Color) MarshalText() ([]byte, error) {
	return []byte(c.String()), nil
}

func (c *Color) UnmarshalText(text []byte) error {
	switch strings.ToLower(strings.TrimSpace(string(text))) {
	case "white", "w":
		*c = White
	case "black", "b":
		*c = Black
	case "":
		*c = NoColor
	default:
		return fmt.Errorf("unknown color %q", string(text))
	}

	return nil
}

// Participant is one entry of the current standings as supplied by the
// caller. Participants are never modified by the engine.
type Participant struct {
	ID   string `json:"id" yaml:"id"`
	Name string `json:"name,omitempty" yaml:"name,omitempty"`
	// Score is the cumulative point total (1, ½ or 0 per game).
	Score float64 `json:"score" yaml:"score"`
	// Tiebreak orders participants with equal scores, higher first. Equal
	// tiebreaks keep the input order.
	Tiebreak float64 `json:"tiebreak,omitempty" yaml:"tiebreak,omitempty"`
	// Colors lists the colors played, oldest first.
	Colors    []Color  `json:"colors,omitempty" yaml:"colors,omitempty"`
	Opponents []string `json:"opponents,omitempty" yaml:"opponents,omitempty"`
	Byes      int      `json:"byes,omitempty" yaml:"byes,omitempty"`
}

// HadBye reports whether the participant already received a bye, either
// through the bye count or a ByeMarker entry in the opponent history.
func (p Participant) HadBye() bool {
	if p.Byes > 0 {
		return true
	}
	for _, o := range p.Opponents {
		if o == ByeMarker {
			return true
		}
	}

	return false
}

type RematchPolicy int

const (
	// RematchAvoid pairs a rematch only when no pairing without one exists.
	RematchAvoid RematchPolicy = iota
	// RematchForbid fails the pairing instead of pairing a rematch.
	RematchForbid
)

func (r RematchPolicy) String() string {
	if r == RematchForbid {
		return "forbid"
	}
	return "avoid"
}

func (r RematchPolicy) MarshalText() ([]byte, error) {
	return []byte(r.String()), nil
}

func (r *RematchPolicy) UnmarshalText(text []byte) error {
	switch strings.ToLower(strings.TrimSpace(string(text))) {
	case "avoid", "":
		*r = RematchAvoid
	case "forbid":
		*r = RematchForbid
	default:
		return fmt.Errorf("unknown rematch policy %q", string(text))
	}
	return nil
}

type ColorPolicy int

const (
	// ColorBestEffort allows a pairing that forces a third consecutive color
	// when nothing better exists.
	ColorBestEffort ColorPolicy = iota
	// ColorStrict never pairs two players who both must receive the same
	// color.
	ColorStrict
)

func (c ColorPolicy) String() string {
	if c == ColorStrict {
		return "strict"
	}
	return "best-effort"
}

func (c ColorPolicy) MarshalText() ([]byte, error) {
	return []byte(c.String()), nil
}

func (c *ColorPolicy) UnmarshalText(text []byte) error {
	switch strings.ToLower(strings.TrimSpace(string(text))) {
	case "best-effort", "besteffort", "":
		*c = ColorBestEffort
	case "strict":
		*c = ColorStrict
	default:
		return fmt.Errorf("unknown color policy %q", string(text))
	}
	return nil
}

type Options struct {
	Rematches RematchPolicy `json:"rematches" yaml:"rematches"`
	Colors    ColorPolicy   `json:"colors" yaml:"colors"`
}

// MatchPair is one board of a round. A bye is encoded by an empty Player2
// and board number 0.
type MatchPair struct {
	Board        int    `json:"board"`
	Player1      string `json:"player1"`
	Player2      string `json:"player2,omitempty"`
	Player1Color Color  `json:"player1Color,omitempty"`
	Player2Color Color  `json:"player2Color,omitempty"`
	Rematch      bool   `json:"rematch,omitempty"`
}

func (m MatchPair) IsBye() bool {
	return m.Player2 == ""
}

// White returns the id of the player assigned white, or "" for a bye.
func (m MatchPair) White() string {
	if m.IsBye() {
		return ""
	}
	if m.Player1Color == White {
		return m.Player1
	}
	return m.Player2
}

// Black returns the id of the player assigned black, or "" for a bye.
func (m MatchPair) Black() string {
	if m.IsBye() {
		return ""
	}
	if m.Player1Color == Black {
		return m.Player1
	}
	return m.Player2
}

type RelaxationKind int

const (
	RelaxRematch RelaxationKind = iota
	RelaxRepeatBye
	RelaxColor
)

func (k RelaxationKind) String() string {
	switch k {
	case RelaxRematch:
		return "rematch"
	case RelaxRepeatBye:
		return "repeat-bye"
	case RelaxColor:
		return "color"
	default:
		return "?"
	}
}

func (k RelaxationKind) MarshalText() ([]byte, error) {
	return []byte(k.String()), nil
}

func (k *RelaxationKind) UnmarshalText(text []byte) error {
	switch string(text) {
	case "rematch":
		*k = RelaxRematch
	case "repeat-bye":
		*k = RelaxRepeatBye
	case "color":
		*k = RelaxColor
	default:
		return fmt.Errorf("unknown relaxation %q", string(text))
	}
	return nil
}

// Relaxation records a soft constraint that had to be given up so that
// every participant could be paired.
type Relaxation struct {
	Kind    RelaxationKind `json:"kind"`
	Board   int            `json:"board"`
	Players []string       `json:"players"`
}

func (r Relaxation) String() string {
	return fmt.Sprintf("%v on board %d (%v)", r.Kind, r.Board,
		strings.Join(r.Players, ", "))
}

// Pairings is the complete pairing of one round.
type Pairings struct {
	Pairs       []MatchPair  `json:"pairs"`
	Relaxations []Relaxation `json:"relaxations,omitempty"`
}

// Bye returns the bye pair of the round, if any.
func (p *Pairings) Bye() (MatchPair, bool) {
	for _, mp := range p.Pairs {
		if mp.IsBye() {
			return mp, true
		}
	}
	return MatchPair{}, false
}

func (p *Pairings) Relaxed() bool {
	return len(p.Relaxations) > 0
}
