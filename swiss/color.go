/* Copyright © 2026 Mike Brown. All Rights Reserved.
 *
 * See LICENSE file at the root of this repository for license terms
 */
package swiss

// colorState summarizes a participant's color history.
type colorState struct {
	// whites minus blacks
	balance int
	last    Color
	prev    Color
}

func newColorState(colors []Color) colorState {
	var cs colorState
	for _, c := range colors {
		switch c {
		case White:
			cs.balance++
		case Black:
			cs.balance--
		}
		cs.prev = cs.last
		cs.last = c
	}

	return cs
}

// required returns the color the player must receive next round to avoid
// a third consecutive color or an imbalance larger than one, or NoColor
// when either color is acceptable.
func (cs colorState) required() Color {
	if cs.balance > 1 {
		return Black
	}
	if cs.balance < -1 {
		return White
	}
	if cs.last != NoColor && cs.last == cs.prev {
		return cs.last.Opposite()
	}

	return NoColor
}

// clashes reports whether two players both require the same color, so that
// pairing them necessarily breaks one player's color sequence.
func clashes(a, b colorState) bool {
	ra := a.required()
	return ra != NoColor && ra == b.required()
}

// assignColors decides the colors of a pair. a is the higher ranked player.
// The returned colors are for a and b respectively; forced is true when one
// player had to be denied the color they required.
func assignColors(a, b colorState, board int) (Color, Color, bool) {
	ra, rb := a.required(), b.required()

	switch {
	case ra != NoColor && ra != rb:
		return ra, ra.Opposite(), false
	case rb != NoColor && ra != rb:
		return rb.Opposite(), rb, false
	case ra != NoColor:
		// both need the same color; the larger deficit wins, rank breaks ties
		if abs(b.balance) > abs(a.balance) {
			return rb.Opposite(), rb, true
		}
		return ra, ra.Opposite(), true
	}

	// the player who has played white less often gets white
	if a.balance != b.balance {
		if a.balance < b.balance {
			return White, Black, false
		}
		return Black, White, false
	}
	// alternate from the most recent game
	if a.last != b.last {
		if a.last == Black || b.last == White {
			return White, Black, false
		}
		return Black, White, false
	}
	// nothing to go on: the higher ranked player alternates colors by board
	if board%2 == 1 {
		return White, Black, false
	}

	return Black, White, false
}

func abs(v int) int {
	if v < 0 {
		return -v
	}
	return v
}
