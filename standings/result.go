/* Copyright © 2026 Mike Brown. All Rights Reserved.
 *
 * See LICENSE file at the root of this repository for license terms
 */
package standings

import (
	"errors"
	"fmt"
	"strings"
)

var ErrUnknownResult = errors.New("unknown result")

// Result is the outcome of a game, written from Player1's side: "1-0" means
// Player1 won.
type Result int

const (
	ResultPending Result = iota
	ResultPlayer1Wins
	ResultPlayer2Wins
	ResultDraw
	ResultPlayer1ForfeitWin
	ResultPlayer2ForfeitWin
	ResultDoubleForfeit
)

// ParseResult accepts the common ways a result is written on a score sheet.
// An empty string is a pending result.
func ParseResult(s string) (Result, error) {
	switch strings.ReplaceAll(strings.TrimSpace(s), " ", "") {
	case "":
		return ResultPending, nil
	case "1-0":
		return ResultPlayer1Wins, nil
	case "0-1":
		return ResultPlayer2Wins, nil
	case "1/2-1/2", "½-½", "0.5-0.5", "=":
		return ResultDraw, nil
	case "1F-0F", "1f-0f", "+-", "+/-":
		return ResultPlayer1ForfeitWin, nil
	case "0F-1F", "0f-1f", "-+", "-/+":
		return ResultPlayer2ForfeitWin, nil
	case "0F-0F", "0f-0f", "--", "-/-":
		return ResultDoubleForfeit, nil
	}

	return ResultPending, fmt.Errorf("%w: %q", ErrUnknownResult, s)
}

func (r Result) String() string {
	switch r {
	case ResultPlayer1Wins:
		return "1-0"
	case ResultPlayer2Wins:
		return "0-1"
	case ResultDraw:
		return "1/2-1/2"
	case ResultPlayer1ForfeitWin:
		return "1F-0F"
	case ResultPlayer2ForfeitWin:
		return "0F-1F"
	case ResultDoubleForfeit:
		return "0F-0F"
	default:
		return ""
	}
}

func (r Result) MarshalText() ([]byte, error) {
	return []byte(r.String()), nil
}

func (r *Result) UnmarshalText(text []byte) error {
	v, err := ParseResult(string(text))
	if err != nil {
		return err
	}
	*r = v
	return nil
}

// Points returns the points credited to each side.
func (r Result) Points() (float64, float64) {
	switch r {
	case ResultPlayer1Wins, ResultPlayer1ForfeitWin:
		return 1, 0
	case ResultPlayer2Wins, ResultPlayer2ForfeitWin:
		return 0, 1
	case ResultDraw:
		return 0.5, 0.5
	default:
		return 0, 0
	}
}

// Played reports whether the game was contested over the board. Forfeits
// score points but do not count as a meeting of the two players.
func (r Result) Played() bool {
	return r == ResultPlayer1Wins || r == ResultPlayer2Wins || r == ResultDraw
}

func (r Result) Pending() bool {
	return r == ResultPending
}
