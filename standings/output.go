/* Copyright © 2025-2026 Mike Brown. All Rights Reserved.
 *
 * See LICENSE file at the root of this repository for license terms
 */
package standings

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/mikeb26/chessclub-swiss/internal"
	"github.com/mikeb26/chessclub-swiss/swiss"
)

func displayName(p swiss.Participant) string {
	if p.Name != "" {
		return p.Name
	}
	return p.ID
}

// writeTable writes rows as left aligned columns separated by two spaces.
func writeTable(sb *strings.Builder, header []string, rows [][]string) {
	widths := make([]int, len(header))
	for i, h := range header {
		widths[i] = len(h)
	}
	for _, r := range rows {
		for i, cell := range r {
			if l := len(cell); l > widths[i] {
				widths[i] = l
			}
		}
	}

	writeRow := func(cells []string) {
		var line strings.Builder
		for i, cell := range cells {
			if i > 0 {
				line.WriteString("  ")
			}
			line.WriteString(fmt.Sprintf("%-*s", widths[i], cell))
		}
		sb.WriteString(strings.TrimRight(line.String(), " "))
		sb.WriteString("\n")
	}

	writeRow(header)
	for _, r := range rows {
		writeRow(r)
	}
}

// BuildPairingsOutput formats a round's pairings as an aligned table followed
// by any constraints the engine had to relax.
func BuildPairingsOutput(round int, pairings *swiss.Pairings,
	players []swiss.Participant, byePoints float64) string {

	byID := make(map[string]swiss.Participant, len(players))
	for _, p := range players {
		byID[p.ID] = p
	}
	describe := func(id string) string {
		p, ok := byID[id]
		if !ok {
			return id
		}
		return fmt.Sprintf("%s(%d %v)", displayName(p), int(p.Tiebreak),
			internal.ScoreToString(p.Score))
	}

	var sb strings.Builder
	if pairings == nil || len(pairings.Pairs) == 0 {
		sb.WriteString("No pairings posted nor predicted\n")
		return sb.String()
	}
	sb.WriteString(fmt.Sprintf("Round %v Pairings:\n\n", round))

	var rows [][]string
	for _, mp := range pairings.Pairs {
		if mp.IsBye() {
			rows = append(rows, []string{"n/a", describe(mp.Player1),
				fmt.Sprintf("BYE(%v)", internal.ScoreToString(byePoints))})
			continue
		}
		rows = append(rows, []string{fmt.Sprintf("%d.", mp.Board),
			describe(mp.White()), describe(mp.Black())})
	}
	writeTable(&sb, []string{"Board", "White", "Black"}, rows)

	if pairings.Relaxed() {
		sb.WriteString("\nRelaxed constraints:\n")
		for _, r := range pairings.Relaxations {
			sb.WriteString(fmt.Sprintf("* %v\n", r))
		}
	}

	return sb.String()
}

// BuildStandingsOutput formats participants in ranking order. Players tied
// on score share a place.
func BuildStandingsOutput(players []swiss.Participant) string {
	var sb strings.Builder
	if len(players) == 0 {
		sb.WriteString("No participants\n")
		return sb.String()
	}

	ranked := swiss.Rank(players)
	var rows [][]string
	priorScore := -1.0
	for idx, p := range ranked {
		place := ""
		if idx == 0 || p.Score != priorScore {
			place = fmt.Sprintf("%v.", idx+1)
			priorScore = p.Score
		}
		rows = append(rows, []string{place, displayName(p),
			fmt.Sprintf("%.1f", p.Score)})
	}
	writeTable(&sb, []string{"Place", "Name", "Score"}, rows)

	return sb.String()
}

// BuildCrossTableOutput formats a wall chart with one row per entry in
// ranking order and one column per round. Game cells read W3(w) for a win
// against pairing number 3 with white; D and L mark draws and losses, X and
// F forfeit wins and losses, ? a result still to be verified.
func BuildCrossTableOutput(entries []Entry, matches []Match,
	byePoints float64) (string, error) {

	players, err := Compute(entries, matches, byePoints)
	if err != nil {
		return "", err
	}

	numbers := make(map[string]int, len(entries))
	ratings := make(map[string]int, len(entries))
	for _, e := range entries {
		numbers[e.ID] = e.Number
		ratings[e.ID] = e.Rating
	}
	rounds := 0
	cells := make(map[string]map[int]string)
	setCell := func(id string, round int, cell string) {
		if cells[id] == nil {
			cells[id] = make(map[int]string)
		}
		cells[id][round] = cell
	}
	for _, m := range matches {
		if m.Round > rounds {
			rounds = m.Round
		}
		if m.IsBye() {
			setCell(m.Player1, m.Round,
				fmt.Sprintf("BYE(%v)", internal.ScoreToString(byePoints)))
			continue
		}
		c1, c2 := gameCells(m, numbers[m.Player1], numbers[m.Player2])
		setCell(m.Player1, m.Round, c1)
		setCell(m.Player2, m.Round, c2)
	}

	header := []string{"No", "Name", "Rating", "Pts"}
	for r := 1; r <= rounds; r++ {
		header = append(header, fmt.Sprintf("R%d", r))
	}
	var rows [][]string
	for _, p := range swiss.Rank(players) {
		row := []string{strconv.Itoa(numbers[p.ID]), displayName(p),
			strconv.Itoa(ratings[p.ID]), internal.ScoreToString(p.Score)}
		for r := 1; r <= rounds; r++ {
			cell, ok := cells[p.ID][r]
			if !ok {
				cell = "-"
			}
			row = append(row, cell)
		}
		rows = append(rows, row)
	}

	var sb strings.Builder
	writeTable(&sb, header, rows)

	return sb.String(), nil
}

func colorLetter(c swiss.Color) string {
	switch c {
	case swiss.White:
		return "w"
	case swiss.Black:
		return "b"
	default:
		return "-"
	}
}

func gameCells(m Match, n1, n2 int) (string, string) {
	l1 := colorLetter(m.Player1Color)
	l2 := colorLetter(m.Player1Color.Opposite())
	game := func(o1, o2 string) (string, string) {
		return fmt.Sprintf("%s%d(%s)", o1, n2, l1),
			fmt.Sprintf("%s%d(%s)", o2, n1, l2)
	}
	if !m.Verified {
		return game("?", "?")
	}

	switch m.Result {
	case ResultPlayer1Wins:
		return game("W", "L")
	case ResultPlayer2Wins:
		return game("L", "W")
	case ResultDraw:
		return game("D", "D")
	case ResultPlayer1ForfeitWin:
		return fmt.Sprintf("X%d", n2), fmt.Sprintf("F%d", n1)
	case ResultPlayer2ForfeitWin:
		return fmt.Sprintf("F%d", n2), fmt.Sprintf("X%d", n1)
	case ResultDoubleForfeit:
		return fmt.Sprintf("F%d", n2), fmt.Sprintf("F%d", n1)
	}

	return game("?", "?")
}
