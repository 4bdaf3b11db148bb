/* Copyright © 2025-2026 Mike Brown. All Rights Reserved.
 *
 * See LICENSE file at the root of this repository for license terms
 */
package standings

import (
	"fmt"
	"io"
	"regexp"
	"strconv"
	"strings"

	"github.com/PuerkitoBio/goquery"

	"github.com/mikeb26/chessclub-swiss/internal"
	"github.com/mikeb26/chessclub-swiss/swiss"
)

var (
	gameCellRE    = regexp.MustCompile(`^([WDL?])(\d+)(?:\(([wb])\))?$`)
	forfeitCellRE = regexp.MustCompile(`^([XF])(\d+)$`)
	byeCellRE     = regexp.MustCompile(`^(?:BYE|B)(?:\(([0-9.½]+)\))?$`)
	roundHeaderRE = regexp.MustCompile(`^(?:r|rd|round)\s*(\d+)$`)
)

type crossTableColumns struct {
	number, name, rating, points int
	rounds                       []int
}

// ParseCrossTableHTML reads the first table that looks like a crosstable
// (columns No, Name, Rating, Pts and R1..Rn) and returns the standings it
// describes. Participant ids are the pairing numbers. Cells use the notation
// written by BuildCrossTableOutput.
func ParseCrossTableHTML(r io.Reader) ([]swiss.Participant, error) {
	doc, err := goquery.NewDocumentFromReader(r)
	if err != nil {
		return nil, fmt.Errorf("parsing HTML: %w", err)
	}

	var table *goquery.Selection
	var cols crossTableColumns
	doc.Find("table").EachWithBreak(func(_ int, s *goquery.Selection) bool {
		c, ok := findColumns(s.Find("tr").First())
		if ok {
			table = s
			cols = c
			return false // stop iteration
		}
		return true // continue
	})
	if table == nil {
		return nil, fmt.Errorf("crosstable not found")
	}

	var players []swiss.Participant
	var parseErr error
	table.Find("tr").Slice(1, goquery.ToEnd).EachWithBreak(func(i int, row *goquery.Selection) bool {
		tds := row.Find("td")
		if tds.Length() == 0 {
			return true
		}
		cell := func(idx int) string {
			if idx < 0 || idx >= tds.Length() {
				return ""
			}
			return strings.TrimSpace(tds.Eq(idx).Text())
		}

		p := swiss.Participant{
			ID:       cell(cols.number),
			Name:     internal.NormalizeName(cell(cols.name)),
			Tiebreak: float64(ratingToInt(cell(cols.rating))),
		}
		if p.ID == "" {
			return true
		}
		computed := 0.0
		for _, idx := range cols.rounds {
			pts, err := applyCell(&p, cell(idx))
			if err != nil {
				parseErr = fmt.Errorf("row %d: %w", i+1, err)
				return false
			}
			computed += pts
		}
		p.Score = computed
		if cols.points >= 0 && cell(cols.points) != "" {
			p.Score, err = toFloat(cell(cols.points))
			if err != nil {
				parseErr = fmt.Errorf("row %d: invalid points %q: %w", i+1,
					cell(cols.points), err)
				return false
			}
		}
		players = append(players, p)

		return true
	})
	if parseErr != nil {
		return nil, parseErr
	}
	if len(players) == 0 {
		return nil, fmt.Errorf("crosstable has no players")
	}

	return players, nil
}

func findColumns(header *goquery.Selection) (crossTableColumns, bool) {
	cols := crossTableColumns{number: -1, name: -1, rating: -1, points: -1}
	header.Find("th, td").Each(func(i int, s *goquery.Selection) {
		h := strings.ToLower(strings.TrimSpace(s.Text()))
		switch h {
		case "no", "no.", "#", "pair":
			cols.number = i
		case "name", "player":
			cols.name = i
		case "rating", "rtg":
			cols.rating = i
		case "pts", "points", "score", "total":
			cols.points = i
		default:
			if roundHeaderRE.MatchString(h) {
				cols.rounds = append(cols.rounds, i)
			}
		}
	})

	return cols, cols.number >= 0 && cols.name >= 0
}

// ratingToInt handles formats like "1735", "1735P12" or "559/24".
func ratingToInt(rating string) int {
	end := 0
	for end < len(rating) && rating[end] >= '0' && rating[end] <= '9' {
		end++
	}
	v, err := strconv.Atoi(rating[:end])
	if err != nil {
		return 0
	}
	return v
}

// applyCell records one round cell in p's history and returns the points it
// is worth.
func applyCell(p *swiss.Participant, cell string) (float64, error) {
	switch cell {
	case "", "-", "H", "U":
		return 0, nil
	}

	if m := gameCellRE.FindStringSubmatch(cell); m != nil {
		p.Opponents = append(p.Opponents, m[2])
		switch m[3] {
		case "w":
			p.Colors = append(p.Colors, swiss.White)
		case "b":
			p.Colors = append(p.Colors, swiss.Black)
		}
		switch m[1] {
		case "W":
			return 1, nil
		case "D":
			return 0.5, nil
		}
		return 0, nil
	}
	if m := forfeitCellRE.FindStringSubmatch(cell); m != nil {
		if m[1] == "X" {
			return 1, nil
		}
		return 0, nil
	}
	if m := byeCellRE.FindStringSubmatch(cell); m != nil {
		p.Byes++
		p.Opponents = append(p.Opponents, swiss.ByeMarker)
		if m[1] == "" {
			return 1, nil
		}
		return toFloat(m[1])
	}

	return 0, fmt.Errorf("unrecognized crosstable cell %q", cell)
}
