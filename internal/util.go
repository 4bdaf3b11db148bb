/* Copyright © 2025-2026 Mike Brown. All Rights Reserved.
 *
 * See LICENSE file at the root of this repository for license terms
 */
package internal

import (
	"fmt"
	"math"
	"strings"
	"time"

	"github.com/araddon/dateparse"
	"golang.org/x/text/cases"
	"golang.org/x/text/language"
)

// ParseDateOrZero returns a parsed time or zero if input is empty or "null".
func ParseDateOrZero(s string) (time.Time, error) {
	if s == "" || s == "null" {
		return time.Time{}, nil
	}
	return dateparse.ParseAny(s)
}

// ScoreToString renders a half-point score the way it appears on a wall
// chart, e.g. 2.5 -> "2½" and 0.5 -> "½".
func ScoreToString(score float64) string {
	whole := math.Floor(score)
	frac := score - whole

	switch {
	case frac == 0:
		return fmt.Sprintf("%.0f", whole)
	case frac == 0.5 && whole == 0:
		return "½"
	case frac == 0.5:
		return fmt.Sprintf("%.0f½", whole)
	default:
		return fmt.Sprintf("%g", score)
	}
}

// NormalizeName reduces a name to "First Last" in title case.
func NormalizeName(s string) string {
	parts := strings.Fields(s)
	if len(parts) == 0 {
		return ""
	}
	caser := cases.Title(language.English)
	first := caser.String(strings.ToLower(parts[0]))
	last := caser.String(strings.ToLower(parts[len(parts)-1]))
	if len(parts) == 1 || first == last {
		return first
	}

	return first + " " + last
}
