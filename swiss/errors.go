/* Copyright © 2026 Mike Brown. All Rights Reserved.
 *
 * See LICENSE file at the root of this repository for license terms
 */
package swiss

import (
	"fmt"
	"math"
	"strings"
)

// ValidationError reports malformed standings. No pairing is produced.
type ValidationError struct {
	Index  int
	ID     string
	Field  string
	Reason string
}

func (e *ValidationError) Error() string {
	if e.ID == "" {
		return fmt.Sprintf("swiss: invalid participant #%d: %v %v", e.Index,
			e.Field, e.Reason)
	}
	return fmt.Sprintf("swiss: invalid participant %q: %v %v", e.ID, e.Field,
		e.Reason)
}

// PairingImpossibleError reports that no pairing can be produced, either
// because there is nobody to pair or because a strict policy cannot be
// satisfied.
type PairingImpossibleError struct {
	Reason string
}

func (e *PairingImpossibleError) Error() string {
	return fmt.Sprintf("swiss: pairing impossible: %v", e.Reason)
}

func validate(participants []Participant) error {
	seen := make(map[string]struct{}, len(participants))

	for i, p := range participants {
		invalid := func(field, reason string) error {
			return &ValidationError{Index: i, ID: p.ID, Field: field,
				Reason: reason}
		}

		if strings.TrimSpace(p.ID) == "" {
			return invalid("id", "must not be empty")
		}
		if p.ID == ByeMarker {
			return invalid("id", "is reserved for byes")
		}
		if _, dup := seen[p.ID]; dup {
			return invalid("id", "is duplicated")
		}
		seen[p.ID] = struct{}{}

		if math.IsNaN(p.Score) || math.IsInf(p.Score, 0) {
			return invalid("score", "must be a finite number")
		}
		if p.Score < 0 {
			return invalid("score", "must not be negative")
		}
		if math.IsNaN(p.Tiebreak) || math.IsInf(p.Tiebreak, 0) {
			return invalid("tiebreak", "must be a finite number")
		}
		if p.Byes < 0 {
			return invalid("byes", "must not be negative")
		}
		for _, c := range p.Colors {
			if c != White && c != Black {
				return invalid("colors", "must contain only white or black")
			}
		}
		for _, o := range p.Opponents {
			if o == p.ID {
				return invalid("opponents", "must not contain the participant itself")
			}
		}
	}

	return nil
}
