/* Copyright © 2026 Mike Brown. All Rights Reserved.
 *
 * See LICENSE file at the root of this repository for license terms
 */
package standings

import (
	"encoding/json"
	"fmt"
	"math"
	"sort"
	"strconv"
	"strings"
	"time"

	"github.com/mikeb26/chessclub-swiss/internal"
	"github.com/mikeb26/chessclub-swiss/swiss"
)

// RowError reports a loosely typed row that could not be converted.
type RowError struct {
	Index int
	Key   string
	Err   error
}

func (e *RowError) Error() string {
	return fmt.Sprintf("row %d: %v: %v", e.Index, e.Key, e.Err)
}

func (e *RowError) Unwrap() error {
	return e.Err
}

// ParticipantFromRow converts an untyped row, as decoded from JSON or read
// from a storage layer, into a Participant. Recognized keys are id, name,
// score, tiebreak (or rating), colors, opponents and byes (or bye).
func ParticipantFromRow(row map[string]any) (swiss.Participant, error) {
	return participantFromRow(0, row)
}

// ParticipantsFromRows converts rows in order. When rows carry a
// registered_at timestamp they are first ordered by it, oldest first, so
// that ties in the standings follow registration order.
func ParticipantsFromRows(rows []map[string]any) ([]swiss.Participant, error) {
	type keyed struct {
		idx int
		reg time.Time
	}
	order := make([]keyed, len(rows))
	for i, row := range rows {
		order[i] = keyed{idx: i}
		raw, ok := row["registered_at"]
		if !ok || raw == nil {
			continue
		}
		s, ok := raw.(string)
		if !ok {
			return nil, &RowError{Index: i, Key: "registered_at",
				Err: fmt.Errorf("expected a timestamp string, got %T", raw)}
		}
		reg, err := internal.ParseDateOrZero(s)
		if err != nil {
			return nil, &RowError{Index: i, Key: "registered_at", Err: err}
		}
		order[i].reg = reg
	}
	sort.SliceStable(order, func(i, j int) bool {
		return order[i].reg.Before(order[j].reg)
	})

	ret := make([]swiss.Participant, 0, len(rows))
	for _, k := range order {
		p, err := participantFromRow(k.idx, rows[k.idx])
		if err != nil {
			return nil, err
		}
		ret = append(ret, p)
	}

	return ret, nil
}

func participantFromRow(i int, row map[string]any) (swiss.Participant, error) {
	var p swiss.Participant
	var err error

	if p.ID, err = toID(row["id"]); err != nil {
		return p, &RowError{Index: i, Key: "id", Err: err}
	}
	if v, ok := row["name"]; ok && v != nil {
		s, ok := v.(string)
		if !ok {
			return p, &RowError{Index: i, Key: "name",
				Err: fmt.Errorf("expected a string, got %T", v)}
		}
		p.Name = s
	}
	if p.Score, err = toFloat(row["score"]); err != nil {
		return p, &RowError{Index: i, Key: "score", Err: err}
	}

	tbKey := "tiebreak"
	if _, ok := row[tbKey]; !ok {
		tbKey = "rating"
	}
	if p.Tiebreak, err = toFloat(row[tbKey]); err != nil {
		return p, &RowError{Index: i, Key: tbKey, Err: err}
	}

	if p.Colors, err = toColors(row["colors"]); err != nil {
		return p, &RowError{Index: i, Key: "colors", Err: err}
	}
	if p.Opponents, err = toIDs(row["opponents"]); err != nil {
		return p, &RowError{Index: i, Key: "opponents", Err: err}
	}

	if v, ok := row["bye"]; ok && v != nil {
		b, ok := v.(bool)
		if !ok {
			return p, &RowError{Index: i, Key: "bye",
				Err: fmt.Errorf("expected a boolean, got %T", v)}
		}
		if b {
			p.Byes = 1
		}
	}
	if _, ok := row["byes"]; ok {
		byes, err := toFloat(row["byes"])
		if err != nil || byes != math.Trunc(byes) {
			return p, &RowError{Index: i, Key: "byes",
				Err: fmt.Errorf("expected a whole number, got %v", row["byes"])}
		}
		p.Byes = int(byes)
	}

	return p, nil
}

func toID(v any) (string, error) {
	switch t := v.(type) {
	case string:
		return strings.TrimSpace(t), nil
	case json.Number:
		return t.String(), nil
	case float64:
		if t != math.Trunc(t) {
			return "", fmt.Errorf("non-integral numeric id %v", t)
		}
		return strconv.FormatInt(int64(t), 10), nil
	case int:
		return strconv.Itoa(t), nil
	case int64:
		return strconv.FormatInt(t, 10), nil
	case nil:
		return "", fmt.Errorf("missing")
	}
	return "", fmt.Errorf("unsupported id type %T", v)
}

func toFloat(v any) (float64, error) {
	switch t := v.(type) {
	case nil:
		return 0, nil
	case float64:
		return t, nil
	case float32:
		return float64(t), nil
	case int:
		return float64(t), nil
	case int64:
		return float64(t), nil
	case json.Number:
		return t.Float64()
	case string:
		s := strings.TrimSpace(t)
		if s == "" {
			return 0, nil
		}
		if strings.HasSuffix(s, "½") {
			whole := strings.TrimSuffix(s, "½")
			if whole == "" {
				return 0.5, nil
			}
			f, err := strconv.ParseFloat(whole, 64)
			if err != nil {
				return 0, err
			}
			return f + 0.5, nil
		}
		return strconv.ParseFloat(s, 64)
	}
	return 0, fmt.Errorf("unsupported numeric type %T", v)
}

// toColors accepts either a list of color names or a compact string such as
// "wbw".
func toColors(v any) ([]swiss.Color, error) {
	var items []string
	switch t := v.(type) {
	case nil:
		return nil, nil
	case string:
		for _, r := range t {
			items = append(items, string(r))
		}
	case []string:
		items = t
	case []any:
		for _, it := range t {
			s, ok := it.(string)
			if !ok {
				return nil, fmt.Errorf("expected a color string, got %T", it)
			}
			items = append(items, s)
		}
	default:
		return nil, fmt.Errorf("unsupported colors type %T", v)
	}

	var colors []swiss.Color
	for _, s := range items {
		var c swiss.Color
		if err := c.UnmarshalText([]byte(s)); err != nil {
			return nil, err
		}
		if c == swiss.NoColor {
			return nil, fmt.Errorf("empty color")
		}
		colors = append(colors, c)
	}

	return colors, nil
}

func toIDs(v any) ([]string, error) {
	var items []any
	switch t := v.(type) {
	case nil:
		return nil, nil
	case []string:
		return append([]string(nil), t...), nil
	case []any:
		items = t
	default:
		return nil, fmt.Errorf("unsupported opponents type %T", v)
	}

	ids := make([]string, 0, len(items))
	for _, it := range items {
		id, err := toID(it)
		if err != nil {
			return nil, err
		}
		ids = append(ids, id)
	}

	return ids, nil
}
