/* Copyright © 2026 Mike Brown. All Rights Reserved.
 *
 * See LICENSE file at the root of this repository for license terms
 */

// Package swiss computes Swiss-system pairings for one tournament round.
//
// Participants are ranked by score and tiebreak, the top remaining player is
// paired with the next acceptable player of their score group, and players
// without an acceptable partner float into the next lower group. Rematches
// and color clashes are soft constraints: the engine searches for the
// pairing with the fewest rematches, then the fewest clashes, and reports
// every relaxation it had to make.
package swiss

import (
	"fmt"
	"sort"
	"strings"
)

type player struct {
	Participant
	colors colorState
	hadBye bool
}

// GeneratePairings returns the pairings of the next round for the given
// standings. The result is deterministic for a given input order.
func GeneratePairings(participants []Participant,
	opts Options) (*Pairings, error) {

	if len(participants) == 0 {
		return nil, &PairingImpossibleError{Reason: "no participants"}
	}
	if err := validate(participants); err != nil {
		return nil, err
	}

	pr := newPairer(rank(participants), opts)

	return pr.pair()
}

// Rank returns a copy of participants ordered by descending score, then
// descending tiebreak, keeping the input order among equals.
func Rank(participants []Participant) []Participant {
	ranked := make([]Participant, len(participants))
	copy(ranked, participants)
	sort.SliceStable(ranked, func(i, j int) bool {
		if ranked[i].Score != ranked[j].Score {
			return ranked[i].Score > ranked[j].Score
		}
		return ranked[i].Tiebreak > ranked[j].Tiebreak
	})

	return ranked
}

func rank(participants []Participant) []*player {
	ranked := Rank(participants)
	players := make([]*player, len(ranked))
	for i, p := range ranked {
		players[i] = &player{
			Participant: p,
			colors:      newColorState(p.Colors),
			hadBye:      p.HadBye(),
		}
	}

	return players
}

type pairer struct {
	players []*player
	opts    Options
	rematch [][]bool
	clash   [][]bool
	failed  map[memoKey]bool
	spare   int
}

func newPairer(players []*player, opts Options) *pairer {
	n := len(players)
	pr := &pairer{
		players: players,
		opts:    opts,
		rematch: make([][]bool, n),
		clash:   make([][]bool, n),
		failed:  make(map[memoKey]bool),
		spare:   searchSteps * n,
	}

	played := make([]map[string]struct{}, n)
	for i, p := range players {
		played[i] = make(map[string]struct{}, len(p.Opponents))
		for _, o := range p.Opponents {
			played[i][o] = struct{}{}
		}
	}
	for i := range players {
		pr.rematch[i] = make([]bool, n)
		pr.clash[i] = make([]bool, n)
	}
	for i := 0; i < n; i++ {
		for j := i + 1; j < n; j++ {
			_, ij := played[i][players[j].ID]
			_, ji := played[j][players[i].ID]
			pr.rematch[i][j] = ij || ji
			pr.rematch[j][i] = pr.rematch[i][j]
			pr.clash[i][j] = clashes(players[i].colors, players[j].colors)
			pr.clash[j][i] = pr.clash[i][j]
		}
	}

	return pr
}

// byeCandidates lists, lowest ranked first, the players who may receive the
// bye. repeat is true when every player already had one.
func (pr *pairer) byeCandidates() (cands []int, repeat bool) {
	n := len(pr.players)
	if n%2 == 0 {
		return nil, false
	}
	for i := n - 1; i >= 0; i-- {
		if !pr.players[i].hadBye {
			cands = append(cands, i)
		}
	}
	if len(cands) > 0 {
		return cands, false
	}
	for i := n - 1; i >= 0; i-- {
		cands = append(cands, i)
	}

	return cands, true
}

func (pr *pairer) pair() (*Pairings, error) {
	n := len(pr.players)
	byes, repeatBye := pr.byeCandidates()
	if byes == nil {
		byes = []int{-1}
	}

	maxRematches := 0
	if pr.opts.Rematches == RematchAvoid {
		maxRematches = n / 2
	}
	maxClashes := 0
	if pr.opts.Colors == ColorBestEffort {
		maxClashes = n / 2
	}

	// The bye leaves the lowest ranked candidate only to save a rematch, or
	// when strict colors leave that candidate's field unpairable. Color
	// preferences are settled with the bye already placed.
	minRematches := make([]int, len(byes))
	fewest := maxRematches + 1
	for i, b := range byes {
		minRematches[i] = pr.minRematches(b)
		if minRematches[i] < fewest {
			fewest = minRematches[i]
		}
	}
	for r := fewest; r <= maxRematches; r++ {
		for i, b := range byes {
			if minRematches[i] > r {
				continue
			}
			if pairs, ok := pr.fewestClashes(b, r, maxClashes); ok {
				return pr.build(pairs, b, repeatBye), nil
			}
		}
	}

	var reasons []string
	if pr.opts.Rematches == RematchForbid {
		reasons = append(reasons, "rematches are forbidden")
	}
	if pr.opts.Colors == ColorStrict {
		reasons = append(reasons, "colors are strict")
	}
	return nil, &PairingImpossibleError{
		Reason: fmt.Sprintf("no complete pairing exists while %v",
			strings.Join(reasons, " and ")),
	}
}

// fewestClashes pairs everyone but bye with at most the given number of
// rematches and as few color clashes as it can find, up to maxClashes.
func (pr *pairer) fewestClashes(bye, rematches,
	maxClashes int) ([][2]int, bool) {

	lo := pr.minClashes(bye, rematches)
	if lo > maxClashes {
		return nil, false
	}
	widest := pr.newSearch(bye)
	if !pr.run(widest, rematches, maxClashes) {
		return nil, false
	}
	for c := lo; c < widest.clashCount(); c++ {
		s := pr.newSearch(bye)
		if pr.run(s, rematches, c) {
			return s.pairs, true
		}
	}

	return widest.pairs, true
}

// run solves s within the given budget. The search is limited unless the
// matching checks alone decide feasibility.
func (pr *pairer) run(s *search, rematches, clashes int) bool {
	half := len(s.members()) / 2
	s.limited = rematches < half && clashes < half && rematches+clashes > 0
	return s.solve(rematches, clashes)
}

func (pr *pairer) without(bye int) []int {
	verts := make([]int, 0, len(pr.players))
	for i := range pr.players {
		if i != bye {
			verts = append(verts, i)
		}
	}
	return verts
}

// minRematches returns the fewest rematches any complete pairing with the
// given bye needs, ignoring colors.
func (pr *pairer) minRematches(bye int) int {
	verts := pr.without(bye)
	return len(verts)/2 - maxMatching(verts, pr.fresh)
}

// minClashes returns a lower bound on the color clashes of a complete
// pairing with the given bye and rematch budget.
func (pr *pairer) minClashes(bye, rematches int) int {
	verts := pr.without(bye)
	half := len(verts) / 2
	lo := half - maxMatching(verts, pr.compatible)
	if joint := half - maxMatching(verts, pr.ideal) - rematches; joint > lo {
		lo = joint
	}
	if lo < 0 {
		lo = 0
	}
	return lo
}

// completable reports whether verts can still be paired within the budget.
// Each test is necessary; with one budget covering every pair, or both at
// zero, they are also sufficient.
func (pr *pairer) completable(verts []int, rematches, clashes int) bool {
	half := len(verts) / 2
	if rematches < half && half-maxMatching(verts, pr.fresh) > rematches {
		return false
	}
	if clashes < half && half-maxMatching(verts, pr.compatible) > clashes {
		return false
	}
	if rematches+clashes < half &&
		half-maxMatching(verts, pr.ideal) > rematches+clashes {
		return false
	}
	return true
}

func (pr *pairer) fresh(i, j int) bool      { return !pr.rematch[i][j] }
func (pr *pairer) compatible(i, j int) bool { return !pr.clash[i][j] }
func (pr *pairer) ideal(i, j int) bool {
	return !pr.rematch[i][j] && !pr.clash[i][j]
}

func (pr *pairer) build(pairs [][2]int, bye int, repeatBye bool) *Pairings {
	out := &Pairings{Pairs: make([]MatchPair, 0, len(pairs)+1)}

	sort.Slice(pairs, func(i, j int) bool {
		return pairs[i][0] < pairs[j][0]
	})
	for idx, pp := range pairs {
		board := idx + 1
		a, b := pr.players[pp[0]], pr.players[pp[1]]
		ca, cb, forced := assignColors(a.colors, b.colors, board)
		mp := MatchPair{
			Board:        board,
			Player1:      a.ID,
			Player2:      b.ID,
			Player1Color: ca,
			Player2Color: cb,
			Rematch:      pr.rematch[pp[0]][pp[1]],
		}
		out.Pairs = append(out.Pairs, mp)

		ids := []string{a.ID, b.ID}
		if mp.Rematch {
			out.Relaxations = append(out.Relaxations,
				Relaxation{Kind: RelaxRematch, Board: board, Players: ids})
		}
		if forced {
			out.Relaxations = append(out.Relaxations,
				Relaxation{Kind: RelaxColor, Board: board, Players: ids})
		}
	}

	if bye >= 0 {
		p := pr.players[bye]
		out.Pairs = append(out.Pairs, MatchPair{Board: 0, Player1: p.ID})
		if repeatBye {
			out.Relaxations = append(out.Relaxations, Relaxation{
				Kind: RelaxRepeatBye, Board: 0, Players: []string{p.ID}})
		}
	}

	return out
}
