/* Copyright © 2026 Mike Brown. All Rights Reserved.
 *
 * See LICENSE file at the root of this repository for license terms
 */
package swiss

import (
	"strings"
)

type bitset []uint64

func newBitset(n int) bitset {
	return make(bitset, (n+63)/64)
}

func (b bitset) set(i int)      { b[i/64] |= 1 << uint(i%64) }
func (b bitset) clear(i int)    { b[i/64] &^= 1 << uint(i%64) }
func (b bitset) has(i int) bool { return b[i/64]&(1<<uint(i%64)) != 0 }

func (b bitset) key() string {
	var sb strings.Builder
	sb.Grow(len(b) * 8)
	for _, w := range b {
		for s := 0; s < 64; s += 8 {
			sb.WriteByte(byte(w >> uint(s)))
		}
	}
	return sb.String()
}

type memoKey struct {
	remaining string
	rematches int
	clashes   int
}

// searchSteps bounds, per player, the nodes all searches with scarce
// budgets may visit together while pairing one round.
const searchSteps = 64

// search is a depth-first pairing search over the ranked players. The
// highest ranked unpaired player is always paired first, with partners tried
// in rank order, so the first complete pairing found is the one a director
// would produce by hand working down the score groups.
//
// Every node first checks with maximum matchings that the unpaired players
// can still be completed within budget. When either budget covers every
// remaining pair, or both are zero, that check is exact and the search never
// backtracks more than one step. Otherwise the search is limited: it draws
// its nodes from the pairer's spare steps and gives up once they run out.
type search struct {
	pr        *pairer
	remaining bitset
	pairs     [][2]int
	limited   bool
	aborted   bool
}

func (pr *pairer) newSearch(bye int) *search {
	n := len(pr.players)
	s := &search{
		pr:        pr,
		remaining: newBitset(n),
		pairs:     make([][2]int, 0, n/2),
	}
	for i := 0; i < n; i++ {
		if i != bye {
			s.remaining.set(i)
		}
	}

	return s
}

// members lists the unpaired players in rank order.
func (s *search) members() []int {
	verts := make([]int, 0, len(s.pr.players))
	for i := range s.pr.players {
		if s.remaining.has(i) {
			verts = append(verts, i)
		}
	}
	return verts
}

func (s *search) first() int {
	for i := range s.pr.players {
		if s.remaining.has(i) {
			return i
		}
	}
	return -1
}

func (s *search) cost(i, j int) (int, int) {
	r, c := 0, 0
	if s.pr.rematch[i][j] {
		r = 1
	}
	if s.pr.clash[i][j] {
		c = 1
	}
	return r, c
}

// stranded reports whether some unpaired player has no partner left that
// fits the remaining budget on its own.
func (s *search) stranded(rematches, clashes int) bool {
	n := len(s.pr.players)
	for i := 0; i < n; i++ {
		if !s.remaining.has(i) {
			continue
		}
		ok := false
		for j := 0; j < n && !ok; j++ {
			if j == i || !s.remaining.has(j) {
				continue
			}
			r, c := s.cost(i, j)
			ok = r <= rematches && c <= clashes
		}
		if !ok {
			return true
		}
	}

	return false
}

func (s *search) solve(rematches, clashes int) bool {
	top := s.first()
	if top < 0 {
		return true
	}

	if s.limited {
		if s.pr.spare <= 0 {
			s.aborted = true
			return false
		}
		s.pr.spare--
	}

	k := memoKey{remaining: s.remaining.key(), rematches: rematches,
		clashes: clashes}
	if s.pr.failed[k] {
		return false
	}
	if s.stranded(rematches, clashes) ||
		!s.pr.completable(s.members(), rematches, clashes) {

		s.pr.failed[k] = true
		return false
	}

	s.remaining.clear(top)
	for j := top + 1; j < len(s.pr.players); j++ {
		if !s.remaining.has(j) {
			continue
		}
		r, c := s.cost(top, j)
		if r > rematches || c > clashes {
			continue
		}

		s.remaining.clear(j)
		s.pairs = append(s.pairs, [2]int{top, j})
		if s.solve(rematches-r, clashes-c) {
			return true
		}
		if s.aborted {
			return false
		}
		s.pairs = s.pairs[:len(s.pairs)-1]
		s.remaining.set(j)
	}
	s.remaining.set(top)
	s.pr.failed[k] = true

	return false
}

func (s *search) clashCount() int {
	c := 0
	for _, pp := range s.pairs {
		if s.pr.clash[pp[0]][pp[1]] {
			c++
		}
	}
	return c
}
