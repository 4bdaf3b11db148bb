/* Copyright © 2026 Mike Brown. All Rights Reserved.
 *
 * See LICENSE file at the root of this repository for license terms
 */
package swiss

import (
	"math/rand"
	"testing"
)

func bruteMatching(verts []int, ok func(i, j int) bool) int {
	if len(verts) < 2 {
		return 0
	}
	rest := verts[1:]
	best := bruteMatching(rest, ok)
	for k, v := range rest {
		if !ok(verts[0], v) {
			continue
		}
		next := make([]int, 0, len(rest)-1)
		next = append(next, rest[:k]...)
		next = append(next, rest[k+1:]...)
		if got := 1 + bruteMatching(next, ok); got > best {
			best = got
		}
	}
	return best
}

func TestMaxMatching(t *testing.T) {
	edges := func(pairs ...[2]int) func(i, j int) bool {
		set := make(map[[2]int]bool)
		for _, p := range pairs {
			set[p] = true
			set[[2]int{p[1], p[0]}] = true
		}
		return func(i, j int) bool { return set[[2]int{i, j}] }
	}

	tests := []struct {
		name  string
		verts []int
		ok    func(i, j int) bool
		want  int
	}{
		{"empty", nil, edges(), 0},
		{"no edges", []int{0, 1, 2}, edges(), 0},
		{"path", []int{0, 1, 2, 3}, edges([2]int{0, 1}, [2]int{1, 2},
			[2]int{2, 3}), 2},
		{"triangle with tails", []int{0, 1, 2, 3, 4, 5}, edges([2]int{1, 2},
			[2]int{0, 1}, [2]int{0, 2}, [2]int{2, 3}, [2]int{3, 4},
			[2]int{4, 5}, [2]int{0, 5}), 3},
		{"odd cliques", []int{0, 1, 2, 3, 4, 5}, func(i, j int) bool {
			return (i < 3) == (j < 3)
		}, 2},
		{"subset", []int{1, 3, 5}, edges([2]int{1, 3}, [2]int{0, 5}), 1},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			if got := maxMatching(tc.verts, tc.ok); got != tc.want {
				t.Errorf("expected %d, got %d", tc.want, got)
			}
		})
	}
}

func TestMaxMatchingRandomGraphs(t *testing.T) {
	rng := rand.New(rand.NewSource(42))

	for trial := 0; trial < 300; trial++ {
		n := 1 + rng.Intn(11)
		adj := make([][]bool, n)
		for i := range adj {
			adj[i] = make([]bool, n)
		}
		density := rng.Float64()
		for i := 0; i < n; i++ {
			for j := i + 1; j < n; j++ {
				if rng.Float64() < density {
					adj[i][j] = true
					adj[j][i] = true
				}
			}
		}
		ok := func(i, j int) bool { return adj[i][j] }
		verts := make([]int, n)
		for i := range verts {
			verts[i] = i
		}

		if got, want := maxMatching(verts, ok),
			bruteMatching(verts, ok); got != want {

			t.Fatalf("trial %d: graph %v: expected %d, got %d", trial, adj,
				want, got)
		}
	}
}
