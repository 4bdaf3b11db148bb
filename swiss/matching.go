/* Copyright © 2026 Mike Brown. All Rights Reserved.
 *
 * See LICENSE file at the root of this repository for license terms
 */
package swiss

// maxMatching returns the size of a maximum matching among verts using only
// the pairs ok accepts. It runs Edmonds' blossom algorithm in O(V^3).
func maxMatching(verts []int, ok func(i, j int) bool) int {
	m := len(verts)
	if m < 2 {
		return 0
	}

	adj := make([][]bool, m)
	for a := range adj {
		adj[a] = make([]bool, m)
	}
	for a := 0; a < m; a++ {
		for b := a + 1; b < m; b++ {
			if ok(verts[a], verts[b]) {
				adj[a][b] = true
				adj[b][a] = true
			}
		}
	}

	bm := &blossomMatcher{
		adj:     adj,
		match:   make([]int, m),
		parent:  make([]int, m),
		base:    make([]int, m),
		used:    make([]bool, m),
		blossom: make([]bool, m),
		onPath:  make([]bool, m),
		queue:   make([]int, 0, m),
	}
	for v := range bm.match {
		bm.match[v] = -1
	}

	size := 0
	// greedy start; augmenting paths fix the rest
	for a := 0; a < m; a++ {
		if bm.match[a] != -1 {
			continue
		}
		for b := a + 1; b < m; b++ {
			if adj[a][b] && bm.match[b] == -1 {
				bm.match[a] = b
				bm.match[b] = a
				size++
				break
			}
		}
	}
	for v := 0; v < m && 2*size < m-1; v++ {
		if bm.match[v] != -1 {
			continue
		}
		if u := bm.augmentingPath(v); u != -1 {
			bm.augment(u)
			size++
		}
	}

	return size
}

type blossomMatcher struct {
	adj     [][]bool
	match   []int
	parent  []int
	base    []int
	used    []bool
	blossom []bool
	onPath  []bool
	queue   []int
}

func (bm *blossomMatcher) lca(a, b int) int {
	for i := range bm.onPath {
		bm.onPath[i] = false
	}
	for {
		a = bm.base[a]
		bm.onPath[a] = true
		if bm.match[a] == -1 {
			break
		}
		a = bm.parent[bm.match[a]]
	}
	for {
		b = bm.base[b]
		if bm.onPath[b] {
			return b
		}
		b = bm.parent[bm.match[b]]
	}
}

func (bm *blossomMatcher) markPath(v, b, child int) {
	for bm.base[v] != b {
		bm.blossom[bm.base[v]] = true
		bm.blossom[bm.base[bm.match[v]]] = true
		bm.parent[v] = child
		child = bm.match[v]
		v = bm.parent[bm.match[v]]
	}
}

// augmentingPath grows an alternating tree from root and returns the free
// vertex that ends an augmenting path, or -1.
func (bm *blossomMatcher) augmentingPath(root int) int {
	for i := range bm.used {
		bm.used[i] = false
		bm.parent[i] = -1
		bm.base[i] = i
	}
	bm.used[root] = true
	bm.queue = append(bm.queue[:0], root)

	for qh := 0; qh < len(bm.queue); qh++ {
		v := bm.queue[qh]
		for to := range bm.adj[v] {
			if !bm.adj[v][to] || bm.base[v] == bm.base[to] ||
				bm.match[v] == to {
				continue
			}
			if to == root ||
				(bm.match[to] != -1 && bm.parent[bm.match[to]] != -1) {

				cur := bm.lca(v, to)
				for i := range bm.blossom {
					bm.blossom[i] = false
				}
				bm.markPath(v, cur, to)
				bm.markPath(to, cur, v)
				for i := range bm.base {
					if !bm.blossom[bm.base[i]] {
						continue
					}
					bm.base[i] = cur
					if !bm.used[i] {
						bm.used[i] = true
						bm.queue = append(bm.queue, i)
					}
				}
			} else if bm.parent[to] == -1 {
				bm.parent[to] = v
				if bm.match[to] == -1 {
					return to
				}
				bm.used[bm.match[to]] = true
				bm.queue = append(bm.queue, bm.match[to])
			}
		}
	}

	return -1
}

func (bm *blossomMatcher) augment(u int) {
	for u != -1 {
		pv := bm.parent[u]
		next := bm.match[pv]
		bm.match[u] = pv
		bm.match[pv] = u
		u = next
	}
}
