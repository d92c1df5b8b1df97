// SPDX-License-Identifier: MIT

package label

// disjointSet is a union-find forest over cell indices with path halving
// and union by rank.
type disjointSet struct {
	parent []int
	rank   []uint8
}

func newDisjointSet(n int) *disjointSet {
	ds := &disjointSet{parent: make([]int, n), rank: make([]uint8, n)}
	for i := range ds.parent {
		ds.parent[i] = i
	}
	return ds
}

func (ds *disjointSet) find(u int) int {
	for ds.parent[u] != u {
		ds.parent[u] = ds.parent[ds.parent[u]]
		u = ds.parent[u]
	}
	return u
}

func (ds *disjointSet) union(u, v int) {
	ru, rv := ds.find(u), ds.find(v)
	if ru == rv {
		return
	}
	switch {
	case ds.rank[ru] < ds.rank[rv]:
		ds.parent[ru] = rv
	case ds.rank[ru] > ds.rank[rv]:
		ds.parent[rv] = ru
	default:
		ds.parent[rv] = ru
		ds.rank[ru]++
	}
}

// labels numbers the sets 1, 2, … in scan order of their first member;
// cells rejected by keep get 0.
func (ds *disjointSet) labels(keep func(i int) bool) []float64 {
	out := make([]float64, len(ds.parent))
	id := make(map[int]float64)
	next := 1.0
	for i := range out {
		if !keep(i) {
			continue
		}
		r := ds.find(i)
		l, ok := id[r]
		if !ok {
			l = next
			id[r] = l
			next++
		}
		out[i] = l
	}
	return out
}
