package quickhull

import "container/heap"

// rankEntry ties a facet index to the distance of its furthest outside
// point.
type rankEntry struct {
	dist  float64
	facet int
}

// ranking keeps every facet with a non-empty outside set ordered by its
// furthest outside distance, so the globally worst violator is always at the
// root. A facet index map makes removal by id O(log n) when a facet is
// absorbed. Entries never change key in place: a facet is unranked when it
// dies and a fresh entry is pushed when a new facet partitions its outside
// set. Ties are broken arbitrarily.
type ranking struct {
	entries []rankEntry
	pos     map[int]int
}

func (r *ranking) Len() int { return len(r.entries) }

func (r *ranking) Less(i, j int) bool { return r.entries[j].dist < r.entries[i].dist }

func (r *ranking) Swap(i, j int) {
	e := r.entries
	e[i], e[j] = e[j], e[i]
	r.pos[e[i].facet] = i
	r.pos[e[j].facet] = j
}

func (r *ranking) Push(x any) {
	e := x.(rankEntry)
	r.pos[e.facet] = len(r.entries)
	r.entries = append(r.entries, e)
}

func (r *ranking) Pop() any {
	n := len(r.entries) - 1
	e := r.entries[n]
	r.entries = r.entries[:n]
	delete(r.pos, e.facet)
	return e
}

func (r *ranking) push(dist float64, facet int) {
	heap.Push(r, rankEntry{dist: dist, facet: facet})
}

// remove drops facet's entry if it has one.
func (r *ranking) remove(facet int) {
	if i, ok := r.pos[facet]; ok {
		heap.Remove(r, i)
	}
}

// best returns the facet with the globally largest outside distance.
func (r *ranking) best() int { return r.entries[0].facet }

func (r *ranking) empty() bool { return len(r.entries) == 0 }

// rekey renames a facet index after compaction moved the facet.
func (r *ranking) rekey(from, to int) {
	if i, ok := r.pos[from]; ok {
		delete(r.pos, from)
		r.entries[i].facet = to
		r.pos[to] = i
	}
}
