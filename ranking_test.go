package quickhull

import "testing"

func TestRankingOrder(t *testing.T) {
	r := ranking{pos: make(map[int]int)}
	r.push(1.5, 10)
	r.push(4.0, 11)
	r.push(2.5, 12)

	if got := r.best(); got != 11 {
		t.Fatalf("best = facet %d, want 11", got)
	}
}

func TestRankingRemove(t *testing.T) {
	r := ranking{pos: make(map[int]int)}
	r.push(1.5, 10)
	r.push(4.0, 11)
	r.push(2.5, 12)

	r.remove(11)
	if got := r.best(); got != 12 {
		t.Fatalf("best after removal = facet %d, want 12", got)
	}

	r.remove(11) // absent ids are ignored
	r.remove(12)
	r.remove(10)
	if !r.empty() {
		t.Fatal("ranking not empty after removing every entry")
	}
}

func TestRankingRekey(t *testing.T) {
	r := ranking{pos: make(map[int]int)}
	r.push(4.0, 11)
	r.push(2.5, 12)

	r.rekey(11, 3)
	if got := r.best(); got != 3 {
		t.Fatalf("best after rekey = facet %d, want 3", got)
	}
	r.remove(3)
	if got := r.best(); got != 12 {
		t.Fatalf("best after removing rekeyed entry = facet %d, want 12", got)
	}
}
