package intervalskip

import (
	"cmp"
	"math/rand/v2"
	"testing"

	"github.com/stretchr/testify/require"
)

// groundTruth tracks live intervals with a plain slice, giving each
// property test an independent linear-scan oracle to check the ISL
// against (spec §8 scenario 3 and the round-trip laws).
type groundTruth[K cmp.Ordered, V any] struct {
	live []*Interval[K, V]
}

func (g *groundTruth[K, V]) insert(iv *Interval[K, V]) {
	g.live = append(g.live, iv)
}

func (g *groundTruth[K, V]) remove(iv *Interval[K, V]) {
	for i, x := range g.live {
		if x == iv {
			g.live = append(g.live[:i], g.live[i+1:]...)
			return
		}
	}
}

func (g *groundTruth[K, V]) find(k K) map[*Interval[K, V]]struct{} {
	out := make(map[*Interval[K, V]]struct{})
	for _, iv := range g.live {
		if iv.Contains(k) {
			out[iv] = struct{}{}
		}
	}
	return out
}

// checkUniversalInvariants verifies spec §8's universal invariants 1-5
// over the full structure, against the independently tracked ground
// truth.
func checkUniversalInvariants[K cmp.Ordered, V any](t *testing.T, l *ISL[K, V], gt *groundTruth[K, V]) {
	t.Helper()

	// Invariant 4: level-0 chain strictly ordered by key.
	havePrev := false
	var prevKey K
	for n := l.head.forward(0); n != nil; n = n.forward(0) {
		if havePrev {
			require.Less(t, prevKey, n.key, "level-0 chain out of order")
		}
		prevKey, havePrev = n.key, true
	}

	// Invariant 3: ownerCount equals the number of live intervals with
	// this key as an endpoint — a degenerate [k,k] interval counts once.
	wantOwners := make(map[K]int)
	for _, iv := range gt.live {
		wantOwners[iv.Left()]++
		if iv.Right() != iv.Left() {
			wantOwners[iv.Right()]++
		}
	}
	for n := l.head.forward(0); n != nil; n = n.forward(0) {
		require.Equal(t, wantOwners[n.key], n.ownerCount, "ownerCount mismatch at key %v", n.key)
	}

	// Invariant 1: every interval appears in eqMarkers of every node
	// whose key it contains.
	for n := l.head.forward(0); n != nil; n = n.forward(0) {
		for _, iv := range gt.live {
			if iv.Contains(n.key) {
				require.True(t, n.eqMarkers.contains(iv), "eqMarkers(%v) missing %v", n.key, iv)
			}
		}
	}

	// Invariant 2 (soundness half, checked structurally): every marker
	// on a level-i edge genuinely spans that edge, and no edge lacking
	// a forward pointer carries markers.
	for n := l.head; n != nil; n = n.forward(0) {
		for i := 0; i <= n.topLevel(); i++ {
			fwd := n.forward(i)
			if fwd == nil {
				require.Equal(t, 0, n.markersAt(i).len(), "dangling markers at %v level %d", n, i)
				continue
			}
			n.markersAt(i).each(func(m *Interval[K, V]) {
				require.True(t, m.ContainsInterval(n.key, fwd.key),
					"marker %v on %v->%v level %d does not span the edge", m, n, fwd, i)
			})
		}
		if n.isHeader {
			for i := 0; i <= n.topLevel(); i++ {
				require.Equal(t, 0, n.markersAt(i).len(), "header edge must never carry markers")
			}
		}
	}

	// Invariant 5: Find matches the ground truth at every live key.
	for n := l.head.forward(0); n != nil; n = n.forward(0) {
		want := gt.find(n.key)
		got := l.Find(n.key, nil)
		require.Len(t, got, len(want), "Find(%v) length mismatch", n.key)
		for _, iv := range got {
			_, ok := want[iv]
			require.True(t, ok, "Find(%v) returned unexpected interval %v", n.key, iv)
		}
	}
}

func TestUniversalInvariantsAfterMixedOperations(t *testing.T) {
	l := New(NewNodePool[int64, int](), rand.NewPCG(7, 11))
	gt := &groundTruth[int64, int]{}
	r := rand.New(rand.NewPCG(42, 99))

	insertRandom := func() {
		a := r.Int64N(500)
		b := a + r.Int64N(50)
		iv := NewInterval(a, b, r.Int())
		l.Insert(iv)
		gt.insert(iv)
	}
	for i := 0; i < 300; i++ {
		insertRandom()
	}
	checkUniversalInvariants(t, l, gt)

	for i := 0; i < 150 && len(gt.live) > 0; i++ {
		victim := gt.live[r.IntN(len(gt.live))]
		require.NoError(t, l.Remove(victim))
		gt.remove(victim)
		insertRandom()
		checkUniversalInvariants(t, l, gt)
	}
}

func TestFindAgainstLinearScanStress(t *testing.T) {
	l := New(NewNodePool[int64, int](), rand.NewPCG(123, 456))
	gt := &groundTruth[int64, int]{}
	r := rand.New(rand.NewPCG(5, 6))

	for i := 0; i < 1000; i++ {
		a := r.Int64N(10000)
		b := a + r.Int64N(10000-a+1)
		iv := NewInterval(a, b, i)
		l.Insert(iv)
		gt.insert(iv)
	}

	for i := 0; i < 1000; i++ {
		k := r.Int64N(10000)
		want := gt.find(k)
		got := l.Find(k, nil)
		require.Len(t, got, len(want), "Find(%d) length mismatch", k)
		for _, iv := range got {
			_, ok := want[iv]
			require.True(t, ok, "Find(%d) returned unexpected interval %v", k, iv)
		}
	}
}

func TestStressAlternatingInsertRemove(t *testing.T) {
	if testing.Short() {
		t.Skip("skipping stress test in -short mode")
	}
	l := New(NewNodePool[int64, int](), rand.NewPCG(1, 2))
	gt := &groundTruth[int64, int]{}
	r := rand.New(rand.NewPCG(9, 10))

	const rounds = 2000
	for i := 0; i < rounds; i++ {
		a := r.Int64N(2000)
		b := a + r.Int64N(100)
		iv := NewInterval(a, b, i)
		l.Insert(iv)
		gt.insert(iv)

		if len(gt.live) > 0 && r.IntN(2) == 0 {
			victim := gt.live[r.IntN(len(gt.live))]
			require.NoError(t, l.Remove(victim))
			gt.remove(victim)
		}

		if i%200 == 0 {
			checkUniversalInvariants(t, l, gt)
		}
	}
	checkUniversalInvariants(t, l, gt)
}

func TestQueryResultInvariantUnderInsertionPermutation(t *testing.T) {
	ivsA := []struct{ l, r int64 }{{10, 20}, {15, 25}, {30, 40}, {1, 100}, {50, 50}}

	build := func(order []int) map[int]struct{} {
		l := New(NewNodePool[int64, int](), rand.NewPCG(3, 4))
		for _, idx := range order {
			iv := NewInterval(ivsA[idx].l, ivsA[idx].r, idx)
			l.Insert(iv)
		}
		out := make(map[int]struct{})
		for _, iv := range l.Find(20, nil) {
			out[iv.Payload()] = struct{}{}
		}
		return out
	}

	base := build([]int{0, 1, 2, 3, 4})
	permuted := build([]int{4, 3, 2, 1, 0})
	require.Equal(t, base, permuted, "query result set must not depend on insertion order")
}
