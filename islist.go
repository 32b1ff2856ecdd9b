// Package intervalskip implements an in-memory Interval Skip List (ISL):
// a randomized, hierarchical index that answers stabbing queries — given
// a point p, enumerate every stored interval [a,b] with a <= p <= b — in
// expected O(log n + k) time, where n is the number of distinct endpoints
// and k is the answer size.
//
// Unlike a plain ordered skip list, the ISL never scans stored intervals
// at query time. Instead it maintains markers: references to intervals
// attached to skip-list edges and nodes, kept correct across every
// insert and delete by the marker-adjustment protocol in adjust_insert.go
// and adjust_delete.go. See Eppstein & Hanson/McCreight's interval skip
// list for the algorithm this package follows.
package intervalskip

import (
	"cmp"
	"fmt"
	"io"
	"math/rand/v2"
)

// MaxLevel bounds the index to at most 2^48 endpoints at p=0.5 (§6): a
// build-time choice, not something callers tune at runtime.
const MaxLevel = 48

// ISL is an Interval Skip List over keys K, indexing intervals that
// carry a payload of type V.
//
// An ISL is not safe for concurrent use: it assumes a single writer
// (§5). Concurrent readers with no concurrent writer are safe only if
// the caller publishes the structure behind an external lock.
type ISL[K cmp.Ordered, V any] struct {
	head     *node[K, V]
	maxLevel int
	pool     *NodePool[K, V]
	pcg      *rand.PCG

	// update is the scratch predecessor vector rebuilt by search and
	// consumed by insertEndpointNode/deleteEndpointNode. It is owned by
	// the ISL and reused across calls rather than reallocated (§9).
	update [MaxLevel + 1]*node[K, V]
}

// New returns an empty ISL. pool supplies and reclaims node storage;
// pcg seeds the per-insert level assignment. Passing a fixed-seed PCG
// makes level assignment — and therefore the exact shape of the index —
// reproducible across runs, which test code relies on (§9).
func New[K cmp.Ordered, V any](pool *NodePool[K, V], pcg *rand.PCG) *ISL[K, V] {
	if pool == nil {
		pool = NewNodePool[K, V]()
	}
	head := pool.get(MaxLevel)
	head.isHeader = true
	return &ISL[K, V]{
		head: head,
		pool: pool,
		pcg:  pcg,
	}
}

// randomLevel samples a level by counting Bernoulli(p=0.5) successes
// until the first failure, capped at MaxLevel.
func (l *ISL[K, V]) randomLevel() int {
	r := rand.New(l.pcg)
	level := 0
	for level < MaxLevel && r.Uint64()&1 == 1 {
		level++
	}
	return level
}

// search descends from the header to level 0, recording the last node
// visited at each level into l.update, and returns the node immediately
// to the right of the search key at level 0 (possibly the exact match,
// possibly nil).
func (l *ISL[K, V]) search(key K) *node[K, V] {
	cur := l.head
	for i := l.maxLevel; i >= 0; i-- {
		for cur.forward(i) != nil && cur.forward(i).key < key {
			cur = cur.forward(i)
		}
		l.update[i] = cur
	}
	return cur.forward(0)
}

// insertEndpointNode returns the node for key, creating and splicing
// one in if it doesn't already exist.
func (l *ISL[K, V]) insertEndpointNode(key K) *node[K, V] {
	if next := l.search(key); next != nil && next.key == key {
		return next
	}

	level := l.randomLevel()
	if level > l.maxLevel {
		for i := l.maxLevel + 1; i <= level; i++ {
			l.update[i] = l.head
		}
		l.maxLevel = level
	}

	x := l.pool.get(level)
	x.key = key
	for i := 0; i <= level; i++ {
		x.setForward(i, l.update[i].forward(i))
		l.update[i].setForward(i, x)
	}

	adjustMarkersOnInsert(x, l.update[:level+1])
	return x
}

// deleteEndpointNode removes the node for key once its owner count has
// reached zero, running the delete-side marker adjustment first and
// unlinking the node at every level afterward.
func (l *ISL[K, V]) deleteEndpointNode(key K) {
	next := l.search(key)
	if next == nil || next.key != key {
		invariantPanic("deleteEndpointNode: node vanished before unlink")
	}
	x := next

	// adjustMarkersOnDelete needs the predecessor one level above
	// x's own reach (update[topLevel(x)+1]); when x is currently the
	// tallest node in the list that slot doesn't exist in l.update, so
	// the header — the natural "nothing above here" sentinel — fills
	// it in.
	top := x.topLevel()
	update := make([]*node[K, V], top+2)
	copy(update, l.update[:top+1])
	if top+1 <= l.maxLevel {
		update[top+1] = l.update[top+1]
	} else {
		update[top+1] = l.head
	}

	adjustMarkersOnDelete(x, update)

	for i := 0; i <= x.topLevel(); i++ {
		if update[i].forward(i) == x {
			update[i].setForward(i, x.forward(i))
		}
	}
	for l.maxLevel > 0 && l.head.forward(l.maxLevel) == nil {
		l.maxLevel--
	}
	l.pool.put(x)
}

// Insert adds interval iv to the index. Endpoint nodes are created on
// demand; an endpoint already present in the index is reused and its
// owner count incremented.
func (l *ISL[K, V]) Insert(iv *Interval[K, V]) {
	ln := l.insertEndpointNode(iv.left)
	ln.ownerCount++

	rn := ln
	if iv.right != iv.left {
		rn = l.insertEndpointNode(iv.right)
		rn.ownerCount++
	}

	placeMarkers(iv, ln, rn)
}

// Remove deletes interval iv from the index. It reports ErrNotFound if
// iv is not currently indexed; the structure is left unchanged in that
// case.
func (l *ISL[K, V]) Remove(iv *Interval[K, V]) error {
	ln := l.search(iv.left)
	if ln == nil || ln.key != iv.left || ln.ownerCount == 0 || !ln.eqMarkers.contains(iv) {
		return ErrNotFound
	}

	rn := ln
	if iv.right != iv.left {
		rn = l.search(iv.right)
		if rn == nil || rn.key != iv.right {
			invariantPanic("Remove: right endpoint node missing for an indexed interval")
		}
	}

	removeMarkers(iv, ln, rn)

	ln.ownerCount--
	if ln.ownerCount == 0 {
		l.deleteEndpointNode(ln.key)
	}
	if rn != ln {
		rn.ownerCount--
		if rn.ownerCount == 0 {
			l.deleteEndpointNode(rn.key)
		}
	}
	return nil
}

// Find appends to out every interval I currently indexed with
// I.Contains(key), returning the grown slice. Callers that query
// repeatedly can reuse the backing array by passing out[:0].
func (l *ISL[K, V]) Find(key K, out []*Interval[K, V]) []*Interval[K, V] {
	cur := l.head
	for i := l.maxLevel; i >= 0; i-- {
		for cur.forward(i) != nil && cur.forward(i).key <= key {
			cur = cur.forward(i)
		}
		if !cur.isHeader && cur.key == key {
			out = cur.eqMarkers.appendTo(out)
			return out
		}
		if !cur.isHeader {
			out = cur.markersAt(i).appendTo(out)
		}
	}
	return out
}

// ContainsKey reports whether key is currently present as an endpoint
// node, returning that node for diagnostics and tests.
func (l *ISL[K, V]) ContainsKey(key K) (*node[K, V], bool) {
	cur := l.head
	for i := l.maxLevel; i >= 0; i-- {
		for cur.forward(i) != nil && cur.forward(i).key < key {
			cur = cur.forward(i)
		}
	}
	next := cur.forward(0)
	if next != nil && next.key == key {
		return next, true
	}
	return nil, false
}

// Dump renders the skip list level by level, from the current maxLevel
// down to level 0, for debugging. It mirrors the teacher's diagnostic
// print used from Overlaps' panic-recovery path.
func (l *ISL[K, V]) Dump(w io.Writer) {
	for lvl := l.maxLevel; lvl >= 0; lvl-- {
		fmt.Fprintf(w, "level %d: head", lvl)
		for cur := l.head.forward(lvl); cur != nil; cur = cur.forward(lvl) {
			fmt.Fprintf(w, " -> %v(owners=%d,markers=%d)", cur.key, cur.ownerCount, cur.markersAt(lvl).len())
		}
		fmt.Fprintln(w, " -> nil")
	}
}
