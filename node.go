package intervalskip

import (
	"cmp"
	"fmt"
)

// nodeLevel is one rung of a node's forward ladder: the next node at
// this level and the markers attached to the edge leading to it.
type nodeLevel[K cmp.Ordered, V any] struct {
	next    *node[K, V]
	markers *markerList[K, V]
}

// node is one distinct endpoint key currently present in the index.
// It exists for as long as ownerCount is positive (or it is the
// header sentinel, which always exists).
type node[K cmp.Ordered, V any] struct {
	key        K
	isHeader   bool
	levels     []nodeLevel[K, V]
	eqMarkers  *markerList[K, V]
	ownerCount int
}

// topLevel returns this node's tallest level index.
func (n *node[K, V]) topLevel() int {
	return len(n.levels) - 1
}

// forward returns the next node at level i, or nil.
func (n *node[K, V]) forward(i int) *node[K, V] {
	return n.levels[i].next
}

// setForward sets the next node at level i.
func (n *node[K, V]) setForward(i int, to *node[K, V]) {
	n.levels[i].next = to
}

// markersAt returns the marker list attached to the level-i outgoing
// edge. The header never holds markers (spec edge case), but the list
// still exists so callers need not special-case it.
func (n *node[K, V]) markersAt(i int) *markerList[K, V] {
	return n.levels[i].markers
}

func (n *node[K, V]) String() string {
	if n == nil {
		return "nil"
	}
	if n.isHeader {
		return "head"
	}
	return fmt.Sprintf("%v", n.key)
}

// reset restores a node to a reusable, empty state. It releases no
// interval references, mirroring the teacher's Node.reset which
// touches only the node's own fields — intervals are borrowed, never
// owned.
func (n *node[K, V]) reset() *node[K, V] {
	if n == nil {
		return n
	}
	n.isHeader = false
	n.ownerCount = 0
	for i := range n.levels {
		n.levels[i].next = nil
		if n.levels[i].markers != nil {
			n.levels[i].markers.clearList()
		}
	}
	n.levels = n.levels[:0] // Reset without deallocating the slice.
	if n.eqMarkers != nil {
		n.eqMarkers.clearList()
	} else {
		n.eqMarkers = newMarkerList[K, V]()
	}
	var zero K
	n.key = zero
	return n
}
