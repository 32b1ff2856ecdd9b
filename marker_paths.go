package intervalskip

import "cmp"

// stripMarkerAlongLevel removes m from the level-i marker list of every
// node visited while stepping from "from" to "to" (exclusive) via
// forward(i), and from the eq-marker list of every node strictly
// between the two. Used when a marker rises to a higher level and must
// no longer mark the finer-grained edges it used to pass through.
func stripMarkerAlongLevel[K cmp.Ordered, V any](from, to *node[K, V], level int, m *Interval[K, V]) {
	cur := from
	for cur != to {
		cur.markersAt(level).remove(m)
		next := cur.forward(level)
		if next == nil {
			invariantPanic("marker path ended before reaching expected node")
		}
		if next != to {
			next.eqMarkers.remove(m)
		}
		cur = next
	}
}

// demoteMarkerAlongLevel adds m to the level marker list of every node
// visited while stepping from "from" to "to" (exclusive) via
// forward(level), and to the eq-marker list of every node strictly
// between the two. Used when a deleted node forces a marker back down
// to a finer-grained set of edges it used to skip over.
//
// A nil "to" means there is no bound above — x was the tallest node in
// the list, so the path runs to the true end of the level-i chain.
func demoteMarkerAlongLevel[K cmp.Ordered, V any](from, to *node[K, V], level int, m *Interval[K, V]) {
	cur := from
	for cur != to {
		cur.markersAt(level).insert(m)
		next := cur.forward(level)
		if next == nil {
			if to == nil {
				return
			}
			invariantPanic("marker path ended before reaching expected node")
		}
		if next != to {
			next.eqMarkers.insert(m)
		}
		cur = next
	}
}
