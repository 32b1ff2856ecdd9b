package intervalskip

import "cmp"

// placeMarkers runs the two-phase marker placement protocol for a
// freshly-inserted interval m with left node l and right node r,
// walking the topmost edges that stay inside m and leaving markers
// along the way.
func placeMarkers[K cmp.Ordered, V any](m *Interval[K, V], l, r *node[K, V]) {
	current := l
	if m.Contains(current.key) {
		current.eqMarkers.insert(m)
	}

	// Phase P1: ascending path from l.
	i := 0
	for current.forward(i) != nil && m.ContainsInterval(current.key, current.forward(i).key) {
		for i+1 <= current.topLevel() && current.forward(i+1) != nil &&
			m.ContainsInterval(current.key, current.forward(i+1).key) {
			i++
		}
		current.markersAt(i).insert(m)
		current = current.forward(i)
		if m.Contains(current.key) {
			current.eqMarkers.insert(m)
		}
		if current == r {
			return
		}
	}

	// Phase P2: descending path to r.
	for current != r {
		for i > 0 && (current.forward(i) == nil || !m.ContainsInterval(current.key, current.forward(i).key)) {
			i--
		}
		if current.forward(i) == nil {
			invariantPanic("descending placement path found no viable edge before reaching right endpoint")
		}
		current.markersAt(i).insert(m)
		current = current.forward(i)
		if m.Contains(current.key) {
			current.eqMarkers.insert(m)
		}
	}
}

// removeMarkers runs the mirror of placeMarkers, removing m from every
// marker and eq-marker list visited along the same ascending-then-
// descending traversal used to place it.
func removeMarkers[K cmp.Ordered, V any](m *Interval[K, V], l, r *node[K, V]) {
	current := l
	if m.Contains(current.key) {
		current.eqMarkers.remove(m)
	}

	i := 0
	for current.forward(i) != nil && m.ContainsInterval(current.key, current.forward(i).key) {
		for i+1 <= current.topLevel() && current.forward(i+1) != nil &&
			m.ContainsInterval(current.key, current.forward(i+1).key) {
			i++
		}
		current.markersAt(i).remove(m)
		current = current.forward(i)
		if m.Contains(current.key) {
			current.eqMarkers.remove(m)
		}
		if current == r {
			return
		}
	}

	for current != r {
		for i > 0 && (current.forward(i) == nil || !m.ContainsInterval(current.key, current.forward(i).key)) {
			i--
		}
		if current.forward(i) == nil {
			invariantPanic("descending removal path found no viable edge before reaching right endpoint")
		}
		current.markersAt(i).remove(m)
		current = current.forward(i)
		if m.Contains(current.key) {
			current.eqMarkers.remove(m)
		}
	}
}
