package intervalskip

import "cmp"

// adjustMarkersOnInsert redistributes markers after a brand new node x
// has been spliced into the list at levels 0..topLevel(x), with update
// holding the predecessor at every level.
//
// Every level i <= topLevel(x) used to carry a single edge
// update[i] -> oldSucc; splicing x in splits it into update[i] -> x and
// x -> oldSucc. Any marker that sat on that edge necessarily contains
// key(x) (it spanned across the point x now occupies), so it needs a
// home on both the new incoming edge (phase I2) and the new outgoing
// edge (phase I1), at whichever level each side can still rise to.
func adjustMarkersOnInsert[K cmp.Ordered, V any](x *node[K, V], update []*node[K, V]) {
	top := x.topLevel()

	orig := make([][]*Interval[K, V], top+1)
	for i := 0; i <= top; i++ {
		orig[i] = append(orig[i], update[i].markersAt(i).items...)
	}

	adjustInsertLeaving(x, orig)

	for i := 0; i <= top; i++ {
		update[i].markersAt(i).clearList()
	}
	adjustInsertEntering(x, update, orig)

	x.eqMarkers.clearList()
	for i := 0; i <= top; i++ {
		x.markersAt(i).each(func(m *Interval[K, V]) {
			if !x.eqMarkers.contains(m) {
				x.eqMarkers.insert(m)
			}
		})
	}
}

// adjustInsertLeaving is phase I1: decides, for every marker that used
// to cross x's position, whether it settles on x's own outgoing edge
// at some level or keeps rising through levels x itself now offers.
func adjustInsertLeaving[K cmp.Ordered, V any](x *node[K, V], orig [][]*Interval[K, V]) {
	top := x.topLevel()
	promoted := newMarkerList[K, V]()
	i := 0
	for i+1 <= top && x.forward(i+1) != nil {
		newPromoted := newMarkerList[K, V]()
		for _, m := range orig[i] {
			if m.ContainsInterval(x.key, x.forward(i+1).key) {
				stripMarkerAlongLevel(x.forward(i), x.forward(i+1), i, m)
				newPromoted.insert(m)
			} else {
				x.markersAt(i).insert(m)
			}
		}
		promoted.each(func(m *Interval[K, V]) {
			if !m.ContainsInterval(x.key, x.forward(i+1).key) {
				x.markersAt(i).insert(m)
				if fx := x.forward(i); m.Contains(fx.key) {
					fx.eqMarkers.insert(m)
				}
			} else {
				stripMarkerAlongLevel(x.forward(i), x.forward(i+1), i, m)
				newPromoted.insert(m)
			}
		})
		promoted = newPromoted
		i++
	}
	promoted.each(func(m *Interval[K, V]) {
		x.markersAt(i).insert(m)
		if fx := x.forward(i); fx != nil && m.Contains(fx.key) {
			fx.eqMarkers.insert(m)
		}
	})
	for _, m := range orig[i] {
		x.markersAt(i).insert(m)
	}
}

// adjustInsertEntering is phase I2, the mirror of phase I1 on the
// predecessor side: it decides, for the same markers, which ancestor
// in update[] ends up holding the edge that enters x.
func adjustInsertEntering[K cmp.Ordered, V any](x *node[K, V], update []*node[K, V], orig [][]*Interval[K, V]) {
	top := x.topLevel()
	promoted := newMarkerList[K, V]()
	i := 0
	for i+1 <= top && !update[i+1].isHeader {
		newPromoted := newMarkerList[K, V]()
		for _, m := range orig[i] {
			if m.ContainsInterval(update[i+1].key, x.key) {
				stripMarkerAlongLevel(update[i+1], update[i], i, m)
				newPromoted.insert(m)
			} else {
				update[i].markersAt(i).insert(m)
			}
		}
		promoted.each(func(m *Interval[K, V]) {
			if !m.ContainsInterval(update[i+1].key, x.key) {
				update[i].markersAt(i).insert(m)
				if !update[i].isHeader && m.Contains(update[i].key) {
					update[i].eqMarkers.insert(m)
				}
			} else {
				stripMarkerAlongLevel(update[i+1], update[i], i, m)
				newPromoted.insert(m)
			}
		})
		promoted = newPromoted
		i++
	}
	promoted.each(func(m *Interval[K, V]) {
		if update[i].isHeader {
			return
		}
		update[i].markersAt(i).insert(m)
		if m.Contains(update[i].key) {
			update[i].eqMarkers.insert(m)
		}
	})
	if !update[i].isHeader {
		for _, m := range orig[i] {
			update[i].markersAt(i).insert(m)
		}
	}
}
