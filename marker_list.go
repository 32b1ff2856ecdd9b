package intervalskip

import "cmp"

// markerList is an unordered bag of interval references. The adjustment
// protocol populates and drains these in arbitrary order; it never
// relies on insertion order, so the backing store is a plain slice
// with swap-delete removal.
//
// The ISL's own protocol never places the same interval in a marker
// list twice, so membership is tracked by pointer identity alone and
// duplicates are not deduplicated on insert.
type markerList[K cmp.Ordered, V any] struct {
	items []*Interval[K, V]
}

// newMarkerList returns a new, empty markerList.
func newMarkerList[K cmp.Ordered, V any]() *markerList[K, V] {
	return &markerList[K, V]{}
}

// insert adds i to the list.
func (m *markerList[K, V]) insert(i *Interval[K, V]) {
	m.items = append(m.items, i)
}

// remove deletes the first occurrence of i from the list, reporting
// whether it was present.
func (m *markerList[K, V]) remove(i *Interval[K, V]) bool {
	for idx, x := range m.items {
		if x == i {
			last := len(m.items) - 1
			m.items[idx] = m.items[last]
			m.items[last] = nil
			m.items = m.items[:last]
			return true
		}
	}
	return false
}

// contains reports whether i is present in the list.
func (m *markerList[K, V]) contains(i *Interval[K, V]) bool {
	for _, x := range m.items {
		if x == i {
			return true
		}
	}
	return false
}

// clearList detaches every entry. It never touches the intervals
// themselves, matching the removeAll-as-clear reading recorded in
// DESIGN.md's open-question decisions.
func (m *markerList[K, V]) clearList() {
	for idx := range m.items {
		m.items[idx] = nil
	}
	m.items = m.items[:0]
}

// len reports the number of entries currently held.
func (m *markerList[K, V]) len() int {
	return len(m.items)
}

// each calls fn for every interval currently in the list. fn must not
// mutate the list it is iterating.
func (m *markerList[K, V]) each(fn func(*Interval[K, V])) {
	for _, x := range m.items {
		fn(x)
	}
}

// appendTo appends every entry in m onto dst and returns the result,
// without modifying m.
func (m *markerList[K, V]) appendTo(dst []*Interval[K, V]) []*Interval[K, V] {
	return append(dst, m.items...)
}
