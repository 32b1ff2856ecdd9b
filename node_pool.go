package intervalskip

import (
	"cmp"
	"sync"
)

// NodePool is a pool of reusable index nodes, shared across one or
// more ISL instances. A NodePool is safe for concurrent use by
// multiple goroutines, even though an individual ISL is not (§5).
type NodePool[K cmp.Ordered, V any] struct {
	pool sync.Pool
}

// NewNodePool returns a new, empty NodePool.
func NewNodePool[K cmp.Ordered, V any]() *NodePool[K, V] {
	return &NodePool[K, V]{
		pool: sync.Pool{
			New: func() any {
				return &node[K, V]{}
			},
		},
	}
}

// get retrieves a node from the pool or allocates a new one, sized to
// hold levels+1 forward slots (levels ∈ [0, MaxLevel]).
func (p *NodePool[K, V]) get(levels int) *node[K, V] {
	n := p.pool.Get().(*node[K, V])
	want := levels + 1
	if cap(n.levels) >= want {
		n.levels = n.levels[:want]
		for i := range n.levels {
			n.levels[i].next = nil
			if n.levels[i].markers == nil {
				n.levels[i].markers = newMarkerList[K, V]()
			} else {
				n.levels[i].markers.clearList()
			}
		}
	} else {
		n.levels = make([]nodeLevel[K, V], want)
		for i := range n.levels {
			n.levels[i].markers = newMarkerList[K, V]()
		}
	}
	if n.eqMarkers == nil {
		n.eqMarkers = newMarkerList[K, V]()
	}
	return n
}

// put releases a node's owned resources and returns it to the pool.
func (p *NodePool[K, V]) put(n *node[K, V]) {
	p.pool.Put(n.reset())
}
