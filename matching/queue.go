package matching

import (
	"github.com/emirpasic/gods/trees/redblacktree"

	"github.com/katalvlaran/fourd/core"
)

// queueKey orders pending edges by priority, then id.
type queueKey struct {
	order float64
	id    int
}

func compareKeys(a, b interface{}) int {
	ka := a.(queueKey)
	kb := b.(queueKey)
	switch {
	case ka.order < kb.order:
		return -1
	case ka.order > kb.order:
		return 1
	case ka.id < kb.id:
		return -1
	case ka.id > kb.id:
		return 1
	}
	return 0
}

// workQueue is a deduplicating min-queue of edges backed by a red-black tree.
type workQueue struct {
	tree      *redblacktree.Tree
	highWater int
}

func newWorkQueue() *workQueue {
	return &workQueue{tree: redblacktree.NewWith(compareKeys)}
}

func (q *workQueue) push(e *core.Edge) {
	q.tree.Put(queueKey{order: e.Order, id: e.ID}, nil)
	if n := q.tree.Size(); n > q.highWater {
		q.highWater = n
	}
}

// pop removes and returns the id of the lowest pending edge.
func (q *workQueue) pop() (int, bool) {
	node := q.tree.Left()
	if node == nil {
		return 0, false
	}
	k := node.Key.(queueKey)
	q.tree.Remove(k)
	return k.id, true
}

func (q *workQueue) remove(e *core.Edge) {
	q.tree.Remove(queueKey{order: e.Order, id: e.ID})
}

func (q *workQueue) len() int { return q.tree.Size() }

func (q *workQueue) clear() {
	q.tree.Clear()
	q.highWater = 0
}
