package Trees

import (
	"github.com/sirupsen/logrus"
	"golang.org/x/exp/constraints"
)

// HBTree is a height-balanced binary search tree mapping unique keys K to values V.
// S is the index type of the arena holding the nodes; a tree can hold at most
// the maximum value of S nodes (255 for uint8). Pick S as a wide upper bound of
// the size of the tree.
// The height of the tree is less than 1.44*log2(n+2)-0.33.
// HBTree shouldn't be created directly using struct literal; use New.
type HBTree[K, V any, S constraints.Unsigned] struct {
	base[K, V, S]
	cmp       func(K, K) int
	count     int
	limit     int
	rotations uint64
	log       logrus.FieldLogger
}

// New returns an empty tree ordered by cmp. cmp returns a negative number if
// a<b, 0 if a==b, and a positive number if a>b; see cmp.Compare for an example.
// New panics if cmp is nil.
func New[K, V any, S constraints.Unsigned](cmp func(K, K) int, opts ...Option) *HBTree[K, V, S] {
	if cmp == nil {
		panic("Trees: nil comparator")
	}
	c := makeConfig(opts)
	if capacity := uint64(^S(0)); uint64(c.hint) > capacity {
		c.hint = int(capacity)
	}
	if c.limit > 0 {
		c.hint = min(c.hint, c.limit)
	}
	u := &HBTree[K, V, S]{cmp: cmp, limit: c.limit, log: c.log}
	u.init(c.hint)
	return u
}

// Count of the nodes in the tree.
// Time: O(1); Space: O(1)
func (u *HBTree[K, V, S]) Count() int {
	return u.count
}

// Rotations performed since the tree was created, where a double rotation counts as 2.
func (u *HBTree[K, V, S]) Rotations() uint64 {
	return u.rotations
}

// rotLeft rotates n left and fixes the balance factors of n and its right child
// from their values before the rotation. It reports whether the height of the
// rotated subtree decreased, which is the case unless the right child was balanced.
func (u *HBTree[K, V, S]) rotLeft(n S) bool {
	r := u.ifs[n].r
	u.rotateLeft(n)
	u.rotations++
	changed := u.ifs[r].b != 0
	u.ifs[n].b -= 1 + max(u.ifs[r].b, 0)
	u.ifs[r].b -= 1 - min(u.ifs[n].b, 0)
	return changed
}

// rotRight is the mirror of rotLeft.
func (u *HBTree[K, V, S]) rotRight(n S) bool {
	l := u.ifs[n].l
	u.rotateRight(n)
	u.rotations++
	changed := u.ifs[l].b != 0
	u.ifs[n].b += 1 - min(u.ifs[l].b, 0)
	u.ifs[l].b += 1 + max(u.ifs[n].b, 0)
	return changed
}

// Clear removes every node, calling del with the key and value of each node
// first if del isn't nil. Nodes are visited in post-order. Returns the number of
// nodes removed. The arena keeps its memory for later inserts.
// Time: O(n)
func (u *HBTree[K, V, S]) Clear(del func(K, V)) int {
	n, count := u.root, u.count
	for n != 0 {
		if l := u.ifs[n].l; l != 0 {
			n = l
			continue
		}
		if r := u.ifs[n].r; r != 0 {
			n = r
			continue
		}
		if del != nil {
			e := u.entry(n)
			del(e.k, e.v)
		}
		p := u.ifs[n].p
		if p != 0 {
			if u.ifs[p].l == n {
				u.ifs[p].l = 0
			} else {
				u.ifs[p].r = 0
			}
		}
		n = p
	}
	for _, c := range u.es {
		clear(c)
	}
	u.ifs = u.ifs[:1]
	u.root, u.free, u.count = 0, 0, 0
	return count
}

// Free is Clear, but also releases the memory held by the arena.
func (u *HBTree[K, V, S]) Free(del func(K, V)) int {
	slots, chunks := len(u.ifs)-1, len(u.es)
	count := u.Clear(del)
	u.init(0)
	u.log.WithFields(logrus.Fields{"nodes": count, "slots": slots, "chunks": chunks}).Debug("Trees: released arena")
	return count
}
