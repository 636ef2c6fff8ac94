package Trees

import "golang.org/x/exp/constraints"

// Cursor is a position in a HBTree. It's either at a node or invalid; before
// the first node, after the last node and invalidated are all the same invalid
// state. The zero value isn't usable; get one from HBTree.Cursor.
// Any insert or remove on the tree invalidates the position of the cursor, and
// using it afterward without repositioning it with First, Last or a Seek method
// gives undefined results.
type Cursor[K, V any, S constraints.Unsigned] struct {
	t *HBTree[K, V, S]
	n S
}

// Cursor returns an invalid cursor over the tree.
func (u *HBTree[K, V, S]) Cursor() *Cursor[K, V, S] {
	return &Cursor[K, V, S]{t: u}
}

// Valid reports whether the cursor is at a node.
func (u *Cursor[K, V, S]) Valid() bool {
	return u.n != 0
}

// Invalidate the cursor.
func (u *Cursor[K, V, S]) Invalidate() {
	u.n = 0
}

// First moves to the smallest key.
func (u *Cursor[K, V, S]) First() bool {
	if u.n = 0; u.t.root != 0 {
		u.n = u.t.first(u.t.root)
	}
	return u.n != 0
}

// Last moves to the greatest key.
func (u *Cursor[K, V, S]) Last() bool {
	if u.n = 0; u.t.root != 0 {
		u.n = u.t.last(u.t.root)
	}
	return u.n != 0
}

// Next moves to the next greater key. An invalid cursor moves to the first key.
func (u *Cursor[K, V, S]) Next() bool {
	if u.n == 0 {
		return u.First()
	}
	u.n = u.t.next(u.n)
	return u.n != 0
}

// Prev moves to the next smaller key. An invalid cursor moves to the last key.
func (u *Cursor[K, V, S]) Prev() bool {
	if u.n == 0 {
		return u.Last()
	}
	u.n = u.t.prev(u.n)
	return u.n != 0
}

// NextN calls Next n times, stopping early once the cursor becomes invalid.
// Time: O(n+log size)
func (u *Cursor[K, V, S]) NextN(n int) bool {
	for ; n > 0; n-- {
		if !u.Next() {
			return false
		}
	}
	return u.n != 0
}

// PrevN calls Prev n times, stopping early once the cursor becomes invalid.
func (u *Cursor[K, V, S]) PrevN(n int) bool {
	for ; n > 0; n-- {
		if !u.Prev() {
			return false
		}
	}
	return u.n != 0
}

// Seek moves to key k, or invalidates the cursor if k isn't in the tree.
func (u *Cursor[K, V, S]) Seek(k K) bool {
	u.n = u.t.find(k)
	return u.n != 0
}

// SeekLE moves to the greatest key <=k.
func (u *Cursor[K, V, S]) SeekLE(k K) bool {
	u.n = u.t.findLE(k)
	return u.n != 0
}

// SeekLT moves to the greatest key <k.
func (u *Cursor[K, V, S]) SeekLT(k K) bool {
	u.n = u.t.findLT(k)
	return u.n != 0
}

// SeekGE moves to the smallest key >=k.
func (u *Cursor[K, V, S]) SeekGE(k K) bool {
	u.n = u.t.findGE(k)
	return u.n != 0
}

// SeekGT moves to the smallest key >k.
func (u *Cursor[K, V, S]) SeekGT(k K) bool {
	u.n = u.t.findGT(k)
	return u.n != 0
}

// Key at the cursor.
func (u *Cursor[K, V, S]) Key() (k K, ok bool) {
	if u.n != 0 {
		return u.t.entry(u.n).k, true
	}
	return
}

// Value slot at the cursor, nil if the cursor is invalid. The slot can be written in place.
func (u *Cursor[K, V, S]) Value() *V {
	if u.n != 0 {
		return &u.t.entry(u.n).v
	}
	return nil
}
