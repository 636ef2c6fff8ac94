package Trees

import (
	"golang.org/x/exp/constraints"
)

// chunkBits sets the number of entries per value chunk to 1<<chunkBits.
const chunkBits = 6

// info holds the links of a node. Index 0 is the absent node; ifs[0] is never
// written. For a released slot, l is the next index in the free list.
type info[S constraints.Unsigned] struct {
	p, l, r S
	b       int8 // height(r)-height(l), in [-1,1] between operations.
}

// entry is the key and value of a node. Entries live in chunks that are never
// reallocated, so &entry.v is stable for as long as the node is live.
type entry[K, V any] struct {
	k K
	v V
}

// base is the node arena. Links and entries are addressed by the same index.
type base[K, V any, S constraints.Unsigned] struct {
	root, free S
	ifs        []info[S]       // ifs[0] is the absent node. len(ifs) is the next never-used index.
	es         [][]entry[K, V] // entry i is es[i>>chunkBits][i&(1<<chunkBits-1)].
}

func (u *base[K, V, S]) init(hint int) {
	u.ifs = make([]info[S], 1, hint+1)
	u.es = make([][]entry[K, V], 0, (hint>>chunkBits)+1)
	u.root, u.free = 0, 0
}

func (u *base[K, V, S]) entry(i S) *entry[K, V] {
	return &u.es[uint(i)>>chunkBits][uint(i)&(1<<chunkBits-1)]
}

// alloc returns a zeroed, unlinked slot, or 0 if every index representable by S
// is in use. Released slots are reused before the arena grows.
func (u *base[K, V, S]) alloc() S {
	if i := u.free; i != 0 {
		u.free = u.ifs[i].l
		u.ifs[i] = info[S]{}
		return i
	}
	n := uint64(len(u.ifs))
	if n > uint64(^S(0)) {
		return 0
	}
	u.ifs = append(u.ifs, info[S]{})
	if c := int(n >> chunkBits); c == len(u.es) {
		u.es = append(u.es, make([]entry[K, V], 1<<chunkBits))
	}
	return S(n)
}

// release zeroes slot i and pushes it onto the free list.
func (u *base[K, V, S]) release(i S) {
	*u.entry(i) = entry[K, V]{}
	u.ifs[i] = info[S]{l: u.free}
	u.free = i
}

// replace makes n take the place of o as a child of p, or as the root if p is 0.
func (u *base[K, V, S]) replace(p, o, n S) {
	if p == 0 {
		u.root = n
	} else if u.ifs[p].l == o {
		u.ifs[p].l = n
	} else {
		u.ifs[p].r = n
	}
}

// rotateLeft moves the right child of n into n's position.
//
//	   |             |
//	   n             r
//	  / \           / \
//	 a   r   ==>   n   c
//	    / \       / \
//	   b   c     a   b
//
// Time: O(1); Space: O(1)
func (u *base[K, V, S]) rotateLeft(n S) {
	r := u.ifs[n].r
	b := u.ifs[r].l
	if u.ifs[n].r = b; b != 0 {
		u.ifs[b].p = n
	}
	p := u.ifs[n].p
	u.ifs[r].p = p
	u.replace(p, n, r)
	u.ifs[r].l = n
	u.ifs[n].p = r
}

// rotateRight moves the left child of n into n's position. It's the mirror of rotateLeft.
// Time: O(1); Space: O(1)
func (u *base[K, V, S]) rotateRight(n S) {
	l := u.ifs[n].l
	b := u.ifs[l].r
	if u.ifs[n].l = b; b != 0 {
		u.ifs[b].p = n
	}
	p := u.ifs[n].p
	u.ifs[l].p = p
	u.replace(p, n, l)
	u.ifs[l].r = n
	u.ifs[n].p = l
}

// first is the leftmost node of the subtree at i.
func (u *base[K, V, S]) first(i S) S {
	for ; u.ifs[i].l != 0; i = u.ifs[i].l {
	}
	return i
}

// last is the rightmost node of the subtree at i.
func (u *base[K, V, S]) last(i S) S {
	for ; u.ifs[i].r != 0; i = u.ifs[i].r {
	}
	return i
}

// next is the in-order successor of i, or 0.
// Time: amortized O(1), worst O(log n)
func (u *base[K, V, S]) next(i S) S {
	if r := u.ifs[i].r; r != 0 {
		return u.first(r)
	}
	p := u.ifs[i].p
	for p != 0 && u.ifs[p].r == i {
		i, p = p, u.ifs[p].p
	}
	return p
}

// prev is the in-order predecessor of i, or 0.
func (u *base[K, V, S]) prev(i S) S {
	if l := u.ifs[i].l; l != 0 {
		return u.last(l)
	}
	p := u.ifs[i].p
	for p != 0 && u.ifs[p].l == i {
		i, p = p, u.ifs[p].p
	}
	return p
}
