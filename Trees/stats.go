package Trees

import (
	"fmt"
	"io"

	"github.com/g-m-twostay/go-dict/Queues"
)

// levels walks the tree breadth first. height is the number of nodes on the
// longest path from the root to a leaf, minHeight the number of nodes on the
// shortest path from the root to a node missing a child, and pathLen the sum of
// the depths of all nodes with the root at depth 0. All are 0 for an empty tree.
func (u *HBTree[K, V, S]) levels() (height, minHeight, pathLen int) {
	if u.root == 0 {
		return
	}
	q := Queues.MakeArrayQueue[S](uint(u.count/2 + 1))
	q.Push(u.root)
	for depth := 0; !q.Empty(); depth++ {
		for w := q.Size(); w > 0; w-- {
			n, _ := q.Pop()
			pathLen += depth
			l, r := u.ifs[n].l, u.ifs[n].r
			if minHeight == 0 && (l == 0 || r == 0) {
				minHeight = depth + 1
			}
			if l != 0 {
				q.Push(l)
			}
			if r != 0 {
				q.Push(r)
			}
		}
		height = depth + 1
	}
	return
}

// Height of the tree in levels: the number of nodes, not edges, on the longest
// path from the root to a leaf. An empty tree has height 0 and a single node 1.
// Time: O(n)
func (u *HBTree[K, V, S]) Height() int {
	h, _, _ := u.levels()
	return h
}

// MinHeight is the number of levels, counted in nodes like Height, on the
// shortest path from the root to a node with fewer than 2 children. A single
// node has MinHeight 1.
func (u *HBTree[K, V, S]) MinHeight() int {
	_, m, _ := u.levels()
	return m
}

// PathLen is the sum of the depths of all nodes, the root being at depth 0.
// PathLen/Count is the average number of comparisons of a successful Search minus 1.
func (u *HBTree[K, V, S]) PathLen() int {
	_, _, p := u.levels()
	return p
}

type branch byte

const (
	atRoot branch = iota
	atLeft
	atRight
)

// Dump writes the tree to w sideways, the right subtree above its parent. Each
// line has the key, the key of the parent and the balance factor, plus the value
// if values is true. Returns the height of the tree. Implemented recursively.
func (u *HBTree[K, V, S]) Dump(w io.Writer, values bool) int {
	return u.dump(w, u.root, "", atRoot, values)
}

func (u *HBTree[K, V, S]) dump(w io.Writer, n S, prefix string, br branch, values bool) int {
	if n == 0 {
		return 0
	}
	cur := u.ifs[n]
	rd, ld := 0, 0
	if cur.r != 0 {
		t := "       "
		if br == atLeft {
			t = "|      "
		}
		rd = u.dump(w, cur.r, prefix+t, atRight, values)
	}
	switch br {
	case atRoot:
		fmt.Fprintf(w, "%s|------+ ", prefix)
	case atLeft:
		fmt.Fprintf(w, "%s\\------+ ", prefix)
	case atRight:
		fmt.Fprintf(w, "%s/------+ ", prefix)
	}
	e := u.entry(n)
	var up any
	if cur.p != 0 {
		up = u.entry(cur.p).k
	}
	if values {
		fmt.Fprintf(w, "%v → %v ^%v %+d\n", e.k, e.v, up, cur.b)
	} else {
		fmt.Fprintf(w, "%v ^%v %+d\n", e.k, up, cur.b)
	}
	if cur.l != 0 {
		t := "       "
		if br == atRight {
			t = "|      "
		}
		ld = u.dump(w, cur.l, prefix+t, atLeft, values)
	}
	return 1 + max(rd, ld)
}
