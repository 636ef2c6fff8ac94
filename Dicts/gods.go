package Dicts

import (
	"github.com/cockroachdb/errors"
	"github.com/emirpasic/gods/trees/avltree"
	"github.com/emirpasic/gods/trees/redblacktree"
	"github.com/emirpasic/gods/utils"
	"github.com/sirupsen/logrus"
)

// godsTree is the part of the gods binary trees used here; N is the node type.
type godsTree[N any] interface {
	Put(key, value interface{})
	GetNode(key interface{}) *N
	Remove(key interface{})
	Size() int
	Clear()
	Left() *N
	Right() *N
	Floor(key interface{}) (*N, bool)
	Ceiling(key interface{}) (*N, bool)
}

// godsNav reads the exported fields of a gods node.
type godsNav[N any] struct {
	root       func() *N
	l, r, p    func(*N) *N
	key, value func(*N) interface{}
}

// godsDict adapts a gods tree whose values are *V slots. Directional searches
// and cursors walk the nodes through godsNav.
type godsDict[K, V any, N any] struct {
	t    godsTree[N]
	nav  godsNav[N]
	cmp  func(K, K) int
	name string
	log  logrus.FieldLogger
}

func comparator[K any](cmp func(K, K) int) utils.Comparator {
	return func(a, b interface{}) int {
		return cmp(a.(K), b.(K))
	}
}

// NewGodsAVL returns a Dict backed by a gods AVL tree.
func NewGodsAVL[K, V any](cmp func(K, K) int, opts ...Option) Dict[K, V] {
	t := avltree.NewWith(comparator(cmp))
	return &godsDict[K, V, avltree.Node]{t: t, cmp: cmp, name: "gods/avltree", log: makeConfig(opts).log, nav: godsNav[avltree.Node]{
		root:  func() *avltree.Node { return t.Root },
		l:     func(n *avltree.Node) *avltree.Node { return n.Children[0] },
		r:     func(n *avltree.Node) *avltree.Node { return n.Children[1] },
		p:     func(n *avltree.Node) *avltree.Node { return n.Parent },
		key:   func(n *avltree.Node) interface{} { return n.Key },
		value: func(n *avltree.Node) interface{} { return n.Value },
	}}
}

// NewGodsRB returns a Dict backed by a gods red-black tree.
func NewGodsRB[K, V any](cmp func(K, K) int, opts ...Option) Dict[K, V] {
	t := redblacktree.NewWith(comparator(cmp))
	return &godsDict[K, V, redblacktree.Node]{t: t, cmp: cmp, name: "gods/redblacktree", log: makeConfig(opts).log, nav: godsNav[redblacktree.Node]{
		root:  func() *redblacktree.Node { return t.Root },
		l:     func(n *redblacktree.Node) *redblacktree.Node { return n.Left },
		r:     func(n *redblacktree.Node) *redblacktree.Node { return n.Right },
		p:     func(n *redblacktree.Node) *redblacktree.Node { return n.Parent },
		key:   func(n *redblacktree.Node) interface{} { return n.Key },
		value: func(n *redblacktree.Node) interface{} { return n.Value },
	}}
}

func (u *godsDict[K, V, N]) k(n *N) K {
	return u.nav.key(n).(K)
}

func (u *godsDict[K, V, N]) v(n *N) *V {
	return u.nav.value(n).(*V)
}

func (u *godsDict[K, V, N]) result(n *N) (k K, v *V, ok bool) {
	if n != nil {
		return u.k(n), u.v(n), true
	}
	return
}

func (u *godsDict[K, V, N]) next(n *N) *N {
	if r := u.nav.r(n); r != nil {
		for n = r; u.nav.l(n) != nil; n = u.nav.l(n) {
		}
		return n
	}
	p := u.nav.p(n)
	for p != nil && u.nav.r(p) == n {
		n, p = p, u.nav.p(p)
	}
	return p
}

func (u *godsDict[K, V, N]) prev(n *N) *N {
	if l := u.nav.l(n); l != nil {
		for n = l; u.nav.r(n) != nil; n = u.nav.r(n) {
		}
		return n
	}
	p := u.nav.p(n)
	for p != nil && u.nav.l(p) == n {
		n, p = p, u.nav.p(p)
	}
	return p
}

func (u *godsDict[K, V, N]) Insert(k K) (*V, bool, error) {
	if n := u.t.GetNode(k); n != nil {
		return u.v(n), false, nil
	}
	v := new(V)
	u.t.Put(k, v)
	return v, true, nil
}

func (u *godsDict[K, V, N]) Search(k K) (*V, bool) {
	if n := u.t.GetNode(k); n != nil {
		return u.v(n), true
	}
	return nil, false
}

func (u *godsDict[K, V, N]) Remove(k K) (rk K, rv V, ok bool) {
	n := u.t.GetNode(k)
	if n == nil {
		return
	}
	rk, rv = u.k(n), *u.v(n)
	u.t.Remove(k)
	return rk, rv, true
}

func (u *godsDict[K, V, N]) SearchLE(k K) (K, *V, bool) {
	n, _ := u.t.Floor(k)
	return u.result(n)
}

func (u *godsDict[K, V, N]) SearchGE(k K) (K, *V, bool) {
	n, _ := u.t.Ceiling(k)
	return u.result(n)
}

func (u *godsDict[K, V, N]) lt(k K) (ret *N) {
	for n := u.nav.root(); n != nil; {
		if u.cmp(k, u.k(n)) <= 0 {
			n = u.nav.l(n)
		} else {
			ret, n = n, u.nav.r(n)
		}
	}
	return
}

func (u *godsDict[K, V, N]) gt(k K) (ret *N) {
	for n := u.nav.root(); n != nil; {
		if u.cmp(k, u.k(n)) >= 0 {
			n = u.nav.r(n)
		} else {
			ret, n = n, u.nav.l(n)
		}
	}
	return
}

func (u *godsDict[K, V, N]) SearchLT(k K) (K, *V, bool) {
	return u.result(u.lt(k))
}

func (u *godsDict[K, V, N]) SearchGT(k K) (K, *V, bool) {
	return u.result(u.gt(k))
}

func (u *godsDict[K, V, N]) Traverse(visit func(K, V) bool) (count int) {
	for n := u.t.Left(); n != nil; n = u.next(n) {
		count++
		if !visit(u.k(n), *u.v(n)) {
			break
		}
	}
	return
}

func (u *godsDict[K, V, N]) Count() int {
	return u.t.Size()
}

func (u *godsDict[K, V, N]) Clear(del func(K, V)) int {
	count := u.t.Size()
	if del != nil {
		for n := u.t.Left(); n != nil; n = u.next(n) {
			del(u.k(n), *u.v(n))
		}
	}
	u.t.Clear()
	return count
}

// Free is Clear; gods trees hold no memory beyond their nodes.
func (u *godsDict[K, V, N]) Free(del func(K, V)) int {
	return u.Clear(del)
}

// check the parent links of the subtree at n, returning its node count.
func (u *godsDict[K, V, N]) check(p, n *N) (int, error) {
	if n == nil {
		return 0, nil
	}
	if u.nav.p(n) != p {
		return 0, errors.AssertionFailedf("node %v: wrong parent", u.nav.key(n))
	}
	if _, ok := u.nav.value(n).(*V); !ok {
		return 0, errors.AssertionFailedf("node %v: value isn't a slot", u.nav.key(n))
	}
	lc, err := u.check(n, u.nav.l(n))
	if err != nil {
		return 0, err
	}
	rc, err := u.check(n, u.nav.r(n))
	return lc + rc + 1, err
}

func (u *godsDict[K, V, N]) Verify() bool {
	n, err := u.check(nil, u.nav.root())
	if err == nil && n != u.t.Size() {
		err = errors.AssertionFailedf("size is %d but %d nodes are reachable", u.t.Size(), n)
	}
	if err == nil {
		err = checkSorted(u.cmp, u.t.Size(), u.Traverse)
	}
	return report(u.log, u.name, err)
}

func (u *godsDict[K, V, N]) Cursor() Cursor[K, V] {
	return &godsCursor[K, V, N]{d: u}
}

type godsCursor[K, V any, N any] struct {
	d *godsDict[K, V, N]
	n *N
}

func (u *godsCursor[K, V, N]) at(n *N) bool {
	u.n = n
	return n != nil
}

func (u *godsCursor[K, V, N]) Valid() bool {
	return u.n != nil
}

func (u *godsCursor[K, V, N]) Invalidate() {
	u.n = nil
}

func (u *godsCursor[K, V, N]) First() bool {
	return u.at(u.d.t.Left())
}

func (u *godsCursor[K, V, N]) Last() bool {
	return u.at(u.d.t.Right())
}

func (u *godsCursor[K, V, N]) Next() bool {
	if u.n == nil {
		return u.First()
	}
	return u.at(u.d.next(u.n))
}

func (u *godsCursor[K, V, N]) Prev() bool {
	if u.n == nil {
		return u.Last()
	}
	return u.at(u.d.prev(u.n))
}

func (u *godsCursor[K, V, N]) NextN(n int) bool {
	return stepN(n, u.Next, u.Valid)
}

func (u *godsCursor[K, V, N]) PrevN(n int) bool {
	return stepN(n, u.Prev, u.Valid)
}

func (u *godsCursor[K, V, N]) Seek(k K) bool {
	return u.at(u.d.t.GetNode(k))
}

func (u *godsCursor[K, V, N]) SeekLE(k K) bool {
	n, _ := u.d.t.Floor(k)
	return u.at(n)
}

func (u *godsCursor[K, V, N]) SeekLT(k K) bool {
	return u.at(u.d.lt(k))
}

func (u *godsCursor[K, V, N]) SeekGE(k K) bool {
	n, _ := u.d.t.Ceiling(k)
	return u.at(n)
}

func (u *godsCursor[K, V, N]) SeekGT(k K) bool {
	return u.at(u.d.gt(k))
}

func (u *godsCursor[K, V, N]) Key() (k K, ok bool) {
	if u.n != nil {
		return u.d.k(u.n), true
	}
	return
}

func (u *godsCursor[K, V, N]) Value() *V {
	if u.n != nil {
		return u.d.v(u.n)
	}
	return nil
}

// stepN calls step n times, stopping early once it fails.
func stepN(n int, step func() bool, valid func() bool) bool {
	for ; n > 0; n-- {
		if !step() {
			return false
		}
	}
	return valid()
}
