package Dicts

import (
	"github.com/google/btree"
	"github.com/sirupsen/logrus"
)

type bItem[K, V any] struct {
	k K
	v *V
}

type bTreeDict[K, V any] struct {
	t   *btree.BTreeG[bItem[K, V]]
	cmp func(K, K) int
	log logrus.FieldLogger
}

// NewBTree returns a Dict backed by a google/btree B-tree of the given degree.
// NewBTree panics if degree<2.
func NewBTree[K, V any](degree int, cmp func(K, K) int, opts ...Option) Dict[K, V] {
	return &bTreeDict[K, V]{btree.NewG[bItem[K, V]](degree, func(a, b bItem[K, V]) bool {
		return cmp(a.k, b.k) < 0
	}), cmp, makeConfig(opts).log}
}

func (u *bTreeDict[K, V]) Insert(k K) (*V, bool, error) {
	if it, ok := u.t.Get(bItem[K, V]{k: k}); ok {
		return it.v, false, nil
	}
	v := new(V)
	u.t.ReplaceOrInsert(bItem[K, V]{k, v})
	return v, true, nil
}

func (u *bTreeDict[K, V]) Search(k K) (*V, bool) {
	it, ok := u.t.Get(bItem[K, V]{k: k})
	return it.v, ok
}

func (u *bTreeDict[K, V]) Remove(k K) (rk K, rv V, ok bool) {
	it, ok := u.t.Delete(bItem[K, V]{k: k})
	if ok {
		rk, rv = it.k, *it.v
	}
	return
}

func (u *bTreeDict[K, V]) SearchLE(k K) (rk K, rv *V, ok bool) {
	u.t.DescendLessOrEqual(bItem[K, V]{k: k}, func(it bItem[K, V]) bool {
		rk, rv, ok = it.k, it.v, true
		return false
	})
	return
}

func (u *bTreeDict[K, V]) SearchLT(k K) (rk K, rv *V, ok bool) {
	u.t.DescendLessOrEqual(bItem[K, V]{k: k}, func(it bItem[K, V]) bool {
		if u.cmp(it.k, k) == 0 {
			return true
		}
		rk, rv, ok = it.k, it.v, true
		return false
	})
	return
}

func (u *bTreeDict[K, V]) SearchGE(k K) (rk K, rv *V, ok bool) {
	u.t.AscendGreaterOrEqual(bItem[K, V]{k: k}, func(it bItem[K, V]) bool {
		rk, rv, ok = it.k, it.v, true
		return false
	})
	return
}

func (u *bTreeDict[K, V]) SearchGT(k K) (rk K, rv *V, ok bool) {
	u.t.AscendGreaterOrEqual(bItem[K, V]{k: k}, func(it bItem[K, V]) bool {
		if u.cmp(it.k, k) == 0 {
			return true
		}
		rk, rv, ok = it.k, it.v, true
		return false
	})
	return
}

func (u *bTreeDict[K, V]) min() (K, *V, bool) {
	it, ok := u.t.Min()
	return it.k, it.v, ok
}

func (u *bTreeDict[K, V]) max() (K, *V, bool) {
	it, ok := u.t.Max()
	return it.k, it.v, ok
}

func (u *bTreeDict[K, V]) Traverse(visit func(K, V) bool) (count int) {
	u.t.Ascend(func(it bItem[K, V]) bool {
		count++
		return visit(it.k, *it.v)
	})
	return
}

func (u *bTreeDict[K, V]) Count() int {
	return u.t.Len()
}

func (u *bTreeDict[K, V]) clear(del func(K, V), keepNodes bool) int {
	count := u.t.Len()
	if del != nil {
		u.t.Ascend(func(it bItem[K, V]) bool {
			del(it.k, *it.v)
			return true
		})
	}
	u.t.Clear(keepNodes)
	return count
}

// Clear keeps the nodes of the B-tree on its free list for later inserts.
func (u *bTreeDict[K, V]) Clear(del func(K, V)) int {
	return u.clear(del, true)
}

func (u *bTreeDict[K, V]) Free(del func(K, V)) int {
	return u.clear(del, false)
}

func (u *bTreeDict[K, V]) Verify() bool {
	return report(u.log, "btree", checkSorted(u.cmp, u.t.Len(), u.Traverse))
}

func (u *bTreeDict[K, V]) Cursor() Cursor[K, V] {
	return &keyCursor[K, V]{s: u}
}
