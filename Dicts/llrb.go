package Dicts

import (
	"github.com/petar/GoLLRB/llrb"
	"github.com/sirupsen/logrus"
)

// lItem orders by the comparator it carries, so pivots need one too.
type lItem[K, V any] struct {
	k   K
	v   *V
	cmp func(K, K) int
}

func (u lItem[K, V]) Less(than llrb.Item) bool {
	return u.cmp(u.k, than.(lItem[K, V]).k) < 0
}

type llrbDict[K, V any] struct {
	t   *llrb.LLRB
	cmp func(K, K) int
	log logrus.FieldLogger
}

// NewLLRB returns a Dict backed by a left-leaning red-black tree from GoLLRB.
func NewLLRB[K, V any](cmp func(K, K) int, opts ...Option) Dict[K, V] {
	return &llrbDict[K, V]{llrb.New(), cmp, makeConfig(opts).log}
}

func (u *llrbDict[K, V]) pivot(k K) lItem[K, V] {
	return lItem[K, V]{k: k, cmp: u.cmp}
}

func (u *llrbDict[K, V]) item(it llrb.Item) (k K, v *V, ok bool) {
	if it != nil {
		i := it.(lItem[K, V])
		return i.k, i.v, true
	}
	return
}

func (u *llrbDict[K, V]) Insert(k K) (*V, bool, error) {
	if it := u.t.Get(u.pivot(k)); it != nil {
		return it.(lItem[K, V]).v, false, nil
	}
	v := new(V)
	u.t.InsertNoReplace(lItem[K, V]{k, v, u.cmp})
	return v, true, nil
}

func (u *llrbDict[K, V]) Search(k K) (*V, bool) {
	_, v, ok := u.item(u.t.Get(u.pivot(k)))
	return v, ok
}

func (u *llrbDict[K, V]) Remove(k K) (rk K, rv V, ok bool) {
	var v *V
	if rk, v, ok = u.item(u.t.Delete(u.pivot(k))); ok {
		rv = *v
	}
	return
}

func (u *llrbDict[K, V]) SearchLE(k K) (rk K, rv *V, ok bool) {
	u.t.DescendLessOrEqual(u.pivot(k), func(it llrb.Item) bool {
		rk, rv, ok = u.item(it)
		return false
	})
	return
}

func (u *llrbDict[K, V]) SearchLT(k K) (rk K, rv *V, ok bool) {
	u.t.DescendLessOrEqual(u.pivot(k), func(it llrb.Item) bool {
		if i := it.(lItem[K, V]); u.cmp(i.k, k) < 0 {
			rk, rv, ok = i.k, i.v, true
			return false
		}
		return true
	})
	return
}

func (u *llrbDict[K, V]) SearchGE(k K) (rk K, rv *V, ok bool) {
	u.t.AscendGreaterOrEqual(u.pivot(k), func(it llrb.Item) bool {
		rk, rv, ok = u.item(it)
		return false
	})
	return
}

func (u *llrbDict[K, V]) SearchGT(k K) (rk K, rv *V, ok bool) {
	u.t.AscendGreaterOrEqual(u.pivot(k), func(it llrb.Item) bool {
		if i := it.(lItem[K, V]); u.cmp(i.k, k) > 0 {
			rk, rv, ok = i.k, i.v, true
			return false
		}
		return true
	})
	return
}

func (u *llrbDict[K, V]) min() (K, *V, bool) {
	return u.item(u.t.Min())
}

func (u *llrbDict[K, V]) max() (K, *V, bool) {
	return u.item(u.t.Max())
}

func (u *llrbDict[K, V]) Traverse(visit func(K, V) bool) (count int) {
	mn := u.t.Min()
	if mn == nil {
		return
	}
	u.t.AscendGreaterOrEqual(mn, func(it llrb.Item) bool {
		count++
		i := it.(lItem[K, V])
		return visit(i.k, *i.v)
	})
	return
}

func (u *llrbDict[K, V]) Count() int {
	return u.t.Len()
}

// Clear drops the whole tree; GoLLRB has no way to reuse its nodes.
func (u *llrbDict[K, V]) Clear(del func(K, V)) int {
	count := u.t.Len()
	if del != nil {
		u.Traverse(func(k K, v V) bool {
			del(k, v)
			return true
		})
	}
	u.t = llrb.New()
	return count
}

func (u *llrbDict[K, V]) Free(del func(K, V)) int {
	return u.Clear(del)
}

func (u *llrbDict[K, V]) Verify() bool {
	return report(u.log, "llrb", checkSorted(u.cmp, u.t.Len(), u.Traverse))
}

func (u *llrbDict[K, V]) Cursor() Cursor[K, V] {
	return &keyCursor[K, V]{s: u}
}
