package Trees

import "iter"

// find the node with key k, or 0.
func (u *HBTree[K, V, S]) find(k K) S {
	for n := u.root; n != 0; {
		if c := u.cmp(k, u.entry(n).k); c < 0 {
			n = u.ifs[n].l
		} else if c > 0 {
			n = u.ifs[n].r
		} else {
			return n
		}
	}
	return 0
}

// findLE is the node with the greatest key <=k, or 0.
func (u *HBTree[K, V, S]) findLE(k K) (ret S) {
	for n := u.root; n != 0; {
		if c := u.cmp(k, u.entry(n).k); c < 0 {
			n = u.ifs[n].l
		} else if c > 0 {
			ret, n = n, u.ifs[n].r
		} else {
			return n
		}
	}
	return
}

// findLT is the node with the greatest key <k, or 0.
func (u *HBTree[K, V, S]) findLT(k K) (ret S) {
	for n := u.root; n != 0; {
		if u.cmp(k, u.entry(n).k) <= 0 {
			n = u.ifs[n].l
		} else {
			ret, n = n, u.ifs[n].r
		}
	}
	return
}

// findGE is the node with the smallest key >=k, or 0.
func (u *HBTree[K, V, S]) findGE(k K) (ret S) {
	for n := u.root; n != 0; {
		if c := u.cmp(k, u.entry(n).k); c > 0 {
			n = u.ifs[n].r
		} else if c < 0 {
			ret, n = n, u.ifs[n].l
		} else {
			return n
		}
	}
	return
}

// findGT is the node with the smallest key >k, or 0.
func (u *HBTree[K, V, S]) findGT(k K) (ret S) {
	for n := u.root; n != 0; {
		if u.cmp(k, u.entry(n).k) >= 0 {
			n = u.ifs[n].r
		} else {
			ret, n = n, u.ifs[n].l
		}
	}
	return
}

func (u *HBTree[K, V, S]) result(n S) (k K, v *V, ok bool) {
	if n != 0 {
		e := u.entry(n)
		return e.k, &e.v, true
	}
	return
}

// Search returns the value slot of key k. The slot can be written in place.
// Time: O(log n); Space: O(1)
func (u *HBTree[K, V, S]) Search(k K) (*V, bool) {
	if n := u.find(k); n != 0 {
		return &u.entry(n).v, true
	}
	return nil, false
}

// SearchLE returns the greatest key <=k and its value slot.
func (u *HBTree[K, V, S]) SearchLE(k K) (K, *V, bool) {
	return u.result(u.findLE(k))
}

// SearchLT returns the greatest key <k and its value slot.
func (u *HBTree[K, V, S]) SearchLT(k K) (K, *V, bool) {
	return u.result(u.findLT(k))
}

// SearchGE returns the smallest key >=k and its value slot.
func (u *HBTree[K, V, S]) SearchGE(k K) (K, *V, bool) {
	return u.result(u.findGE(k))
}

// SearchGT returns the smallest key >k and its value slot.
func (u *HBTree[K, V, S]) SearchGT(k K) (K, *V, bool) {
	return u.result(u.findGT(k))
}

// Min key of the tree.
// Time: O(log n); Space: O(1)
func (u *HBTree[K, V, S]) Min() (k K, ok bool) {
	if u.root != 0 {
		return u.entry(u.first(u.root)).k, true
	}
	return
}

// Max key of the tree.
func (u *HBTree[K, V, S]) Max() (k K, ok bool) {
	if u.root != 0 {
		return u.entry(u.last(u.root)).k, true
	}
	return
}

// Traverse calls visit on each node in ascending key order until visit returns
// false. Returns the number of nodes visited, including the one that stopped the
// traversal. visit mustn't modify the tree.
// Time: O(n); Space: O(1)
func (u *HBTree[K, V, S]) Traverse(visit func(K, V) bool) (count int) {
	if u.root == 0 {
		return
	}
	for n := u.first(u.root); n != 0; n = u.next(n) {
		count++
		if e := u.entry(n); !visit(e.k, e.v) {
			break
		}
	}
	return
}

// All yields the keys and value slots in ascending order.
func (u *HBTree[K, V, S]) All() iter.Seq2[K, *V] {
	return func(yield func(K, *V) bool) {
		if u.root == 0 {
			return
		}
		for n := u.first(u.root); n != 0; n = u.next(n) {
			if e := u.entry(n); !yield(e.k, &e.v) {
				return
			}
		}
	}
}

// Backward yields the keys and value slots in descending order.
func (u *HBTree[K, V, S]) Backward() iter.Seq2[K, *V] {
	return func(yield func(K, *V) bool) {
		if u.root == 0 {
			return
		}
		for n := u.last(u.root); n != 0; n = u.prev(n) {
			if e := u.entry(n); !yield(e.k, &e.v) {
				return
			}
		}
	}
}
