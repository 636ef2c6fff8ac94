package Trees

import (
	"github.com/cockroachdb/errors"
)

// Insert key k into the tree. If k is new, a node with the zero value is added
// and its value slot is returned with true. If k is already present, the slot of
// the existing value is returned with false and the tree isn't modified.
// If no node can be allocated, Insert returns an error matching ErrFull and the
// tree isn't modified.
// At most one single or double rotation happens per insertion.
// Time: O(log n); Space: O(1)
func (u *HBTree[K, V, S]) Insert(k K) (*V, bool, error) {
	var c int
	n, p, q := u.root, S(0), S(0) // q is the last ancestor with a nonzero balance factor.
	for n != 0 {
		if c = u.cmp(k, u.entry(n).k); c < 0 {
			p, n = n, u.ifs[n].l
		} else if c > 0 {
			p, n = n, u.ifs[n].r
		} else {
			return &u.entry(n).v, false, nil
		}
		if u.ifs[p].b != 0 {
			q = p
		}
	}

	if u.limit > 0 && u.count >= u.limit {
		return nil, false, u.full()
	}
	add := u.alloc()
	if add == 0 {
		return nil, false, u.full()
	}
	e := u.entry(add)
	e.k = k
	u.ifs[add].p = p
	u.count++
	if p == 0 {
		u.root = add
		return &e.v, true, nil
	}
	if c < 0 {
		u.ifs[p].l = add
	} else {
		u.ifs[p].r = add
	}

	// everything strictly between add and q was balanced and now leans toward add.
	for n = add; p != q; n, p = p, u.ifs[p].p {
		if u.ifs[p].r == n {
			u.ifs[p].b = 1
		} else {
			u.ifs[p].b = -1
		}
	}
	if q == 0 {
		return &e.v, true, nil
	}
	if u.ifs[q].l == n {
		if u.ifs[q].b--; u.ifs[q].b == -2 {
			if l := u.ifs[q].l; u.ifs[l].b > 0 {
				u.rotLeft(l)
			}
			u.rotRight(q)
		}
	} else {
		if u.ifs[q].b++; u.ifs[q].b == 2 {
			if r := u.ifs[q].r; u.ifs[r].b < 0 {
				u.rotRight(r)
			}
			u.rotLeft(q)
		}
	}
	return &e.v, true, nil
}

func (u *HBTree[K, V, S]) full() error {
	u.log.WithField("count", u.count).Debug("Trees: insert failed, arena is full")
	return errors.Wrapf(ErrFull, "inserting into a tree of %d nodes", u.count)
}
