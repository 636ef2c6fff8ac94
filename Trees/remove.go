package Trees

// Remove key k from the tree, returning the removed key and value. Returns false
// if k isn't in the tree, in which case the tree isn't modified.
// A node with two children isn't unlinked itself: it takes the key and value of
// its in-order neighbour on the taller side, and the neighbour, which has at
// most one child, is unlinked instead. Rebalancing may rotate at every ancestor
// of the unlinked node.
// Time: O(log n); Space: O(1)
func (u *HBTree[K, V, S]) Remove(k K) (rk K, rv V, ok bool) {
	n := u.find(k)
	if n == 0 {
		return
	}
	if u.ifs[n].l != 0 && u.ifs[n].r != 0 {
		var out S
		if u.ifs[n].b > 0 {
			out = u.first(u.ifs[n].r)
		} else {
			out = u.last(u.ifs[n].l)
		}
		a, b := u.entry(n), u.entry(out)
		*a, *b = *b, *a
		n = out
	}

	e := u.entry(n)
	rk, rv, ok = e.k, e.v, true
	p, child := u.ifs[n].p, u.ifs[n].l
	if child == 0 {
		child = u.ifs[n].r
	}
	left := p != 0 && u.ifs[p].l == n
	u.release(n)
	u.count--
	if child != 0 {
		u.ifs[child].p = p
	}
	u.replace(p, n, child)

	// p lost height on the left if left, on the right otherwise.
	for p != 0 {
		if left {
			u.ifs[p].b++
		} else {
			u.ifs[p].b--
		}
		switch u.ifs[p].b {
		case 0: // p is shorter by one; keep going from p.
			n = p
		case 2:
			if r := u.ifs[p].r; u.ifs[r].b < 0 {
				u.rotRight(r)
				u.rotLeft(p)
			} else if !u.rotLeft(p) {
				return
			}
			n = u.ifs[p].p // p moved down; its parent now roots the subtree.
		case -2:
			if l := u.ifs[p].l; u.ifs[l].b > 0 {
				u.rotLeft(l)
				u.rotRight(p)
			} else if !u.rotRight(p) {
				return
			}
			n = u.ifs[p].p
		default: // ±1: the height of p didn't change.
			return
		}
		if p = u.ifs[n].p; p != 0 {
			left = u.ifs[p].l == n
		}
	}
	return
}
