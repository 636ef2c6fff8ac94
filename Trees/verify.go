package Trees

import (
	"github.com/cockroachdb/errors"
)

// Check the tree for corrupt structures: a wrong parent link, keys out of order,
// a balance factor that isn't the measured height difference of the subtrees or
// is out of [-1,1], and a node count that disagrees with the nodes reachable
// from the root. Returns the first violation found. A non-nil result always
// means a bug in this package; Check is meant for tests and diagnostics.
// Implemented recursively.
// Time: O(n); Space: O(log n)
func (u *HBTree[K, V, S]) Check() error {
	if (u.root == 0) != (u.count == 0) {
		return errors.AssertionFailedf("root is %d but count is %d", u.root, u.count)
	}
	seen := 0
	if _, err := u.check(0, u.root, 0, 0, &seen); err != nil {
		return err
	}
	if seen != u.count {
		return errors.AssertionFailedf("count is %d but %d nodes are reachable", u.count, seen)
	}
	return nil
}

// check the subtree at n whose parent is p and whose keys must lie strictly
// between the keys of nodes lo and hi (0 is unbounded). Returns the height of the subtree.
func (u *HBTree[K, V, S]) check(p, n, lo, hi S, seen *int) (int, error) {
	if n == 0 {
		return 0, nil
	}
	if *seen++; *seen > u.count {
		return 0, errors.AssertionFailedf("more than %d nodes are reachable", u.count)
	}
	cur, k := u.ifs[n], u.entry(n).k
	if cur.p != p {
		return 0, errors.AssertionFailedf("node %v: parent is %d, want %d", k, cur.p, p)
	}
	if lo != 0 && u.cmp(u.entry(lo).k, k) >= 0 {
		return 0, errors.AssertionFailedf("node %v: not greater than ancestor %v", k, u.entry(lo).k)
	}
	if hi != 0 && u.cmp(k, u.entry(hi).k) >= 0 {
		return 0, errors.AssertionFailedf("node %v: not less than ancestor %v", k, u.entry(hi).k)
	}
	if cur.b < -1 || cur.b > 1 {
		return 0, errors.AssertionFailedf("node %v: balance factor %d out of range", k, cur.b)
	}
	lh, err := u.check(n, cur.l, lo, n, seen)
	if err != nil {
		return 0, err
	}
	rh, err := u.check(n, cur.r, n, hi, seen)
	if err != nil {
		return 0, err
	}
	if int(cur.b) != rh-lh {
		return 0, errors.AssertionFailedf("node %v: balance factor %d, measured %d", k, cur.b, rh-lh)
	}
	return max(lh, rh) + 1, nil
}

// Verify is Check that logs the violation, if any, and reports whether the tree is sound.
func (u *HBTree[K, V, S]) Verify() bool {
	if err := u.Check(); err != nil {
		u.log.WithError(err).Warn("Trees: tree verification failed")
		return false
	}
	return true
}
