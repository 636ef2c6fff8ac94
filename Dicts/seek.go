package Dicts

// seeker is an ordered backend without node handles; keyCursor moves over it
// by searching from the key it's at.
type seeker[K, V any] interface {
	Search(k K) (*V, bool)
	SearchLE(k K) (K, *V, bool)
	SearchLT(k K) (K, *V, bool)
	SearchGE(k K) (K, *V, bool)
	SearchGT(k K) (K, *V, bool)
	min() (K, *V, bool)
	max() (K, *V, bool)
}

// keyCursor is a Cursor whose every step is a search. Time: O(log n) per step.
type keyCursor[K, V any] struct {
	s seeker[K, V]
	k K
	v *V // nil when invalid.
}

func (u *keyCursor[K, V]) at(k K, v *V, ok bool) bool {
	if ok {
		u.k, u.v = k, v
	} else {
		u.Invalidate()
	}
	return ok
}

func (u *keyCursor[K, V]) Valid() bool {
	return u.v != nil
}

func (u *keyCursor[K, V]) Invalidate() {
	u.k, u.v = *new(K), nil
}

func (u *keyCursor[K, V]) First() bool {
	return u.at(u.s.min())
}

func (u *keyCursor[K, V]) Last() bool {
	return u.at(u.s.max())
}

func (u *keyCursor[K, V]) Next() bool {
	if u.v == nil {
		return u.First()
	}
	return u.at(u.s.SearchGT(u.k))
}

func (u *keyCursor[K, V]) Prev() bool {
	if u.v == nil {
		return u.Last()
	}
	return u.at(u.s.SearchLT(u.k))
}

func (u *keyCursor[K, V]) NextN(n int) bool {
	return stepN(n, u.Next, u.Valid)
}

func (u *keyCursor[K, V]) PrevN(n int) bool {
	return stepN(n, u.Prev, u.Valid)
}

func (u *keyCursor[K, V]) Seek(k K) bool {
	v, ok := u.s.Search(k)
	return u.at(k, v, ok)
}

func (u *keyCursor[K, V]) SeekLE(k K) bool {
	return u.at(u.s.SearchLE(k))
}

func (u *keyCursor[K, V]) SeekLT(k K) bool {
	return u.at(u.s.SearchLT(k))
}

func (u *keyCursor[K, V]) SeekGE(k K) bool {
	return u.at(u.s.SearchGE(k))
}

func (u *keyCursor[K, V]) SeekGT(k K) bool {
	return u.at(u.s.SearchGT(k))
}

func (u *keyCursor[K, V]) Key() (K, bool) {
	return u.k, u.v != nil
}

func (u *keyCursor[K, V]) Value() *V {
	return u.v
}
