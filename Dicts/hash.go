package Dicts

import (
	"encoding/binary"

	"github.com/alphadose/haxmap"
	"github.com/cespare/xxhash"
	"github.com/cockroachdb/errors"
	"github.com/cornelk/hashmap"
	"github.com/sirupsen/logrus"
	"golang.org/x/exp/constraints"
)

// StringHash hashes s with xxHash64.
func StringHash(s string) uint64 {
	return xxhash.Sum64String(s)
}

// BytesHash hashes b with xxHash64.
func BytesHash(b []byte) uint64 {
	return xxhash.Sum64(b)
}

// IntHash hashes the 8 byte little endian encoding of v with xxHash64.
func IntHash[K constraints.Integer](v K) uint64 {
	var b [8]byte
	binary.LittleEndian.PutUint64(b[:], uint64(v))
	return xxhash.Sum64(b[:])
}

// walkUnordered is Traverse over a map with a ForEach/Range style walker.
func walkUnordered[K comparable, V any](each func(func(K, *V) bool), visit func(K, V) bool) (count int) {
	each(func(k K, v *V) bool {
		count++
		return visit(k, *v)
	})
	return
}

// checkFound walks a map and looks up every walked key, checking that the
// lookup returns the walked slot and that there are count keys.
func checkFound[K comparable, V any](each func(func(K, *V) bool), get func(K) (*V, bool), count int) (err error) {
	n := 0
	each(func(k K, v *V) bool {
		n++
		if got, ok := get(k); !ok || got != v {
			err = errors.AssertionFailedf("key %v: walked but not found", k)
			return false
		}
		return true
	})
	if err == nil && n != count {
		err = errors.AssertionFailedf("count is %d but %d keys were walked", count, n)
	}
	return
}

type haxDict[K HashKey, V any] struct {
	m   *haxmap.Map[K, *V]
	log logrus.FieldLogger
}

// NewHaxMap returns a Table backed by an alphadose/haxmap map.
func NewHaxMap[K HashKey, V any](opts ...Option) Table[K, V] {
	return &haxDict[K, V]{haxmap.New[K, *V](), makeConfig(opts).log}
}

func (u *haxDict[K, V]) Insert(k K) (*V, bool, error) {
	if v, ok := u.m.Get(k); ok {
		return v, false, nil
	}
	v := new(V)
	u.m.Set(k, v)
	return v, true, nil
}

func (u *haxDict[K, V]) Search(k K) (*V, bool) {
	return u.m.Get(k)
}

func (u *haxDict[K, V]) Remove(k K) (rk K, rv V, ok bool) {
	v, ok := u.m.Get(k)
	if ok {
		u.m.Del(k)
		rk, rv = k, *v
	}
	return
}

func (u *haxDict[K, V]) Traverse(visit func(K, V) bool) int {
	return walkUnordered(u.m.ForEach, visit)
}

func (u *haxDict[K, V]) Count() int {
	return int(u.m.Len())
}

// Clear replaces the map rather than deleting every key from it; a haxmap
// emptied by Del doesn't reliably take new keys.
func (u *haxDict[K, V]) Clear(del func(K, V)) (count int) {
	u.m.ForEach(func(k K, v *V) bool {
		if count++; del != nil {
			del(k, *v)
		}
		return true
	})
	u.m = haxmap.New[K, *V]()
	return
}

func (u *haxDict[K, V]) Free(del func(K, V)) int {
	return u.Clear(del)
}

func (u *haxDict[K, V]) Verify() bool {
	return report(u.log, "haxmap", checkFound(u.m.ForEach, u.m.Get, int(u.m.Len())))
}

type hashDict[K HashKey, V any] struct {
	m      *hashmap.Map[K, *V]
	hasher func(K) uintptr
	log    logrus.FieldLogger
}

// NewHashMap returns a Table backed by a cornelk/hashmap map. If hasher isn't
// nil, it replaces the default hash function of the map.
func NewHashMap[K HashKey, V any](hasher func(K) uintptr, opts ...Option) Table[K, V] {
	u := &hashDict[K, V]{hasher: hasher, log: makeConfig(opts).log}
	u.reset()
	return u
}

func (u *hashDict[K, V]) reset() {
	u.m = hashmap.New[K, *V]()
	if u.hasher != nil {
		u.m.SetHasher(u.hasher)
	}
}

func (u *hashDict[K, V]) Insert(k K) (*V, bool, error) {
	if v, ok := u.m.Get(k); ok {
		return v, false, nil
	}
	v := new(V)
	u.m.Set(k, v)
	return v, true, nil
}

func (u *hashDict[K, V]) Search(k K) (*V, bool) {
	return u.m.Get(k)
}

func (u *hashDict[K, V]) Remove(k K) (rk K, rv V, ok bool) {
	v, ok := u.m.Get(k)
	if ok {
		u.m.Del(k)
		rk, rv = k, *v
	}
	return
}

func (u *hashDict[K, V]) Traverse(visit func(K, V) bool) int {
	return walkUnordered(u.m.Range, visit)
}

func (u *hashDict[K, V]) Count() int {
	return u.m.Len()
}

func (u *hashDict[K, V]) Clear(del func(K, V)) int {
	ks := make([]K, 0, u.m.Len())
	u.m.Range(func(k K, v *V) bool {
		if ks = append(ks, k); del != nil {
			del(k, *v)
		}
		return true
	})
	for _, k := range ks {
		u.m.Del(k)
	}
	return len(ks)
}

func (u *hashDict[K, V]) Free(del func(K, V)) int {
	count := u.Clear(del)
	u.reset()
	return count
}

func (u *hashDict[K, V]) Verify() bool {
	return report(u.log, "hashmap", checkFound(u.m.Range, u.m.Get, u.m.Len()))
}
