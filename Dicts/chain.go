package Dicts

import (
	"math/bits"

	"github.com/cockroachdb/errors"
	"github.com/sirupsen/logrus"
)

const (
	hashBits   = 64
	chainUpper = 8  // split once the average chain is longer than this.
	maxChunk   = 48 // at most 1<<maxChunk buckets.
)

type chainNode[K, V any] struct {
	nx   *chainNode[K, V]
	hash uint64
	k    K
	v    *V
}

// a relay heads a bucket and holds no key.
func (u *chainNode[K, V]) isRelay() bool {
	return u.v == nil
}

// chain is a hash table whose nodes form a single list sorted by hash, then by
// key. Bucket i points to the relay node preceding the nodes whose hash has i as
// its top chunk bits, so doubling the buckets only inserts a relay into every
// bucket and halving them unlinks every other relay; no node is moved.
type chain[K, V any] struct {
	buckets         []*chainNode[K, V] // len(buckets) == 1<<chunk
	chunk, minChunk byte
	count           int
	cmp             func(K, K) int
	hash            func(K) uint64
	log             logrus.FieldLogger
}

// NewChain returns a Table backed by a chained hash table. cmp is only used for
// equality and to order keys with equal hashes; hash must be consistent with
// it, for example StringHash or IntHash. hint is the expected number of keys.
func NewChain[K, V any](cmp func(K, K) int, hash func(K) uint64, hint int, opts ...Option) Table[K, V] {
	u := &chain[K, V]{cmp: cmp, hash: hash, log: makeConfig(opts).log}
	u.minChunk = min(byte(bits.Len(uint(max(hint, 0)/chainUpper))), maxChunk)
	u.reset(u.minChunk)
	return u
}

func (u *chain[K, V]) reset(chunk byte) {
	u.chunk, u.count = chunk, 0
	u.buckets = make([]*chainNode[K, V], 1<<chunk)
	var nx *chainNode[K, V]
	for i := len(u.buckets) - 1; i >= 0; i-- {
		nx = &chainNode[K, V]{nx: nx, hash: u.relayHash(uint64(i))}
		u.buckets[i] = nx
	}
}

// relayHash is the smallest hash in bucket i.
func (u *chain[K, V]) relayHash(i uint64) uint64 {
	return i << (hashBits - u.chunk)
}

func (u *chain[K, V]) bucket(hash uint64) uint64 {
	return hash >> (hashBits - u.chunk)
}

// locate returns the node after which k belongs, and the node holding k or nil.
func (u *chain[K, V]) locate(k K, hash uint64) (pre, cur *chainNode[K, V]) {
	pre = u.buckets[u.bucket(hash)]
	for cur = pre.nx; cur != nil && !cur.isRelay(); pre, cur = cur, cur.nx {
		if cur.hash > hash {
			break
		} else if cur.hash == hash {
			if c := u.cmp(k, cur.k); c == 0 {
				return pre, cur
			} else if c < 0 {
				break
			}
		}
	}
	return pre, nil
}

func (u *chain[K, V]) trySplit() {
	if u.count>>u.chunk <= chainUpper || u.chunk >= maxChunk {
		return
	}
	nb := make([]*chainNode[K, V], len(u.buckets)<<1)
	u.chunk++
	for i, relay := range u.buckets {
		nb[i<<1] = relay
		h := u.relayHash(uint64(i<<1 | 1))
		pre := relay
		for pre.nx != nil && !pre.nx.isRelay() && pre.nx.hash < h {
			pre = pre.nx
		}
		pre.nx = &chainNode[K, V]{nx: pre.nx, hash: h}
		nb[i<<1|1] = pre.nx
	}
	u.buckets = nb
}

func (u *chain[K, V]) tryMerge() {
	if u.chunk <= u.minChunk || u.count>>u.chunk > 0 {
		return
	}
	nb := make([]*chainNode[K, V], len(u.buckets)>>1)
	for i := range nb {
		pre, odd := u.buckets[i<<1], u.buckets[i<<1|1]
		for pre.nx != odd {
			pre = pre.nx
		}
		pre.nx = odd.nx
		nb[i] = u.buckets[i<<1]
	}
	u.buckets = nb
	u.chunk--
}

func (u *chain[K, V]) Insert(k K) (*V, bool, error) {
	h := u.hash(k)
	pre, cur := u.locate(k, h)
	if cur != nil {
		return cur.v, false, nil
	}
	v := new(V)
	pre.nx = &chainNode[K, V]{pre.nx, h, k, v}
	u.count++
	u.trySplit()
	return v, true, nil
}

func (u *chain[K, V]) Search(k K) (*V, bool) {
	if _, cur := u.locate(k, u.hash(k)); cur != nil {
		return cur.v, true
	}
	return nil, false
}

func (u *chain[K, V]) Remove(k K) (rk K, rv V, ok bool) {
	pre, cur := u.locate(k, u.hash(k))
	if cur == nil {
		return
	}
	pre.nx = cur.nx
	u.count--
	u.tryMerge()
	return cur.k, *cur.v, true
}

// Traverse visits the keys in the order of their hashes.
func (u *chain[K, V]) Traverse(visit func(K, V) bool) (count int) {
	for cur := u.buckets[0]; cur != nil; cur = cur.nx {
		if cur.isRelay() {
			continue
		}
		count++
		if !visit(cur.k, *cur.v) {
			break
		}
	}
	return
}

func (u *chain[K, V]) Count() int {
	return u.count
}

// Clear keeps the buckets.
func (u *chain[K, V]) Clear(del func(K, V)) int {
	count := u.count
	if del != nil {
		u.Traverse(func(k K, v V) bool {
			del(k, v)
			return true
		})
	}
	for i, relay := range u.buckets {
		if relay.nx = nil; i+1 < len(u.buckets) {
			relay.nx = u.buckets[i+1]
		}
	}
	u.count = 0
	return count
}

func (u *chain[K, V]) Free(del func(K, V)) int {
	count := u.Clear(del)
	u.reset(u.minChunk)
	return count
}

func (u *chain[K, V]) check() error {
	if len(u.buckets) != 1<<u.chunk {
		return errors.AssertionFailedf("%d buckets at chunk %d", len(u.buckets), u.chunk)
	}
	b, n := 0, 0
	var pre *chainNode[K, V]
	for cur := u.buckets[0]; cur != nil; pre, cur = cur, cur.nx {
		if cur.isRelay() {
			if b >= len(u.buckets) || u.buckets[b] != cur {
				return errors.AssertionFailedf("relay %d out of place", b)
			}
			if cur.hash != u.relayHash(uint64(b)) {
				return errors.AssertionFailedf("relay %d has hash %x", b, cur.hash)
			}
			b++
			continue
		}
		n++
		if h := u.hash(cur.k); h != cur.hash {
			return errors.AssertionFailedf("key %v: stored hash %x, computed %x", cur.k, cur.hash, h)
		}
		if u.bucket(cur.hash) != uint64(b-1) {
			return errors.AssertionFailedf("key %v: in bucket %d, want %d", cur.k, b-1, u.bucket(cur.hash))
		}
		if !pre.isRelay() && (pre.hash > cur.hash || pre.hash == cur.hash && u.cmp(pre.k, cur.k) >= 0) {
			return errors.AssertionFailedf("key %v after %v", cur.k, pre.k)
		}
	}
	if b != len(u.buckets) {
		return errors.AssertionFailedf("%d of %d relays are reachable", b, len(u.buckets))
	}
	if n != u.count {
		return errors.AssertionFailedf("count is %d but %d keys are reachable", u.count, n)
	}
	return nil
}

func (u *chain[K, V]) Verify() bool {
	return report(u.log, "chain", u.check())
}
