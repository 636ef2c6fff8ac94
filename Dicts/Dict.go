// Package Dicts puts the height-balanced tree of package Trees and a set of
// third-party containers behind one dictionary interface, so they can be
// swapped and compared.
//
// Values are held by pointer: every backend hands out a *V slot that can be
// written in place and stays valid until its key is removed. Like Trees,
// nothing here is safe for concurrent use, including the backends built on
// concurrent maps.
package Dicts

import (
	"github.com/g-m-twostay/go-dict/Trees"
	"github.com/sirupsen/logrus"
	"golang.org/x/exp/constraints"
)

// ErrFull is returned by Insert when a backend can't add another key.
var ErrFull = Trees.ErrFull

type config struct {
	log logrus.FieldLogger
}

// Option configures a backend outside package Trees at construction; NewHB
// takes Trees options instead.
type Option func(*config)

// WithLogger sets the logger Verify reports to. Defaults to logrus.StandardLogger().
func WithLogger(l logrus.FieldLogger) Option {
	return func(c *config) {
		if l != nil {
			c.log = l
		}
	}
}

func makeConfig(opts []Option) config {
	c := config{log: logrus.StandardLogger()}
	for _, o := range opts {
		o(&c)
	}
	return c
}

// HashKey is the key type accepted by the hash map backends.
type HashKey interface {
	constraints.Integer | ~string
}

// Table is a set of unique keys each mapped to a value slot.
type Table[K, V any] interface {
	// Insert k with the zero value. Returns the slot of k and whether k is new.
	// If k is already present, its existing slot is returned with false.
	Insert(k K) (*V, bool, error)
	// Search returns the slot of k.
	Search(k K) (*V, bool)
	// Remove k, returning the removed key and value.
	Remove(k K) (K, V, bool)
	// Traverse calls visit on each key until visit returns false. Returns the
	// number of keys visited, including the one that stopped the traversal.
	Traverse(visit func(K, V) bool) int
	Count() int
	// Clear removes every key, calling del once for each if del isn't nil.
	// Returns the number of keys removed.
	Clear(del func(K, V)) int
	// Free is Clear that also releases the memory held by the backend.
	Free(del func(K, V)) int
	// Verify checks the internal structure and logs the first problem found.
	Verify() bool
}

// Dict is a Table ordered by a comparator, traversed in ascending key order.
type Dict[K, V any] interface {
	Table[K, V]
	// SearchLE returns the greatest key <=k and its slot.
	SearchLE(k K) (K, *V, bool)
	// SearchLT returns the greatest key <k and its slot.
	SearchLT(k K) (K, *V, bool)
	// SearchGE returns the smallest key >=k and its slot.
	SearchGE(k K) (K, *V, bool)
	// SearchGT returns the smallest key >k and its slot.
	SearchGT(k K) (K, *V, bool)
	// Cursor returns a new, invalid cursor.
	Cursor() Cursor[K, V]
}

// Cursor is a position in a Dict, either at a key or invalid. Any insert or
// remove on the Dict invalidates its position.
type Cursor[K, V any] interface {
	Valid() bool
	Invalidate()
	First() bool
	Last() bool
	// Next moves to the next greater key; from the invalid state it's First.
	Next() bool
	// Prev moves to the next smaller key; from the invalid state it's Last.
	Prev() bool
	NextN(n int) bool
	PrevN(n int) bool
	Seek(k K) bool
	SeekLE(k K) bool
	SeekLT(k K) bool
	SeekGE(k K) bool
	SeekGT(k K) bool
	Key() (K, bool)
	Value() *V
}

type hbDict[K, V any] struct {
	*Trees.HBTree[K, V, uint32]
}

// NewHB returns a Dict backed by a Trees.HBTree.
func NewHB[K, V any](cmp func(K, K) int, opts ...Trees.Option) Dict[K, V] {
	return hbDict[K, V]{Trees.New[K, V, uint32](cmp, opts...)}
}

func (u hbDict[K, V]) Cursor() Cursor[K, V] {
	return u.HBTree.Cursor()
}
