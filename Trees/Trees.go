// Package Trees implements a height-balanced (AVL) binary search tree whose
// nodes live in an index arena.
//
// Keys and values are opaque; keys are ordered only by the comparator given to
// New, which must be a strict total order that doesn't change during the
// lifetime of the tree. Receivers that return a bool as the last value report
// whether the other values are defined; if it's false, the other values are
// zero and shouldn't be used.
//
// A value slot (*V) returned by the tree points into the arena. It stays valid
// until its node is removed or the tree is cleared; Remove may also move the
// key and value of a neighbouring node, invalidating that neighbour's slot.
// Cursors follow the same rule: any insert, remove or clear invalidates the
// positions of outstanding cursors.
//
// A tree is not safe for concurrent use. Either confine it to a single
// goroutine or guard every call with a mutex/rwmutex, using the write lock
// for Insert, Remove, Clear and Free.
package Trees

import (
	"github.com/cockroachdb/errors"
	"github.com/sirupsen/logrus"
)

// ErrFull is returned by Insert when no slot can be allocated, either because
// the limit set by WithLimit is reached or because every index representable by
// the index type is in use. The tree is unchanged when this happens.
var ErrFull = errors.New("Trees: node arena is full")

type config struct {
	hint, limit int
	log         logrus.FieldLogger
}

// Option configures a tree at construction.
type Option func(*config)

// WithHint pre-sizes the arena for n nodes. It's only a hint.
func WithHint(n int) Option {
	return func(c *config) {
		if n > 0 {
			c.hint = n
		}
	}
}

// WithLimit bounds the number of live nodes to n. n<=0 means no limit other than
// the index type.
func WithLimit(n int) Option {
	return func(c *config) {
		c.limit = max(n, 0)
	}
}

// WithLogger sets the logger used by diagnostics. Defaults to logrus.StandardLogger().
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
