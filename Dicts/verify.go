package Dicts

import (
	"github.com/cockroachdb/errors"
	"github.com/sirupsen/logrus"
)

// checkSorted walks a backend with walk and checks that its keys are strictly
// ascending and that there are count of them.
func checkSorted[K, V any](cmp func(K, K) int, count int, walk func(func(K, V) bool) int) error {
	var (
		pre K
		err error
		n   int
	)
	walk(func(k K, _ V) bool {
		if n > 0 && cmp(pre, k) >= 0 {
			err = errors.AssertionFailedf("key %v after %v", k, pre)
			return false
		}
		pre = k
		n++
		return true
	})
	if err == nil && n != count {
		err = errors.AssertionFailedf("count is %d but %d keys were walked", count, n)
	}
	return err
}

func report(log logrus.FieldLogger, backend string, err error) bool {
	if err != nil {
		log.WithError(err).WithField("backend", backend).Warn("Dicts: verification failed")
		return false
	}
	return true
}
