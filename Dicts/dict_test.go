package Dicts

import (
	"cmp"
	"math/rand"
	"slices"
	"strconv"
	"testing"

	"github.com/cockroachdb/errors"
	"github.com/g-m-twostay/go-dict/Trees"
	"github.com/sirupsen/logrus/hooks/test"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var rg = rand.New(rand.NewSource(0))

const (
	tOpN        = 3000
	tOpValRange = 2000
)

func ordered() map[string]func() Dict[int, int] {
	c := cmp.Compare[int]
	return map[string]func() Dict[int, int]{
		"hb":    func() Dict[int, int] { return NewHB[int, int](c) },
		"avl":   func() Dict[int, int] { return NewGodsAVL[int, int](c) },
		"rb":    func() Dict[int, int] { return NewGodsRB[int, int](c) },
		"btree": func() Dict[int, int] { return NewBTree[int, int](3, c) },
		"llrb":  func() Dict[int, int] { return NewLLRB[int, int](c) },
	}
}

func tables() map[string]func() Table[int, int] {
	ts := map[string]func() Table[int, int]{
		"haxmap":  func() Table[int, int] { return NewHaxMap[int, int]() },
		"hashmap": func() Table[int, int] { return NewHashMap[int, int](nil) },
		"chain":   func() Table[int, int] { return NewChain[int, int](cmp.Compare[int], IntHash[int], 0) },
		"chain16": func() Table[int, int] { return NewChain[int, int](cmp.Compare[int], IntHash[int], 1<<16) },
	}
	for name, f := range ordered() {
		ts[name] = func() Table[int, int] { return f() }
	}
	return ts
}

func TestTable_Oracle(t *testing.T) {
	for name, mk := range tables() {
		t.Run(name, func(t *testing.T) {
			r := rand.New(rand.NewSource(1))
			d := mk()
			content := make(map[int]int)
			for i := range tOpN {
				k := r.Intn(tOpValRange)
				if r.Intn(3) == 0 {
					want, present := content[k]
					rk, rv, ok := d.Remove(k)
					require.Equal(t, present, ok, "remove %d", k)
					if ok {
						assert.Equal(t, k, rk)
						assert.Equal(t, want, rv)
					}
					delete(content, k)
				} else {
					_, present := content[k]
					v, in, err := d.Insert(k)
					require.NoError(t, err)
					require.Equal(t, !present, in, "insert %d", k)
					if in {
						*v = i
						content[k] = i
					} else {
						require.Equal(t, content[k], *v)
					}
				}
				require.Equal(t, len(content), d.Count())
				if i%100 == 0 {
					require.True(t, d.Verify(), "op %d", i)
				}
			}
			require.True(t, d.Verify())
			for k, v := range content {
				s, ok := d.Search(k)
				require.True(t, ok, "missing key %d", k)
				require.Equal(t, v, *s)
			}
			_, ok := d.Search(-1)
			assert.False(t, ok)

			seen := make(map[int]int)
			n := d.Traverse(func(k, v int) bool {
				seen[k] = v
				return true
			})
			assert.Equal(t, len(content), n)
			assert.Equal(t, content, seen)
			assert.Equal(t, 1, d.Traverse(func(int, int) bool { return false }))
		})
	}
}

func TestTable_StableSlots(t *testing.T) {
	for name, mk := range tables() {
		t.Run(name, func(t *testing.T) {
			d := mk()
			slots := make(map[int]*int)
			for k := range 1000 {
				v, in, err := d.Insert(k)
				require.NoError(t, err)
				require.True(t, in)
				slots[k] = v
			}
			// Remove moves a neighbour into the removed node of an HBTree.
			if name != "hb" {
				for k := 0; k < 1000; k += 2 {
					d.Remove(k)
				}
			}
			for k := 1; k < 1000; k += 2 {
				*slots[k] = k
			}
			for k := 1; k < 1000; k += 2 {
				v, ok := d.Search(k)
				require.True(t, ok)
				require.Same(t, slots[k], v)
				require.Equal(t, k, *v)
			}
			assert.True(t, d.Verify())
		})
	}
}

func TestTable_ClearFree(t *testing.T) {
	for name, mk := range tables() {
		t.Run(name, func(t *testing.T) {
			d := mk()
			for _, k := range rg.Perm(500) {
				v, _, err := d.Insert(k)
				require.NoError(t, err)
				*v = -k
			}
			seen := make(map[int]int)
			assert.Equal(t, 500, d.Clear(func(k, v int) {
				seen[k]++
				assert.Equal(t, -k, v)
			}))
			assert.Len(t, seen, 500)
			for k, c := range seen {
				assert.Equal(t, 1, c, "key %d deleted %d times", k, c)
			}
			assert.Zero(t, d.Count())
			assert.True(t, d.Verify())

			for k := range 100 {
				_, in, err := d.Insert(k)
				require.NoError(t, err)
				require.True(t, in)
			}
			assert.True(t, d.Verify())
			assert.Equal(t, 100, d.Free(nil))
			assert.Zero(t, d.Count())
			_, ok := d.Search(5)
			assert.False(t, ok)
			_, in, err := d.Insert(5)
			require.NoError(t, err)
			assert.True(t, in)
			assert.True(t, d.Verify())
		})
	}
}

func TestDict_Ordered(t *testing.T) {
	ref := NewHB[int, int](cmp.Compare[int])
	for name, mk := range ordered() {
		t.Run(name, func(t *testing.T) {
			r := rand.New(rand.NewSource(2))
			d := mk()
			ref.Clear(nil)
			for range 500 {
				k := r.Intn(tOpValRange)
				v, in, _ := d.Insert(k)
				rv, rin, _ := ref.Insert(k)
				require.Equal(t, rin, in)
				*v, *rv = k, k
			}
			var ks []int
			d.Traverse(func(k, _ int) bool {
				ks = append(ks, k)
				return true
			})
			assert.True(t, slices.IsSorted(ks))

			searches := map[string][2]func(int) (int, *int, bool){
				"le": {d.SearchLE, ref.SearchLE},
				"lt": {d.SearchLT, ref.SearchLT},
				"ge": {d.SearchGE, ref.SearchGE},
				"gt": {d.SearchGT, ref.SearchGT},
			}
			for range 300 {
				k := r.Intn(tOpValRange+20) - 10
				for dir, f := range searches {
					gk, gv, gok := f[0](k)
					wk, _, wok := f[1](k)
					require.Equal(t, wok, gok, "%s(%d)", dir, k)
					if wok {
						require.Equal(t, wk, gk, "%s(%d)", dir, k)
						require.Equal(t, wk, *gv)
					} else {
						require.Nil(t, gv)
					}
				}
			}
		})
	}
}

func TestDict_Directional(t *testing.T) {
	for name, mk := range ordered() {
		t.Run(name, func(t *testing.T) {
			d := mk()
			for _, k := range []int{10, 20, 30} {
				_, _, err := d.Insert(k)
				require.NoError(t, err)
			}
			k, _, ok := d.SearchLT(25)
			assert.True(t, ok)
			assert.Equal(t, 20, k)
			k, _, ok = d.SearchGE(20)
			assert.True(t, ok)
			assert.Equal(t, 20, k)
			_, _, ok = d.SearchGT(30)
			assert.False(t, ok)
			_, _, ok = d.SearchLE(9)
			assert.False(t, ok)
		})
	}
}

func keyAt(t *testing.T, c Cursor[int, int]) int {
	t.Helper()
	k, ok := c.Key()
	require.True(t, ok, "cursor is invalid")
	return k
}

func TestDict_Cursor(t *testing.T) {
	for name, mk := range ordered() {
		t.Run(name, func(t *testing.T) {
			d := mk()
			c := d.Cursor()
			assert.False(t, c.Valid())
			assert.False(t, c.First())
			assert.False(t, c.Next())
			assert.Nil(t, c.Value())

			for k := 1; k <= 10; k++ {
				v, _, _ := d.Insert(k)
				*v = k * 10
			}
			var fw []int
			for c.Next() {
				fw = append(fw, keyAt(t, c))
				assert.Equal(t, keyAt(t, c)*10, *c.Value())
			}
			assert.Equal(t, []int{1, 2, 3, 4, 5, 6, 7, 8, 9, 10}, fw)
			var bw []int
			for c.Prev() {
				bw = append(bw, keyAt(t, c))
			}
			assert.Equal(t, []int{10, 9, 8, 7, 6, 5, 4, 3, 2, 1}, bw)

			require.True(t, c.First())
			require.True(t, c.NextN(3))
			assert.Equal(t, 4, keyAt(t, c))
			require.True(t, c.PrevN(2))
			assert.Equal(t, 2, keyAt(t, c))
			assert.False(t, c.NextN(9))
			assert.False(t, c.Valid())
			require.True(t, c.PrevN(1))
			assert.Equal(t, 10, keyAt(t, c))

			require.True(t, c.Seek(5))
			assert.Equal(t, 5, keyAt(t, c))
			assert.False(t, c.Seek(11))
			require.True(t, c.SeekLE(11))
			assert.Equal(t, 10, keyAt(t, c))
			require.True(t, c.SeekLT(10))
			assert.Equal(t, 9, keyAt(t, c))
			require.True(t, c.SeekGE(0))
			assert.Equal(t, 1, keyAt(t, c))
			require.True(t, c.SeekGT(1))
			assert.Equal(t, 2, keyAt(t, c))
			*c.Value() = 7
			v, _ := d.Search(2)
			assert.Equal(t, 7, *v)
			require.True(t, c.Last())
			assert.Equal(t, 10, keyAt(t, c))
			c.Invalidate()
			_, ok := c.Key()
			assert.False(t, ok)
		})
	}
}

func TestHB_Full(t *testing.T) {
	d := NewHB[int, int](cmp.Compare[int], Trees.WithLimit(3))
	for k := range 3 {
		_, _, err := d.Insert(k)
		require.NoError(t, err)
	}
	_, _, err := d.Insert(3)
	assert.True(t, errors.Is(err, ErrFull))
	assert.Equal(t, 3, d.Count())
}

func TestChain_Resize(t *testing.T) {
	d := NewChain[string, int](cmp.Compare[string], StringHash, 0).(*chain[string, int])
	for i := range 5000 {
		_, in, err := d.Insert(strconv.Itoa(i))
		require.NoError(t, err)
		require.True(t, in)
	}
	assert.Greater(t, d.chunk, byte(8))
	require.NoError(t, d.check())
	grown := d.chunk
	for i := range 4990 {
		_, _, ok := d.Remove(strconv.Itoa(i))
		require.True(t, ok)
	}
	assert.Less(t, d.chunk, grown)
	require.NoError(t, d.check())
	for i := 4990; i < 5000; i++ {
		_, ok := d.Search(strconv.Itoa(i))
		assert.True(t, ok)
	}
}

func TestChain_Collisions(t *testing.T) {
	// every key lands on the same hash, so the chain orders them by key alone.
	d := NewChain[int, int](cmp.Compare[int], func(int) uint64 { return 42 }, 0)
	for _, k := range rg.Perm(50) {
		_, in, err := d.Insert(k)
		require.NoError(t, err)
		require.True(t, in)
	}
	require.True(t, d.Verify())
	var ks []int
	d.Traverse(func(k, _ int) bool {
		ks = append(ks, k)
		return true
	})
	assert.True(t, slices.IsSorted(ks))
	for k := range 50 {
		_, _, ok := d.Remove(k)
		require.True(t, ok)
	}
	assert.True(t, d.Verify())
}

func TestHashMap_Hasher(t *testing.T) {
	d := NewHashMap[string, int](func(s string) uintptr { return uintptr(StringHash(s)) })
	for i := range 200 {
		v, in, err := d.Insert("k" + strconv.Itoa(i))
		require.NoError(t, err)
		require.True(t, in)
		*v = i
	}
	v, ok := d.Search("k17")
	require.True(t, ok)
	assert.Equal(t, 17, *v)
	assert.True(t, d.Verify())
}

func TestVerify_Logs(t *testing.T) {
	log, hook := test.NewNullLogger()
	d := NewChain[int, int](cmp.Compare[int], IntHash[int], 0, WithLogger(log)).(*chain[int, int])
	for k := range 20 {
		d.Insert(k)
	}
	require.True(t, d.Verify())
	assert.Empty(t, hook.AllEntries())

	d.count++
	assert.False(t, d.Verify())
	require.NotNil(t, hook.LastEntry())
	assert.Equal(t, "chain", hook.LastEntry().Data["backend"])
	d.count--

	b := NewBTree[int, int](2, cmp.Compare[int], WithLogger(log)).(*bTreeDict[int, int])
	b.Insert(1)
	b.Insert(2)
	b.cmp = func(a, b int) int { return cmp.Compare(b, a) }
	assert.False(t, b.Verify())
	assert.Equal(t, "btree", hook.LastEntry().Data["backend"])
}

func TestVerify_LoggerPerInstance(t *testing.T) {
	log1, hook1 := test.NewNullLogger()
	log2, hook2 := test.NewNullLogger()
	a := NewLLRB[int, int](cmp.Compare[int], WithLogger(log1)).(*llrbDict[int, int])
	b := NewLLRB[int, int](cmp.Compare[int], WithLogger(log2)).(*llrbDict[int, int])
	for k := range 3 {
		a.Insert(k)
		b.Insert(k)
	}
	a.cmp = func(x, y int) int { return cmp.Compare(y, x) }
	assert.False(t, a.Verify())
	assert.True(t, b.Verify())
	assert.Len(t, hook1.AllEntries(), 1)
	assert.Empty(t, hook2.AllEntries())
	assert.Equal(t, "llrb", hook1.LastEntry().Data["backend"])
}

func TestTable_ReuseAfterClear(t *testing.T) {
	for name, mk := range tables() {
		t.Run(name, func(t *testing.T) {
			d := mk()
			for k := range 500 {
				_, _, err := d.Insert(k)
				require.NoError(t, err)
			}
			assert.Equal(t, 500, d.Clear(nil))
			for k := range 100 {
				v, in, err := d.Insert(k)
				require.NoError(t, err)
				require.True(t, in, "insert %d", k)
				*v = k
			}
			assert.Equal(t, 100, d.Count())
			for k := range 100 {
				v, ok := d.Search(k)
				require.True(t, ok, "missing key %d", k)
				require.Equal(t, k, *v)
			}
			assert.Equal(t, 100, d.Traverse(func(int, int) bool { return true }))
			assert.True(t, d.Verify())
		})
	}
}

func TestTable_Churn(t *testing.T) {
	for name, mk := range tables() {
		t.Run(name, func(t *testing.T) {
			d := mk()
			// remove every key and insert it back, several times over.
			for round := range 5 {
				for k := range 300 {
					_, in, err := d.Insert(k)
					require.NoError(t, err)
					require.True(t, in, "round %d: insert %d", round, k)
				}
				require.Equal(t, 300, d.Count())
				require.Equal(t, 300, d.Traverse(func(int, int) bool { return true }))
				for k := range 300 {
					_, _, ok := d.Remove(k)
					require.True(t, ok, "round %d: remove %d", round, k)
				}
				require.Zero(t, d.Count())
				require.True(t, d.Verify())
			}
		})
	}
}
