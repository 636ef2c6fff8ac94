package Dicts

import (
	"testing"
)

const bAddN = 1 << 16

func benchTables(b *testing.B, f func(*testing.B, Table[int, int], []int)) {
	ks := rg.Perm(bAddN)
	for name, mk := range tables() {
		b.Run(name, func(b *testing.B) {
			for range b.N {
				b.StopTimer()
				d := mk()
				b.StartTimer()
				f(b, d, ks)
			}
		})
	}
}

func BenchmarkInsert(b *testing.B) {
	benchTables(b, func(_ *testing.B, d Table[int, int], ks []int) {
		for _, k := range ks {
			d.Insert(k)
		}
	})
}

func BenchmarkSearch(b *testing.B) {
	benchTables(b, func(b *testing.B, d Table[int, int], ks []int) {
		b.StopTimer()
		for _, k := range ks {
			d.Insert(k)
		}
		b.StartTimer()
		for _, k := range ks {
			d.Search(k)
		}
	})
}

func BenchmarkRemove(b *testing.B) {
	benchTables(b, func(b *testing.B, d Table[int, int], ks []int) {
		b.StopTimer()
		for _, k := range ks {
			d.Insert(k)
		}
		b.StartTimer()
		for _, k := range ks {
			d.Remove(k)
		}
	})
}

func BenchmarkCursor(b *testing.B) {
	ks := rg.Perm(bAddN)
	for name, mk := range ordered() {
		b.Run(name, func(b *testing.B) {
			d := mk()
			for _, k := range ks {
				d.Insert(k)
			}
			c := d.Cursor()
			b.ResetTimer()
			for range b.N {
				for c.Next() {
				}
			}
		})
	}
}
