// Package benchmarks provides memory footprint benchmarks.
package benchmarks

import (
	"fmt"
	"runtime"
	"testing"

	"github.com/comalice/objectx/internal/core"
)

func BenchmarkMemoryFootprint(b *testing.B) {
	reg := MustBuild(GenFlatCatalog(1))
	r, err := reg.Get("r0")
	if err != nil {
		b.Fatal(err)
	}
	numObjects := 1000
	var before runtime.MemStats
	runtime.ReadMemStats(&before)
	objects := make([]*core.Object, numObjects)
	for i := 0; i < numObjects; i++ {
		if objects[i], err = r.Create(i); err != nil {
			b.Fatal(err)
		}
	}
	runtime.GC()
	var after runtime.MemStats
	runtime.ReadMemStats(&after)
	bytesPerObject := (after.TotalAlloc - before.TotalAlloc) / uint64(numObjects)
	b.ReportMetric(float64(bytesPerObject), "B/object")
	runtime.KeepAlive(objects)
}

func BenchmarkMemoryDeep(b *testing.B) {
	for _, depth := range []int{1, 8, 32} {
		b.Run(fmt.Sprintf("depth=%d", depth), func(b *testing.B) {
			reg := MustBuild(GenDeepCatalog(depth))
			r, err := reg.Get(fmt.Sprintf("level%d", depth-1))
			if err != nil {
				b.Fatal(err)
			}
			b.ReportAllocs()
			b.ResetTimer()
			for i := 0; i < b.N; i++ {
				if _, err := r.Create(); err != nil {
					b.Fatal(err)
				}
			}
		})
	}
}

func BenchmarkMemoryMixins(b *testing.B) {
	for _, n := range []int{1, 10, 50} {
		b.Run(fmt.Sprintf("mixins=%d", n), func(b *testing.B) {
			r, err := GenMixinRecipe(n)
			if err != nil {
				b.Fatal(err)
			}
			b.ReportAllocs()
			b.ResetTimer()
			for i := 0; i < b.N; i++ {
				if _, err := r.Create(); err != nil {
					b.Fatal(err)
				}
			}
		})
	}
}
