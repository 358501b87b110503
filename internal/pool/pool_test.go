package pool

import (
	"sync"
	"testing"
)

func TestGetPut_ExactSize(t *testing.T) {
	sizes := []int{0, 1, 100, 4096, 8192, 1 << 20}
	for _, size := range sizes {
		b := Get(size)
		if len(b) != size {
			t.Errorf("Get(%d): len = %d, want %d", size, len(b), size)
		}
		Put(b)
	}
}

func TestGetPut_GrowsOnDemand(t *testing.T) {
	// Seed the pool with a small buffer, then ask for something larger
	// than its capacity: Get must still return the requested length.
	small := Get(16)
	Put(small)

	big := Get(1 << 16)
	if len(big) != 1<<16 {
		t.Errorf("Get(%d): len = %d, want %d", 1<<16, len(big), 1<<16)
	}
	Put(big)
}

func TestGetPut_ReusesBackingArray(t *testing.T) {
	// A buffer returned via Put should be eligible for reuse by a later
	// Get asking for the same or smaller size (best-effort: sync.Pool
	// makes no reuse guarantee, so this only checks correctness, not
	// that reuse actually happened).
	b := Get(8192)
	b[0] = 0xAB
	Put(b)

	b2 := Get(4096)
	if len(b2) != 4096 {
		t.Errorf("Get(4096) after Put: len = %d, want 4096", len(b2))
	}
	Put(b2)
}

func TestPut_NilSlice(t *testing.T) {
	Put(nil) // must not panic
}

func TestConcurrency(t *testing.T) {
	const goroutines = 32
	const iterations = 100

	var wg sync.WaitGroup
	wg.Add(goroutines)
	for g := 0; g < goroutines; g++ {
		go func() {
			defer wg.Done()
			for i := 0; i < iterations; i++ {
				for _, size := range []int{64, 512, 4096, 65536} {
					b := Get(size)
					if len(b) != size {
						t.Errorf("concurrent Get(%d): len = %d", size, len(b))
						return
					}
					for j := range b {
						b[j] = byte(j)
					}
					Put(b)
				}
			}
		}()
	}
	wg.Wait()
}

func BenchmarkGet(b *testing.B) {
	for i := 0; i < b.N; i++ {
		buf := Get(4096)
		Put(buf)
	}
}

func BenchmarkGetParallel(b *testing.B) {
	b.RunParallel(func(pb *testing.PB) {
		for pb.Next() {
			buf := Get(4096)
			Put(buf)
		}
	})
}
