package malloc

import "math/rand"
import "testing"

func TestBlocksizes(t *testing.T) {
	sizes := Blocksizes(64, 1024)
	if sizes[0] != 64 {
		t.Errorf("expected %v, got %v", 64, sizes[0])
	}
	if last := sizes[len(sizes)-1]; last != 1024 {
		t.Errorf("expected %v, got %v", 1024, last)
	}
	for i := 1; i < len(sizes); i++ {
		if sizes[i] <= sizes[i-1] {
			t.Errorf("sizes not increasing at %v", i)
		}
	}

	// panic cases
	func() {
		defer func() {
			if r := recover(); r == nil {
				t.Errorf("expected panic")
			}
		}()
		Blocksizes(60, 1024)
	}()
	func() {
		defer func() {
			if r := recover(); r == nil {
				t.Errorf("expected panic")
			}
		}()
		Blocksizes(1024, 64)
	}()
}

func TestSuitableSize(t *testing.T) {
	slabs := Blocksizes(64, 1024*1024)
	in := func(slab int64) bool {
		for _, size := range slabs {
			if slab == size {
				return true
			}
		}
		return false
	}
	for _, size := range []int64{1, 63, 64, 65, 100, 1000, 12345, 1024 * 1024} {
		slab := SuitableSize(slabs, size)
		if slab < size {
			t.Errorf("slab %v < size %v", slab, size)
		} else if in(slab) == false {
			t.Errorf("slab %v not from configured slabs", slab)
		}
	}
	rnd := rand.New(rand.NewSource(101))
	for i := 0; i < 10000; i++ {
		size := 1 + rnd.Int63n(1024*1024)
		if slab := SuitableSize(slabs, size); slab < size {
			t.Errorf("slab %v < size %v", slab, size)
		}
	}
}
