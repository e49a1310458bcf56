// Functions and methods are not thread safe.

package malloc

// #include <stdlib.h>
import "C"

import "unsafe"

// poolflist manages a memory block sliced up into equal sized chunks,
// with free chunks tracked on a stack of chunk indexes.
type poolflist struct {
	// 64-bit aligned stats
	mallocated int64

	capacity int64          // memory managed by this pool
	size     int64          // fixed size chunks in this pool
	base     unsafe.Pointer // pool's base pointer
	freelist []uint16
	freeoff  int
}

// size of each chunk in the block and no. of chunks in the block.
func newpoolflist(size, n int64) *poolflist {
	capacity := size * n
	pool := &poolflist{
		capacity: capacity,
		size:     size,
		base:     C.malloc(C.size_t(capacity)),
		freelist: make([]uint16, n),
		freeoff:  int(n - 1),
	}
	for i := int64(0); i < n; i++ {
		pool.freelist[i] = uint16(i)
	}
	return pool
}

func (pool *poolflist) allocchunk() (unsafe.Pointer, bool) {
	if pool.mallocated == pool.capacity {
		return nil, false
	}
	nthchunk := int64(pool.freelist[pool.freeoff])
	pool.freelist = pool.freelist[:pool.freeoff]
	pool.freeoff--
	ptr := uintptr(pool.base) + uintptr(nthchunk*pool.size)
	pool.mallocated += pool.size
	if mask := uintptr(Alignment - 1); (ptr & mask) != 0 {
		panicerr("allocated pointer is not %v byte aligned", Alignment)
	}
	return unsafe.Pointer(ptr), true
}

func (pool *poolflist) free(ptr unsafe.Pointer) {
	if ptr == nil {
		panicerr("poolflist.free(): nil pointer")
	}
	diffptr := uint64(uintptr(ptr) - uintptr(pool.base))
	if (diffptr % uint64(pool.size)) != 0 {
		panicerr("poolflist.free(): unaligned pointer: %x,%v", diffptr, pool.size)
	}
	scrubblock(ptr, pool.size)
	nthchunk := uint16(diffptr / uint64(pool.size))
	pool.freelist = append(pool.freelist, nthchunk)
	pool.freeoff++
	pool.mallocated -= pool.size
}

// contains check whether ptr was carved out of this pool's block.
func (pool *poolflist) contains(ptr unsafe.Pointer) bool {
	p, base := uintptr(ptr), uintptr(pool.base)
	return p >= base && p < base+uintptr(pool.capacity)
}

func (pool *poolflist) info() (capacity, heap, alloc, overhead int64) {
	self := int64(unsafe.Sizeof(*pool))
	slicesz := int64(cap(pool.freelist)) * int64(unsafe.Sizeof(uint16(0)))
	return pool.capacity, pool.capacity, pool.mallocated, self + slicesz
}

func (pool *poolflist) release() {
	C.free(pool.base)
	pool.freelist, pool.freeoff = nil, -1
	pool.capacity, pool.base = 0, nil
	pool.mallocated = 0
}
