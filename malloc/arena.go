// Functions and methods are not thread safe.

package malloc

import "sort"
import "syscall"
import "unsafe"

import s "github.com/bnclabs/gosettings"

// Arena is a bucket space of memory with a maximum capacity, empty to
// begin with and filling up as allocations are requested. Arenas carve
// memory from the OS in large pool blocks, where each pool supplies
// several chunks of the same slab size. Slab sizes are generated
// between minblock and maxblock to achieve MEMUtilization.
type Arena struct {
	slabs  []int64                // sorted list of slab-sizes in this arena
	mpools map[int64][]*poolflist // slab -> pools
	pools  []*poolflist           // all pools, sorted by base pointer
	npools int64

	// settings
	capacity  int64  // memory capacity to be managed by this arena
	minblock  int64  // minimum chunk size allocatable by arena
	maxblock  int64  // maximum chunk size allocatable by arena
	allocator string // allocator algorithm
}

// NewArena create a new memory arena, taking "minblock", "maxblock"
// and "allocator" from setts, refer Defaultsettings().
func NewArena(capacity int64, setts s.Settings) *Arena {
	minblock, maxblock := setts.Int64("minblock"), setts.Int64("maxblock")
	arena := &Arena{
		slabs:     Blocksizes(minblock, maxblock),
		mpools:    make(map[int64][]*poolflist),
		capacity:  capacity,
		minblock:  minblock,
		maxblock:  maxblock,
		allocator: setts.String("allocator"),
	}
	if arena.allocator != "flist" {
		panicerr("invalid allocator %q", arena.allocator)
	} else if int64(len(arena.slabs)) > Maxpools {
		panicerr("number of pools in arena exceeds %v", Maxpools)
	} else if capacity <= 0 || capacity > Maxcapacity {
		panicerr("arena capacity should be within (0, %v]", Maxcapacity)
	}
	for _, slab := range arena.slabs {
		arena.mpools[slab] = make([]*poolflist, 0, 2)
	}
	return arena
}

//---- operations

// Malloc implement api.Mallocer{} interface.
func (arena *Arena) Malloc(size int64) (unsafe.Pointer, error) {
	if arena.mpools == nil {
		panicerr("arena released")
	} else if size <= 0 {
		panicerr("arena.malloc(): size %v", size)
	} else if largest := arena.slabs[len(arena.slabs)-1]; size > largest {
		panicerr("arena.malloc(): size %v exceeds maxblock %v", size, largest)
	}
	// try to get from an existing pool.
	slab := SuitableSize(arena.slabs, size)
	for _, pool := range arena.mpools[slab] {
		if ptr, ok := pool.allocchunk(); ok {
			return ptr, nil
		}
	}
	// pools exhausted, figure the dimensions and create a new pool.
	numchunks := arena.adaptiveNumchunks(slab, int64(len(arena.mpools[slab])))
	if arena.heapmem()+(slab*numchunks) > arena.capacity {
		return nil, error(syscall.ENOMEM)
	} else if arena.npools == Maxpools {
		return nil, error(syscall.ENOMEM)
	}
	pool := newpoolflist(slab, numchunks)
	arena.mpools[slab] = append(arena.mpools[slab], pool)
	arena.linkpool(pool)
	arena.npools++
	ptr, _ := pool.allocchunk()
	return ptr, nil
}

// Calloc implement api.Mallocer{} interface.
func (arena *Arena) Calloc(count, size int64) (unsafe.Pointer, error) {
	if count <= 0 || size <= 0 {
		panicerr("arena.calloc(): %v x %v", count, size)
	}
	total := count * size
	if total/size != count {
		panicerr("arena.calloc(): %v x %v overflows", count, size)
	}
	ptr, err := arena.Malloc(total)
	if err != nil {
		return nil, err
	}
	zeroblock(ptr, total)
	return ptr, nil
}

// Realloc implement api.Mallocer{} interface. Within a slab the chunk
// is resized in place, across slabs it relocates; on failure the block
// at `ptr` remains valid and untouched.
func (arena *Arena) Realloc(ptr unsafe.Pointer, size int64) (unsafe.Pointer, error) {
	if arena.mpools == nil {
		panicerr("arena released")
	} else if ptr == nil {
		return arena.Malloc(size)
	} else if size <= 0 {
		panicerr("arena.realloc(): size %v", size)
	} else if largest := arena.slabs[len(arena.slabs)-1]; size > largest {
		panicerr("arena.realloc(): size %v exceeds maxblock %v", size, largest)
	}
	pool := arena.findpool(ptr)
	if SuitableSize(arena.slabs, size) == pool.size {
		return ptr, nil // current chunk already fits
	}
	newptr, err := arena.Malloc(size)
	if err != nil {
		return nil, err
	}
	n := pool.size
	if size < n {
		n = size
	}
	memcpy(newptr, ptr, n)
	pool.free(ptr)
	return newptr, nil
}

// Free implement api.Mallocer{} interface.
func (arena *Arena) Free(ptr unsafe.Pointer) {
	if arena.mpools == nil {
		panicerr("arena released")
	} else if ptr == nil {
		return
	}
	arena.findpool(ptr).free(ptr)
}

// Release implement api.Mallocer{} interface.
func (arena *Arena) Release() {
	for _, pool := range arena.pools {
		pool.release()
	}
	arena.slabs, arena.mpools, arena.pools = nil, nil, nil
}

//---- statistics

// Info implement api.Mallocer{} interface.
func (arena *Arena) Info() (capacity, heap, alloc, overhead int64) {
	self := int64(unsafe.Sizeof(*arena))
	slicesz := int64(cap(arena.slabs)) * int64(unsafe.Sizeof(int64(1)))
	capacity, overhead = arena.capacity, self+slicesz
	for _, pool := range arena.pools {
		_, h, a, o := pool.info()
		heap, alloc, overhead = heap+h, alloc+a, overhead+o
	}
	return
}

// Utilization map of slab-size and its pool utilization.
func (arena *Arena) Utilization() ([]int, []float64) {
	var sizes []int
	for _, slab := range arena.slabs {
		sizes = append(sizes, int(slab))
	}
	sort.Ints(sizes)

	ss, zs := make([]int, 0), make([]float64, 0)
	for _, size := range sizes {
		capacity, allocated := float64(0), float64(0)
		for _, pool := range arena.mpools[int64(size)] {
			capacity += float64(pool.capacity)
			allocated += float64(pool.mallocated)
		}
		if capacity > 0 {
			ss = append(ss, size)
			zs = append(zs, (allocated/capacity)*100)
		}
	}
	return ss, zs
}

// Slabs return the sorted list of slab-sizes this arena allocates from.
func (arena *Arena) Slabs() []int64 {
	return arena.slabs
}

//---- local functions

// heapmem sum of pool-block sizes carved from the OS so far.
func (arena *Arena) heapmem() int64 {
	heap := int64(0)
	for _, pool := range arena.pools {
		heap += pool.capacity
	}
	return heap
}

// start with a small pool and double the chunk count for every new
// pool of the same slab, so sparse slabs stay cheap and hot slabs
// amortize pool creation.
func (arena *Arena) adaptiveNumchunks(slab, npools int64) int64 {
	numchunks := int64(32)
	if npools < 16 {
		numchunks <<= uint64(npools)
	} else {
		numchunks = Maxchunks
	}
	if numchunks > Maxchunks {
		numchunks = Maxchunks
	}
	if slab*numchunks > arena.capacity {
		if numchunks = arena.capacity / slab; numchunks == 0 {
			numchunks = 1
		}
	}
	return numchunks
}

// insert pool into the base-sorted pool list.
func (arena *Arena) linkpool(pool *poolflist) {
	off := sort.Search(len(arena.pools), func(i int) bool {
		return uintptr(arena.pools[i].base) >= uintptr(pool.base)
	})
	arena.pools = append(arena.pools, nil)
	copy(arena.pools[off+1:], arena.pools[off:])
	arena.pools[off] = pool
}

// findpool resolve ptr to the pool it was carved from.
func (arena *Arena) findpool(ptr unsafe.Pointer) *poolflist {
	off := sort.Search(len(arena.pools), func(i int) bool {
		return uintptr(arena.pools[i].base) > uintptr(ptr)
	})
	if off == 0 {
		panicerr("arena.findpool(): foreign pointer %p", ptr)
	}
	pool := arena.pools[off-1]
	if !pool.contains(ptr) {
		panicerr("arena.findpool(): foreign pointer %p", ptr)
	}
	return pool
}
