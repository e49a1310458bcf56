// Functions and methods are not thread safe.

package malloc

// The wrappers exist because cgo's C.malloc never returns NULL, it
// aborts the process on exhaustion. Calling through differently named
// functions restores the C library's NULL-on-failure contract and lets
// the two-value form capture errno.

// #include <stdlib.h>
// static void *heap_malloc(size_t size) { return malloc(size); }
// static void *heap_calloc(size_t count, size_t size) { return calloc(count, size); }
// static void *heap_realloc(void *ptr, size_t size) { return realloc(ptr, size); }
import "C"

import "syscall"
import "unsafe"

// Heap allocates straight from the process heap, bounded by a byte
// capacity. Requests crossing the capacity fail with syscall.ENOMEM.
type Heap struct {
	capacity  int64
	allocated int64
	sizes     map[unsafe.Pointer]int64
}

// NewHeap create a new heap allocator handing out at most `capacity`
// bytes at any instant.
func NewHeap(capacity int64) *Heap {
	if capacity <= 0 || capacity > Maxcapacity {
		panicerr("heap capacity should be within (0, %v]", Maxcapacity)
	}
	return &Heap{
		capacity: capacity,
		sizes:    make(map[unsafe.Pointer]int64),
	}
}

// Malloc implement api.Mallocer{} interface.
func (heap *Heap) Malloc(size int64) (unsafe.Pointer, error) {
	if heap.sizes == nil {
		panicerr("heap released")
	} else if size <= 0 {
		panicerr("heap.malloc(): size %v", size)
	}
	if heap.allocated+size > heap.capacity {
		return nil, error(syscall.ENOMEM)
	}
	ptr, err := C.heap_malloc(C.size_t(size))
	if ptr == nil {
		if err == nil {
			err = error(syscall.ENOMEM)
		}
		return nil, err
	}
	heap.sizes[ptr] = size
	heap.allocated += size
	return ptr, nil
}

// Calloc implement api.Mallocer{} interface.
func (heap *Heap) Calloc(count, size int64) (unsafe.Pointer, error) {
	if heap.sizes == nil {
		panicerr("heap released")
	} else if count <= 0 || size <= 0 {
		panicerr("heap.calloc(): %v x %v", count, size)
	}
	total := count * size
	if total/size != count {
		panicerr("heap.calloc(): %v x %v overflows", count, size)
	}
	if heap.allocated+total > heap.capacity {
		return nil, error(syscall.ENOMEM)
	}
	ptr, err := C.heap_calloc(C.size_t(count), C.size_t(size))
	if ptr == nil {
		if err == nil {
			err = error(syscall.ENOMEM)
		}
		return nil, err
	}
	heap.sizes[ptr] = total
	heap.allocated += total
	return ptr, nil
}

// Realloc implement api.Mallocer{} interface. On failure the block at
// `ptr` remains valid and its accounting unchanged.
func (heap *Heap) Realloc(ptr unsafe.Pointer, size int64) (unsafe.Pointer, error) {
	if heap.sizes == nil {
		panicerr("heap released")
	} else if size <= 0 {
		panicerr("heap.realloc(): size %v", size)
	}
	if ptr == nil {
		return heap.Malloc(size)
	}
	oldsize, ok := heap.sizes[ptr]
	if !ok {
		panicerr("heap.realloc(): foreign pointer %p", ptr)
	}
	if heap.allocated+(size-oldsize) > heap.capacity {
		return nil, error(syscall.ENOMEM)
	}
	newptr, err := C.heap_realloc(ptr, C.size_t(size))
	if newptr == nil {
		if err == nil {
			err = error(syscall.ENOMEM)
		}
		return nil, err
	}
	delete(heap.sizes, ptr)
	heap.sizes[newptr] = size
	heap.allocated += size - oldsize
	return newptr, nil
}

// Free implement api.Mallocer{} interface.
func (heap *Heap) Free(ptr unsafe.Pointer) {
	if heap.sizes == nil {
		panicerr("heap released")
	} else if ptr == nil {
		return
	}
	size, ok := heap.sizes[ptr]
	if !ok {
		panicerr("heap.free(): foreign pointer %p", ptr)
	}
	scrubblock(ptr, size)
	delete(heap.sizes, ptr)
	heap.allocated -= size
	C.free(ptr)
}

// Release implement api.Mallocer{} interface. Blocks still outstanding
// are returned to the OS.
func (heap *Heap) Release() {
	for ptr := range heap.sizes {
		C.free(ptr)
	}
	heap.sizes, heap.allocated = nil, 0
}

// Info implement api.Mallocer{} interface.
func (heap *Heap) Info() (capacity, heapmem, alloc, overhead int64) {
	self := int64(unsafe.Sizeof(*heap))
	entrysz := int64(unsafe.Sizeof(unsafe.Pointer(nil))) + int64(unsafe.Sizeof(int64(0)))
	overhead = self + int64(len(heap.sizes))*entrysz
	return heap.capacity, heap.allocated, heap.allocated, overhead
}
