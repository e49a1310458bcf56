package api

import "unsafe"

// Mallocer interface for the underlying memory allocator. Memory handed
// out by a Mallocer lives outside the Go heap and shall be returned via
// Free or reclaimed wholesale via Release.
type Mallocer interface {
	// Malloc allocate a block of `size` bytes. On exhaustion return
	// nil and the system error code, typically syscall.ENOMEM.
	Malloc(size int64) (ptr unsafe.Pointer, err error)

	// Calloc allocate a zero-initialized block of `count x size` bytes.
	Calloc(count, size int64) (ptr unsafe.Pointer, err error)

	// Realloc resize the block at `ptr` to `size` bytes, relocating it
	// if necessary. On failure return nil and the system error code,
	// leaving the original block valid and untouched.
	Realloc(ptr unsafe.Pointer, size int64) (unsafe.Pointer, error)

	// Free the block at `ptr` back to the allocator. Freeing nil is a
	// no-op, freeing a pointer the allocator never handed out panics.
	Free(ptr unsafe.Pointer)

	// Release the allocator and all memory it still holds.
	Release()

	// Info of memory accounting for this allocator.
	Info() (capacity, heap, alloc, overhead int64)
}
