package malloc

import "syscall"
import "testing"
import "unsafe"

import "github.com/stretchr/testify/require"

func TestHeapMalloc(t *testing.T) {
	heap := NewHeap(1024 * 1024)
	ptr, err := heap.Malloc(100)
	require.NoError(t, err)
	require.NotNil(t, ptr)
	capacity, heapmem, alloc, _ := heap.Info()
	require.Equal(t, int64(1024*1024), capacity)
	require.Equal(t, int64(100), heapmem)
	require.Equal(t, int64(100), alloc)
	heap.Free(ptr)
	_, _, alloc, _ = heap.Info()
	require.Equal(t, int64(0), alloc)
	heap.Release()
}

func TestHeapExhaustion(t *testing.T) {
	heap := NewHeap(1024)
	ptr, err := heap.Malloc(2048)
	require.Nil(t, ptr)
	require.Equal(t, error(syscall.ENOMEM), err)
	// within capacity allocation still succeeds.
	ptr, err = heap.Malloc(1024)
	require.NoError(t, err)
	require.NotNil(t, ptr)
	heap.Release()
}

func TestHeapCalloc(t *testing.T) {
	heap := NewHeap(1024 * 1024)
	ptr, err := heap.Calloc(10, 10)
	require.NoError(t, err)
	require.NotNil(t, ptr)
	data := unsafe.Slice((*byte)(ptr), 100)
	for i := range data {
		require.Equalf(t, byte(0), data[i], "offset %v", i)
	}
	_, _, alloc, _ := heap.Info()
	require.Equal(t, int64(100), alloc)
	heap.Free(ptr)
	heap.Release()
}

func TestHeapRealloc(t *testing.T) {
	heap := NewHeap(4096)
	ptr, err := heap.Malloc(64)
	require.NoError(t, err)
	data := unsafe.Slice((*byte)(ptr), 64)
	for i := range data {
		data[i] = byte(i)
	}
	newptr, err := heap.Realloc(ptr, 128)
	require.NoError(t, err)
	require.NotNil(t, newptr)
	newdata := unsafe.Slice((*byte)(newptr), 64)
	for i := range newdata {
		require.Equalf(t, byte(i), newdata[i], "offset %v", i)
	}
	_, _, alloc, _ := heap.Info()
	require.Equal(t, int64(128), alloc)
	// growing past the capacity fails and keeps the block valid.
	failptr, err := heap.Realloc(newptr, 8192)
	require.Nil(t, failptr)
	require.Equal(t, error(syscall.ENOMEM), err)
	_, _, alloc, _ = heap.Info()
	require.Equal(t, int64(128), alloc)
	heap.Free(newptr)
	// realloc on a nil pointer degrades to malloc.
	ptr, err = heap.Realloc(nil, 256)
	require.NoError(t, err)
	require.NotNil(t, ptr)
	heap.Release()
}

func TestHeapForeignFree(t *testing.T) {
	heap := NewHeap(1024)
	defer func() {
		require.NotNil(t, recover())
	}()
	var x int64
	heap.Free(unsafe.Pointer(&x))
}

func TestHeapReleased(t *testing.T) {
	heap := NewHeap(1024)
	heap.Release()
	defer func() {
		require.NotNil(t, recover())
	}()
	heap.Malloc(64)
}
