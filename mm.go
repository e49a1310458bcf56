package gomem

import "fmt"
import "unsafe"

import s "github.com/bnclabs/gosettings"
import gohumanize "github.com/dustin/go-humanize"

import "github.com/bnclabs/gomem/api"
import "github.com/bnclabs/gomem/malloc"

// MM is the allocation facade: it ties one underlying allocator to
// zero or more Managers. Every allocation call takes an optional
// Manager - passing nil degrades the call to a plain untracked
// allocation - and an Origin used only if the call fails.
type MM struct {
	malloc   api.Mallocer
	reporter api.Reporter
}

// New create an allocation facade, picking the underlying allocator
// from "allocator" and "capacity" settings, refer Defaultsettings().
func New(setts s.Settings) *MM {
	capacity := setts.Int64("capacity")
	var mallocer api.Mallocer
	switch allocator := setts.String("allocator"); allocator {
	case "heap":
		mallocer = malloc.NewHeap(capacity)
	case "flist":
		mallocer = malloc.NewArena(capacity, setts)
	default:
		panic(fmt.Errorf("invalid allocator %q", allocator))
	}
	return &MM{malloc: mallocer, reporter: &logreporter{}}
}

// NewMM create an allocation facade over a caller supplied allocator.
func NewMM(mallocer api.Mallocer) *MM {
	return &MM{malloc: mallocer, reporter: &logreporter{}}
}

// SetReporter override the default diagnostic reporter, passing nil
// reverts to the default. Returns mm for chaining.
func (mm *MM) SetReporter(reporter api.Reporter) *MM {
	if reporter == nil {
		reporter = &logreporter{}
	}
	mm.reporter = reporter
	return mm
}

// NewManager create an empty manager for blocks allocated via mm.
func (mm *MM) NewManager() *Manager {
	return &Manager{mm: mm}
}

// FreeManager free every block still tracked by mgr and then the
// manager itself. Returns ErrorInvalidManager, with no side effect,
// when mgr is nil or already freed. Freeing a manager with zero
// tracked blocks is a valid outcome.
func (mm *MM) FreeManager(mgr *Manager) error {
	if mgr == nil || mgr.mm == nil {
		return ErrorInvalidManager
	}
	n := mgr.FreeAll()
	mgr.mm = nil
	debugf("mm.freemanager: freed %v blocks\n", n)
	return nil
}

// Malloc allocate `size` bytes from the underlying allocator. On
// success the block is registered with mgr, when one is given, and
// returned. On failure the failure is reported once against origin,
// nil is returned and mgr is untouched.
func (mm *MM) Malloc(size int64, mgr *Manager, origin Origin) unsafe.Pointer {
	ptr, err := mm.malloc.Malloc(size)
	if err != nil {
		mm.reporter.Allocfail(origin.File, origin.Func, origin.Line, err)
		return nil
	}
	if mgr != nil {
		mgr.add(ptr)
	}
	return ptr
}

// Calloc allocate a zero-initialized block of `count x size` bytes,
// with the same tracking and failure contract as Malloc.
func (mm *MM) Calloc(count, size int64, mgr *Manager, origin Origin) unsafe.Pointer {
	ptr, err := mm.malloc.Calloc(count, size)
	if err != nil {
		mm.reporter.Allocfail(origin.File, origin.Func, origin.Line, err)
		return nil
	}
	if mgr != nil {
		mgr.add(ptr)
	}
	return ptr
}

// Realloc resize the block at ptr to `size` bytes, relocating it if
// necessary. On success the record holding ptr's address, if mgr is
// given and the record exists, is retargeted to the new address - no
// new record is ever created, and a block whose record is absent is
// simply untracked going forward. On failure the failure is reported
// once against origin, nil is returned, and the original block and any
// record remain valid and unchanged.
func (mm *MM) Realloc(ptr unsafe.Pointer, size int64, mgr *Manager, origin Origin) unsafe.Pointer {
	newptr, err := mm.malloc.Realloc(ptr, size)
	if err != nil {
		mm.reporter.Allocfail(origin.File, origin.Func, origin.Line, err)
		return nil
	}
	if mgr != nil {
		if ma := mgr.find(ptr); ma != nil {
			ma.addr = newptr
		}
	}
	return newptr
}

// Free return an untracked block to the underlying allocator. Blocks
// registered with a manager should be freed through the manager.
func (mm *MM) Free(ptr unsafe.Pointer) {
	mm.malloc.Free(ptr)
}

// Release the underlying allocator and all memory it still holds.
// Managers created from mm shall not be used after Release.
func (mm *MM) Release() {
	mm.malloc.Release()
}

// Info of memory accounting from the underlying allocator.
func (mm *MM) Info() (capacity, heap, alloc, overhead int64) {
	return mm.malloc.Info()
}

// Logmemory log the underlying allocator's accounting, if humanize is
// true log byte counts in human readable form.
func (mm *MM) Logmemory(humanize bool) {
	capacity, heap, alloc, overhead := mm.malloc.Info()
	if humanize {
		infof(
			"mm capacity: %v heap: %v alloc: %v overhead: %v\n",
			gohumanize.Bytes(uint64(capacity)), gohumanize.Bytes(uint64(heap)),
			gohumanize.Bytes(uint64(alloc)), gohumanize.Bytes(uint64(overhead)))
		return
	}
	infof(
		"mm capacity: %v heap: %v alloc: %v overhead: %v\n",
		capacity, heap, alloc, overhead)
}
