package gomem

import "fmt"
import "testing"
import "unsafe"

var _ = fmt.Sprintf("dummy")

func newtestmm(capacity int64) *MM {
	setts := Defaultsettings()
	setts["capacity"] = capacity
	return New(setts)
}

func TestManagerAdd(t *testing.T) {
	mm := newtestmm(10 * 1024 * 1024)
	defer mm.Release()

	mgr := mm.NewManager()
	ptrs := make([]unsafe.Pointer, 0, 100)
	for i := 0; i < 100; i++ {
		ptr := mm.Malloc(64, mgr, Here())
		if ptr == nil {
			t.Fatalf("unexpected allocation failure at %v", i)
		}
		ptrs = append(ptrs, ptr)
	}
	if n := mgr.Count(); n != 100 {
		t.Errorf("expected %v, got %v", 100, n)
	}
	// records are unique and kept in insertion order.
	seen := make(map[unsafe.Pointer]bool)
	i, ma := 0, mgr.head
	for ; ma != nil; i, ma = i+1, ma.next {
		if seen[ma.addr] {
			t.Errorf("duplicate address %p", ma.addr)
		}
		seen[ma.addr] = true
		if ma.addr != ptrs[i] {
			t.Errorf("record %v out of insertion order", i)
		}
	}
	if i != 100 {
		t.Errorf("expected %v records, got %v", 100, i)
	}
	if err := mm.FreeManager(mgr); err != nil {
		t.Errorf("unexpected %v", err)
	}
}

func TestManagerFree(t *testing.T) {
	mm := newtestmm(10 * 1024 * 1024)
	defer mm.Release()

	mgr := mm.NewManager()
	b1 := mm.Malloc(64, mgr, Here())
	b2 := mm.Malloc(128, mgr, Here())
	if b1 == nil || b2 == nil {
		t.Fatalf("unexpected allocation failure")
	}
	if err := mgr.Free(b1); err != nil {
		t.Errorf("unexpected %v", err)
	}
	if mgr.Tracked(b1) {
		t.Errorf("expected b1 to be released")
	} else if mgr.Tracked(b2) == false {
		t.Errorf("expected b2 to be live")
	}
	if n := mgr.Count(); n != 1 {
		t.Errorf("expected %v, got %v", 1, n)
	}
	// releasing the same address again is not-found, not a double free.
	if err := mgr.Free(b1); err != ErrorNotFound {
		t.Errorf("expected %v, got %v", ErrorNotFound, err)
	}
	if n := mgr.Count(); n != 1 {
		t.Errorf("expected %v, got %v", 1, n)
	}
	if err := mm.FreeManager(mgr); err != nil {
		t.Errorf("unexpected %v", err)
	}
	if err := mm.FreeManager(mgr); err != ErrorInvalidManager {
		t.Errorf("expected %v, got %v", ErrorInvalidManager, err)
	}
	if err := mm.FreeManager(nil); err != ErrorInvalidManager {
		t.Errorf("expected %v, got %v", ErrorInvalidManager, err)
	}
}

func TestManagerUnlink(t *testing.T) {
	mm := newtestmm(10 * 1024 * 1024)
	defer mm.Release()

	mgr := mm.NewManager()
	ptrs := make([]unsafe.Pointer, 0, 5)
	for i := 0; i < 5; i++ {
		ptrs = append(ptrs, mm.Malloc(64, mgr, Here()))
	}
	// unlink head, middle and tail records.
	for _, off := range []int{0, 2, 4} {
		if err := mgr.Free(ptrs[off]); err != nil {
			t.Errorf("free %v: unexpected %v", off, err)
		}
	}
	if n := mgr.Count(); n != 2 {
		t.Errorf("expected %v, got %v", 2, n)
	}
	remaining := []unsafe.Pointer{ptrs[1], ptrs[3]}
	i, ma := 0, mgr.head
	for ; ma != nil; i, ma = i+1, ma.next {
		if ma.addr != remaining[i] {
			t.Errorf("record %v: expected %p, got %p", i, remaining[i], ma.addr)
		}
	}
	mm.FreeManager(mgr)
}

func TestManagerFreeAll(t *testing.T) {
	mm := newtestmm(10 * 1024 * 1024)
	defer mm.Release()

	mgr := mm.NewManager()
	for i := 0; i < 37; i++ {
		if ptr := mm.Malloc(512, mgr, Here()); ptr == nil {
			t.Fatalf("unexpected allocation failure at %v", i)
		}
	}
	if n := mgr.FreeAll(); n != 37 {
		t.Errorf("expected %v, got %v", 37, n)
	}
	if n := mgr.Count(); n != 0 {
		t.Errorf("expected %v, got %v", 0, n)
	} else if mgr.head != nil {
		t.Errorf("expected empty manager")
	}
	if n := mgr.FreeAll(); n != 0 {
		t.Errorf("expected %v, got %v", 0, n)
	}
	if err := mm.FreeManager(mgr); err != nil {
		t.Errorf("unexpected %v", err)
	}
}

func TestManagerFreedPanic(t *testing.T) {
	mm := newtestmm(10 * 1024 * 1024)
	defer mm.Release()

	mgr := mm.NewManager()
	if err := mm.FreeManager(mgr); err != nil {
		t.Fatalf("unexpected %v", err)
	}
	defer func() {
		if r := recover(); r == nil {
			t.Errorf("expected panic")
		}
	}()
	mgr.FreeAll()
}
