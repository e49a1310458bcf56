package gomem

import "unsafe"

// memoryAddress is one record in a Manager, tying a live block's
// address to its position in the insertion sequence. The record and
// its block are created and destroyed together, never independently.
type memoryAddress struct {
	addr unsafe.Pointer
	next *memoryAddress
}

// Manager tracks blocks allocated through an MM facade so that they
// can be freed one at a time or all at once. Records are kept in
// insertion order on a singly linked list and compared by handle
// identity, never by content. Managers provide no mutual exclusion.
type Manager struct {
	head *memoryAddress
	n    int64
	mm   *MM
}

// add append a record for addr, preserving insertion order, and return
// addr unchanged.
func (mgr *Manager) add(addr unsafe.Pointer) unsafe.Pointer {
	ma := &memoryAddress{addr: addr}
	if mgr.head == nil {
		mgr.head = ma
	} else {
		cur := mgr.head
		for cur.next != nil {
			cur = cur.next
		}
		cur.next = ma
	}
	mgr.n++
	return ma.addr
}

// find the record holding addr, nil when addr is not tracked.
func (mgr *Manager) find(addr unsafe.Pointer) *memoryAddress {
	ma := mgr.head
	for ma != nil && ma.addr != addr {
		ma = ma.next
	}
	return ma
}

// Free release the block at addr back to the underlying allocator and
// drop its record. Returns ErrorNotFound, touching neither the block
// nor the manager, when addr is not tracked - Free never double-frees.
func (mgr *Manager) Free(addr unsafe.Pointer) error {
	if mgr.mm == nil {
		panic("manager freed")
	}
	var prev *memoryAddress
	ma := mgr.head
	for ma != nil && ma.addr != addr {
		prev, ma = ma, ma.next
	}
	if ma == nil {
		return ErrorNotFound
	}
	if prev == nil {
		mgr.head = ma.next
	} else {
		prev.next = ma.next
	}
	mgr.mm.malloc.Free(ma.addr)
	mgr.n--
	return nil
}

// FreeAll release every tracked block and empty the manager, returning
// the number of blocks freed, 0 when the manager is already empty. The
// list is walked iteratively, bounding stack usage regardless of how
// many blocks are tracked.
func (mgr *Manager) FreeAll() int64 {
	if mgr.mm == nil {
		panic("manager freed")
	}
	freed := int64(0)
	for ma := mgr.head; ma != nil; ma = ma.next {
		mgr.mm.malloc.Free(ma.addr)
		freed++
	}
	mgr.head, mgr.n = nil, 0
	return freed
}

// Tracked report whether addr currently has a record in the manager.
func (mgr *Manager) Tracked(addr unsafe.Pointer) bool {
	if mgr.mm == nil {
		panic("manager freed")
	}
	return mgr.find(addr) != nil
}

// Count return the number of live records in the manager.
func (mgr *Manager) Count() int64 {
	return mgr.n
}
