// Package gomem supplies caller-scoped memory tracking above a
// general-purpose allocator. Callers request memory through an MM
// facade and may register each block with a Manager, so blocks are
// either freed one at a time through the manager or released in bulk
// when the manager is freed - a crude substitute for automatic memory
// management when working with memory outside the Go heap.
//
// api:
//
// Interface specification consumed by the tracking layer: Mallocer for
// the underlying allocator and Reporter for allocation-failure
// diagnostics.
//
// malloc:
//
// The underlying allocators. A capacity-bounded pass-through to the C
// heap, and a slab arena dividing its capacity into pools of fixed
// sized chunks.
//
// Types and functions exported by this package are not thread safe;
// callers sharing a Manager across goroutines must serialize access
// with an external lock.
package gomem
