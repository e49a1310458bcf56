// Package malloc supplies the general-purpose allocators underneath
// the gomem tracking layer, with a limited scope:
//
//   - Types and Functions exported by this package are not thread safe.
//   - Memory handed out lives on the C heap, outside the reach of Go's
//     garbage collector, and must be returned through Free or reclaimed
//     wholesale through Release.
//   - Every allocator is bounded by a byte capacity supplied while
//     instantiating it; a request that would cross the capacity fails
//     with the system's out-of-memory error instead of panicking, so
//     callers can decide whether exhaustion is fatal.
//
// Two allocators are available. Heap is a thin pass-through to the
// process heap (malloc/calloc/realloc/free) with per-pointer size
// accounting. Arena divides its capacity into pools of fixed sized
// chunks, where chunk sizes (slabs) are generated between a minimum
// and maximum block size to achieve a target memory utilization.
package malloc
