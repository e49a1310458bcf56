//go:build debug
// +build debug

package malloc

import "unsafe"

// scrubblock poisons released chunks so that use-after-free reads show
// up as 0xff garbage instead of stale data.
func scrubblock(block unsafe.Pointer, size int64) {
	dst := unsafe.Slice((*byte)(block), size)
	for i := range dst {
		dst[i] = 0xff
	}
}
