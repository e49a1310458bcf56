package malloc

import "fmt"

import s "github.com/bnclabs/gosettings"

// Alignment chunks allocated by this package are always aligned to
// this boundary.
const Alignment = int64(8)

// Sizeinterval minblock and maxblock should be multiples of
// Sizeinterval.
const Sizeinterval = int64(32)

// MEMUtilization is the expected ratio between memory allocated to the
// application and useful memory allocated from the OS.
const MEMUtilization = float64(0.95)

// Maxcapacity maximum size of memory managed by a single allocator.
// Can be used as default capacity argument.
const Maxcapacity = int64(1024 * 1024 * 1024 * 1024)

// Maxpools maximum number of pools allowed in an arena.
const Maxpools = int64(512)

// Maxchunks maximum number of chunks allowed in a pool.
const Maxchunks = int64(65536)

// Defaultsettings for allocators in this package.
//
// "allocator" (string, default: "flist")
//		Allocator algorithm, "flist" for the slab arena or "heap" for
//		the pass-through heap allocator.
//
// "minblock" (int64, default: <minblock>)
//		Minimum size of an arena chunk.
//
// "maxblock" (int64, default: <maxblock>)
//		Maximum size of an arena chunk.
func Defaultsettings(minblock, maxblock int64) s.Settings {
	if minblock > maxblock {
		panic(fmt.Errorf("minblock(%v) > maxblock(%v)", minblock, maxblock))
	}
	return s.Settings{
		"allocator": "flist",
		"minblock":  minblock,
		"maxblock":  maxblock,
	}
}
