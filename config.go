package gomem

import s "github.com/bnclabs/gosettings"
import "github.com/cloudfoundry/gosigar"

import "github.com/bnclabs/gomem/malloc"

// Defaultsettings for gomem, along with the underlying allocator.
//
// "allocator" (string, default: "heap")
//		Underlying allocator, "heap" for the pass-through heap
//		allocator or "flist" for the slab arena.
//
// "capacity" (int64, default: free system memory)
//		Maximum memory, in bytes, the underlying allocator will hand
//		out at any instant.
//
// "minblock", "maxblock" (int64, default: 64, 1MB)
//		Chunk size bounds for the "flist" allocator.
func Defaultsettings() s.Settings {
	_, _, free := getsysmem()
	setts := malloc.Defaultsettings(64, 1024*1024)
	setts = setts.Mixin(s.Settings{
		"allocator": "heap",
		"capacity":  int64(free),
	})
	return setts
}

func getsysmem() (total, used, free uint64) {
	mem := sigar.Mem{}
	mem.Get()
	return mem.Total, mem.Used, mem.Free
}
