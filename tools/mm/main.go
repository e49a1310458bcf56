package main

import "flag"
import "fmt"
import "math/rand"
import "unsafe"

import s "github.com/bnclabs/gosettings"
import "github.com/cloudfoundry/gosigar"
import gohumanize "github.com/dustin/go-humanize"

import "github.com/bnclabs/gomem"
import "github.com/bnclabs/gomem/malloc"

var options struct {
	allocator string
	capacity  int64
	count     int
	minblock  int64
	maxblock  int64
	seed      int64
	slabs     bool
}

func argParse() {
	flag.StringVar(&options.allocator, "allocator", "heap",
		"underlying allocator, heap or flist")
	flag.Int64Var(&options.capacity, "capacity", 1024*1024*1024,
		"allocator capacity in bytes")
	flag.IntVar(&options.count, "count", 100000,
		"number of operations in the workload")
	flag.Int64Var(&options.minblock, "minblock", 64,
		"minimum block size")
	flag.Int64Var(&options.maxblock, "maxblock", 1024*1024,
		"maximum block size")
	flag.Int64Var(&options.seed, "seed", 42,
		"rand seed for the workload")
	flag.BoolVar(&options.slabs, "slabs", false,
		"only list slab sizes and their target utilization")
	flag.Parse()
}

func main() {
	argParse()
	if options.slabs {
		tellutilization()
		return
	}
	runworkload()
}

func tellutilization() {
	sizes := malloc.Blocksizes(options.minblock, options.maxblock)
	for i, size := range sizes[1:] {
		u := (float64(sizes[i]+sizes[i+1]) / 2.0) / float64(size)
		fmt.Printf("slab %8v util %.3f\n", size, u)
	}
	fmt.Printf("total %v slab sizes\n", len(sizes))
}

func runworkload() {
	gomem.LogComponents("all")
	setts := malloc.Defaultsettings(options.minblock, options.maxblock)
	setts = setts.Mixin(s.Settings{
		"allocator": options.allocator,
		"capacity":  options.capacity,
	})
	mm := gomem.New(setts)
	mgr := mm.NewManager()

	rnd := rand.New(rand.NewSource(options.seed))
	ptrs := make([]unsafe.Pointer, 0, 1024)
	mallocs, reallocs, frees, failures := 0, 0, 0, 0
	for i := 0; i < options.count; i++ {
		size := options.minblock + rnd.Int63n(options.maxblock-options.minblock)
		switch op := rnd.Intn(4); {
		case op == 0 && len(ptrs) > 0: // free a random block
			j := rnd.Intn(len(ptrs))
			if err := mgr.Free(ptrs[j]); err != nil {
				fmt.Printf("free: %v\n", err)
				return
			}
			ptrs = append(ptrs[:j], ptrs[j+1:]...)
			frees++

		case op == 1 && len(ptrs) > 0: // resize a random block
			j := rnd.Intn(len(ptrs))
			if ptr := mm.Realloc(ptrs[j], size, mgr, gomem.Here()); ptr != nil {
				ptrs[j] = ptr
				reallocs++
			} else {
				failures++
			}

		default:
			if ptr := mm.Malloc(size, mgr, gomem.Here()); ptr != nil {
				ptrs = append(ptrs, ptr)
				mallocs++
			} else {
				failures++
			}
		}
	}

	capacity, heap, alloc, overhead := mm.Info()
	fmt.Printf("allocator   %v\n", options.allocator)
	fmt.Printf("mallocs     %v\n", mallocs)
	fmt.Printf("reallocs    %v\n", reallocs)
	fmt.Printf("frees       %v\n", frees)
	fmt.Printf("failures    %v\n", failures)
	fmt.Printf("tracked     %v live blocks\n", mgr.Count())
	fmt.Printf("capacity    %v\n", gohumanize.Bytes(uint64(capacity)))
	fmt.Printf("heap        %v\n", gohumanize.Bytes(uint64(heap)))
	fmt.Printf("alloc       %v\n", gohumanize.Bytes(uint64(alloc)))
	fmt.Printf("overhead    %v\n", gohumanize.Bytes(uint64(overhead)))

	freed := mgr.FreeAll()
	fmt.Printf("bulk freed  %v blocks\n", freed)
	if err := mm.FreeManager(mgr); err != nil {
		fmt.Printf("freemanager: %v\n", err)
	}
	mm.Release()

	total, used, free := getsysmem()
	fmt.Printf(
		"sysmem      total:%v used:%v free:%v\n",
		gohumanize.Bytes(total), gohumanize.Bytes(used), gohumanize.Bytes(free))
}

func getsysmem() (total, used, free uint64) {
	mem := sigar.Mem{}
	mem.Get()
	return mem.Total, mem.Used, mem.Free
}
