package bench

import (
	"runtime"

	"github.com/shirou/gopsutil/mem"
)

// hostStats - снимок памяти процесса и хоста перед проходом.
func hostStats() map[string]interface{} {
	var memstat runtime.MemStats
	runtime.ReadMemStats(&memstat)

	m := map[string]interface{}{
		"heap_alloc": memstat.HeapAlloc,
		"heap_sys":   memstat.HeapSys,
		"num_gc":     memstat.NumGC,
	}

	//gopsutil
	vm, err := mem.VirtualMemory()
	if err == nil {
		m["host_used_percent"] = vm.UsedPercent
		m["host_total"] = vm.Total
		m["host_free"] = vm.Free
	}

	return m
}
