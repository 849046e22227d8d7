package renderer

import (
	"runtime"

	"github.com/shirou/gopsutil/cpu"
	"github.com/shirou/gopsutil/mem"
)

// HardwareThreads returns the number of logical CPUs, falling back to
// runtime.NumCPU when the system query fails.
func HardwareThreads() int {
	count, err := cpu.Counts(true)
	if err != nil || count < 1 {
		return runtime.NumCPU()
	}
	return count
}

// AvailableMemory returns the bytes of memory available to new allocations,
// or 0 when the system cannot be queried
func AvailableMemory() uint64 {
	v, err := mem.VirtualMemory()
	if err != nil {
		return 0
	}
	return v.Available
}

// availableMemory is swapped out in tests
var availableMemory = AvailableMemory

// framebufferBytes estimates the peak image memory of a render: the worker
// buffers, the tile and band merges and the final composite with its flip
func framebufferBytes(width, height int) uint64 {
	const copies = 5
	return uint64(width) * uint64(height) * 4 * copies
}
