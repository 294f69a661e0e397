// Measures decode and cycle throughput of the single-cycle core.
package main

import (
	"fmt"
	"runtime"
	"time"

	"github.com/sarchlab/mipssim/insts"
	"github.com/sarchlab/mipssim/timing/core"
)

func main() {
	decoder := insts.NewDecoder()
	words := []uint32{
		insts.ADDI(1, 1, 1),
		insts.ADD(2, 1, 1),
		insts.SW(2, 0, 0x100),
		insts.LW(3, 0, 0x100),
	}

	// Warm up
	for i := 0; i < 1000; i++ {
		decoder.Decode(words[i%len(words)])
	}

	iterations := 100000
	elapsed, allocations := measure(func() {
		for i := 0; i < iterations; i++ {
			for _, w := range words {
				decoder.Decode(w)
			}
		}
	})
	totalDecodes := iterations * len(words)

	fmt.Printf("Decoder Throughput:\n")
	fmt.Printf("===================\n")
	fmt.Printf("Total decode operations: %d\n", totalDecodes)
	fmt.Printf("Time elapsed: %v\n", elapsed)
	fmt.Printf("Decodes per second: %.0f\n", float64(totalDecodes)/elapsed.Seconds())
	fmt.Printf("Allocations per decode: %.3f\n", float64(allocations)/float64(totalDecodes))

	program := append(append([]uint32{}, words...), insts.J(0))
	c := core.NewCore(core.WithMode(core.ModeQuiet))
	if err := c.LoadProgram(0, program); err != nil {
		fmt.Printf("Error: %v\n", err)
		return
	}

	const cycles = 1_000_000
	var runErr error
	elapsed, allocations = measure(func() {
		_, runErr = c.Run(cycles)
	})
	if runErr != nil {
		fmt.Printf("Error: %v\n", runErr)
		return
	}

	fmt.Printf("\nCore Throughput:\n")
	fmt.Printf("================\n")
	fmt.Printf("Cycles: %d\n", cycles)
	fmt.Printf("Time elapsed: %v\n", elapsed)
	fmt.Printf("Cycles per second: %.0f\n", float64(cycles)/elapsed.Seconds())
	fmt.Printf("Allocations per cycle: %.3f\n", float64(allocations)/float64(cycles))
}

func measure(f func()) (time.Duration, uint64) {
	runtime.GC()
	var m1, m2 runtime.MemStats
	runtime.ReadMemStats(&m1)

	start := time.Now()
	f()
	elapsed := time.Since(start)

	runtime.ReadMemStats(&m2)
	return elapsed, m2.Mallocs - m1.Mallocs
}
