// Command benchmark runs the workload harness against the single-cycle core.
//
// Usage:
//
//	go run ./cmd/benchmark [flags]
//
// Flags:
//
//	-csv        Output results in CSV format (default: human-readable)
//	-json       Output results in JSON format
//	-no-zero    Leave the ALU zero output unwired (loop workloads are skipped)
//	-v          Print a trace of every cycle
package main

import (
	"flag"
	"fmt"
	"os"

	"github.com/sarchlab/mipssim/benchmarks"
)

func main() {
	csvOutput := flag.Bool("csv", false, "Output results in CSV format")
	jsonOutput := flag.Bool("json", false, "Output results in JSON format")
	noZero := flag.Bool("no-zero", false, "Leave the ALU zero output unwired")
	verbose := flag.Bool("v", false, "Print a trace of every cycle")
	flag.Parse()

	config := benchmarks.DefaultConfig()
	config.WireALUZero = !*noZero
	config.Verbose = *verbose
	config.Output = os.Stdout

	harness := benchmarks.NewHarness(config)
	harness.AddBenchmarks(benchmarks.GetWorkloads())

	if !*csvOutput && !*jsonOutput {
		fmt.Println("Single-Cycle MIPS Workload Harness")
		fmt.Println("==================================")
		fmt.Printf("ALU zero wired: %v\n", config.WireALUZero)
		fmt.Println("")
	}

	results := harness.RunAll()

	switch {
	case *jsonOutput:
		if err := harness.PrintJSON(results); err != nil {
			fmt.Fprintf(os.Stderr, "Error writing JSON: %v\n", err)
			os.Exit(1)
		}
	case *csvOutput:
		harness.PrintCSV(results)
	default:
		harness.PrintResults(results)

		summary := benchmarks.Summarize(results)
		fmt.Println("=== Summary ===")
		fmt.Printf("Passed:  %d/%d\n", summary.Passed, summary.TotalBenchmarks)
		fmt.Printf("Skipped: %d\n", summary.Skipped)
		fmt.Printf("Cycles:  %d\n", summary.TotalCycles)
	}

	for _, r := range results {
		if !r.Passed && !r.Skipped {
			os.Exit(1)
		}
	}
}
