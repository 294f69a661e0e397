// Package main provides the entry point for mipssim.
// mipssim is a cycle-level model of a single-cycle MIPS datapath.
//
// For the full CLI, use: go run ./cmd/mipssim
package main

import (
	"fmt"
	"os"
)

func main() {
	fmt.Println("mipssim - single-cycle MIPS datapath simulator")
	fmt.Println("")
	fmt.Println("Usage: mipssim [options] <program>")
	fmt.Println("")
	fmt.Println("Options:")
	fmt.Println("  -config     Path to simulation configuration JSON file")
	fmt.Println("  -cycles     Maximum number of cycles (0 = until the program ends)")
	fmt.Println("  -mode       Mode bitmask (1 = decode only, 2/4/8 = quiet trace)")
	fmt.Println("  -wire-zero  Drive beq from the ALU zero output")
	fmt.Println("")
	fmt.Println("Run 'go run ./cmd/mipssim' for the full CLI.")

	if len(os.Args) > 1 {
		fmt.Println("\nNote: You provided arguments. Use 'go run ./cmd/mipssim' instead.")
	}
}
