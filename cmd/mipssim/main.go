// Package main provides the entry point for the single-cycle MIPS simulator.
package main

import (
	"flag"
	"fmt"
	"io"
	"os"
	"runtime/pprof"

	"github.com/sarchlab/mipssim/config"
	"github.com/sarchlab/mipssim/loader"
	"github.com/sarchlab/mipssim/timing/core"
	"github.com/sarchlab/mipssim/trace"
)

var (
	configPath  = flag.String("config", "", "Path to simulation configuration JSON file")
	maxCycles   = flag.Uint64("cycles", 0, "Maximum number of cycles to run (0 = until the program ends)")
	mode        = flag.Int("mode", -1, "Mode bitmask: 1 = decode only, 2/4/8 = quiet cycle/decode/execute trace")
	quiet       = flag.Bool("q", false, "Suppress all per-cycle trace output")
	wireZero    = flag.Bool("wire-zero", false, "Drive beq from the ALU zero output")
	dumpRegs    = flag.Bool("regs", true, "Print the register file after the run")
	dumpMem     = flag.Bool("mem", true, "Print written data memory words after the run")
	saveConfig  = flag.String("save-config", "", "Write the effective configuration to this path and exit")
	cpuProfile  = flag.String("cpuprofile", "", "Write a CPU profile to file")
	entryOption = flag.String("entry", "", "Override the entry PC (hex)")
)

func main() {
	flag.Parse()

	cfg, err := buildConfig()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}

	if *saveConfig != "" {
		if err := cfg.SaveConfig(*saveConfig); err != nil {
			fmt.Fprintf(os.Stderr, "Error saving config: %v\n", err)
			os.Exit(1)
		}
		return
	}

	if flag.NArg() < 1 {
		fmt.Fprintf(os.Stderr, "Usage: mipssim [options] <program>\n")
		fmt.Fprintf(os.Stderr, "\nThe program is a big-endian MIPS32 ELF file or a listing with one\n")
		fmt.Fprintf(os.Stderr, "instruction word per line (hex or 32 binary digits).\n")
		fmt.Fprintf(os.Stderr, "\nOptions:\n")
		flag.PrintDefaults()
		os.Exit(1)
	}

	programPath := flag.Arg(0)

	prog, err := loader.Load(programPath)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error loading program: %v\n", err)
		os.Exit(1)
	}
	if *entryOption == "" && cfg.EntryPC == 0 {
		cfg.EntryPC = prog.EntryPoint
	}

	if *cpuProfile != "" {
		f, err := os.Create(*cpuProfile)
		if err != nil {
			fmt.Fprintf(os.Stderr, "Error creating CPU profile: %v\n", err)
			os.Exit(1)
		}
		defer func() { _ = f.Close() }()
		if err := pprof.StartCPUProfile(f); err != nil {
			fmt.Fprintf(os.Stderr, "Error starting CPU profile: %v\n", err)
			os.Exit(1)
		}
		defer pprof.StopCPUProfile()
	}

	c, cycles, err := runSimulation(cfg, prog, os.Stdout)

	fmt.Printf("\nProgram: %s\n", programPath)
	fmt.Printf("Cycles: %d\n", cycles)
	printState(c, os.Stdout, *dumpRegs, *dumpMem)

	if err != nil {
		fmt.Fprintf(os.Stderr, "Simulation error: %v\n", err)
		pprof.StopCPUProfile()
		os.Exit(1)
	}
}

// buildConfig merges the configuration file, if any, with the flags.
func buildConfig() (*config.SimConfig, error) {
	cfg := config.DefaultConfig()
	if *configPath != "" {
		var err error
		cfg, err = config.LoadConfig(*configPath)
		if err != nil {
			return nil, err
		}
	}

	flag.Visit(func(f *flag.Flag) {
		switch f.Name {
		case "cycles":
			cfg.MaxCycles = *maxCycles
		case "wire-zero":
			cfg.WireALUZero = *wireZero
		}
	})

	if *mode >= 0 {
		cfg.SetMode(core.Mode(*mode))
	}
	if *quiet {
		cfg.QuietCycle = true
		cfg.QuietDecode = true
		cfg.QuietExecute = true
	}
	if *entryOption != "" {
		var entry uint32
		if _, err := fmt.Sscanf(*entryOption, "%x", &entry); err != nil {
			return nil, fmt.Errorf("invalid entry PC %q: %w", *entryOption, err)
		}
		cfg.EntryPC = entry
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// runSimulation loads prog into a fresh core configured by cfg and runs it.
func runSimulation(
	cfg *config.SimConfig,
	prog *loader.Program,
	out io.Writer,
) (*core.Core, uint64, error) {
	opts := cfg.CoreOptions()
	opts = append(opts, core.WithTracer(trace.NewWriter(out)))
	c := core.NewCore(opts...)

	if err := prog.LoadInto(c.InstructionMemory(), c.DataMemory()); err != nil {
		return c, 0, err
	}
	c.SetPC(cfg.EntryPC)

	cycles, err := c.Run(cfg.MaxCycles)
	return c, cycles, err
}

// printState prints the architectural state left by a run.
func printState(c *core.Core, out io.Writer, regs, mem bool) {
	_, _ = fmt.Fprintf(out, "PC: 0x%08X\n", c.PC())

	if regs {
		_, _ = fmt.Fprintln(out, "\nRegisters:")
		snapshot := c.RegFile().Snapshot()
		for i, v := range snapshot {
			_, _ = fmt.Fprintf(out, "  $%-2d = 0x%08X (%d)\n", i, v, int32(v))
		}
	}

	if mem {
		_, _ = fmt.Fprintln(out, "\nData memory:")
		for _, addr := range c.DataMemory().WrittenAddresses() {
			v, err := c.DataMemory().Read32(addr)
			if err != nil {
				continue
			}
			_, _ = fmt.Fprintf(out, "  [0x%08X] = 0x%08X (%d)\n", addr, v, int32(v))
		}
	}
}
