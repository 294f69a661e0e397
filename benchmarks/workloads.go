package benchmarks

import (
	"github.com/sarchlab/mipssim/emu"
	"github.com/sarchlab/mipssim/insts"
)

// GetWorkloads returns the standard set of workloads. Each one exercises
// a different slice of the datapath.
func GetWorkloads() []Benchmark {
	return []Benchmark{
		arithmeticSequential(),
		dependencyChain(),
		memoryRoundTrip(),
		aluMix(),
		jumpOver(),
		countdownLoop(),
		arraySum(),
	}
}

// GetStraightLineWorkloads returns the workloads that contain no branches
// and therefore run the same whether or not the ALU zero output is wired.
func GetStraightLineWorkloads() []Benchmark {
	return []Benchmark{
		arithmeticSequential(),
		dependencyChain(),
		memoryRoundTrip(),
		aluMix(),
		jumpOver(),
	}
}

// 1. Arithmetic Sequential - independent addi instructions
func arithmeticSequential() Benchmark {
	program := make([]uint32, 0, 20)
	for i := 0; i < 4; i++ {
		for rt := uint8(1); rt <= 5; rt++ {
			program = append(program, insts.ADDI(rt, rt, 1))
		}
	}

	return Benchmark{
		Name:           "arithmetic_sequential",
		Description:    "20 addi spread over 5 registers",
		Program:        program,
		ResultReg:      1,
		ExpectedResult: 4,
	}
}

// 2. Dependency Chain - every instruction reads the previous result
func dependencyChain() Benchmark {
	program := make([]uint32, 0, 20)
	for i := 0; i < 20; i++ {
		program = append(program, insts.ADDI(1, 1, 1))
	}

	return Benchmark{
		Name:           "dependency_chain",
		Description:    "20 dependent addi ($1 = $1 + 1) - exercises the clock-edge commit",
		Program:        program,
		ResultReg:      1,
		ExpectedResult: 20,
	}
}

// 3. Memory Round Trip - store, load back, store the loaded value again
func memoryRoundTrip() Benchmark {
	return Benchmark{
		Name:        "memory_round_trip",
		Description: "sw/lw pairs through data memory",
		Setup: func(regFile *emu.RegFile, _ *emu.Memory) error {
			regFile.WriteReg(1, 0x1000) // base address
			regFile.WriteReg(2, 42)     // value
			return nil
		},
		Program: []uint32{
			insts.SW(2, 1, 0),
			insts.LW(3, 1, 0),
			insts.SW(3, 1, 4),
			insts.LW(4, 1, 4),
			insts.ADD(5, 3, 4),
		},
		ResultReg:      5,
		ExpectedResult: 84,
	}
}

// 4. ALU Mix - every register-register operation
func aluMix() Benchmark {
	return Benchmark{
		Name:        "alu_mix",
		Description: "sub, and, or, slt and add over two operands",
		Setup: func(regFile *emu.RegFile, _ *emu.Memory) error {
			regFile.WriteReg(1, 12)
			regFile.WriteReg(2, 10)
			return nil
		},
		Program: []uint32{
			insts.SUB(3, 1, 2), // 2
			insts.AND(4, 1, 2), // 8
			insts.OR(5, 1, 2),  // 14
			insts.SLT(6, 2, 1), // 1
			insts.SLT(7, 1, 2), // 0
			insts.ADD(8, 3, 4),
			insts.ADD(8, 8, 5),
			insts.ADD(8, 8, 6),
		},
		ResultReg:      8,
		ExpectedResult: 25,
	}
}

// 5. Jump Over - j skips two instructions
func jumpOver() Benchmark {
	return Benchmark{
		Name:        "jump_over",
		Description: "j over two addi",
		Program: []uint32{
			insts.ADDI(1, 0, 1),   // 0x00
			insts.J(0x10),         // 0x04
			insts.ADDI(1, 1, 100), // 0x08 skipped
			insts.ADDI(1, 1, 100), // 0x0C skipped
			insts.ADDI(1, 1, 1),   // 0x10
		},
		ResultReg:      1,
		ExpectedResult: 2,
	}
}

// 6. Countdown Loop - beq exits when the counter reaches zero
func countdownLoop() Benchmark {
	return Benchmark{
		Name:        "countdown_loop",
		Description: "10 iterations of a beq/j loop adding 3 each time",
		Program: []uint32{
			insts.ADDI(1, 0, 10), // 0x00 counter
			insts.ADDI(2, 0, 0),  // 0x04 accumulator
			insts.BEQ(1, 0, 3),   // 0x08 exit to 0x18, past the program
			insts.ADDI(2, 2, 3),  // 0x0C
			insts.ADDI(1, 1, -1), // 0x10
			insts.J(0x08),        // 0x14
		},
		NeedsALUZero:   true,
		ResultReg:      2,
		ExpectedResult: 30,
	}
}

// 7. Array Sum - walk an array in data memory
func arraySum() Benchmark {
	const base = 0x2000

	return Benchmark{
		Name:        "array_sum",
		Description: "sum of a 5-word array with lw in a loop",
		Setup: func(_ *emu.RegFile, dMem *emu.Memory) error {
			return dMem.LoadWords(base, []uint32{1, 2, 3, 4, 5})
		},
		Program: []uint32{
			insts.ADDI(1, 0, base), // 0x00 pointer
			insts.ADDI(2, 0, 5),    // 0x04 count
			insts.ADDI(3, 0, 0),    // 0x08 sum
			insts.BEQ(2, 0, 5),     // 0x0C exit to 0x24, past the program
			insts.LW(4, 1, 0),      // 0x10
			insts.ADD(3, 3, 4),     // 0x14
			insts.ADDI(1, 1, 4),    // 0x18
			insts.ADDI(2, 2, -1),   // 0x1C
			insts.J(0x0C),          // 0x20
		},
		NeedsALUZero:   true,
		ResultReg:      3,
		ExpectedResult: 15,
	}
}
