// Package insts provides MIPS instruction definitions, field decoding and
// encoding.
//
// This package extracts the fixed-width fields of a 32-bit MIPS
// instruction word. It performs no validation: unsupported opcodes are
// rejected later by the control unit. It supports:
//   - R-type: add, sub, and, or, slt (opcode 0, selected by funct)
//   - I-type: addi, lw, sw, beq
//   - J-type: j
//
// Usage:
//
//	decoder := insts.NewDecoder()
//	inst := decoder.Decode(0x00221820) // add $3, $1, $2
//	fmt.Printf("op=%d rs=%d rt=%d rd=%d funct=%d\n",
//		inst.Opcode, inst.Rs, inst.Rt, inst.Rd, inst.Funct)
package insts
