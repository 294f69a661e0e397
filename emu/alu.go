package emu

// ALUOperation is the 4-bit operation code driven into the ALU.
type ALUOperation uint8

// ALU operation codes.
const (
	ALUAnd ALUOperation = 0  // 0000
	ALUOr  ALUOperation = 1  // 0001
	ALUAdd ALUOperation = 2  // 0010
	ALUSub ALUOperation = 6  // 0110
	ALUSlt ALUOperation = 7  // 0111
	ALUNor ALUOperation = 12 // 1100
)

// String returns the mnemonic of the operation.
func (op ALUOperation) String() string {
	switch op {
	case ALUAnd:
		return "and"
	case ALUOr:
		return "or"
	case ALUAdd:
		return "add"
	case ALUSub:
		return "sub"
	case ALUSlt:
		return "slt"
	case ALUNor:
		return "nor"
	default:
		return "unknown"
	}
}

// ALU32 is the 32-bit arithmetic unit. It returns the result and a flag
// that is true when the result is zero. Unknown operations produce 0.
func ALU32(a, b uint32, op ALUOperation) (uint32, bool) {
	var result uint32

	switch op {
	case ALUAnd:
		result = a & b
	case ALUOr:
		result = a | b
	case ALUAdd:
		result = a + b
	case ALUSub:
		result = a - b
	case ALUSlt:
		if int32(a) < int32(b) {
			result = 1
		}
	case ALUNor:
		result = ^(a | b)
	}

	return result, result == 0
}
