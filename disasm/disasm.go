// Package disasm formats one instruction at a time for display, reusing
// the CPU's own opcode table via cpu.Lookup rather than keeping a second
// copy of it. It never executes anything; mem is only read.
package disasm

import (
	"fmt"

	"nesgo/bus"
	"nesgo/cpu"
)

// Line disassembles the instruction at pc, returning its text and its
// length in bytes so a caller can advance pc without re-decoding.
func Line(mem bus.Memory, pc uint16) (string, int) {
	opcode := mem.Read(pc)
	info, ok := cpu.Lookup(opcode)
	if !ok {
		return fmt.Sprintf("$%04X: %02X         ??? (invalid)", pc, opcode), 1
	}

	operand := operandText(mem, pc, info)
	return fmt.Sprintf("%-4s %s", info.Mnemonic, operand), info.Length
}

// operandText renders the operand bytes following pc according to mode.
func operandText(mem bus.Memory, pc uint16, info cpu.Info) string {
	b1 := func() uint8 { return mem.Read(pc + 1) }
	word := func() uint16 { return uint16(mem.Read(pc+2))<<8 | uint16(mem.Read(pc+1)) }

	switch info.Mode {
	case cpu.ModeImplied:
		return ""
	case cpu.ModeAccumulator:
		return "A"
	case cpu.ModeImmediate:
		return fmt.Sprintf("#$%02X", b1())
	case cpu.ModeZeroPage:
		return fmt.Sprintf("$%02X", b1())
	case cpu.ModeZeroPageX:
		return fmt.Sprintf("$%02X,X", b1())
	case cpu.ModeZeroPageY:
		return fmt.Sprintf("$%02X,Y", b1())
	case cpu.ModeRelative:
		target := uint16(int32(pc) + 2 + int32(int8(b1())))
		return fmt.Sprintf("$%04X", target)
	case cpu.ModeAbsolute:
		return fmt.Sprintf("$%04X", word())
	case cpu.ModeAbsoluteX:
		return fmt.Sprintf("$%04X,X", word())
	case cpu.ModeAbsoluteY:
		return fmt.Sprintf("$%04X,Y", word())
	case cpu.ModeIndirect:
		return fmt.Sprintf("($%04X)", word())
	case cpu.ModeIndirectX:
		return fmt.Sprintf("($%02X,X)", b1())
	case cpu.ModeIndirectY:
		return fmt.Sprintf("($%02X),Y", b1())
	default:
		return ""
	}
}
