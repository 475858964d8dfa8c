package cpu

// Info is the static, no-execution part of an opcode table entry: enough
// for a disassembler or trace logger to describe an instruction without
// running it.
type Info struct {
	Mnemonic string
	Mode     AddressingMode
	Length   int // total instruction length in bytes, including the opcode
}

// modeLength is the number of bytes (opcode plus operand) each addressing
// mode consumes.
var modeLength = map[AddressingMode]int{
	ModeImplied:     1,
	ModeAccumulator: 1,
	ModeImmediate:   2,
	ModeZeroPage:    2,
	ModeZeroPageX:   2,
	ModeZeroPageY:   2,
	ModeRelative:    2,
	ModeAbsolute:    3,
	ModeAbsoluteX:   3,
	ModeAbsoluteY:   3,
	ModeIndirect:    3,
	ModeIndirectX:   2,
	ModeIndirectY:   2,
}

// Lookup returns the static description of opcode, and false if it has no
// defined instruction (the JAM/KIL family and the unstable undocumented
// opcodes this core leaves unimplemented).
func Lookup(opcode uint8) (Info, bool) {
	entry := opcodeTable[opcode]
	if entry.Exec == nil {
		return Info{}, false
	}
	return Info{Mnemonic: entry.Mnemonic, Mode: entry.Mode, Length: modeLength[entry.Mode]}, true
}
