package cpu

import (
	"nesgo/bus"
	"nesgo/mask"
)

// AddressingMode names one of the 13 ways an opcode can locate its operand.
type AddressingMode uint8

const (
	ModeImplied AddressingMode = iota
	ModeAccumulator
	ModeImmediate
	ModeZeroPage
	ModeZeroPageX
	ModeZeroPageY
	ModeRelative
	ModeAbsolute
	ModeAbsoluteX
	ModeAbsoluteY
	ModeIndirect
	ModeIndirectX
	ModeIndirectY
)

// OperandKind is the tag of the closed Operand variant described in the
// core's data model: Accumulator, Register(X|Y), Address, Relative, Implied.
type OperandKind uint8

const (
	OperandImplied OperandKind = iota
	OperandAccumulator
	OperandRegisterX
	OperandRegisterY
	OperandAddress
	OperandRelative
)

// Operand is produced by decode and consumed by the executor. At most one
// of Addr/Rel is meaningful, selected by Kind.
type Operand struct {
	Kind OperandKind
	Addr uint16
	Rel  int8
}

// Read yields the byte the operand refers to. Implied and Relative operands
// carry no readable byte and return 0.
func (o Operand) Read(c *Chip) uint8 {
	switch o.Kind {
	case OperandAccumulator:
		return c.Reg.A
	case OperandRegisterX:
		return c.Reg.X
	case OperandRegisterY:
		return c.Reg.Y
	case OperandAddress:
		return c.mem.Read(o.Addr)
	default: // OperandImplied, OperandRelative
		return 0
	}
}

// Write stores v into the operand's location. Implied and Relative operands
// are not writable and Write is a no-op for them.
func (o Operand) Write(c *Chip, v uint8) {
	switch o.Kind {
	case OperandAccumulator:
		c.Reg.A = v
	case OperandRegisterX:
		c.Reg.X = v
	case OperandRegisterY:
		c.Reg.Y = v
	case OperandAddress:
		c.mem.Write(o.Addr, v)
	}
}

// fetch reads the byte at PC and advances PC past it.
func (c *Chip) fetch() uint8 {
	v := c.mem.Read(c.Reg.PC)
	c.Reg.PC++
	return v
}

// fetchWord reads the little-endian word at PC and advances PC past both
// bytes.
func (c *Chip) fetchWord() uint16 {
	lo := c.fetch()
	hi := c.fetch()
	return mask.Word(hi, lo)
}

// readZPWord reads a 16-bit pointer out of the zero page, wrapping within
// page 0 rather than crossing into page 1 — the bug every (Indirect,X) and
// (Indirect),Y access must reproduce.
func readZPWord(mem bus.Memory, ptr uint8) uint16 {
	lo := mem.Read(uint16(ptr))
	hi := mem.Read(uint16(ptr + 1))
	return mask.Word(hi, lo)
}

// decode consumes the operand bytes for mode starting at PC, advances PC
// past them, and returns the resulting Operand plus whether the effective
// address computation crossed a page boundary.
func (c *Chip) decode(mode AddressingMode) (Operand, bool) {
	switch mode {
	case ModeImplied:
		return Operand{Kind: OperandImplied}, false

	case ModeAccumulator:
		return Operand{Kind: OperandAccumulator}, false

	case ModeImmediate:
		addr := c.Reg.PC
		c.Reg.PC++
		return Operand{Kind: OperandAddress, Addr: addr}, false

	case ModeZeroPage:
		b := c.fetch()
		return Operand{Kind: OperandAddress, Addr: uint16(b)}, false

	case ModeZeroPageX:
		b := c.fetch()
		return Operand{Kind: OperandAddress, Addr: uint16(b + c.Reg.X)}, false

	case ModeZeroPageY:
		b := c.fetch()
		return Operand{Kind: OperandAddress, Addr: uint16(b + c.Reg.Y)}, false

	case ModeRelative:
		b := c.fetch()
		return Operand{Kind: OperandRelative, Rel: int8(b)}, false

	case ModeAbsolute:
		addr := c.fetchWord()
		return Operand{Kind: OperandAddress, Addr: addr}, false

	case ModeAbsoluteX:
		base := c.fetchWord()
		addr := base + uint16(c.Reg.X)
		return Operand{Kind: OperandAddress, Addr: addr}, pageCrossed(base, addr)

	case ModeAbsoluteY:
		base := c.fetchWord()
		addr := base + uint16(c.Reg.Y)
		return Operand{Kind: OperandAddress, Addr: addr}, pageCrossed(base, addr)

	case ModeIndirect:
		ptr := c.fetchWord()
		lo := c.mem.Read(ptr)
		var hi uint8
		if mask.Lo(ptr) == 0xFF {
			// The page-wrap bug: the high byte comes from ptr&0xFF00, not ptr+1.
			hi = c.mem.Read(ptr & 0xFF00)
		} else {
			hi = c.mem.Read(ptr + 1)
		}
		return Operand{Kind: OperandAddress, Addr: mask.Word(hi, lo)}, false

	case ModeIndirectX:
		b := c.fetch()
		ptr := b + c.Reg.X
		addr := readZPWord(c.mem, ptr)
		return Operand{Kind: OperandAddress, Addr: addr}, false

	case ModeIndirectY:
		b := c.fetch()
		base := readZPWord(c.mem, b)
		addr := base + uint16(c.Reg.Y)
		return Operand{Kind: OperandAddress, Addr: addr}, pageCrossed(base, addr)

	default:
		return Operand{Kind: OperandImplied}, false
	}
}

// pageCrossed reports whether base and result fall in different 256-byte
// pages.
func pageCrossed(base, result uint16) bool {
	return base&0xFF00 != result&0xFF00
}
