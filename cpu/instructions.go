package cpu

// Instruction semantics, one receiver method per mnemonic. Signatures all
// match execFunc: the decoded Operand carries whatever decode() resolved
// (accumulator, a register, a memory address, implied, or a relative
// displacement), and the return value is the number of cycles to add on
// top of the opcode table's base Cycles entry — always 0 except for the
// conditional branches.
//
// https://www.nesdev.org/obelisk-6502-guide/reference.html is the primary
// reference for the documented 151; http://www.oxyron.de/html/opcodes02.html
// for the unofficial ones.

type execFunc func(c *Chip, op Operand) uint8

// adc is ADC's core: shared with SBC (operand inverted) and with the
// unofficial RRA (operand is the already-rotated memory value).
func (c *Chip) adc(m uint8) uint8 {
	a := c.Reg.A
	var carry uint16
	if c.Reg.GetFlag(FlagCarry) {
		carry = 1
	}
	sum := uint16(a) + uint16(m) + carry
	result := uint8(sum)

	c.Reg.SetFlag(FlagCarry, sum > 0xFF)
	c.Reg.SetFlag(FlagOverflow, (a^result)&(m^result)&0x80 != 0)
	c.Reg.A = result
	c.Reg.setZN(result)
	return 0
}

// ADC - Add with Carry
func (c *Chip) ADC(op Operand) uint8 { return c.adc(op.Read(c)) }

// SBC - Subtract with Carry. On NMOS 6502 this is ADC with the operand's
// bits inverted; BCD is not implemented (2A03 never decodes it).
func (c *Chip) SBC(op Operand) uint8 { return c.adc(op.Read(c) ^ 0xFF) }

// AND - Logical AND
func (c *Chip) AND(op Operand) uint8 {
	c.Reg.A &= op.Read(c)
	c.Reg.setZN(c.Reg.A)
	return 0
}

// ASL - Arithmetic Shift Left
func (c *Chip) ASL(op Operand) uint8 {
	v := op.Read(c)
	c.Reg.SetFlag(FlagCarry, v&0x80 != 0)
	v <<= 1
	op.Write(c, v)
	c.Reg.setZN(v)
	return 0
}

// branch is shared by every conditional branch: taken adds a cycle, and a
// taken branch that crosses a page adds a second.
func (c *Chip) branch(op Operand, cond bool) uint8 {
	if !cond {
		return 0
	}
	from := c.Reg.PC
	c.Reg.PC = uint16(int32(from) + int32(op.Rel))
	if pageCrossed(from, c.Reg.PC) {
		return 2
	}
	return 1
}

// BCC - Branch if Carry Clear
func (c *Chip) BCC(op Operand) uint8 { return c.branch(op, !c.Reg.GetFlag(FlagCarry)) }

// BCS - Branch if Carry Set
func (c *Chip) BCS(op Operand) uint8 { return c.branch(op, c.Reg.GetFlag(FlagCarry)) }

// BEQ - Branch if Equal
func (c *Chip) BEQ(op Operand) uint8 { return c.branch(op, c.Reg.GetFlag(FlagZero)) }

// BNE - Branch if Not Equal
func (c *Chip) BNE(op Operand) uint8 { return c.branch(op, !c.Reg.GetFlag(FlagZero)) }

// BMI - Branch if Minus
func (c *Chip) BMI(op Operand) uint8 { return c.branch(op, c.Reg.GetFlag(FlagNegative)) }

// BPL - Branch if Positive
func (c *Chip) BPL(op Operand) uint8 { return c.branch(op, !c.Reg.GetFlag(FlagNegative)) }

// BVC - Branch if Overflow Clear
func (c *Chip) BVC(op Operand) uint8 { return c.branch(op, !c.Reg.GetFlag(FlagOverflow)) }

// BVS - Branch if Overflow Set
func (c *Chip) BVS(op Operand) uint8 { return c.branch(op, c.Reg.GetFlag(FlagOverflow)) }

// BIT - Bit Test
func (c *Chip) BIT(op Operand) uint8 {
	v := op.Read(c)
	c.Reg.SetFlag(FlagZero, c.Reg.A&v == 0)
	c.Reg.SetFlag(FlagOverflow, v&0x40 != 0)
	c.Reg.SetFlag(FlagNegative, v&0x80 != 0)
	return 0
}

// BRK - Force Interrupt. Consumes a padding signature byte (real hardware
// reads and discards one), then services exactly like an IRQ except the
// pushed status has Break set.
func (c *Chip) BRK(op Operand) uint8 {
	c.Reg.PC++
	c.pushWord(c.Reg.PC)
	c.push(c.Reg.P | FlagBreak | FlagUnused)
	c.Reg.SetFlag(FlagInterrupt, true)
	c.Reg.PC = c.readVector(irqVector)
	return 0
}

// CLC - Clear Carry Flag
func (c *Chip) CLC(op Operand) uint8 { c.Reg.SetFlag(FlagCarry, false); return 0 }

// CLD - Clear Decimal Mode
func (c *Chip) CLD(op Operand) uint8 { c.Reg.SetFlag(FlagDecimal, false); return 0 }

// CLI - Clear Interrupt Disable
func (c *Chip) CLI(op Operand) uint8 { c.Reg.SetFlag(FlagInterrupt, false); return 0 }

// CLV - Clear Overflow Flag
func (c *Chip) CLV(op Operand) uint8 { c.Reg.SetFlag(FlagOverflow, false); return 0 }

// compare is shared by CMP/CPX/CPY.
func (c *Chip) compare(reg, m uint8) {
	c.Reg.SetFlag(FlagCarry, reg >= m)
	c.Reg.setZN(reg - m)
}

// CMP - Compare
func (c *Chip) CMP(op Operand) uint8 { c.compare(c.Reg.A, op.Read(c)); return 0 }

// CPX - Compare X Register
func (c *Chip) CPX(op Operand) uint8 { c.compare(c.Reg.X, op.Read(c)); return 0 }

// CPY - Compare Y Register
func (c *Chip) CPY(op Operand) uint8 { c.compare(c.Reg.Y, op.Read(c)); return 0 }

// DEC - Decrement Memory
func (c *Chip) DEC(op Operand) uint8 {
	v := op.Read(c) - 1
	op.Write(c, v)
	c.Reg.setZN(v)
	return 0
}

// DEX - Decrement X Register
func (c *Chip) DEX(op Operand) uint8 { c.Reg.X--; c.Reg.setZN(c.Reg.X); return 0 }

// DEY - Decrement Y Register
func (c *Chip) DEY(op Operand) uint8 { c.Reg.Y--; c.Reg.setZN(c.Reg.Y); return 0 }

// EOR - Exclusive OR
func (c *Chip) EOR(op Operand) uint8 {
	c.Reg.A ^= op.Read(c)
	c.Reg.setZN(c.Reg.A)
	return 0
}

// INC - Increment Memory
func (c *Chip) INC(op Operand) uint8 {
	v := op.Read(c) + 1
	op.Write(c, v)
	c.Reg.setZN(v)
	return 0
}

// INX - Increment X Register
func (c *Chip) INX(op Operand) uint8 { c.Reg.X++; c.Reg.setZN(c.Reg.X); return 0 }

// INY - Increment Y Register
func (c *Chip) INY(op Operand) uint8 { c.Reg.Y++; c.Reg.setZN(c.Reg.Y); return 0 }

// JMP - Jump
func (c *Chip) JMP(op Operand) uint8 { c.Reg.PC = op.Addr; return 0 }

// JSR - Jump to Subroutine. Pushes the address of the last byte of the JSR
// instruction, not the address of the next one.
func (c *Chip) JSR(op Operand) uint8 {
	c.pushWord(c.Reg.PC - 1)
	c.Reg.PC = op.Addr
	return 0
}

// LDA - Load Accumulator
func (c *Chip) LDA(op Operand) uint8 { c.Reg.A = op.Read(c); c.Reg.setZN(c.Reg.A); return 0 }

// LDX - Load X Register
func (c *Chip) LDX(op Operand) uint8 { c.Reg.X = op.Read(c); c.Reg.setZN(c.Reg.X); return 0 }

// LDY - Load Y Register
func (c *Chip) LDY(op Operand) uint8 { c.Reg.Y = op.Read(c); c.Reg.setZN(c.Reg.Y); return 0 }

// LSR - Logical Shift Right
func (c *Chip) LSR(op Operand) uint8 {
	v := op.Read(c)
	c.Reg.SetFlag(FlagCarry, v&0x01 != 0)
	v >>= 1
	op.Write(c, v)
	c.Reg.setZN(v)
	return 0
}

// NOP - No Operation. Also backs every unofficial NOP variant; when decode
// resolved a memory operand the read still happens, reproducing the dummy
// read a real bus would see.
func (c *Chip) NOP(op Operand) uint8 {
	if op.Kind == OperandAddress {
		op.Read(c)
	}
	return 0
}

// ORA - Logical Inclusive OR
func (c *Chip) ORA(op Operand) uint8 {
	c.Reg.A |= op.Read(c)
	c.Reg.setZN(c.Reg.A)
	return 0
}

// PHA - Push Accumulator
func (c *Chip) PHA(op Operand) uint8 { c.push(c.Reg.A); return 0 }

// PHP - Push Processor Status. The pushed copy always has Break and Unused
// set; the live P is untouched.
func (c *Chip) PHP(op Operand) uint8 { c.push(c.Reg.P | FlagBreak | FlagUnused); return 0 }

// PLA - Pull Accumulator
func (c *Chip) PLA(op Operand) uint8 { c.Reg.A = c.pop(); c.Reg.setZN(c.Reg.A); return 0 }

// PLP - Pull Processor Status. Break never becomes a live bit; Unused is
// always forced back on.
func (c *Chip) PLP(op Operand) uint8 {
	c.Reg.P = (c.pop() &^ FlagBreak) | FlagUnused
	return 0
}

// ROL - Rotate Left
func (c *Chip) ROL(op Operand) uint8 {
	v := op.Read(c)
	carryIn := c.Reg.GetFlag(FlagCarry)
	c.Reg.SetFlag(FlagCarry, v&0x80 != 0)
	v <<= 1
	if carryIn {
		v |= 0x01
	}
	op.Write(c, v)
	c.Reg.setZN(v)
	return 0
}

// ROR - Rotate Right
func (c *Chip) ROR(op Operand) uint8 {
	v := op.Read(c)
	carryIn := c.Reg.GetFlag(FlagCarry)
	c.Reg.SetFlag(FlagCarry, v&0x01 != 0)
	v >>= 1
	if carryIn {
		v |= 0x80
	}
	op.Write(c, v)
	c.Reg.setZN(v)
	return 0
}

// RTI - Return from Interrupt
func (c *Chip) RTI(op Operand) uint8 {
	c.Reg.P = (c.pop() &^ FlagBreak) | FlagUnused
	c.Reg.PC = c.popWord()
	return 0
}

// RTS - Return from Subroutine
func (c *Chip) RTS(op Operand) uint8 { c.Reg.PC = c.popWord() + 1; return 0 }

// SEC - Set Carry Flag
func (c *Chip) SEC(op Operand) uint8 { c.Reg.SetFlag(FlagCarry, true); return 0 }

// SED - Set Decimal Flag
func (c *Chip) SED(op Operand) uint8 { c.Reg.SetFlag(FlagDecimal, true); return 0 }

// SEI - Set Interrupt Disable
func (c *Chip) SEI(op Operand) uint8 { c.Reg.SetFlag(FlagInterrupt, true); return 0 }

// STA - Store Accumulator
func (c *Chip) STA(op Operand) uint8 { op.Write(c, c.Reg.A); return 0 }

// STX - Store X Register
func (c *Chip) STX(op Operand) uint8 { op.Write(c, c.Reg.X); return 0 }

// STY - Store Y Register
func (c *Chip) STY(op Operand) uint8 { op.Write(c, c.Reg.Y); return 0 }

// TAX - Transfer Accumulator to X
func (c *Chip) TAX(op Operand) uint8 { c.Reg.X = c.Reg.A; c.Reg.setZN(c.Reg.X); return 0 }

// TAY - Transfer Accumulator to Y
func (c *Chip) TAY(op Operand) uint8 { c.Reg.Y = c.Reg.A; c.Reg.setZN(c.Reg.Y); return 0 }

// TSX - Transfer Stack Pointer to X
func (c *Chip) TSX(op Operand) uint8 { c.Reg.X = c.Reg.SP; c.Reg.setZN(c.Reg.X); return 0 }

// TXA - Transfer X to Accumulator
func (c *Chip) TXA(op Operand) uint8 { c.Reg.A = c.Reg.X; c.Reg.setZN(c.Reg.A); return 0 }

// TXS - Transfer X to Stack Pointer. Unlike the other transfers this does
// not touch Z/N.
func (c *Chip) TXS(op Operand) uint8 { c.Reg.SP = c.Reg.X; return 0 }

// TYA - Transfer Y to Accumulator
func (c *Chip) TYA(op Operand) uint8 { c.Reg.A = c.Reg.Y; c.Reg.setZN(c.Reg.A); return 0 }

// --- Unofficial opcodes ---
//
// These are combinations of two legal instructions sharing one fetch/decode,
// commonly exercised by games and by nestest's extended log. Naming follows
// the oxyron/nesdev convention.

// LAX - Load Accumulator and X (unofficial)
func (c *Chip) LAX(op Operand) uint8 {
	v := op.Read(c)
	c.Reg.A = v
	c.Reg.X = v
	c.Reg.setZN(v)
	return 0
}

// SAX - Store A AND X (unofficial)
func (c *Chip) SAX(op Operand) uint8 { op.Write(c, c.Reg.A&c.Reg.X); return 0 }

// DCP - DEC then CMP (unofficial)
func (c *Chip) DCP(op Operand) uint8 {
	v := op.Read(c) - 1
	op.Write(c, v)
	c.compare(c.Reg.A, v)
	return 0
}

// ISC - INC then SBC (unofficial; also called ISB)
func (c *Chip) ISC(op Operand) uint8 {
	v := op.Read(c) + 1
	op.Write(c, v)
	return c.adc(v ^ 0xFF)
}

// SLO - ASL then ORA (unofficial)
func (c *Chip) SLO(op Operand) uint8 {
	v := op.Read(c)
	c.Reg.SetFlag(FlagCarry, v&0x80 != 0)
	v <<= 1
	op.Write(c, v)
	c.Reg.A |= v
	c.Reg.setZN(c.Reg.A)
	return 0
}

// RLA - ROL then AND (unofficial)
func (c *Chip) RLA(op Operand) uint8 {
	v := op.Read(c)
	carryIn := c.Reg.GetFlag(FlagCarry)
	c.Reg.SetFlag(FlagCarry, v&0x80 != 0)
	v <<= 1
	if carryIn {
		v |= 0x01
	}
	op.Write(c, v)
	c.Reg.A &= v
	c.Reg.setZN(c.Reg.A)
	return 0
}

// SRE - LSR then EOR (unofficial)
func (c *Chip) SRE(op Operand) uint8 {
	v := op.Read(c)
	c.Reg.SetFlag(FlagCarry, v&0x01 != 0)
	v >>= 1
	op.Write(c, v)
	c.Reg.A ^= v
	c.Reg.setZN(c.Reg.A)
	return 0
}

// RRA - ROR then ADC (unofficial)
func (c *Chip) RRA(op Operand) uint8 {
	v := op.Read(c)
	carryIn := c.Reg.GetFlag(FlagCarry)
	c.Reg.SetFlag(FlagCarry, v&0x01 != 0)
	v >>= 1
	if carryIn {
		v |= 0x80
	}
	op.Write(c, v)
	return c.adc(v)
}

// ANC - AND, then copy bit 7 into Carry (unofficial)
func (c *Chip) ANC(op Operand) uint8 {
	c.Reg.A &= op.Read(c)
	c.Reg.setZN(c.Reg.A)
	c.Reg.SetFlag(FlagCarry, c.Reg.A&0x80 != 0)
	return 0
}

// ALR - AND, then LSR A (unofficial; also called ASR)
func (c *Chip) ALR(op Operand) uint8 {
	c.Reg.A &= op.Read(c)
	c.Reg.SetFlag(FlagCarry, c.Reg.A&0x01 != 0)
	c.Reg.A >>= 1
	c.Reg.setZN(c.Reg.A)
	return 0
}

// ARR - AND, then ROR A, with Carry/Overflow derived from the result's top
// two bits (unofficial)
func (c *Chip) ARR(op Operand) uint8 {
	c.Reg.A &= op.Read(c)
	carryIn := c.Reg.GetFlag(FlagCarry)
	c.Reg.A >>= 1
	if carryIn {
		c.Reg.A |= 0x80
	}
	c.Reg.setZN(c.Reg.A)
	c.Reg.SetFlag(FlagCarry, c.Reg.A&0x40 != 0)
	c.Reg.SetFlag(FlagOverflow, (c.Reg.A>>6)&0x01^(c.Reg.A>>5)&0x01 != 0)
	return 0
}

// SBX - (A AND X) - operand, result into X, no Overflow/Decimal involved
// (unofficial; also called AXS)
func (c *Chip) SBX(op Operand) uint8 {
	m := op.Read(c)
	ax := c.Reg.A & c.Reg.X
	c.Reg.SetFlag(FlagCarry, ax >= m)
	c.Reg.X = ax - m
	c.Reg.setZN(c.Reg.X)
	return 0
}
