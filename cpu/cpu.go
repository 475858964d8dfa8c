// Package cpu implements the MOS 6502 core used by the NES (Ricoh 2A03:
// identical to the NMOS 6502 with BCD arithmetic disabled). It decodes and
// executes one instruction per fetch/decode/execute cycle against a
// bus.Memory, with bit-exact flag, stack, and cycle-count behavior,
// including the documented unofficial opcodes and the JMP-indirect
// page-wrap bug.
package cpu

import (
	"fmt"

	"nesgo/bus"
	"nesgo/irq"
	"nesgo/mask"
)

const (
	nmiVector   = uint16(0xFFFA)
	resetVector = uint16(0xFFFC)
	irqVector   = uint16(0xFFFE)

	stackPage = uint16(0x0100)
)

// InvalidOpcode is returned the instant Step/Tick fetches a byte with no
// table entry (the JAM/KIL family and the unstable undocumented opcodes left
// unimplemented). Recovery is host-decided; the Chip
// itself halts on the spot.
type InvalidOpcode struct {
	Opcode uint8
	PC     uint16
}

func (e InvalidOpcode) Error() string {
	return fmt.Sprintf("invalid opcode 0x%02X at 0x%04X", e.Opcode, e.PC)
}

// HaltedError is returned by any Step/Tick call after the Chip has already
// halted on an InvalidOpcode. Distinguishing it from InvalidOpcode lets a
// caller tell "just hit the hang" from "still hung from before" without
// inspecting PC.
type HaltedError struct {
	Opcode uint8
	PC     uint16
}

func (e HaltedError) Error() string {
	return fmt.Sprintf("chip halted on invalid opcode 0x%02X at 0x%04X", e.Opcode, e.PC)
}

// Chip is a single 6502 core: its registers, its cumulative cycle count, and
// the interrupt lines it polls between instructions. It owns no memory of
// its own — every read and write goes through mem.
type Chip struct {
	Reg Registers

	mem bus.Memory

	irqLine irq.Line
	nmiLine irq.Line

	remaining uint8 // cycles left before the next fetch/decode/execute
	cycles    uint64

	halted     bool
	haltOpcode uint8
}

// New creates a powered-off Chip wired to mem. Call Reset before Tick.
func New(mem bus.Memory) *Chip {
	return &Chip{mem: mem}
}

// IRQLine returns the level-triggered IRQ line. Collaborators Assert it
// while their interrupt condition holds and Clear it once acknowledged.
func (c *Chip) IRQLine() *irq.Line { return &c.irqLine }

// NMILine returns the edge-triggered NMI line. The Chip clears it itself
// the instant it services the interrupt.
func (c *Chip) NMILine() *irq.Line { return &c.nmiLine }

// Registers returns a snapshot of the register file.
func (c *Chip) Registers() Registers { return c.Reg }

// Cycles returns the cumulative number of clock cycles run since Reset.
func (c *Chip) Cycles() uint64 { return c.cycles }

// Halted reports whether the Chip stopped on an invalid opcode.
func (c *Chip) Halted() bool { return c.halted }

// readVector reads the little-endian word stored at a fixed vector address.
func (c *Chip) readVector(addr uint16) uint16 {
	lo := c.mem.Read(addr)
	hi := c.mem.Read(addr + 1)
	return mask.Word(hi, lo)
}

// Reset powers the Chip on (or restarts it): registers go to their defined
// reset values, PC loads from the reset vector, and the clock is primed
// with the 7-cycle reset sequence.
func (c *Chip) Reset() {
	c.Reg.A, c.Reg.X, c.Reg.Y = 0, 0, 0
	c.Reg.SP -= 3 // no stack is actually pushed; SP is merely decremented 3 times
	c.Reg.P = FlagInterrupt | FlagUnused
	c.Reg.PC = c.readVector(resetVector)

	c.cycles = 0
	c.remaining = 7
	c.halted = false
	c.haltOpcode = 0
}

// push writes v to the stack page at SP, then decrements SP (wrapping
// within page 1).
func (c *Chip) push(v uint8) {
	c.mem.Write(stackPage|uint16(c.Reg.SP), v)
	c.Reg.SP--
}

// pop increments SP (wrapping within page 1), then reads the byte there.
func (c *Chip) pop() uint8 {
	c.Reg.SP++
	return c.mem.Read(stackPage | uint16(c.Reg.SP))
}

// pushWord pushes a 16-bit value high byte first, as JSR/BRK/interrupts do.
func (c *Chip) pushWord(v uint16) {
	c.push(mask.Hi(v))
	c.push(mask.Lo(v))
}

// popWord pops a 16-bit value pushed by pushWord.
func (c *Chip) popWord() uint16 {
	lo := c.pop()
	hi := c.pop()
	return mask.Word(hi, lo)
}

// serviceInterrupt runs the shared IRQ/NMI push sequence: push PC, push P
// with Break clear and Unused set, set the Interrupt-Disable flag, and load
// PC from vector. It primes the clock with the 7-cycle interrupt sequence.
func (c *Chip) serviceInterrupt(vector uint16) {
	c.pushWord(c.Reg.PC)
	c.push((c.Reg.P | FlagUnused) &^ FlagBreak)
	c.Reg.SetFlag(FlagInterrupt, true)
	c.Reg.PC = c.readVector(vector)
	c.remaining = 7
}

// Tick advances the Chip by one clock cycle. When cycles-remaining is zero
// it either services a pending interrupt or fetches, decodes, and executes
// one instruction (reloading cycles-remaining); otherwise it just counts
// the cycle down. Interrupts are only honored at an instruction boundary.
func (c *Chip) Tick() error {
	if c.remaining > 0 {
		c.remaining--
		c.cycles++
		return nil
	}

	if c.halted {
		return HaltedError{Opcode: c.haltOpcode, PC: c.Reg.PC}
	}

	if c.nmiLine.Raised() {
		c.nmiLine.Clear()
		c.serviceInterrupt(nmiVector)
		c.remaining--
		c.cycles++
		return nil
	}

	if c.irqLine.Raised() && !c.Reg.GetFlag(FlagInterrupt) {
		c.serviceInterrupt(irqVector)
		c.remaining--
		c.cycles++
		return nil
	}

	pc := c.Reg.PC
	opByte := c.fetch()
	entry := opcodeTable[opByte]
	if entry.Exec == nil {
		c.halted = true
		c.haltOpcode = opByte
		return InvalidOpcode{Opcode: opByte, PC: pc}
	}

	operand, crossed := c.decode(entry.Mode)
	extra := entry.Exec(c, operand)

	total := entry.Cycles
	if crossed && entry.PageCrossPenalty {
		total++
	}
	total += extra

	c.remaining = total - 1
	c.cycles++
	return nil
}

// Step ticks the Chip until the current instruction (or interrupt service)
// has fully retired, returning the number of cycles it took.
func (c *Chip) Step() (int, error) {
	start := c.cycles
	if err := c.Tick(); err != nil {
		return 0, err
	}
	for c.remaining > 0 {
		if err := c.Tick(); err != nil {
			return int(c.cycles - start), err
		}
	}
	return int(c.cycles - start), nil
}
