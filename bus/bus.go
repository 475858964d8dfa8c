// Package bus implements the 6502's 16-bit address space as seen by the
// CPU: 2 KiB of mirrored work RAM, an 8-register PPU window mirrored every
// 8 bytes, the APU/IO window, a disabled test-mode window, and the
// cartridge's PRG space.
package bus

// Memory is the contract every region backend (work RAM, PPU registers,
// APU/IO registers) and the CPU itself are built against. Reads and writes
// are O(1) and never fail; an unimplemented region simply returns 0 on read
// and drops writes.
type Memory interface {
	Read(addr uint16) uint8
	Write(addr uint16, val uint8)
}

// Cartridge is implemented by a mapper. It exposes the CPU-side PRG window;
// CHR access (PPURead/PPUWrite) belongs to the mapper's own interface and is
// not routed through this Bus, since the CPU never addresses CHR directly.
type Cartridge interface {
	CPURead(addr uint16) uint8
	CPUWrite(addr uint16, val uint8)
}

const (
	ramStart      = 0x0000
	ramEnd        = 0x1FFF
	ramMirrorMask = 0x07FF

	ppuStart      = 0x2000
	ppuEnd        = 0x3FFF
	ppuMirrorMask = 0x0007

	apuIOStart = 0x4000
	apuIOEnd   = 0x4017

	disabledStart = 0x4018
	disabledEnd   = 0x401F

	cartStart = 0x4020
)

// Bus owns the 2 KiB of CPU work RAM and routes every other address to the
// collaborator registered for that region. A nil collaborator behaves like
// the disabled 0x4018-0x401F window: reads return 0, writes are no-ops.
type Bus struct {
	ram  [2048]uint8
	ppu  Memory
	apu  Memory
	cart Cartridge
}

// New builds a Bus wired to the given collaborators. Any of them may be nil,
// in which case reads from that region return 0 and writes are dropped.
func New(cart Cartridge, ppu, apu Memory) *Bus {
	return &Bus{cart: cart, ppu: ppu, apu: apu}
}

// Read dispatches addr to its backing region and returns the byte there.
func (b *Bus) Read(addr uint16) uint8 {
	switch {
	case addr <= ramEnd:
		return b.ram[addr&ramMirrorMask]
	case addr >= ppuStart && addr <= ppuEnd:
		if b.ppu == nil {
			return 0
		}
		return b.ppu.Read(ppuStart + addr&ppuMirrorMask)
	case addr >= apuIOStart && addr <= apuIOEnd:
		if b.apu == nil {
			return 0
		}
		return b.apu.Read(addr)
	case addr >= disabledStart && addr <= disabledEnd:
		return 0
	default: // cartStart..0xFFFF
		if b.cart == nil {
			return 0
		}
		return b.cart.CPURead(addr)
	}
}

// Write dispatches val to addr's backing region.
func (b *Bus) Write(addr uint16, val uint8) {
	switch {
	case addr <= ramEnd:
		b.ram[addr&ramMirrorMask] = val
	case addr >= ppuStart && addr <= ppuEnd:
		if b.ppu != nil {
			b.ppu.Write(ppuStart+addr&ppuMirrorMask, val)
		}
	case addr >= apuIOStart && addr <= apuIOEnd:
		if b.apu != nil {
			b.apu.Write(addr, val)
		}
	case addr >= disabledStart && addr <= disabledEnd:
		// no-op: open bus
	default:
		if b.cart != nil {
			b.cart.CPUWrite(addr, val)
		}
	}
}

// ReadWord reads the little-endian 16-bit word at addr and addr+1.
func (b *Bus) ReadWord(addr uint16) uint16 {
	lo := b.Read(addr)
	hi := b.Read(addr + 1)
	return uint16(hi)<<8 | uint16(lo)
}
