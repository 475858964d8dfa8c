package disasm

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

type flatMemory [65536]uint8

func (m *flatMemory) Read(addr uint16) uint8     { return m[addr] }
func (m *flatMemory) Write(addr uint16, v uint8) { m[addr] = v }

func TestLineFormatsImmediate(t *testing.T) {
	mem := &flatMemory{}
	mem[0x8000] = 0xA9 // LDA #imm
	mem[0x8001] = 0x42

	line, length := Line(mem, 0x8000)
	assert.Equal(t, "LDA  #$42", line)
	assert.Equal(t, 2, length)
}

func TestLineFormatsAbsoluteX(t *testing.T) {
	mem := &flatMemory{}
	mem[0x8000] = 0xBD // LDA abs,X
	mem[0x8001] = 0x00
	mem[0x8002] = 0x20

	line, length := Line(mem, 0x8000)
	assert.Equal(t, "LDA  $2000,X", line)
	assert.Equal(t, 3, length)
}

func TestLineFormatsIndirectX(t *testing.T) {
	mem := &flatMemory{}
	mem[0x8000] = 0xA1 // LDA (zp,X)
	mem[0x8001] = 0x10

	line, _ := Line(mem, 0x8000)
	assert.Equal(t, "LDA  ($10,X)", line)
}

func TestLineFormatsIndirectY(t *testing.T) {
	mem := &flatMemory{}
	mem[0x8000] = 0xB1 // LDA (zp),Y
	mem[0x8001] = 0x10

	line, _ := Line(mem, 0x8000)
	assert.Equal(t, "LDA  ($10),Y", line)
}

func TestLineFormatsRelativeBranchTarget(t *testing.T) {
	mem := &flatMemory{}
	mem[0x8000] = 0xF0 // BEQ
	mem[0x8001] = 0x02

	line, length := Line(mem, 0x8000)
	assert.Equal(t, "BEQ  $8004", line)
	assert.Equal(t, 2, length)
}

func TestLineFormatsAccumulatorMode(t *testing.T) {
	mem := &flatMemory{}
	mem[0x8000] = 0x0A // ASL A

	line, length := Line(mem, 0x8000)
	assert.Equal(t, "ASL  A", line)
	assert.Equal(t, 1, length)
}

func TestLineReportsInvalidOpcode(t *testing.T) {
	mem := &flatMemory{}
	mem[0x8000] = 0x02 // JAM

	line, length := Line(mem, 0x8000)
	assert.Contains(t, line, "invalid")
	assert.Equal(t, 1, length)
}
