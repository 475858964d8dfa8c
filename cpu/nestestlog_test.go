package cpu

import (
	"fmt"
	"regexp"
	"testing"

	"github.com/davecgh/go-spew/spew"
	"github.com/stretchr/testify/assert"
)

// nestestLine is one parsed row of a nestest-format trace: PC plus the
// register/cycle snapshot taken immediately before the instruction at PC
// executes.
type nestestLine struct {
	PC    uint16
	A, X, Y, P, SP uint8
	Cycles uint64
}

var nestestLineRE = regexp.MustCompile(
	`^([0-9A-F]{4}).*A:([0-9A-F]{2}) X:([0-9A-F]{2}) Y:([0-9A-F]{2}) P:([0-9A-F]{2}) SP:([0-9A-F]{2}).*CYC:(\d+)$`)

// parseNestestLine parses one line of the shape
// "C000  4C F5 C5  JMP $C5F5  A:00 X:00 Y:00 P:24 SP:FD PPU:  0,  0 CYC:7".
func parseNestestLine(line string) (nestestLine, error) {
	m := nestestLineRE.FindStringSubmatch(line)
	if m == nil {
		return nestestLine{}, fmt.Errorf("nestestlog: no match: %q", line)
	}
	var out nestestLine
	parseHex := func(s string) uint64 {
		var v uint64
		fmt.Sscanf(s, "%X", &v)
		return v
	}
	out.PC = uint16(parseHex(m[1]))
	out.A = uint8(parseHex(m[2]))
	out.X = uint8(parseHex(m[3]))
	out.Y = uint8(parseHex(m[4]))
	out.P = uint8(parseHex(m[5]))
	out.SP = uint8(parseHex(m[6]))
	fmt.Sscanf(m[7], "%d", &out.Cycles)
	return out, nil
}

// assertMatchesLine compares a Chip's state (sampled before its next Step)
// against one parsed nestest log line.
func assertMatchesLine(t *testing.T, c *Chip, want nestestLine) {
	t.Helper()
	reg := c.Registers()
	ok := assert.Equal(t, want.PC, reg.PC, "PC") &&
		assert.Equal(t, want.A, reg.A, "A") &&
		assert.Equal(t, want.X, reg.X, "X") &&
		assert.Equal(t, want.Y, reg.Y, "Y") &&
		assert.Equal(t, want.P, reg.P, "P") &&
		assert.Equal(t, want.SP, reg.SP, "SP") &&
		assert.Equal(t, want.Cycles, c.Cycles(), "CYC")
	if !ok {
		t.Logf("want %s, got %s", spew.Sdump(want), spew.Sdump(reg))
	}
}

// TestNestestLogFormat is a scaled-down version of nestest's own
// verification shape: a small embedded program exercising a handful of
// addressing modes, checked instruction-by-instruction against hand-computed
// log lines in the exact column layout the real nestest log uses. The
// corpus itself is not vendored here.
func TestNestestLogFormat(t *testing.T) {
	// C000  A9 01     LDA #$01   A:00 X:00 Y:00 P:24 SP:FD CYC:7
	// C002  AA        TAX        A:01 X:00 Y:00 P:24 SP:FD CYC:9
	// C003  E8        INX        A:01 X:01 Y:00 P:24 SP:FD CYC:11
	// C004  4C 00 C0  JMP $C000  A:01 X:02 Y:00 P:24 SP:FD CYC:13
	lines := []string{
		"C000  A9 01     LDA #$01   A:00 X:00 Y:00 P:24 SP:FD PPU:  0,  0 CYC:7",
		"C002  AA        TAX        A:01 X:00 Y:00 P:24 SP:FD PPU:  0,  0 CYC:9",
		"C003  E8        INX        A:01 X:01 Y:00 P:24 SP:FD PPU:  0,  0 CYC:11",
		"C004  4C 00 C0  JMP $C000  A:01 X:02 Y:00 P:24 SP:FD PPU:  0,  0 CYC:13",
	}

	mem := &flatMemory{}
	mem[0xC000] = 0xA9
	mem[0xC001] = 0x01
	mem[0xC002] = 0xAA
	mem[0xC003] = 0xE8
	mem[0xC004] = 0x4C
	mem[0xC005] = 0x00
	mem[0xC006] = 0xC0
	mem.setResetVector(0xC000)

	c := New(mem)
	c.Reset()
	drainReset(t, c)

	for _, raw := range lines {
		want, err := parseNestestLine(raw)
		assert.NoError(t, err)
		assertMatchesLine(t, c, want)
		_, err = c.Step()
		assert.NoError(t, err)
	}
}
