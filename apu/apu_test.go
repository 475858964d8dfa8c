package apu

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"nesgo/irq"
)

func TestWriteStoresRegisterByte(t *testing.T) {
	a := NewStub(nil)
	a.Write(0x4000, 0x7F)
	assert.Equal(t, uint8(0x7F), a.Read(0x4000))
}

func TestStatusReadAlwaysReportsSilence(t *testing.T) {
	a := NewStub(nil)
	a.regs[RegStatus] = 0xFF
	assert.Equal(t, uint8(0), a.Read(0x4000+RegStatus))
}

func TestFrameCounterInhibitBitClearsIRQLine(t *testing.T) {
	line := &irq.Line{}
	line.Assert()
	a := NewStub(line)

	a.Write(0x4000+RegFrameCounter, frameIRQInhibit)
	assert.False(t, line.Raised())
}

func TestFrameCounterWithoutInhibitLeavesLineAlone(t *testing.T) {
	line := &irq.Line{}
	line.Assert()
	a := NewStub(line)

	a.Write(0x4000+RegFrameCounter, 0x00)
	assert.True(t, line.Raised())
}

func TestNilIRQLineIsSafeToWriteThrough(t *testing.T) {
	a := NewStub(nil)
	assert.NotPanics(t, func() {
		a.Write(0x4000+RegFrameCounter, frameIRQInhibit)
	})
}
