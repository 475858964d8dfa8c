package ines

import (
	"bytes"
	"testing"

	"github.com/stretchr/testify/assert"
)

func buildHeader(prgChunks, chrChunks, flag6, flag7 byte) []byte {
	h := make([]byte, headerSize)
	copy(h, magic[:])
	h[4] = prgChunks
	h[5] = chrChunks
	h[6] = flag6
	h[7] = flag7
	return h
}

func TestParseHeaderRejectsBadMagic(t *testing.T) {
	buf := buildHeader(1, 1, 0, 0)
	buf[0] = 'X'
	_, err := ParseHeader(bytes.NewReader(buf))
	assert.Error(t, err)
}

func TestParseHeaderFields(t *testing.T) {
	// flag6: mapper low nibble 3, vertical mirroring, battery
	// flag7: mapper high nibble 1 -> mapper 0x13
	buf := buildHeader(2, 1, 0x33, 0x10)
	h, err := ParseHeader(bytes.NewReader(buf))
	assert.NoError(t, err)
	assert.Equal(t, uint8(2), h.PRGChunks)
	assert.Equal(t, uint8(1), h.CHRChunks)
	assert.Equal(t, uint8(0x13), h.Mapper)
	assert.True(t, h.Vertical)
	assert.True(t, h.Battery)
	assert.False(t, h.Trainer)
}

func TestLoadPRGAndCHR(t *testing.T) {
	buf := buildHeader(1, 1, 0, 0)
	prg := bytes.Repeat([]byte{0xAA}, prgBankSize)
	chr := bytes.Repeat([]byte{0xBB}, chrBankSize)
	buf = append(buf, prg...)
	buf = append(buf, chr...)

	cart, err := Load(bytes.NewReader(buf))
	assert.NoError(t, err)
	assert.Len(t, cart.PRG, prgBankSize)
	assert.Len(t, cart.CHR, chrBankSize)
	assert.Equal(t, uint8(0xAA), cart.PRG[0])
	assert.Equal(t, uint8(0xBB), cart.CHR[0])
}

func TestLoadAllocatesCHRRAMWhenNoCHRBanks(t *testing.T) {
	buf := buildHeader(1, 0, 0, 0)
	buf = append(buf, bytes.Repeat([]byte{0xAA}, prgBankSize)...)

	cart, err := Load(bytes.NewReader(buf))
	assert.NoError(t, err)
	assert.Len(t, cart.CHR, chrRAMSize)
}

func TestLoadSkipsTrainer(t *testing.T) {
	buf := buildHeader(1, 1, 0x04, 0) // trainer bit set
	buf = append(buf, bytes.Repeat([]byte{0xEE}, trainerSize)...)
	buf = append(buf, bytes.Repeat([]byte{0xAA}, prgBankSize)...)
	buf = append(buf, bytes.Repeat([]byte{0xBB}, chrBankSize)...)

	cart, err := Load(bytes.NewReader(buf))
	assert.NoError(t, err)
	assert.Equal(t, uint8(0xAA), cart.PRG[0])
}
