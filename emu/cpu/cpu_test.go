package cpu

import (
	"testing"

	"github.com/pkg/errors"
	"github.com/retroenv/retrogolib/assert"
)

// newTestEMU returns a deterministically seeded machine with the given
// instruction words loaded at 0x200.
func newTestEMU(t *testing.T, words ...uint16) *EMU {
	t.Helper()

	emu := NewEMU(WithSeed(func() int64 { return 1 }))
	rom := make([]byte, 0, len(words)*2)
	for _, w := range words {
		rom = append(rom, byte(w>>8), byte(w))
	}
	assert.NoError(t, emu.LoadROM(rom))
	return emu
}

func assertResetState(t *testing.T, emu *EMU) {
	t.Helper()

	for i := 0; i < len(FontSet); i++ {
		assert.Equal(t, FontSet[i], emu.memory[i])
	}
	for i := len(FontSet); i < MemorySize; i++ {
		if emu.memory[i] != 0 {
			t.Fatalf("memory[%03X] = %02X after reset", i, emu.memory[i])
		}
	}
	assert.Equal(t, uint16(ProgramStart), emu.pc)
	assert.Equal(t, uint16(0), emu.I)
	assert.Equal(t, uint16(0), emu.sp)
	assert.Equal(t, [16]uint8{}, emu.V)
	assert.Equal(t, [stackDepth]uint16{}, emu.stack)
	assert.Equal(t, [Width * Height]uint8{}, emu.display)
	assert.Equal(t, uint8(0), emu.delayTimer)
	assert.Equal(t, uint8(0), emu.soundTimer)
	assert.False(t, emu.updateScreen)
}

func TestReset(t *testing.T) {
	emu := newTestEMU(t, 0x00E0, 0x6A05, 0xA000, 0xFA55, 0x2300)
	for i := 0; i < 5; i++ {
		_, err := emu.EmulateCycle()
		assert.NoError(t, err)
	}
	emu.delayTimer = 9
	emu.soundTimer = 9

	emu.Reset()
	assertResetState(t, emu)

	emu.Reset()
	assertResetState(t, emu)
}

func TestResetRestoresFontset(t *testing.T) {
	emu := newTestEMU(t, 0x60FF, 0xA000, 0xF055)
	for i := 0; i < 3; i++ {
		_, err := emu.EmulateCycle()
		assert.NoError(t, err)
	}
	assert.Equal(t, uint8(0xFF), emu.memory[0])

	emu.Reset()
	assert.Equal(t, FontSet[0], emu.memory[0])
}

func TestLoadROM(t *testing.T) {
	emu := NewEMU()
	assert.NoError(t, emu.LoadROM([]byte{0x12, 0x34, 0x56}))
	assert.Equal(t, uint8(0x12), emu.memory[0x200])
	assert.Equal(t, uint8(0x34), emu.memory[0x201])
	assert.Equal(t, uint8(0x56), emu.memory[0x202])

	full := make([]byte, maxRomSize)
	full[len(full)-1] = 0xAB
	assert.NoError(t, emu.LoadROM(full))
	assert.Equal(t, uint8(0xAB), emu.memory[MaxAddress])
}

func TestLoadROMTooLarge(t *testing.T) {
	emu := NewEMU()
	assert.NoError(t, emu.LoadROM([]byte{0x12, 0x34}))
	before := emu.Memory()

	rom := make([]byte, maxRomSize+1)
	for i := range rom {
		rom[i] = 0xEE
	}
	err := emu.LoadROM(rom)
	assert.Error(t, err)
	assert.True(t, errors.Is(err, ErrROMTooLarge))
	assert.Equal(t, before, emu.Memory())
}

func TestSetKeysReplacesState(t *testing.T) {
	emu := NewEMU()
	var keys [NumKeys]bool
	keys[3] = true
	emu.SetKeys(keys)
	assert.True(t, emu.keyState[3])

	emu.SetKeys([NumKeys]bool{})
	assert.False(t, emu.keyState[3])
}

func TestAccessors(t *testing.T) {
	emu := newTestEMU(t, 0xA123)
	_, err := emu.EmulateCycle()
	assert.NoError(t, err)

	assert.Equal(t, uint16(0x123), emu.Index())
	assert.Equal(t, uint16(0x202), emu.PC())
	assert.Equal(t, uint16(0xA123), emu.Opcode())

	emu.display[5+2*Width] = 1
	assert.True(t, emu.Pixel(5, 2))
	assert.False(t, emu.Pixel(6, 2))
	fb := emu.Framebuffer()
	assert.Equal(t, uint8(1), fb[5+2*Width])
}
