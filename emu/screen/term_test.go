package screen

import (
	"strings"
	"testing"
	"time"

	"github.com/RiverApril/Chip8Emu/emu/cpu"
	"github.com/retroenv/retrogolib/assert"
)

func TestKeyLatch(t *testing.T) {
	now := time.Unix(100, 0)
	latch := NewKeyLatch(keyRepeatDuration)
	latch.Press(0xA, now)

	assert.True(t, latch.State(now)[0xA])
	assert.True(t, latch.State(now.Add(keyRepeatDuration/2))[0xA])
	assert.False(t, latch.State(now.Add(keyRepeatDuration))[0xA])
	assert.False(t, latch.State(now)[0xB])
}

func TestDrainInput(t *testing.T) {
	now := time.Unix(100, 0)
	latch := NewKeyLatch(time.Second)
	input := make(chan byte, 4)
	input <- 'w'
	input <- 'p'

	assert.False(t, drainInput(input, latch, now))
	assert.True(t, latch.State(now)[0x5])

	input <- escape
	assert.True(t, drainInput(input, latch, now))

	close(input)
	assert.True(t, drainInput(input, latch, now))
}

func TestHalfBlocks(t *testing.T) {
	var fb [cpu.Width * cpu.Height]uint8
	fb[0] = 1
	fb[1] = 1
	fb[1+cpu.Width] = 1
	fb[2+cpu.Width] = 1
	fb[63+31*cpu.Width] = 1

	lines := strings.Split(HalfBlocks(fb), "\r\n")
	assert.Equal(t, cpu.Height/2+1, len(lines))
	assert.Equal(t, "▀█▄ ", string([]rune(lines[0])[:4]))
	assert.Equal(t, cpu.Width, len([]rune(lines[0])))
	assert.Equal(t, "▄", string([]rune(lines[15])[63]))
	assert.Equal(t, "", lines[16])
}
