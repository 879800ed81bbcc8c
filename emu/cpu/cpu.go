package cpu

import (
	"math/rand"
	"time"

	"github.com/pkg/errors"
)

const (
	MemorySize   = 4096
	ProgramStart = 0x200
	MaxAddress   = 0xFFF
	Width        = 64
	Height       = 32
	NumKeys      = 16
	stackDepth   = 16
	maxRomSize   = MemorySize - ProgramStart
	flag         = 0xF
)

type EMU struct {
	opcode       uint16
	memory       [MemorySize]uint8
	V            [16]uint8 //VF doubles as carry/borrow/collision flag
	I            uint16    //address register
	pc           uint16
	display      [Width * Height]uint8
	delayTimer   uint8
	soundTimer   uint8
	stack        [stackDepth]uint16
	sp           uint16
	keyState     [NumKeys]bool //pressed this cycle
	prevKeyState [NumKeys]bool //pressed last cycle, for FX0A edges
	updateScreen bool

	rng          *rand.Rand
	seed         func() int64
	soundHandler func()
}

// Option configures an EMU at construction.
type Option func(*EMU)

// WithSeed replaces the time based seed used on every Reset. Tests use it to
// get a reproducible CXNN sequence.
func WithSeed(seed func() int64) Option {
	return func(emu *EMU) {
		emu.seed = seed
	}
}

// WithSoundHandler registers the callback fired when the sound timer
// goes from 1 to 0.
func WithSoundHandler(handler func()) Option {
	return func(emu *EMU) {
		emu.soundHandler = handler
	}
}

// NewEMU returns a machine that has already been reset.
func NewEMU(opts ...Option) *EMU {
	emu := &EMU{
		seed: func() int64 { return time.Now().UnixNano() },
	}
	for _, opt := range opts {
		opt(emu)
	}
	emu.Reset()
	return emu
}

// Reset zeroes every part of the machine, reloads the fontset and reseeds
// the random source.
func (emu *EMU) Reset() {
	emu.opcode = 0
	emu.memory = [MemorySize]uint8{}
	emu.V = [16]uint8{}
	emu.I = 0
	emu.pc = ProgramStart
	emu.display = [Width * Height]uint8{}
	emu.delayTimer = 0
	emu.soundTimer = 0
	emu.stack = [stackDepth]uint16{}
	emu.sp = 0
	emu.keyState = [NumKeys]bool{}
	emu.prevKeyState = [NumKeys]bool{}
	emu.updateScreen = false

	emu.loadFont()
	emu.rng = rand.New(rand.NewSource(emu.seed()))
}

func (emu *EMU) loadFont() {
	copy(emu.memory[:len(FontSet)], FontSet[:])
}

// LoadROM copies rom into memory at 0x200. A ROM that does not fit leaves
// the machine untouched.
func (emu *EMU) LoadROM(rom []byte) error {
	if len(rom) > maxRomSize {
		return errors.Wrapf(ErrROMTooLarge, "%d bytes, limit is %d", len(rom), maxRomSize)
	}
	copy(emu.memory[ProgramStart:], rom)
	return nil
}

// SetKeys replaces the currently pressed key vector.
func (emu *EMU) SetKeys(keys [NumKeys]bool) {
	emu.keyState = keys
}

// Framebuffer returns a copy of the 64x32 display, row major, one byte per
// pixel holding 0 or 1.
func (emu *EMU) Framebuffer() [Width * Height]uint8 {
	return emu.display
}

// Pixel reports whether the pixel at x,y is lit.
func (emu *EMU) Pixel(x, y int) bool {
	return emu.display[x+y*Width] == 1
}

// Redraw reports whether the framebuffer changed since the last ClearRedraw.
func (emu *EMU) Redraw() bool {
	return emu.updateScreen
}

func (emu *EMU) ClearRedraw() {
	emu.updateScreen = false
}

func (emu *EMU) Registers() [16]uint8 {
	return emu.V
}

func (emu *EMU) Memory() [MemorySize]uint8 {
	return emu.memory
}

func (emu *EMU) PC() uint16 {
	return emu.pc
}

func (emu *EMU) Index() uint16 {
	return emu.I
}

func (emu *EMU) SP() uint16 {
	return emu.sp
}

func (emu *EMU) DelayTimer() uint8 {
	return emu.delayTimer
}

func (emu *EMU) SoundTimer() uint8 {
	return emu.soundTimer
}

// Opcode is the last instruction word fetched.
func (emu *EMU) Opcode() uint16 {
	return emu.opcode
}
