// Package console drives a cpu.EMU from a host frame loop. Every display
// backend owns its own loop and calls Frame once per tick.
package console

import (
	"fmt"

	"github.com/RiverApril/Chip8Emu/emu/cpu"
	"github.com/RiverApril/Chip8Emu/emu/disasm"
	"github.com/retroenv/retrogolib/log"
)

// Options controls the frame stepping.
type Options struct {
	CyclesPerFrame int
	Trace          bool
}

// Console owns the machine for the lifetime of a run.
type Console struct {
	emu     *cpu.EMU
	logger  *log.Logger
	options Options
	cycles  uint64
	faults  uint64
}

func New(emu *cpu.EMU, logger *log.Logger, options Options) *Console {
	if options.CyclesPerFrame < 1 {
		options.CyclesPerFrame = 1
	}
	return &Console{
		emu:     emu,
		logger:  logger,
		options: options,
	}
}

// EMU exposes the machine to renderers.
func (c *Console) EMU() *cpu.EMU {
	return c.emu
}

// Frame latches keys and runs one frame worth of cycles. It reports whether
// the framebuffer has to be drawn again.
func (c *Console) Frame(keys [cpu.NumKeys]bool) bool {
	c.emu.SetKeys(keys)

	for i := 0; i < c.options.CyclesPerFrame; i++ {
		pc := c.emu.PC()
		word, err := c.emu.EmulateCycle()
		c.cycles++

		if c.options.Trace {
			c.logger.Debug("Executed",
				log.String("pc", fmt.Sprintf("0x%03X", pc)),
				log.String("op", fmt.Sprintf("%04X", word)),
				log.String("asm", disasm.Mnemonic(word)))
		}
		if err != nil {
			c.faults++
			c.logger.Debug("Cycle fault",
				log.String("pc", fmt.Sprintf("0x%03X", pc)),
				log.String("op", fmt.Sprintf("%04X", word)),
				log.Err(err))
		}
	}
	return c.emu.Redraw()
}

// Rendered clears the redraw signal once the backend has drawn the frame.
func (c *Console) Rendered() {
	c.emu.ClearRedraw()
}

// Stats returns the number of cycles run and how many of them reported
// an error.
func (c *Console) Stats() (cycles, faults uint64) {
	return c.cycles, c.faults
}
