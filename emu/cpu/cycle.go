package cpu

import "github.com/pkg/errors"

// EmulateCycle runs one fetch/decode/execute step, then latches the key
// state for edge detection and ticks both timers. It returns the fetched
// instruction word.
//
// A non-nil error never stops the machine: unknown opcodes and stack faults
// leave pc where it was, out of range memory accesses skip the instruction.
// The timers tick either way.
func (emu *EMU) EmulateCycle() (uint16, error) {
	err := emu.step()

	emu.prevKeyState = emu.keyState
	emu.delayTimerHandler()
	emu.soundTimerHandler()

	return emu.opcode, err
}

func (emu *EMU) step() error {
	if int(emu.pc)+1 >= MemorySize {
		emu.opcode = 0
		return errors.Wrapf(ErrAddressOutOfRange, "fetch at %03X", emu.pc)
	}
	emu.opcode = uint16(emu.memory[emu.pc])<<8 | uint16(emu.memory[emu.pc+1])
	return emu.execute(Decode(emu.opcode))
}

func (emu *EMU) delayTimerHandler() {
	if emu.delayTimer > 0 {
		emu.delayTimer--
	}
}

func (emu *EMU) soundTimerHandler() {
	if emu.soundTimer == 0 {
		return
	}
	emu.soundTimer--
	if emu.soundTimer == 0 && emu.soundHandler != nil {
		emu.soundHandler()
	}
}
