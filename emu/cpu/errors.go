package cpu

import "github.com/pkg/errors"

var (
	ErrROMTooLarge       = errors.New("ROM too big for memory")
	ErrUnknownOpcode     = errors.New("unknown opcode")
	ErrIndexOverflow     = errors.New("index register beyond addressable memory")
	ErrAddressOutOfRange = errors.New("memory access out of range")
	ErrStackOverflow     = errors.New("stack overflow")
	ErrStackUnderflow    = errors.New("stack underflow")
)

func (emu *EMU) opCodeError(opcode uint16) error {
	return errors.Wrapf(ErrUnknownOpcode, "%04X at %03X", opcode, emu.pc)
}
