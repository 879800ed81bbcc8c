// Package disasm formats CHIP-8 instruction words as assembly text. It backs
// the instruction trace of the start command and the disasm command.
package disasm

import (
	"fmt"

	"github.com/RiverApril/Chip8Emu/emu/cpu"
	"github.com/retroenv/retrogolib/arch/cpu/chip8"
)

// Line is one disassembled instruction word.
type Line struct {
	Address uint16
	Word    uint16
	Text    string
}

func (l Line) String() string {
	return fmt.Sprintf("%03X  %04X  %s", l.Address, l.Word, l.Text)
}

// Listing disassembles rom as loaded at cpu.ProgramStart. A trailing odd byte
// is listed as data.
func Listing(rom []byte) []Line {
	lines := make([]Line, 0, len(rom)/2+1)
	for i := 0; i+1 < len(rom); i += 2 {
		word := uint16(rom[i])<<8 | uint16(rom[i+1])
		lines = append(lines, Line{
			Address: uint16(cpu.ProgramStart + i),
			Word:    word,
			Text:    Mnemonic(word),
		})
	}
	if len(rom)%2 == 1 {
		last := rom[len(rom)-1]
		lines = append(lines, Line{
			Address: uint16(cpu.ProgramStart + len(rom) - 1),
			Word:    uint16(last),
			Text:    fmt.Sprintf("db $%02X", last),
		})
	}
	return lines
}

// Mnemonic returns the assembly text for word, or a data directive if the
// interpreter does not execute it.
func Mnemonic(word uint16) string {
	ins := cpu.Decode(word)
	if ins.Op == cpu.OpInvalid {
		return fmt.Sprintf("dw $%04X", word)
	}

	name := instructionName(word)
	if params := operands(ins); params != "" {
		return name + " " + params
	}
	return name
}

// instructionName looks word up in the opcode table by its first nibble.
func instructionName(word uint16) string {
	for _, op := range chip8.Opcodes[int(word>>12)] {
		if op.Instruction != nil && op.Info.Mask&word == op.Info.Value {
			return op.Instruction.Name
		}
	}
	return "???"
}

func operands(ins cpu.Instruction) string {
	switch ins.Op {
	case cpu.OpCls, cpu.OpRet:
		return ""
	case cpu.OpJp, cpu.OpCall:
		return fmt.Sprintf("$%03X", ins.NNN)
	case cpu.OpJpV0:
		return fmt.Sprintf("V0, $%03X", ins.NNN)
	case cpu.OpSeByte, cpu.OpSneByte, cpu.OpLdByte, cpu.OpAddByte, cpu.OpRnd:
		return fmt.Sprintf("V%X, $%02X", ins.X, ins.NN)
	case cpu.OpSeReg, cpu.OpSneReg, cpu.OpLdReg, cpu.OpOr, cpu.OpAnd, cpu.OpXor,
		cpu.OpAddReg, cpu.OpSub, cpu.OpSubn:
		return fmt.Sprintf("V%X, V%X", ins.X, ins.Y)
	case cpu.OpShr, cpu.OpShl, cpu.OpSkp, cpu.OpSknp:
		return fmt.Sprintf("V%X", ins.X)
	case cpu.OpLdI:
		return fmt.Sprintf("I, $%03X", ins.NNN)
	case cpu.OpDrw:
		return fmt.Sprintf("V%X, V%X, $%X", ins.X, ins.Y, ins.N)
	case cpu.OpLdVxDT:
		return fmt.Sprintf("V%X, DT", ins.X)
	case cpu.OpLdVxK:
		return fmt.Sprintf("V%X, K", ins.X)
	case cpu.OpLdDTVx:
		return fmt.Sprintf("DT, V%X", ins.X)
	case cpu.OpLdSTVx:
		return fmt.Sprintf("ST, V%X", ins.X)
	case cpu.OpAddI:
		return fmt.Sprintf("I, V%X", ins.X)
	case cpu.OpLdF:
		return fmt.Sprintf("F, V%X", ins.X)
	case cpu.OpLdB:
		return fmt.Sprintf("B, V%X", ins.X)
	case cpu.OpLdIVx:
		return fmt.Sprintf("[I], V%X", ins.X)
	case cpu.OpLdVxI:
		return fmt.Sprintf("V%X, [I]", ins.X)
	case cpu.OpInvalid:
	}
	return ""
}
