package cpu

// Op identifies a CHIP-8 instruction. 0NNN machine calls are not supported
// and decode to OpInvalid.
type Op uint8

const (
	OpInvalid Op = iota
	OpCls        // 00E0
	OpRet        // 00EE
	OpJp         // 1NNN
	OpCall       // 2NNN
	OpSeByte     // 3XNN
	OpSneByte    // 4XNN
	OpSeReg      // 5XY0
	OpLdByte     // 6XNN
	OpAddByte    // 7XNN
	OpLdReg      // 8XY0
	OpOr         // 8XY1
	OpAnd        // 8XY2
	OpXor        // 8XY3
	OpAddReg     // 8XY4
	OpSub        // 8XY5
	OpShr        // 8XY6
	OpSubn       // 8XY7
	OpShl        // 8XYE
	OpSneReg     // 9XY0
	OpLdI        // ANNN
	OpJpV0       // BNNN
	OpRnd        // CXNN
	OpDrw        // DXYN
	OpSkp        // EX9E
	OpSknp       // EXA1
	OpLdVxDT     // FX07
	OpLdVxK      // FX0A
	OpLdDTVx     // FX15
	OpLdSTVx     // FX18
	OpAddI       // FX1E
	OpLdF        // FX29
	OpLdB        // FX33
	OpLdIVx      // FX55
	OpLdVxI      // FX65
)

// Instruction is a decoded instruction word.
type Instruction struct {
	Op   Op
	Word uint16
	X    uint8
	Y    uint8
	N    uint8
	NN   uint8
	NNN  uint16
}

// Fields splits word into its nibble and byte fields without classifying it.
func Fields(word uint16) Instruction {
	return Instruction{
		Word: word,
		X:    uint8((word & 0x0F00) >> 8),
		Y:    uint8((word & 0x00F0) >> 4),
		N:    uint8(word & 0x000F),
		NN:   uint8(word & 0x00FF),
		NNN:  word & 0x0FFF,
	}
}

// Decode classifies word. Unrecognized patterns decode to OpInvalid.
func Decode(word uint16) Instruction {
	ins := Fields(word)

	switch word & 0xF000 {
	case 0x0000:
		switch word {
		case 0x00E0:
			ins.Op = OpCls
		case 0x00EE:
			ins.Op = OpRet
		}
	case 0x1000:
		ins.Op = OpJp
	case 0x2000:
		ins.Op = OpCall
	case 0x3000:
		ins.Op = OpSeByte
	case 0x4000:
		ins.Op = OpSneByte
	case 0x5000:
		if ins.N == 0 {
			ins.Op = OpSeReg
		}
	case 0x6000:
		ins.Op = OpLdByte
	case 0x7000:
		ins.Op = OpAddByte
	case 0x8000:
		ins.Op = aluOps[ins.N]
	case 0x9000:
		if ins.N == 0 {
			ins.Op = OpSneReg
		}
	case 0xA000:
		ins.Op = OpLdI
	case 0xB000:
		ins.Op = OpJpV0
	case 0xC000:
		ins.Op = OpRnd
	case 0xD000:
		ins.Op = OpDrw
	case 0xE000:
		switch ins.NN {
		case 0x9E:
			ins.Op = OpSkp
		case 0xA1:
			ins.Op = OpSknp
		}
	case 0xF000:
		ins.Op = miscOps[ins.NN]
	}
	return ins
}

// 8XYN, indexed by N. Missing entries stay OpInvalid.
var aluOps = [16]Op{
	0x0: OpLdReg,
	0x1: OpOr,
	0x2: OpAnd,
	0x3: OpXor,
	0x4: OpAddReg,
	0x5: OpSub,
	0x6: OpShr,
	0x7: OpSubn,
	0xE: OpShl,
}

// FXNN, indexed by NN.
var miscOps = map[uint8]Op{
	0x07: OpLdVxDT,
	0x0A: OpLdVxK,
	0x15: OpLdDTVx,
	0x18: OpLdSTVx,
	0x1E: OpAddI,
	0x29: OpLdF,
	0x33: OpLdB,
	0x55: OpLdIVx,
	0x65: OpLdVxI,
}
