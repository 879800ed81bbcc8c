package cpu

import (
	"testing"

	"github.com/retroenv/retrogolib/assert"
)

func TestFields(t *testing.T) {
	ins := Fields(0xD12F)
	assert.Equal(t, uint16(0xD12F), ins.Word)
	assert.Equal(t, uint8(0x1), ins.X)
	assert.Equal(t, uint8(0x2), ins.Y)
	assert.Equal(t, uint8(0xF), ins.N)
	assert.Equal(t, uint8(0x2F), ins.NN)
	assert.Equal(t, uint16(0x12F), ins.NNN)
}

func TestDecode(t *testing.T) {
	tests := []struct {
		word     uint16
		expected Op
	}{
		{0x00E0, OpCls},
		{0x00EE, OpRet},
		{0x0123, OpInvalid},
		{0x1ABC, OpJp},
		{0x2ABC, OpCall},
		{0x3A12, OpSeByte},
		{0x4A12, OpSneByte},
		{0x5AB0, OpSeReg},
		{0x5AB1, OpInvalid},
		{0x6A12, OpLdByte},
		{0x7A12, OpAddByte},
		{0x8AB0, OpLdReg},
		{0x8AB1, OpOr},
		{0x8AB2, OpAnd},
		{0x8AB3, OpXor},
		{0x8AB4, OpAddReg},
		{0x8AB5, OpSub},
		{0x8AB6, OpShr},
		{0x8AB7, OpSubn},
		{0x8ABE, OpShl},
		{0x8AB8, OpInvalid},
		{0x9AB0, OpSneReg},
		{0x9AB1, OpInvalid},
		{0xA123, OpLdI},
		{0xB123, OpJpV0},
		{0xCA12, OpRnd},
		{0xDAB5, OpDrw},
		{0xEA9E, OpSkp},
		{0xEAA1, OpSknp},
		{0xEA00, OpInvalid},
		{0xFA07, OpLdVxDT},
		{0xFA0A, OpLdVxK},
		{0xFA15, OpLdDTVx},
		{0xFA18, OpLdSTVx},
		{0xFA1E, OpAddI},
		{0xFA29, OpLdF},
		{0xFA33, OpLdB},
		{0xFA55, OpLdIVx},
		{0xFA65, OpLdVxI},
		{0xFAFF, OpInvalid},
	}

	for _, tt := range tests {
		ins := Decode(tt.word)
		assert.Equal(t, tt.expected, ins.Op, "word %04X", tt.word)
		assert.Equal(t, tt.word, ins.Word)
	}
}
