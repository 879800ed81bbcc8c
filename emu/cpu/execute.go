package cpu

import "github.com/pkg/errors"

// execute applies one decoded instruction. Control flow instructions set pc
// themselves; everything else steps over the instruction word.
func (emu *EMU) execute(ins Instruction) error {
	x, y := ins.X, ins.Y

	switch ins.Op {
	case OpCls:
		emu.display = [Width * Height]uint8{}
		emu.updateScreen = true
		emu.pc += 2
	case OpRet:
		if emu.sp == 0 {
			return errors.Wrapf(ErrStackUnderflow, "return at %03X", emu.pc)
		}
		emu.sp--
		emu.pc = emu.stack[emu.sp] + 2
	case OpJp:
		emu.pc = ins.NNN
	case OpCall:
		if emu.sp >= stackDepth {
			return errors.Wrapf(ErrStackOverflow, "call %03X at %03X", ins.NNN, emu.pc)
		}
		emu.stack[emu.sp] = emu.pc
		emu.sp++
		emu.pc = ins.NNN
	case OpSeByte:
		emu.skipIf(emu.V[x] == ins.NN)
	case OpSneByte:
		emu.skipIf(emu.V[x] != ins.NN)
	case OpSeReg:
		emu.skipIf(emu.V[x] == emu.V[y])
	case OpLdByte:
		emu.V[x] = ins.NN
		emu.pc += 2
	case OpAddByte:
		emu.V[x] += ins.NN
		emu.pc += 2
	case OpLdReg:
		emu.V[x] = emu.V[y]
		emu.pc += 2
	case OpOr:
		emu.V[x] |= emu.V[y]
		emu.pc += 2
	case OpAnd:
		emu.V[x] &= emu.V[y]
		emu.pc += 2
	case OpXor:
		emu.V[x] ^= emu.V[y]
		emu.pc += 2
	case OpAddReg:
		carry := boolToFlag(uint16(emu.V[x])+uint16(emu.V[y]) > 0xFF)
		emu.V[x] += emu.V[y]
		emu.V[flag] = carry
		emu.pc += 2
	case OpSub:
		noBorrow := boolToFlag(emu.V[y] <= emu.V[x])
		emu.V[x] -= emu.V[y]
		emu.V[flag] = noBorrow
		emu.pc += 2
	case OpShr:
		lsb := emu.V[x] & 0x01
		emu.V[x] >>= 1
		emu.V[flag] = lsb
		emu.pc += 2
	case OpSubn:
		noBorrow := boolToFlag(emu.V[x] <= emu.V[y])
		emu.V[x] = emu.V[y] - emu.V[x]
		emu.V[flag] = noBorrow
		emu.pc += 2
	case OpShl:
		msb := emu.V[x] >> 7
		emu.V[x] <<= 1
		emu.V[flag] = msb
		emu.pc += 2
	case OpSneReg:
		emu.skipIf(emu.V[x] != emu.V[y])
	case OpLdI:
		emu.I = ins.NNN
		emu.pc += 2
	case OpJpV0:
		emu.pc = ins.NNN + uint16(emu.V[0])
	case OpRnd:
		emu.V[x] = uint8(emu.rng.Intn(256)) & ins.NN
		emu.pc += 2
	case OpDrw:
		return emu.draw(emu.V[x], emu.V[y], ins.N)
	case OpSkp:
		emu.skipIf(emu.pressed(emu.V[x]))
	case OpSknp:
		emu.skipIf(!emu.pressed(emu.V[x]))
	case OpLdVxDT:
		emu.V[x] = emu.delayTimer
		emu.pc += 2
	case OpLdVxK:
		//no fresh key press: pc stays put and the instruction runs again
		for key := 0; key < NumKeys; key++ {
			if emu.keyState[key] && !emu.prevKeyState[key] {
				emu.V[x] = uint8(key)
				emu.pc += 2
				break
			}
		}
	case OpLdDTVx:
		emu.delayTimer = emu.V[x]
		emu.pc += 2
	case OpLdSTVx:
		emu.soundTimer = emu.V[x]
		emu.pc += 2
	case OpAddI:
		emu.pc += 2
		sum := emu.I + uint16(emu.V[x])
		if sum > MaxAddress {
			emu.V[flag] = 1
			return errors.Wrapf(ErrIndexOverflow, "I=%03X + V%X=%02X", emu.I, x, emu.V[x])
		}
		emu.V[flag] = 0
		emu.I = sum
	case OpLdF:
		emu.I = uint16(emu.V[x]) * glyphSize
		emu.pc += 2
	case OpLdB:
		emu.pc += 2
		if err := emu.checkSpan(3); err != nil {
			return err
		}
		v := emu.V[x]
		emu.memory[emu.I] = v / 100
		emu.memory[emu.I+1] = v / 10 % 10
		emu.memory[emu.I+2] = v % 10
	case OpLdIVx:
		emu.pc += 2
		n := uint16(x) + 1
		if err := emu.checkSpan(n); err != nil {
			return err
		}
		copy(emu.memory[emu.I:emu.I+n], emu.V[:n])
		emu.I += n
	case OpLdVxI:
		emu.pc += 2
		n := uint16(x) + 1
		if err := emu.checkSpan(n); err != nil {
			return err
		}
		copy(emu.V[:n], emu.memory[emu.I:emu.I+n])
		emu.I += n
	case OpInvalid:
		return emu.opCodeError(ins.Word)
	}
	return nil
}

// draw XORs an 8 pixel wide, n row sprite from memory[I] onto the display.
// Coordinates wrap around both edges.
func (emu *EMU) draw(vx, vy, n uint8) error {
	emu.pc += 2
	if err := emu.checkSpan(uint16(n)); err != nil {
		return err
	}

	emu.V[flag] = 0
	for row := uint16(0); row < uint16(n); row++ {
		line := emu.memory[emu.I+row]
		py := (int(vy) + int(row)) % Height
		for col := 0; col < 8; col++ {
			if line&(0x80>>col) == 0 {
				continue
			}
			px := (int(vx) + col) % Width
			idx := px + py*Width
			if emu.display[idx] == 1 {
				emu.V[flag] = 1
			}
			emu.display[idx] ^= 1
		}
	}
	emu.updateScreen = true
	return nil
}

// pressed treats key values past F as released.
func (emu *EMU) pressed(key uint8) bool {
	return key < NumKeys && emu.keyState[key]
}

func (emu *EMU) skipIf(cond bool) {
	if cond {
		emu.pc += 4
	} else {
		emu.pc += 2
	}
}

// checkSpan fails when n bytes starting at I would run past the end of memory.
func (emu *EMU) checkSpan(n uint16) error {
	if uint32(emu.I)+uint32(n) > MemorySize {
		return errors.Wrapf(ErrAddressOutOfRange, "%d bytes at I=%03X", n, emu.I)
	}
	return nil
}

func boolToFlag(b bool) uint8 {
	if b {
		return 1
	}
	return 0
}
