package screen

import (
	"image/color"
	"testing"

	"github.com/RiverApril/Chip8Emu/emu/cpu"
	"github.com/retroenv/retrogolib/assert"
)

// drawSquare runs a program that draws the font glyph for 0 at 0,0.
func drawSquare(t *testing.T) *cpu.EMU {
	t.Helper()

	emu := cpu.NewEMU()
	assert.NoError(t, emu.LoadROM([]byte{0xA0, 0x00, 0xD0, 0x05}))
	for i := 0; i < 2; i++ {
		_, err := emu.EmulateCycle()
		assert.NoError(t, err)
	}
	return emu
}

func TestRasterizerBounds(t *testing.T) {
	r := NewRasterizer(10, false, false)
	assert.Equal(t, 640, r.Bounds().Dx())
	assert.Equal(t, 320, r.Bounds().Dy())

	r = NewRasterizer(10, true, false)
	assert.Equal(t, 640+overlayWidth, r.Bounds().Dx())

	r = NewRasterizer(0, false, false)
	assert.Equal(t, cpu.Width, r.Bounds().Dx())
}

func TestRender(t *testing.T) {
	emu := drawSquare(t)
	r := NewRasterizer(2, false, false)
	img := r.Render(emu)

	// glyph 0 top row is 0xF0: four lit pixels, scaled by 2
	assert.Equal(t, foreground, img.RGBAAt(0, 0))
	assert.Equal(t, foreground, img.RGBAAt(7, 1))
	assert.Equal(t, background, img.RGBAAt(8, 0))
	// second row is 0x90: x=1 is off
	assert.Equal(t, background, img.RGBAAt(2, 2))
	assert.Equal(t, foreground, img.RGBAAt(6, 2))
}

func TestRenderSmoothFades(t *testing.T) {
	emu := drawSquare(t)
	r := NewRasterizer(1, false, true)
	r.Render(emu)
	assert.False(t, r.Fading())

	// draw the same sprite again to switch it off
	emu2 := drawSquare(t)
	assert.NoError(t, emu2.LoadROM([]byte{0xA0, 0x00, 0xD0, 0x05, 0xD0, 0x05}))
	_, err := emu2.EmulateCycle()
	assert.NoError(t, err)
	assert.False(t, emu2.Pixel(0, 0))

	img := r.Render(emu2)
	assert.True(t, r.Fading())
	lit := img.RGBAAt(0, 0)
	assert.True(t, lit.R > background.R && lit.R < foreground.R)

	for i := 0; i < 0xFF/fadeStep+1; i++ {
		img = r.Render(emu2)
	}
	assert.False(t, r.Fading())
	assert.Equal(t, background, img.RGBAAt(0, 0))
}

func TestRenderWithoutSmoothSwitchesOff(t *testing.T) {
	r := NewRasterizer(1, false, false)
	r.Render(drawSquare(t))

	img := r.Render(cpu.NewEMU())
	assert.Equal(t, background, img.RGBAAt(0, 0))
	assert.False(t, r.Fading())
}

func TestRenderOverlay(t *testing.T) {
	emu := cpu.NewEMU()
	assert.NoError(t, emu.LoadROM([]byte{0x63, 0x80}))
	_, err := emu.EmulateCycle()
	assert.NoError(t, err)

	r := NewRasterizer(10, true, false)
	img := r.Render(emu)
	left := cpu.Width * 10

	// V3 = 0x80
	assert.Equal(t, color.RGBA{R: 0x80, G: 0x80, B: 0x80, A: 0xFF}, img.RGBAAt(left+3*registerCell, 0))
	assert.Equal(t, color.RGBA{A: 0xFF}, img.RGBAAt(left, 0))
	// memory[0] is the first font byte
	assert.Equal(t, gray(cpu.FontSet[0]), img.RGBAAt(left, memoryTop))
	// between the register strip and the memory map
	assert.Equal(t, panel, img.RGBAAt(left, registerCell+1))
}

func TestBlend(t *testing.T) {
	assert.Equal(t, background, blend(background, foreground, 0))
	assert.Equal(t, foreground, blend(background, foreground, 0xFF))
}
