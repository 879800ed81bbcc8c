package screen

import (
	"image"
	"image/color"
	"image/draw"

	"github.com/RiverApril/Chip8Emu/emu/cpu"
	"golang.org/x/image/colornames"
)

const (
	overlayWidth = 128 //host pixels added to the right of the screen
	registerCell = 8   //each register is an 8x8 block
	memoryTop    = 16
	memoryCell   = 2 //each memory byte is a 2x2 block, 64 per row
	fadeStep     = 0x20
)

var (
	foreground = colornames.White
	background = colornames.Black
	panel      = colornames.Midnightblue
)

// Rasterizer turns the machine's framebuffer into an RGBA image at host
// resolution.
type Rasterizer struct {
	Scale   int
	Overlay bool //register file and memory map beside the screen
	Smooth  bool //lit pixels fade out instead of switching off

	phosphor [cpu.Width * cpu.Height]uint8
	img      *image.RGBA
}

func NewRasterizer(scale int, overlay, smooth bool) *Rasterizer {
	if scale < 1 {
		scale = 1
	}
	r := &Rasterizer{Scale: scale, Overlay: overlay, Smooth: smooth}
	r.img = image.NewRGBA(r.Bounds())
	return r
}

// Bounds is the size of the rendered image.
func (r *Rasterizer) Bounds() image.Rectangle {
	w := cpu.Width * r.Scale
	if r.Overlay {
		w += overlayWidth
	}
	return image.Rect(0, 0, w, cpu.Height*r.Scale)
}

// Fading reports whether smoothing still has pixels between on and off, so
// the backend should keep rendering without a redraw signal.
func (r *Rasterizer) Fading() bool {
	if !r.Smooth {
		return false
	}
	for _, p := range r.phosphor {
		if p != 0 && p != 0xFF {
			return true
		}
	}
	return false
}

// Render draws the current machine state. The returned image is reused by
// the next call.
func (r *Rasterizer) Render(emu *cpu.EMU) *image.RGBA {
	fb := emu.Framebuffer()
	r.updatePhosphor(fb)

	draw.Draw(r.img, r.img.Bounds(), image.NewUniform(background), image.Point{}, draw.Src)
	for y := 0; y < cpu.Height; y++ {
		for x := 0; x < cpu.Width; x++ {
			level := r.phosphor[x+y*cpu.Width]
			if level == 0 {
				continue
			}
			r.fill(x*r.Scale, y*r.Scale, r.Scale, r.Scale, blend(background, foreground, level))
		}
	}

	if r.Overlay {
		r.drawOverlay(emu)
	}
	return r.img
}

func (r *Rasterizer) updatePhosphor(fb [cpu.Width * cpu.Height]uint8) {
	for i, lit := range fb {
		switch {
		case lit == 1:
			r.phosphor[i] = 0xFF
		case !r.Smooth || r.phosphor[i] <= fadeStep:
			r.phosphor[i] = 0
		default:
			r.phosphor[i] -= fadeStep
		}
	}
}

func (r *Rasterizer) drawOverlay(emu *cpu.EMU) {
	left := cpu.Width * r.Scale
	r.fill(left, 0, overlayWidth, cpu.Height*r.Scale, panel)

	for i, v := range emu.Registers() {
		r.fill(left+i*registerCell, 0, registerCell, registerCell, gray(v))
	}

	memory := emu.Memory()
	for i, v := range memory {
		x := left + (i%64)*memoryCell
		y := memoryTop + (i/64)*memoryCell
		r.fill(x, y, memoryCell, memoryCell, gray(v))
	}
}

// fill paints a w by h block, clipped to the image.
func (r *Rasterizer) fill(x, y, w, h int, c color.RGBA) {
	rect := image.Rect(x, y, x+w, y+h).Intersect(r.img.Bounds())
	if rect.Empty() {
		return
	}
	draw.Draw(r.img, rect, image.NewUniform(c), image.Point{}, draw.Src)
}

func gray(v uint8) color.RGBA {
	return color.RGBA{R: v, G: v, B: v, A: 0xFF}
}

// blend mixes from towards to by level/255.
func blend(from, to color.RGBA, level uint8) color.RGBA {
	mix := func(a, b uint8) uint8 {
		return uint8((int(a)*(0xFF-int(level)) + int(b)*int(level)) / 0xFF)
	}
	return color.RGBA{
		R: mix(from.R, to.R),
		G: mix(from.G, to.G),
		B: mix(from.B, to.B),
		A: 0xFF,
	}
}
