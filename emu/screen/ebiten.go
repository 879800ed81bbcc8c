//go:build ebiten

package screen

import (
	"github.com/RiverApril/Chip8Emu/emu/console"
	"github.com/RiverApril/Chip8Emu/emu/cpu"
	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/inpututil"
)

var ebitenKeys = map[rune]ebiten.Key{
	'1': ebiten.KeyDigit1, '2': ebiten.KeyDigit2, '3': ebiten.KeyDigit3, '4': ebiten.KeyDigit4,
	'q': ebiten.KeyQ, 'w': ebiten.KeyW, 'e': ebiten.KeyE, 'r': ebiten.KeyR,
	'a': ebiten.KeyA, 's': ebiten.KeyS, 'd': ebiten.KeyD, 'f': ebiten.KeyF,
	'z': ebiten.KeyZ, 'x': ebiten.KeyX, 'c': ebiten.KeyC, 'v': ebiten.KeyV,
}

// Game is the ebiten backend. Ebiten calls Update once per tick.
type Game struct {
	console *console.Console
	raster  *Rasterizer
	keyMap  map[uint16]ebiten.Key
	frame   *ebiten.Image
	dirty   bool
}

func NewGame(c *console.Console, raster *Rasterizer) *Game {
	keyMap := make(map[uint16]ebiten.Key, len(ebitenKeys))
	for r, k := range ebitenKeys {
		key, _ := KeyFor(r)
		keyMap[key] = k
	}

	return &Game{
		console: c,
		raster:  raster,
		keyMap:  keyMap,
		dirty:   true,
	}
}

// RunEbiten opens an ebiten window and blocks until it is closed or Escape
// is pressed.
func RunEbiten(title string, c *console.Console, raster *Rasterizer, refresh int) error {
	g := NewGame(c, raster)
	bounds := raster.Bounds()
	ebiten.SetWindowSize(bounds.Dx(), bounds.Dy())
	ebiten.SetWindowTitle(title)
	ebiten.SetTPS(refresh)

	err := ebiten.RunGame(g)
	if err == ebiten.Termination {
		return nil
	}
	return err
}

func (g *Game) Update() error {
	if inpututil.IsKeyJustPressed(ebiten.KeyEscape) {
		return ebiten.Termination
	}

	var keys [cpu.NumKeys]bool
	for key, k := range g.keyMap {
		keys[key] = ebiten.IsKeyPressed(k)
	}
	if g.console.Frame(keys) || g.raster.Fading() {
		g.dirty = true
	}
	return nil
}

func (g *Game) Draw(screen *ebiten.Image) {
	if g.frame == nil {
		bounds := g.raster.Bounds()
		g.frame = ebiten.NewImage(bounds.Dx(), bounds.Dy())
	}
	if g.dirty {
		g.frame.WritePixels(g.raster.Render(g.console.EMU()).Pix)
		g.console.Rendered()
		g.dirty = false
	}
	screen.DrawImage(g.frame, nil)
}

func (g *Game) Layout(int, int) (int, int) {
	bounds := g.raster.Bounds()
	return bounds.Dx(), bounds.Dy()
}
