//go:build !ebiten

package screen

import (
	"time"

	"github.com/RiverApril/Chip8Emu/emu/console"
	"github.com/RiverApril/Chip8Emu/emu/cpu"
	"github.com/faiface/pixel"
	"github.com/faiface/pixel/pixelgl"
)

// RunWindow opens a pixel window and runs c in it until the window closes.
// pixelgl needs the main thread, so this must be called from the main
// goroutine.
func RunWindow(title string, c *console.Console, raster *Rasterizer, refresh int) error {
	var err error
	pixelgl.Run(func() {
		var win *Window
		win, err = NewWindow(title, raster)
		if err != nil {
			return
		}
		defer win.Destroy()
		err = win.Run(c, refresh)
	})
	return err
}

// Window is the pixel backend. Run must be called from inside pixelgl.Run.
type Window struct {
	*pixelgl.Window
	KeyMap map[uint16]pixelgl.Button
	raster *Rasterizer
	sprite *pixel.Sprite
}

var pixelButtons = map[rune]pixelgl.Button{
	'1': pixelgl.Key1, '2': pixelgl.Key2, '3': pixelgl.Key3, '4': pixelgl.Key4,
	'q': pixelgl.KeyQ, 'w': pixelgl.KeyW, 'e': pixelgl.KeyE, 'r': pixelgl.KeyR,
	'a': pixelgl.KeyA, 's': pixelgl.KeyS, 'd': pixelgl.KeyD, 'f': pixelgl.KeyF,
	'z': pixelgl.KeyZ, 'x': pixelgl.KeyX, 'c': pixelgl.KeyC, 'v': pixelgl.KeyV,
}

func NewWindow(title string, raster *Rasterizer) (*Window, error) {
	bounds := raster.Bounds()
	cfg := pixelgl.WindowConfig{
		Title:     title,
		Bounds:    pixel.R(0, 0, float64(bounds.Dx()), float64(bounds.Dy())),
		Resizable: false,
		VSync:     true,
	}

	win, err := pixelgl.NewWindow(cfg)
	if err != nil {
		return nil, err
	}

	keyMap := make(map[uint16]pixelgl.Button, len(pixelButtons))
	for r, button := range pixelButtons {
		key, _ := KeyFor(r)
		keyMap[key] = button
	}
	return &Window{Window: win, KeyMap: keyMap, raster: raster}, nil
}

// Keys samples the keypad.
func (w *Window) Keys() [cpu.NumKeys]bool {
	var keys [cpu.NumKeys]bool
	for key, button := range w.KeyMap {
		keys[key] = w.Pressed(button)
	}
	return keys
}

// Run steps the console once per tick until the window is closed or
// Escape is pressed.
func (w *Window) Run(c *console.Console, refresh int) error {
	ticker := time.NewTicker(time.Second / time.Duration(refresh))
	defer ticker.Stop()

	for !w.Closed() {
		if w.JustPressed(pixelgl.KeyEscape) {
			return nil
		}

		if c.Frame(w.Keys()) || w.raster.Fading() || w.sprite == nil {
			pic := pixel.PictureDataFromImage(w.raster.Render(c.EMU()))
			w.sprite = pixel.NewSprite(pic, pic.Bounds())
			c.Rendered()
		}

		w.Clear(background)
		w.sprite.Draw(w, pixel.IM.Moved(w.Bounds().Center()))
		w.Update()

		<-ticker.C
	}
	return nil
}
