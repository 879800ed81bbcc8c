//go:build ebiten

package screen

import "github.com/RiverApril/Chip8Emu/emu/console"

func RunWindow(string, *console.Console, *Rasterizer, int) error {
	return ErrBackendNotBuilt
}
