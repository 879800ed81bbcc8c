//go:build !ebiten

package screen

import "github.com/RiverApril/Chip8Emu/emu/console"

// Ebiten and pixel each link their own GLFW, so a build carries one of the
// two window backends. The default build has pixel.
func RunEbiten(string, *console.Console, *Rasterizer, int) error {
	return ErrBackendNotBuilt
}
