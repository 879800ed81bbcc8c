// Package screen holds the rendering and input collaborators of the
// interpreter: a rasterizer shared by all backends, the keypad layout, and
// the pixel, ebiten and terminal backends.
package screen

import (
	"github.com/RiverApril/Chip8Emu/emu/console"
	"github.com/pkg/errors"
)

const (
	BackendPixel  = "pixel"
	BackendEbiten = "ebiten"
	BackendTerm   = "term"
)

var (
	ErrBackendNotBuilt = errors.New("backend not compiled into this binary")
	ErrUnknownBackend  = errors.New("unknown backend")
)

// Config is shared by every backend.
type Config struct {
	Backend string
	Title   string
	Refresh int
	Scale   int
	Overlay bool
	Smooth  bool
}

// Run hands c to the configured backend and blocks until the user quits.
func Run(cfg Config, c *console.Console) error {
	if cfg.Refresh < 1 {
		cfg.Refresh = 60
	}
	raster := NewRasterizer(cfg.Scale, cfg.Overlay, cfg.Smooth)

	var err error
	switch cfg.Backend {
	case BackendPixel, "":
		err = RunWindow(cfg.Title, c, raster, cfg.Refresh)
	case BackendEbiten:
		err = RunEbiten(cfg.Title, c, raster, cfg.Refresh)
	case BackendTerm:
		err = RunTerminal(c, cfg.Refresh)
	default:
		return errors.Wrapf(ErrUnknownBackend, "%q", cfg.Backend)
	}
	return errors.Wrapf(err, "%s backend", cfg.Backend)
}
