package screen

import (
	"bufio"
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/RiverApril/Chip8Emu/emu/console"
	"github.com/RiverApril/Chip8Emu/emu/cpu"
	"github.com/pkg/errors"
	"golang.org/x/term"
)

// Terminals only report key presses, never releases, so a key counts as
// held for this long after its last byte arrived.
const keyRepeatDuration = time.Second / 5

const (
	ctrlC  = 0x03
	escape = 0x1B
)

// KeyLatch turns a stream of key press events into a held key state.
type KeyLatch struct {
	hold  time.Duration
	until [cpu.NumKeys]time.Time
}

func NewKeyLatch(hold time.Duration) *KeyLatch {
	return &KeyLatch{hold: hold}
}

// Press marks key as held until now plus the hold duration.
func (l *KeyLatch) Press(key uint16, now time.Time) {
	l.until[key] = now.Add(l.hold)
}

// State returns the keys still held at now.
func (l *KeyLatch) State(now time.Time) [cpu.NumKeys]bool {
	var keys [cpu.NumKeys]bool
	for i, until := range l.until {
		keys[i] = now.Before(until)
	}
	return keys
}

// HalfBlocks renders the framebuffer as 16 lines of 64 characters, two
// pixel rows per character cell.
func HalfBlocks(fb [cpu.Width * cpu.Height]uint8) string {
	var sb strings.Builder
	sb.Grow(cpu.Width * cpu.Height * 2)

	for y := 0; y < cpu.Height; y += 2 {
		for x := 0; x < cpu.Width; x++ {
			top := fb[x+y*cpu.Width] == 1
			bottom := fb[x+(y+1)*cpu.Width] == 1
			switch {
			case top && bottom:
				sb.WriteRune('█')
			case top:
				sb.WriteRune('▀')
			case bottom:
				sb.WriteRune('▄')
			default:
				sb.WriteByte(' ')
			}
		}
		sb.WriteString("\r\n")
	}
	return sb.String()
}

// RunTerminal draws into the controlling terminal in raw mode until Escape
// or Ctrl-C is typed.
func RunTerminal(c *console.Console, refresh int) error {
	in := int(os.Stdin.Fd())
	if !term.IsTerminal(in) {
		return errors.New("stdin is not a terminal")
	}
	if w, h, err := term.GetSize(int(os.Stdout.Fd())); err == nil && (w < cpu.Width || h < cpu.Height/2) {
		return errors.Errorf("terminal is %dx%d, need at least %dx%d", w, h, cpu.Width, cpu.Height/2)
	}

	oldState, err := term.MakeRaw(in)
	if err != nil {
		return errors.Wrap(err, "setting raw mode")
	}
	defer func() {
		_ = term.Restore(in, oldState)
	}()

	input := make(chan byte, 16)
	go readInput(os.Stdin, input)

	out := bufio.NewWriter(os.Stdout)
	fmt.Fprint(out, "\x1b[2J\x1b[?25l")
	defer func() {
		fmt.Fprint(out, "\x1b[?25h\r\n")
		_ = out.Flush()
	}()

	latch := NewKeyLatch(keyRepeatDuration)
	ticker := time.NewTicker(time.Second / time.Duration(refresh))
	defer ticker.Stop()

	first := true
	for now := range ticker.C {
		if quit := drainInput(input, latch, now); quit {
			return nil
		}

		if c.Frame(latch.State(now)) || first {
			fmt.Fprint(out, "\x1b[H", HalfBlocks(c.EMU().Framebuffer()))
			if err := out.Flush(); err != nil {
				return errors.Wrap(err, "writing frame")
			}
			c.Rendered()
			first = false
		}
	}
	return nil
}

func readInput(f *os.File, input chan<- byte) {
	buf := make([]byte, 1)
	for {
		n, err := f.Read(buf)
		if err != nil {
			close(input)
			return
		}
		if n == 1 {
			input <- buf[0]
		}
	}
}

// drainInput feeds every pending byte into the latch. It reports true when
// the user asked to quit or stdin closed.
func drainInput(input <-chan byte, latch *KeyLatch, now time.Time) bool {
	for {
		select {
		case b, ok := <-input:
			if !ok || b == ctrlC || b == escape {
				return true
			}
			if key, ok := KeyFor(rune(b)); ok {
				latch.Press(key, now)
			}
		default:
			return false
		}
	}
}
