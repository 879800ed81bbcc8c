package cmd

import (
	"bytes"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/retroenv/retrogolib/assert"
)

func TestReadROM(t *testing.T) {
	path := filepath.Join(t.TempDir(), "rom.ch8")
	assert.NoError(t, os.WriteFile(path, []byte{0x00, 0xE0}, 0o644))

	rom, err := readROM(path)
	assert.NoError(t, err)
	assert.Equal(t, []byte{0x00, 0xE0}, rom)

	_, err = readROM(filepath.Join(t.TempDir(), "missing"))
	assert.Error(t, err)
}

func TestDisasmCommand(t *testing.T) {
	path := filepath.Join(t.TempDir(), "rom.ch8")
	assert.NoError(t, os.WriteFile(path, []byte{0x00, 0xE0, 0x8A, 0xB9}, 0o644))

	var out bytes.Buffer
	disasmCmd.SetOut(&out)
	assert.NoError(t, Disasm(disasmCmd, []string{path}))

	lines := strings.Split(strings.TrimSpace(out.String()), "\n")
	assert.Equal(t, 2, len(lines))
	assert.True(t, strings.HasPrefix(lines[0], "200  00E0  "))
	assert.Equal(t, "202  8AB9  dw $8AB9", lines[1])
}

func TestCreateLogger(t *testing.T) {
	assert.NotNil(t, createLogger(true, false))
	assert.NotNil(t, createLogger(false, true))
}
