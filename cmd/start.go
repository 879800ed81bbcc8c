package cmd

import (
	"os"

	"github.com/RiverApril/Chip8Emu/emu/audio"
	"github.com/RiverApril/Chip8Emu/emu/console"
	"github.com/RiverApril/Chip8Emu/emu/cpu"
	"github.com/RiverApril/Chip8Emu/emu/screen"
	homedir "github.com/mitchellh/go-homedir"
	"github.com/pkg/errors"
	"github.com/retroenv/retrogolib/log"
	"github.com/spf13/cobra"
	"github.com/spf13/pflag"
	"github.com/spf13/viper"
)

const defaultROM = "games/PONG"

var startCmd = &cobra.Command{
	Use:   "start [path/ROM]",
	Short: "load and start the Emulator",
	Long: "Load a ROM at 0x200 and run it. Without a path " + defaultROM + " is loaded.\n\n" +
		"Keypad: 1234 / QWER / ASDF / ZXCV map to 123C / 456D / 789E / A0BF. Escape quits.",
	Args: cobra.MaximumNArgs(1),
	RunE: Start,
}

// chip8emu start 'path/to/ROM' -r 60 -c 10
func Start(cmd *cobra.Command, args []string) error {
	romPath := defaultROM
	if len(args) == 1 {
		romPath = args[0]
	}

	if wd, err := os.Getwd(); err == nil {
		logger.Info("Working dir", log.String("path", wd))
	}
	if configFileUsed != "" {
		logger.Debug("Using config file", log.String("file", configFileUsed))
	}

	rom, err := readROM(romPath)
	if err != nil {
		return err
	}

	beeper, closeAudio, err := newBeeper()
	if err != nil {
		return err
	}
	defer closeAudio()

	opts := []cpu.Option{cpu.WithSoundHandler(beeper.Beep)}
	if seed := viper.GetInt64("seed"); seed != 0 {
		opts = append(opts, cpu.WithSeed(func() int64 { return seed }))
	}
	emu := cpu.NewEMU(opts...)
	if err := emu.LoadROM(rom); err != nil {
		return errors.Wrapf(err, "loading %s", romPath)
	}
	logger.Info("Loaded file", log.String("file", romPath), log.Int("bytes", len(rom)))

	if viper.GetBool("statsview") {
		launchStatsView()
	}
	if path := viper.GetString("dump"); path != "" {
		defer dumpState(path, emu)
	}

	c := console.New(emu, logger, console.Options{
		CyclesPerFrame: viper.GetInt("cycles"),
		Trace:          viper.GetBool("trace"),
	})

	err = screen.Run(screen.Config{
		Backend: viper.GetString("backend"),
		Title:   "Chip-8 Emulator",
		Refresh: viper.GetInt("refresh"),
		Scale:   viper.GetInt("scale"),
		Overlay: viper.GetBool("overlay"),
		Smooth:  viper.GetBool("smooth"),
	}, c)

	cycles, faults := c.Stats()
	logger.Debug("Stopped", log.Int("cycles", int(cycles)), log.Int("faults", int(faults)))
	return err
}

func readROM(path string) ([]byte, error) {
	expanded, err := homedir.Expand(path)
	if err != nil {
		return nil, errors.Wrapf(err, "expanding %s", path)
	}
	rom, err := os.ReadFile(expanded)
	if err != nil {
		return nil, errors.Wrap(err, "reading ROM")
	}
	return rom, nil
}

// newBeeper picks the audio collaborator for the configured backend.
func newBeeper() (audio.Beeper, func(), error) {
	switch {
	case viper.GetBool("mute"):
		return audio.Mute{}, func() {}, nil
	case viper.GetString("backend") == screen.BackendTerm:
		return audio.Bell{W: os.Stdout}, func() {}, nil
	}

	s, err := audio.NewSpeaker(viper.GetString("beep"))
	if err != nil {
		return nil, nil, err
	}
	return s, s.Close, nil
}

func init() {
	rootCmd.AddCommand(startCmd)

	flags := startCmd.Flags()
	flags.IntP("refresh", "r", 60, "Set the refresh rate in Hz")
	flags.IntP("cycles", "c", 10, "cycles run per frame")
	flags.StringP("backend", "b", screen.BackendPixel, "front end: pixel, ebiten or term")
	flags.IntP("scale", "s", 10, "host pixels per CHIP-8 pixel")
	flags.Bool("smooth", false, "fade pixels out instead of switching them off")
	flags.Bool("overlay", false, "show registers and memory beside the screen")
	flags.Bool("mute", false, "disable the beep")
	flags.String("beep", "", "mp3 file played when the sound timer expires")
	flags.Int64("seed", 0, "seed for the random number generator, 0 uses the clock")
	flags.Bool("trace", false, "log every executed instruction (needs --debug)")
	flags.Bool("statsview", false, "serve runtime statistics on "+statsViewAddress)
	flags.String("dump", "", "write a graphviz dump of the machine state to this file on exit")

	flags.VisitAll(func(f *pflag.Flag) {
		cobra.CheckErr(viper.BindPFlag(f.Name, f))
	})
}
