package cmd

import (
	"os"

	"github.com/spf13/cobra"

	homedir "github.com/mitchellh/go-homedir"
	"github.com/retroenv/retrogolib/log"
	"github.com/spf13/viper"
)

var (
	cfgFile string
	debug   bool
	quiet   bool
	logger  *log.Logger
)

// rootCmd represents the base command when called without any subcommands
var rootCmd = &cobra.Command{
	Use:   "chip8emu [command]",
	Short: "CHIP-8 emulator written in Go",
	Long: "A CHIP-8 interpreter that runs programs written for the COSMAC VIP / Telmac 1800 " +
		"interpreter, with pixel, ebiten and terminal front ends.",
	SilenceUsage:  true,
	SilenceErrors: true,
	PersistentPreRun: func(cmd *cobra.Command, args []string) {
		logger = createLogger(debug, quiet)
	},
}

func init() {
	cobra.OnInitialize(initConfig)

	rootCmd.PersistentFlags().StringVar(&cfgFile, "config", "", "config file (default is $HOME/.chip8emu.yaml)")
	rootCmd.PersistentFlags().BoolVar(&debug, "debug", false, "enable debug logging")
	rootCmd.PersistentFlags().BoolVarP(&quiet, "quiet", "q", false, "only log errors")
}

func Execute() {
	if err := rootCmd.Execute(); err != nil {
		if logger == nil {
			logger = createLogger(debug, quiet)
		}
		logger.Error("Command failed", log.Err(err))
		os.Exit(1)
	}
}

// createLogger creates a logger with the requested verbosity.
func createLogger(debug, quiet bool) *log.Logger {
	cfg := log.DefaultConfig()
	if debug {
		cfg.Level = log.DebugLevel
	} else if quiet {
		cfg.Level = log.ErrorLevel
	}
	return log.NewWithConfig(cfg)
}

// initConfig reads in config file and ENV variables if set.
func initConfig() {
	if cfgFile != "" {
		// Use config file from the flag.
		viper.SetConfigFile(cfgFile)
	} else {
		// Find home directory.
		home, err := homedir.Dir()
		cobra.CheckErr(err)

		// Search config in home directory with name ".chip8emu" (without extension).
		viper.AddConfigPath(home)
		viper.SetConfigName(".chip8emu")
	}

	viper.SetEnvPrefix("chip8emu")
	viper.AutomaticEnv() // read in environment variables that match

	// If a config file is found, read it in.
	if err := viper.ReadInConfig(); err == nil {
		configFileUsed = viper.ConfigFileUsed()
	}
}

var configFileUsed string
