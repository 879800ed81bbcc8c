package cmd

import (
	"fmt"

	"github.com/RiverApril/Chip8Emu/emu/disasm"
	"github.com/spf13/cobra"
)

var disasmCmd = &cobra.Command{
	Use:   "disasm path/ROM",
	Short: "print an instruction listing of a ROM",
	Long: "Print every instruction word of a ROM with its load address. Words the " +
		"interpreter does not execute are listed as dw.",
	Args: cobra.ExactArgs(1),
	RunE: Disasm,
}

func Disasm(cmd *cobra.Command, args []string) error {
	rom, err := readROM(args[0])
	if err != nil {
		return err
	}

	out := cmd.OutOrStdout()
	for _, line := range disasm.Listing(rom) {
		fmt.Fprintln(out, line)
	}
	return nil
}

func init() {
	rootCmd.AddCommand(disasmCmd)
}
