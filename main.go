package main

import "github.com/RiverApril/Chip8Emu/cmd"

func main() {
	cmd.Execute()
}
