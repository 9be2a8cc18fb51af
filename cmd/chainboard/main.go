package main

import (
	"os"

	"chainboard/cmd/chainboard/commands"
)

func main() {
	if err := commands.Execute(); err != nil {
		os.Exit(1)
	}
}
