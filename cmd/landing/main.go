package main

import (
	"os"

	"github.com/j2systems/landing/cmd/landing/commands"
)

func main() {
	if err := commands.Execute(); err != nil {
		os.Exit(1)
	}
}
