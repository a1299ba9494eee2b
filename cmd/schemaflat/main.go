package main

import (
	"os"

	"github.com/goliatone/go-schemaflat/internal/cli/commands"
)

func main() {
	if err := commands.Execute(); err != nil {
		os.Exit(1)
	}
}
