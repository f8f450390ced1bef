package main

import (
	"os"

	"github.com/civicviz/reasons311/internal/commands"
)

func main() {
	if err := commands.Execute(); err != nil {
		os.Exit(1)
	}
}
