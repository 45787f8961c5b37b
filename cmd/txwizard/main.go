package main

import (
	"os"

	"github.com/jask/txwizard/cmd/txwizard/commands"
)

func main() {
	if err := commands.Execute(); err != nil {
		os.Exit(1)
	}
}
