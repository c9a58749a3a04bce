package main

import (
	"os"

	"webpower-client/cmd/webpower/commands"
)

func main() {
	if err := commands.Execute(); err != nil {
		os.Exit(1)
	}
}
