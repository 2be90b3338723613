package main

import (
	"os"

	"github.com/jask/ipachat/cmd/ipachat/commands"
)

func main() {
	if err := commands.Execute(); err != nil {
		os.Exit(1)
	}
}
