package main

import (
	"os"

	"support-assistant-be/internal/cli"

	"github.com/fatih/color"
)

func main() {
	if err := cli.NewRoot().Execute(); err != nil {
		color.Red("command failed: %v", err)
		os.Exit(1)
	}
}
