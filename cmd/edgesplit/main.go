package main

import (
	"os"

	"github.com/edgesplit/edgesplit/internal/cli"
)

func main() {
	if err := cli.Execute(); err != nil {
		os.Exit(1)
	}
}
