package main

import (
	"os"

	"github.com/rotulado/rotulado/internal/cli"
)

func main() {
	if err := cli.Execute(); err != nil {
		os.Exit(1)
	}
}
