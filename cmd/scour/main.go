package main

import (
	"os"

	"github.com/scour-dev/scour/internal/cli"
)

func main() {
	os.Exit(cli.Run())
}
