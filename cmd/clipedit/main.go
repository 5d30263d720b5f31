package main

import (
	"os"

	"github.com/vectorlab/clipedit/internal/cli"
)

func main() {
	os.Exit(cli.Execute())
}
