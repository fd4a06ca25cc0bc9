package main

import (
	"os"

	"github.com/dhg-hub/drivemeta/internal/cli"
)

func main() {
	os.Exit(cli.Execute())
}
