package main

import (
	"os"

	"mockcenter/internal/cli"
)

func main() {
	os.Exit(cli.Execute())
}
