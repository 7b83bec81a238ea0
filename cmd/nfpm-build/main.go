package main

import (
	"os"

	"github.com/webitel/nfpm-build/internal/cli/commands"
)

var Version = "dev"

func main() {
	os.Exit(commands.Execute(Version))
}
