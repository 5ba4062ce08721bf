package main

import (
	"github.com/puzzle-scout/cmd/cli/cmd"
)

func main() {
	cmd.Execute()
}
