package main

import (
	"github.com/sungur/cells/internal/cli"
)

func main() {
	cli.Execute()
}
