package main

import (
	"github.com/0xPolygon/lottery-harness/command/root"
)

func main() {
	root.NewRootCommand().Execute()
}
