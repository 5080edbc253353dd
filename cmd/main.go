package main

import (
	"github.com/quantalab/go-shor/pkg/cmd"
)

func main() {
	cmd.Execute()
}
