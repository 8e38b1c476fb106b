package main

import (
	"os"

	"github.com/tmaxmax/binutils/pkg/binutils"
	"github.com/tmaxmax/binutils/pkg/cli"
)

func main() {
	os.Exit(cli.Main(binutils.Profdata, os.Args[1:]))
}
