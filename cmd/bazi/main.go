// Package main is the entry point for the bazi CLI binary.
package main

import (
	"os"

	"github.com/jimmydengpeng/BaziMiao/pkg/cli"
)

func main() {
	os.Exit(cli.Execute())
}
