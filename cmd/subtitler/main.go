package main

import (
	"os"

	"github.com/OpenSpeaks/openspeaks-subtitler/internal/cli"
)

func main() {
	if err := cli.Execute(); err != nil {
		os.Exit(1)
	}
}
