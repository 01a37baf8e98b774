package main

import (
	"os"

	"github.com/JamsawColPH/esp8266ndn/cmd"
)

func main() {
	if err := cmd.CmdEsp8266ndn.Execute(); err != nil {
		os.Exit(1)
	}
}
