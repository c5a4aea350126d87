package main

import (
	"os"

	"github.com/vidushisingh23/AI-Powered-Clinical-Intelligence-Session-Management/internal/adapters/driving/cli"
)

func main() {
	if err := cli.Execute(); err != nil {
		os.Exit(1)
	}
}
