// Command giftcard plays an interactive Father's Day card in the terminal.
package main

import (
	"context"
	"os"

	_ "github.com/joho/godotenv/autoload"
)

var (
	version = "dev"     // semantic version, set via ldflags
	commit  = "none"    // git commit SHA
	date    = "unknown" // build timestamp
)

func main() {
	if err := newRootCmd().ExecuteContext(context.Background()); err != nil {
		os.Exit(1)
	}
}
