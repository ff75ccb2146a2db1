package config

import (
	"fmt"
	"os"
)

// Exitf writes a formatted message to stderr and exits with code 1. The
// command-line binaries use it for failures before logging is set up.
func Exitf(format string, args ...any) {
	fmt.Fprintf(os.Stderr, format+"\n", args...)
	os.Exit(1)
}
