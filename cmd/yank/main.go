// Command yank prints the system clipboard to stdout or sets it from stdin.
package main

import (
	"fmt"
	"os"
	"runtime/debug"

	"github.com/aymanbagabas/yank/clipboard"
)

// Version is set at build time with -ldflags "-X main.Version=...".
var Version = ""

func version() string {
	if Version != "" {
		return Version
	}
	if info, ok := debug.ReadBuildInfo(); ok && info.Main.Version != "" {
		return info.Main.Version
	}
	return "dev"
}

func main() {
	if err := newRootCmd(clipboard.System{}, detach).Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}
