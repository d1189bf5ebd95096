package main

import (
	"fmt"
	"os"

	"github.com/kobzarvs/muse/internal/app"
)

func main() {
	if err := app.New().Run(); err != nil {
		fmt.Fprintln(os.Stderr, "muse:", err)
		os.Exit(1)
	}
}
