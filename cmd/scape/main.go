package main

import (
	"os"

	"github.com/MrSnakeDoc/scape/internal/cmd"
)

func main() {
	if err := cmd.Execute(); err != nil {
		os.Exit(1)
	}
}
