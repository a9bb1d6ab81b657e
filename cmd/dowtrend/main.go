package main

import (
	"os"

	"github.com/rianlucascs/dowtrend/cmd/dowtrend/commands"
)

// main is the entry point for the dowtrend CLI
// ⭐ 통합 CLI 진입점: go run ./cmd/dowtrend [command]
func main() {
	if err := commands.Execute(); err != nil {
		os.Exit(1)
	}
}
