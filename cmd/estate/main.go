// Command estate serves and manages real-estate records.
package main

import (
	"github.com/joho/godotenv"

	"github.com/mesh-intelligence/estate/internal/cli"
)

func main() {
	// A missing .env is fine; variables may come from the real environment.
	_ = godotenv.Load()
	cli.Execute()
}
