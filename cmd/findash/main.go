// Command findash records invoices, expenses, vendors and accounts and
// prints the derived dashboard views as JSON.
package main

import (
	"fmt"
	"os"

	"findash/internal/cli"
)

func main() {
	// Load .env file for local development (ignore errors in production/docker)
	cli.LoadEnvFile()

	if err := run(os.Stdout, os.Args[1:]); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}
