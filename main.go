// ABOUTME: Entry point for the sweetshop CLI
// ABOUTME: Terminal storefront and admin client for a sweets catalog backend

package main

import (
	"fmt"
	"os"

	"github.com/sweetworks/sweetshop-cli/cmd"
)

func main() {
	if err := cmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}
