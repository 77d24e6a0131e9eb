// ABOUTME: Entry point for the reel CLI
// ABOUTME: Executes the root cobra command

package main

import "os"

func main() {
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}
