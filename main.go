// Package main is the entry point for the foundry CLI.
package main

import "foundry.dev/pkg/foundry/cmd"

func main() {
	cmd.Execute()
}
