// Package main is the entry point for the c4mut CLI.
package main

import "c4mut.dev/pkg/c4mut/cmd"

func main() {
	cmd.Execute()
}
