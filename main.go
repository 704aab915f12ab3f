// Package main is the entry point for the covermark CLI.
package main

import "covermark.dev/covermark/cmd"

func main() {
	cmd.Execute()
}
