// Package main is the entry point for the inventory API.
package main

import "inventory-api/cmd/inventory-api/cmd"

func main() {
	cmd.Execute()
}
