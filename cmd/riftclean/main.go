// Package main is the entry point for the riftclean CLI tool, which turns
// exported match-history dumps into the flattened win-prediction dataset.
package main

func main() {
	Execute()
}
