// Package cli parses command-line arguments into a harness configuration.
package cli
