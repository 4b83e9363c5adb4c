// Package cli parses command-line arguments for the compute-projects
// command and defines the ExitError type shared by all the binaries.
package cli
