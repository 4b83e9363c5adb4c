// Package app wires the resolver pipeline behind the compute-projects
// command: logger setup, configuration loading, and the stdin-to-stdout
// run loop.
package app
