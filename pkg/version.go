// Package cardlab holds build metadata shared by the CLI and the API.
package cardlab

var (
	// Version of cardlab, set by build flags.
	Version = "v0.1.0"
	// Build timestamp, set by build flags.
	Build = "n/a"
)
