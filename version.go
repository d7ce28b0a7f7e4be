// Package plume holds shared metadata for the Plume CLI.
package plume

// Version is the current Plume release version.
const Version = "0.3.0"
