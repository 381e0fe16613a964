// Package cli defines the Cobra command tree for hookplayer. Each file
// registers one command with the root. Commands delegate to internal
// packages for the work and only handle arguments, output, and exit
// status.
//
// The root command doubles as the hook entry point: "hookplayer stop"
// plays a random sound configured for the "stop" event.
package cli
