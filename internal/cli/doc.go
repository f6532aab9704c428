// Package cli defines the Cobra command tree for the capegen CLI. Each file
// in this package registers one top-level command (build, validate, doctor,
// etc.) with the root command. Command implementations delegate to internal
// packages for the actual work and only handle flags and output.
package cli
