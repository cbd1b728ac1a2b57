// Package main hosts the chapsplit CLI entrypoint and command graph.
//
// The Cobra-based command tree surfaces the batch pipeline (process), single
// file inspection (chapters), run history, and configuration scaffolding. It
// centralizes configuration resolution and structured logging setup so
// subcommands can focus on user experience instead of wiring.
package main
