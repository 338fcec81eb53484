// Package commands wires the CLI surface: each subcommand builds on the
// shared application wiring established by the root command's
// PersistentPreRunE and torn down by PersistentPostRunE.
package commands
