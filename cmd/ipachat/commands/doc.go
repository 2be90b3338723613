// Package commands defines the ipachat CLI and wires dependencies for subcommands.
//
// Commands
//
//   - (none)            Open the settings screen
//   - phonemes export   Print the current phoneme order as JSON
//   - phonemes reset    Restore the built-in phoneme order
//   - locale [tag]      Show or change the UI locale
//   - reset             Forget every saved choice
//
// # Implementation
//
// The root command loads config, opens the JSONL log, migrates and seeds the
// database and builds the services before any subcommand runs. Subcommands
// share that graph through appCtx and close it in the persistent post-run.
package commands
