// Package main hosts the sfollow CLI entrypoint and command graph.
//
// The root command follows Slurm batch jobs: it resolves configuration, builds
// the Slurm client, display, and watcher, and runs until every job finishes.
// The check and config subcommands cover installation diagnostics and
// configuration scaffolding.
package main
