// Package config loads, normalizes, and validates sfollow configuration data.
//
// It supplies defaults, expands user paths (including tilde shortcuts), reads
// TOML files, and honours environment fallbacks such as SFOLLOW_CLUSTERS. The
// Config type centralizes the Slurm command names, the follow loop cadence,
// and logging settings so the CLI resolves everything in one pass.
//
// Always obtain settings through this package so downstream code receives
// trimmed command names, positive intervals, and clear validation errors.
package config
