// Package config loads, normalizes, and validates mkvsmith configuration data.
//
// It supplies repository defaults, expands user paths (including tilde
// shortcuts), reads TOML files, and honours environment overrides such as
// MKVSMITH_MKVMERGE. The Config type centralizes tool locations and batch
// policy so the inspector, compiler, and batch runner receive them explicitly
// instead of reading ambient globals.
//
// Always obtain settings through this package so downstream code receives
// canonical language codes, normalized extensions, and clear validation errors.
package config
