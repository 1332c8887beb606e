// Package config loads, normalizes, and validates parmine configuration data.
//
// It supplies repository defaults, expands user paths (including tilde
// shortcuts), reads TOML files, and honours environment fallbacks such as
// PARMINE_TTABLE. The Config type centralizes every knob the CLI needs:
// corpus directories, scorer signals, embedding and translation-table
// resources, mining concurrency, evaluation sampling, and the indexing sink.
//
// Always obtain settings through this package so downstream code receives
// sanitized paths, parsed signal lists, and clear validation errors.
package config
