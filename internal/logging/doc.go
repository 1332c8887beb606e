// Package logging constructs the slog loggers used by the CLI and the mining
// runner.
//
// Two output formats are supported: a human-oriented console format (color
// when attached to a terminal) and line-delimited JSON for batch logs. Field
// name constants keep structured attributes consistent across components.
package logging
