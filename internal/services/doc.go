// Package services defines the shared error taxonomy and log-context helpers
// used across the miner's components.
//
// Errors are tagged with sentinel markers (configuration, data, not-found,
// transient) via Wrap so callers can classify failures with errors.Is without
// parsing message strings. Configuration errors abort a run at startup; data
// and not-found errors are recovered per document pair.
package services
