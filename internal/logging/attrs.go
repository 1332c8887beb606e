package logging

import "log/slog"

const (
	// FieldComponent is the standardized structured logging key for component names.
	FieldComponent = "component"
	// FieldRunID is the standardized structured logging key for batch run identifiers.
	FieldRunID = "run_id"
	// FieldSourceDoc is the standardized structured logging key for source document ids.
	FieldSourceDoc = "source_doc"
	// FieldTargetDoc is the standardized structured logging key for target document ids.
	FieldTargetDoc = "target_doc"
	// FieldSignal is the standardized structured logging key for scorer signal names.
	FieldSignal = "signal"
)

// Error wraps an error as a slog attribute under the conventional "error" key.
func Error(err error) slog.Attr {
	if err == nil {
		return slog.String("error", "<nil>")
	}
	return slog.Any("error", err)
}
