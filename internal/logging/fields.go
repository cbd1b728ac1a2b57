package logging

const (
	// FieldComponent is the standardized structured logging key for component names.
	FieldComponent = "component"
	// FieldRecording is the standardized structured logging key for the source recording path.
	FieldRecording = "recording"
	// FieldRunID is the standardized structured logging key for batch run identifiers.
	FieldRunID = "run_id"
	// FieldChapter is the standardized structured logging key for chapter numbers.
	FieldChapter = "chapter"
	// FieldEventType is the standardized structured logging key for event classification.
	FieldEventType = "event_type"
	// FieldErrorHint is the standardized key for actionable next steps on warnings and errors.
	FieldErrorHint = "error_hint"
	// FieldImpact is the standardized key for user-facing consequence of a warning.
	FieldImpact = "impact"
	// FieldAlert flags warnings or anomalies that should stand out in structured logs.
	FieldAlert = "alert"
)
