package log

// Common field names for structured logging
const (
	FieldComponent  = "component"
	FieldError      = "error"
	FieldCollection = "collection"
	FieldRecordID   = "record_id"
	FieldRevision   = "revision"
	FieldYear       = "year"
	FieldCount      = "count"
	FieldDuration   = "duration_ms"
	FieldBackend    = "backend"
	FieldSheetsRef  = "sheets_ref"
)

// Components defines standard component names
const (
	ComponentApp     = "app"
	ComponentCLI     = "cli"
	ComponentStorage = "storage"
	ComponentRecords = "records"
	ComponentGoals   = "goals"
	ComponentFinance = "finance"
	ComponentAMQP    = "amqp"
	ComponentWorker  = "worker"
	ComponentSheets  = "sheets"
	ComponentCache   = "cache"
	ComponentBackend = "backend"
)

// LogFields provides a builder pattern for structured log fields
type LogFields map[string]any

// NewFields creates a new LogFields instance
func NewFields() LogFields {
	return make(LogFields)
}

func (f LogFields) WithError(err error) LogFields {
	if err != nil {
		f[FieldError] = err.Error()
	}
	return f
}

// WithChange adds the fields identifying one applied mutation
func (f LogFields) WithChange(collection, recordID string, revision int64) LogFields {
	f[FieldCollection] = collection
	f[FieldRecordID] = recordID
	f[FieldRevision] = revision
	return f
}

// ToSlice converts LogFields to a slice suitable for slog
func (f LogFields) ToSlice() []any {
	slice := make([]any, 0, len(f)*2)
	for k, v := range f {
		slice = append(slice, k, v)
	}
	return slice
}
