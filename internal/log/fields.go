package log

// Common field names for structured logging
const (
	FieldComponent    = "component"
	FieldError        = "error"
	FieldSourceFile   = "source_file"
	FieldKind         = "kind"
	FieldKindSource   = "kind_source"
	FieldLine         = "line"
	FieldCategory     = "category"
	FieldSign         = "sign"
	FieldCurrentCents = "current_cents"
	FieldYTDCents     = "ytd_cents"
	FieldRecordID     = "record_id"
	FieldStatus       = "status"
	FieldYear         = "year"
	FieldMonth        = "month"
	FieldBatchSize    = "batch_size"
	FieldSheetsRef    = "sheets_ref"
)

// Components defines standard component names
const (
	ComponentApp        = "app"
	ComponentInterpret  = "interpret"
	ComponentExtraction = "extraction"
	ComponentReconcile  = "reconcile"
	ComponentWorker     = "worker"
	ComponentFiles      = "files"
)
