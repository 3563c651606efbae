package logging

// Field name constants for structured logging.
const (
	// Common fields.
	FieldError      = "error"
	FieldPath       = "path"
	FieldPaths      = "paths"
	FieldWorkingDir = "working_dir"

	// Configuration fields.
	FieldDialect = "dialect"
	FieldFormat  = "format"
	FieldJobs    = "jobs"
	FieldMarkers = "markers"

	// Per-file fields.
	FieldLanguage = "language"
	FieldRanges   = "ranges"
	FieldReason   = "reason"

	// Statistics fields.
	FieldFilesDiscovered = "files_discovered"
	FieldFilesProcessed  = "files_processed"
	FieldFilesSkipped    = "files_skipped"
	FieldFilesErrored    = "files_errored"
	FieldRangesTotal     = "ranges_total"

	// Version fields.
	FieldVersion = "version"
	FieldCommit  = "commit"
	FieldBuilt   = "built"
)
