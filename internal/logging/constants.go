package logging

// Standard field names, so log output stays filterable across components.
const (
	FieldComponent   = "component"
	FieldFile        = "file_path"
	FieldSource      = "source"
	FieldTrackerID   = "tracker_id"
	FieldRow         = "row"
	FieldColumn      = "column"
	FieldCategory    = "category"
	FieldKeyword     = "keyword"
	FieldDescription = "description"
	FieldOperation   = "operation"
	FieldCount       = "count"
	FieldSkipped     = "skipped"
	FieldThreshold   = "threshold"
	FieldFormat      = "format"
	FieldDuration    = "duration_ms"
	FieldOutputFile  = "output_file"
)
