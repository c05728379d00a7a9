package logging

// Standardized field names for structured logging.
// These constants ensure consistency across the application's log output.
const (
	FieldFile         = "file_path"
	FieldDirectory    = "directory"
	FieldCount        = "count"
	FieldCallID       = "call_id"
	FieldWeek         = "week"
	FieldCustomerType = "customer_type"
	FieldMaxDate      = "max_date"
	FieldSkipped      = "skipped"
	FieldReason       = "reason"
	FieldOperation    = "operation"
)
