package models

const (
	StatusPending   = "Pending"
	StatusFailed    = "Failed"
	StatusCompleted = "Completed"
	StatusPartial   = "Partial"
)

// sourceStatuses maps the status tokens used in the source CSV exports.
var sourceStatuses = map[string]string{
	"Pendiente":  StatusPending,
	"Fallida":    StatusFailed,
	"Completada": StatusCompleted,
}

// TranslateStatus returns the stored form of a source status token.
// Unknown values are returned unchanged.
func TranslateStatus(s string) string {
	if v, ok := sourceStatuses[s]; ok {
		return v
	}
	return s
}
