package orchestrate

// Status tracks one item through the pipeline.
type Status string

const (
	StatusPending    Status = "pending"
	StatusNormalized Status = "normalized"
	StatusSuggested  Status = "suggested"
	StatusConfirmed  Status = "confirmed"
	StatusError      Status = "error"
)

// ValidTransition reports whether the state machine allows moving from
// one status to another. Confirmation is an external, human-driven
// transition; error is terminal and reachable only before suggestions
// exist.
func ValidTransition(from, to Status) bool {
	switch from {
	case StatusPending:
		return to == StatusNormalized || to == StatusError
	case StatusNormalized:
		return to == StatusSuggested || to == StatusError
	case StatusSuggested:
		return to == StatusConfirmed
	default:
		return false
	}
}
