// Package gate orchestrates one mediated file access: permission check,
// content read, classification, redaction, and audit, in that order.
// Nothing in this package raises a failure past its boundary; every
// terminal state is returned as an Outcome value.
package gate

// Status tags an Outcome with its terminal state.
type Status string

const (
	StatusAllowed             Status = "allowed"
	StatusDenied              Status = "denied"
	StatusNotFound            Status = "not_found"
	StatusIOFailure           Status = "io_failure"
	StatusUnknownOperation    Status = "unknown_operation"
	StatusOperationNotAllowed Status = "operation_not_allowed"
)

// Outcome is the closed result of one mediated access. Exactly one of
// the success fields or Reason is meaningful, selected by Status.
type Outcome struct {
	Status Status `json:"status"`

	// Success fields, valid when Status is StatusAllowed. Content is the
	// redacted text whenever any category matched, never the raw original.
	Content           string   `json:"content,omitempty"`
	Size              int      `json:"file_size,omitempty"`
	SensitiveDetected bool     `json:"sensitive_info_detected,omitempty"`
	Categories        []string `json:"sensitive_categories,omitempty"`

	// Reason describes the failure for every non-allowed status.
	Reason string `json:"reason,omitempty"`
}

// Success reports whether the access was allowed and content returned.
func (o Outcome) Success() bool {
	return o.Status == StatusAllowed
}
