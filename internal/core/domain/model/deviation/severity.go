package deviation

import "dispatch/internal/pkg/errs"

// Severity grades how far a courier strayed from the route corridor.
type Severity string

const (
	SeverityNone     Severity = "none"
	SeverityMinor    Severity = "minor"
	SeverityWarning  Severity = "warning"
	SeverityCritical Severity = "critical"
)

// Validate checks the severity against the closed set.
func (s Severity) Validate() error {
	switch s {
	case SeverityNone, SeverityMinor, SeverityWarning, SeverityCritical:
		return nil
	}
	return errs.NewValueIsInvalidError("severity")
}

func (s Severity) String() string { return string(s) }

// IsRecordable reports whether a deviation of this severity is persisted.
// Distances within the tolerance band produce no record.
func (s Severity) IsRecordable() bool {
	return s != SeverityNone
}

// TriggersAlert reports whether a deviation of this severity notifies
// dispatchers, subject to the alert cooldown.
func (s Severity) TriggersAlert() bool {
	return s == SeverityWarning || s == SeverityCritical
}
