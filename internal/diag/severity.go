package diag

// Severity orders diagnostics by importance. Comparisons rely on the
// numeric order (info < warning < error).
type Severity uint8

const (
	SevInfo Severity = iota
	SevWarning
	SevError
)

// String renders the uppercase form used in report headers.
func (s Severity) String() string {
	switch s {
	case SevInfo:
		return "INFO"
	case SevWarning:
		return "WARNING"
	case SevError:
		return "ERROR"
	}
	return "UNKNOWN"
}
