package editor

// MarkerSeverity grades a diagnostic marker.
type MarkerSeverity int

// Marker severities, lowest to highest.
const (
	SeverityHint MarkerSeverity = iota + 1
	SeverityInfo
	SeverityWarning
	SeverityError
)

// String returns a human-readable severity name.
func (s MarkerSeverity) String() string {
	switch s {
	case SeverityHint:
		return "hint"
	case SeverityInfo:
		return "info"
	case SeverityWarning:
		return "warning"
	case SeverityError:
		return "error"
	default:
		return "unknown"
	}
}

// Marker owner namespaces. The typed and untyped services publish under
// separate owners against the same buffer.
const (
	OwnerTypeScript = "typescript"
	OwnerJavaScript = "javascript"
)

// Marker is one published diagnostic against a buffer.
type Marker struct {
	Owner     string
	Code      string
	Message   string
	Severity  MarkerSeverity
	StartLine int
	StartCol  int
	EndLine   int
	EndCol    int
}
