package logging

// LogEntry represents a structured log record.
type LogEntry struct {
	// Standard fields
	Time     int64
	Severity Severity
	Message  string
	File     string
	Line     int
	Function string

	// General structured data; engine call sites attach generation,
	// population size, fitness and diversity figures here.
	Fields map[string]interface{}
}
