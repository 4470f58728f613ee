package logging

import (
	"fmt"
	"log"
	"strings"
	"time"
)

// AccessLogger records access-resolution outcomes in logfmt, one line per
// decision, for operator audit
type AccessLogger interface {
	// LogDecision logs the outcome of a dashboard access resolution
	LogDecision(dashboard string, user string, status string, details ...interface{})
	// LogAuth logs identity-resolution operations
	LogAuth(operation string, user string, status string, details ...interface{})
}

type accessLogger struct {
	logger *log.Logger
	writer *RotatingWriter
}

// NewAccessLogger creates a file-backed access logger. An empty path
// discards all output.
func NewAccessLogger(logPath string) (AccessLogger, error) {
	if logPath == "" {
		return discardAccessLogger{}, nil
	}

	writer, err := NewRotatingWriter(logPath, defaultMaxLogSize)
	if err != nil {
		return nil, fmt.Errorf("opening access log: %w", err)
	}

	return &accessLogger{
		logger: log.New(writer, "", 0), // No flags, we handle formatting ourselves
		writer: writer,
	}, nil
}

// formatValue formats a value for logfmt, quoting if necessary
func formatValue(v interface{}) string {
	s := fmt.Sprintf("%v", v)
	// Quote if contains space, equals, or quotes
	if strings.ContainsAny(s, " =\"") {
		s = strings.ReplaceAll(s, "\"", "\\\"")
		return fmt.Sprintf("\"%s\"", s)
	}
	return s
}

func (l *accessLogger) emit(parts []string, details []interface{}) {
	for i := 0; i < len(details); i += 2 {
		if i+1 < len(details) {
			parts = append(parts, fmt.Sprintf("%v=%s", details[i], formatValue(details[i+1])))
		}
	}
	timestamp := time.Now().UTC().Format("2006-01-02 15:04:05 -0700")
	l.logger.Printf("%s %s", timestamp, strings.Join(parts, " "))
}

func (l *accessLogger) LogDecision(dashboard string, user string, status string, details ...interface{}) {
	parts := []string{fmt.Sprintf("dashboard=%s", formatValue(dashboard))}
	if user != "" {
		parts = append(parts, fmt.Sprintf("user=%s", formatValue(user)))
	}
	parts = append(parts, fmt.Sprintf("status=%s", formatValue(status)))
	l.emit(parts, details)
}

func (l *accessLogger) LogAuth(operation string, user string, status string, details ...interface{}) {
	parts := []string{fmt.Sprintf("op=%s", formatValue(operation))}
	if user != "" {
		parts = append(parts, fmt.Sprintf("user=%s", formatValue(user)))
	}
	parts = append(parts, fmt.Sprintf("status=%s", formatValue(status)))
	l.emit(parts, details)
}

type discardAccessLogger struct{}

func (discardAccessLogger) LogDecision(string, string, string, ...interface{}) {}
func (discardAccessLogger) LogAuth(string, string, string, ...interface{})     {}
