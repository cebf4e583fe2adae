package utils

import (
	"fmt"
	"log"
	"os"

	"github.com/rollbar/rollbar-go"
)

// Logger writes prefixed lines to stderr and forwards warnings and errors to
// Rollbar once SetupErrorReporting has been called with a token.
type Logger struct {
	logger  *log.Logger
	rollbar bool
}

func NewLogger(prefix string) *Logger {
	return &Logger{
		logger:  log.New(os.Stderr, prefix, log.LstdFlags),
		rollbar: reportingEnabled,
	}
}

var reportingEnabled bool

// SetupErrorReporting configures Rollbar. An empty token leaves reporting off.
func SetupErrorReporting(token, environment string) bool {
	if token == "" {
		return false
	}
	rollbar.SetToken(token)
	rollbar.SetEnvironment(environment)
	rollbar.SetServerRoot("github.com/sahilchouksey/studyflow")
	reportingEnabled = true
	return true
}

// FlushErrorReporting waits for queued Rollbar items to be sent
func FlushErrorReporting() {
	if reportingEnabled {
		rollbar.Wait()
	}
}

func (l *Logger) Info(msg string, args ...interface{}) {
	l.print("INFO", msg, args)
}

// Warn logs msg and reports it to Rollbar at warning level
func (l *Logger) Warn(msg string, args ...interface{}) {
	if l.rollbar {
		rollbar.Warning(append([]interface{}{msg}, args...)...)
	}
	l.print("WARN", msg, args)
}

// Error logs msg and reports it to Rollbar. args may carry an error and a
// map[string]interface{} of extras.
func (l *Logger) Error(msg string, args ...interface{}) {
	if l.rollbar {
		rollbar.Error(append([]interface{}{msg}, args...)...)
	}
	l.print("ERROR", msg, args)
}

func (l *Logger) print(level, msg string, args []interface{}) {
	line := fmt.Sprintf("%s %s", level, msg)
	for _, arg := range args {
		line += fmt.Sprintf(" %+v", arg)
	}
	l.logger.Println(line)
}
