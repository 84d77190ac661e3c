package ui

import (
	"io"

	"github.com/charmbracelet/log"
)

// NewLogger returns a stderr-style logger. Verbose enables debug records.
func NewLogger(w io.Writer, verbose bool) *log.Logger {
	level := log.InfoLevel
	if verbose {
		level = log.DebugLevel
	}
	return log.NewWithOptions(w, log.Options{
		Level:           level,
		ReportTimestamp: verbose,
	})
}

// Discard returns a logger that drops everything. Used as the zero-value
// fallback by packages that accept an optional logger.
func Discard() *log.Logger {
	return log.NewWithOptions(io.Discard, log.Options{Level: log.FatalLevel})
}
