// Package logging builds the diagnostic logger.
package logging

import (
	"io"
	"log"

	"gopkg.in/natefinch/lumberjack.v2"

	"taskpad/internal/config"
)

// New returns the diagnostic logger. Without --debug it discards everything.
// With --debug, output goes to errOut and to a size-rotated debug.log in the
// config directory.
func New(cfg *config.Config, errOut io.Writer) *log.Logger {
	if !cfg.Debug {
		return log.New(io.Discard, "", 0)
	}
	w := io.MultiWriter(errOut, &lumberjack.Logger{
		Filename:   cfg.DebugLogPath(),
		MaxSize:    5, // megabytes
		MaxBackups: 2,
	})
	return log.New(w, "[taskpad] ", log.LstdFlags)
}
