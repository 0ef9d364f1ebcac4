package logger

import (
	"log"
	"os"
)

// Logger writes leveled, timestamped log lines to stdout/stderr.
type Logger struct {
	info  *log.Logger
	warn  *log.Logger
	error *log.Logger
}

func New() *Logger {
	flags := log.Ldate | log.Ltime
	return &Logger{
		info:  log.New(os.Stdout, "[INFO] ", flags),
		warn:  log.New(os.Stdout, "[WARN] ", flags),
		error: log.New(os.Stderr, "[ERROR] ", flags),
	}
}

func (l *Logger) Info(format string, args ...interface{}) {
	l.info.Printf(format, args...)
}

func (l *Logger) Warn(format string, args ...interface{}) {
	l.warn.Printf(format, args...)
}

func (l *Logger) Error(format string, args ...interface{}) {
	l.error.Printf(format, args...)
}

// Fatal logs the message and exits the process.
func (l *Logger) Fatal(format string, args ...interface{}) {
	l.error.Printf(format, args...)
	os.Exit(1)
}
