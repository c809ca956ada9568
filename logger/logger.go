// Package logger provides centralized logging for the dashboard.
// File: logger/logger.go
package logger

import (
	"io"
	"log"
	"os"
	"path/filepath"
	"sync"
	"time"
)

// ------------------- global loggers -------------------

// four logger levels accessible throughout the application
var (
	Info  *log.Logger
	Warn  *log.Logger
	Error *log.Logger
	Debug *log.Logger
)

var (
	mu      sync.Mutex
	logFile *os.File
)

const flags = log.Ldate | log.Ltime | log.Lshortfile

// ------------------- logger initialization -------------------

// InitLogger creates or reinitializes the logging system in dir. It:
// - Ensures dir exists.
// - Creates a timestamped log file in dir.
// - Writes logs to both the file and stdout.
// - Configures separate loggers (Info, Warn, Error, Debug) with consistent prefixes & flags.
func InitLogger(dir string) error {
	if err := os.MkdirAll(dir, 0700); err != nil {
		return err
	}

	logFileName := filepath.Join(dir, time.Now().Format("2006-01-02_15-04-05")+".log")
	file, err := os.OpenFile(logFileName, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0600) // #nosec
	if err != nil {
		return err
	}

	mu.Lock()
	defer mu.Unlock()
	if logFile != nil {
		_ = logFile.Close()
	}
	logFile = file

	configure(io.MultiWriter(os.Stdout, file))
	return nil
}

// SetLogLevel discards Debug output in production.
func SetLogLevel(env string) {
	if env == "production" {
		Debug.SetOutput(io.Discard)
	}
}

// SetOutput points every logger at w. Tests use it to capture or silence output.
func SetOutput(w io.Writer) {
	mu.Lock()
	defer mu.Unlock()
	configure(w)
}

func configure(w io.Writer) {
	Info = log.New(w, "INFO: ", flags)
	Warn = log.New(w, "WARN: ", flags)
	Error = log.New(w, "ERROR: ", flags)
	Debug = log.New(w, "DEBUG: ", flags)
}

// init wires stdout loggers so the package is usable before main calls
// InitLogger with the configured directory.
func init() {
	configure(os.Stdout)
}
