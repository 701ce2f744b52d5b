package logs

import (
	"io"
	"log"
	"os"
	"path/filepath"
	"sync"
)

const (
	prefix   = "[kanban] "
	fileName = "debug.log"

	// maxSize is the size at which debug.log is rotated to debug.log.1
	maxSize = 1 << 20
)

var (
	Logger  = newLogger(io.Discard)
	logFile *os.File
	mu      sync.Mutex
)

func newLogger(w io.Writer) *log.Logger {
	return log.New(w, prefix, log.LstdFlags|log.Lshortfile)
}

// Initialize points the logger at logDir/debug.log. Until it is called,
// output is discarded.
func Initialize(logDir string) error {
	mu.Lock()
	defer mu.Unlock()

	if logDir == "" || logDir == "." {
		return nil
	}

	logPath := filepath.Join(logDir, fileName)
	rotate(logPath)

	f, err := os.OpenFile(logPath, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0644)
	if err != nil {
		Logger.Printf("Failed to open log file at %s: %v", logPath, err)
		return err
	}

	if logFile != nil {
		logFile.Close()
	}
	logFile = f
	Logger = newLogger(f)
	return nil
}

// rotate keeps one previous log once the current one grows past maxSize
func rotate(logPath string) {
	info, err := os.Stat(logPath)
	if err != nil || info.Size() < maxSize {
		return
	}
	_ = os.Rename(logPath, logPath+".1")
}

// Close closes the log file and discards further output.
func Close() error {
	mu.Lock()
	defer mu.Unlock()

	Logger = newLogger(io.Discard)
	if logFile == nil {
		return nil
	}
	err := logFile.Close()
	logFile = nil
	return err
}
