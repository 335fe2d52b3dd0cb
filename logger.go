package main

import (
	"io"
	"log"
	"os"

	"github.com/natefinch/lumberjack"
)

// newLogger writes to stderr, or to a rotating file when path is set.
// The returned closer is nil for stderr.
func newLogger(path string) (*log.Logger, io.Closer) {
	if path == "" {
		return log.New(os.Stderr, "", log.LstdFlags), nil
	}

	logFile := &lumberjack.Logger{
		Filename:   path,
		MaxSize:    100, // megabytes
		MaxBackups: 5,
		MaxAge:     30, // days
		Compress:   true,
	}
	return log.New(logFile, "", log.LstdFlags|log.Lmicroseconds), logFile
}
