package logging

import (
	"io"
	"os"
	"path/filepath"

	"github.com/sirupsen/logrus"
	"gopkg.in/natefinch/lumberjack.v2"
)

// FileLogger returns a logrus logger that writes to stdout and to a
// size-rotated log file at path.
func FileLogger(level logrus.Level, path string) (*logrus.Logger, error) {
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return nil, err
	}
	rotated := &lumberjack.Logger{
		Filename:   path,
		MaxSize:    50, // megabytes
		MaxBackups: 5,
		MaxAge:     30, // days
		Compress:   true,
	}
	logger := logrus.New()
	logger.SetLevel(level)
	logger.SetOutput(io.MultiWriter(os.Stdout, rotated))
	logger.SetFormatter(&logrus.JSONFormatter{})
	return logger, nil
}

// ConsoleLogger returns a plain stdout logger, used by tests and one-off
// commands.
func ConsoleLogger(level logrus.Level) *logrus.Logger {
	logger := logrus.New()
	logger.SetLevel(level)
	logger.SetOutput(os.Stdout)
	return logger
}
