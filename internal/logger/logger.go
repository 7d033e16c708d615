// Package logger wraps logrus with the application's level, format and
// output configuration, including size-based rotation of log files.
package logger

import (
	"io"
	"os"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"
	"gopkg.in/natefinch/lumberjack.v2"
)

// Logger is the global log instance.
var Logger *logrus.Logger

// Config holds the logging settings.
type Config struct {
	Level      string // debug, info, warn, error, fatal, panic
	Format     string // json, text
	Output     string // console, file, both
	FilePath   string // log file location
	MaxSize    int    // MB before rotation
	MaxAge     int    // days to keep rotated files
	MaxBackups int    // rotated files to keep
	Compress   bool   // gzip rotated files
}

// DefaultConfig returns the default logging settings.
func DefaultConfig() *Config {
	return &Config{
		Level:      "info",
		Format:     "text",
		Output:     "console",
		FilePath:   "logs/app.log",
		MaxSize:    100,
		MaxAge:     30,
		MaxBackups: 10,
		Compress:   true,
	}
}

// Init sets up the global logger. A nil config selects the defaults.
func Init(config *Config) error {
	if config == nil {
		config = DefaultConfig()
	}

	Logger = logrus.New()

	level, err := logrus.ParseLevel(config.Level)
	if err != nil {
		level = logrus.InfoLevel
		Logger.Warnf("invalid log level %q, falling back to info", config.Level)
	}
	Logger.SetLevel(level)

	switch config.Format {
	case "json":
		Logger.SetFormatter(&logrus.JSONFormatter{
			TimestampFormat: "2006-01-02 15:04:05",
		})
	default:
		Logger.SetFormatter(&logrus.TextFormatter{
			FullTimestamp:   true,
			TimestampFormat: "2006-01-02 15:04:05",
		})
	}

	setupOutput(config)
	setupGinLogger()

	return nil
}

// setupOutput selects the log destination.
func setupOutput(config *Config) {
	switch config.Output {
	case "file":
		Logger.SetOutput(fileWriter(config))
	case "both":
		Logger.SetOutput(io.MultiWriter(os.Stdout, fileWriter(config)))
	default:
		Logger.SetOutput(os.Stdout)
	}
}

// fileWriter returns a rotating file writer.
func fileWriter(config *Config) io.Writer {
	return &lumberjack.Logger{
		Filename:   config.FilePath,
		MaxSize:    config.MaxSize,
		MaxAge:     config.MaxAge,
		MaxBackups: config.MaxBackups,
		Compress:   config.Compress,
	}
}

// setupGinLogger routes gin's own log output through the application logger.
func setupGinLogger() {
	ginWriter := &GinLogWriter{logger: Logger}
	gin.DefaultWriter = ginWriter
	gin.DefaultErrorWriter = ginWriter
}

// GinLogWriter adapts the logger to io.Writer for gin.
type GinLogWriter struct {
	logger *logrus.Logger
}

// Write implements io.Writer.
func (w *GinLogWriter) Write(p []byte) (n int, err error) {
	w.logger.Info(string(p))
	return len(p), nil
}

// GetLogger returns the global logger, initializing it with defaults if
// needed.
func GetLogger() *logrus.Logger {
	if Logger == nil {
		if err := Init(nil); err != nil {
			return logrus.StandardLogger()
		}
	}
	return Logger
}

// Debugf logs a formatted debug message.
func Debugf(format string, args ...interface{}) {
	GetLogger().Debugf(format, args...)
}

// Info logs an info message.
func Info(args ...interface{}) {
	GetLogger().Info(args...)
}

// Infof logs a formatted info message.
func Infof(format string, args ...interface{}) {
	GetLogger().Infof(format, args...)
}

// Warnf logs a formatted warning message.
func Warnf(format string, args ...interface{}) {
	GetLogger().Warnf(format, args...)
}

// Errorf logs a formatted error message.
func Errorf(format string, args ...interface{}) {
	GetLogger().Errorf(format, args...)
}

// WithFields returns an entry with structured fields attached.
func WithFields(fields logrus.Fields) *logrus.Entry {
	return GetLogger().WithFields(fields)
}
