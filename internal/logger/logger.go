package logger

import (
	"fmt"
	"io"
	"os"
	"path/filepath"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

// Level represents the logging level
type Level int

const (
	LevelDebug Level = iota
	LevelInfo
	LevelWarn
	LevelError
)

// String returns the string representation of the log level
func (l Level) String() string {
	switch l {
	case LevelDebug:
		return "DEBUG"
	case LevelInfo:
		return "INFO"
	case LevelWarn:
		return "WARN"
	case LevelError:
		return "ERROR"
	default:
		return "UNKNOWN"
	}
}

// Logger handles dual-output logging (console + file)
type Logger struct {
	console  *zap.Logger
	file     *zap.Logger
	logFile  *os.File
	minLevel Level
}

var globalLogger *Logger

// Init initializes the global logger
// consoleOutput: where to write INFO logs (typically os.Stdout)
// logFilePath: path to the log file, which receives every level
// verbose: if true, show DEBUG logs on console as well
func Init(consoleOutput io.Writer, logFilePath string, verbose bool) error {
	logDir := filepath.Dir(logFilePath)
	if err := os.MkdirAll(logDir, 0755); err != nil {
		return fmt.Errorf("failed to create log directory: %w", err)
	}

	logFile, err := os.OpenFile(logFilePath, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0644)
	if err != nil {
		return fmt.Errorf("failed to open log file: %w", err)
	}

	minLevel := LevelInfo
	if verbose {
		minLevel = LevelDebug
	}

	// Console: message only, prefixes are added per level
	consoleEncoder := zapcore.NewConsoleEncoder(zapcore.EncoderConfig{
		MessageKey: "msg",
		LineEnding: zapcore.DefaultLineEnding,
	})
	console := zap.New(zapcore.NewCore(consoleEncoder, zapcore.AddSync(consoleOutput), zapcore.DebugLevel))

	// File: timestamp, [LEVEL], message
	fileEncoder := zapcore.NewConsoleEncoder(zapcore.EncoderConfig{
		TimeKey:          "time",
		LevelKey:         "level",
		MessageKey:       "msg",
		LineEnding:       zapcore.DefaultLineEnding,
		EncodeTime:       zapcore.TimeEncoderOfLayout("2006/01/02 15:04:05"),
		EncodeLevel:      bracketLevelEncoder,
		ConsoleSeparator: " ",
	})
	file := zap.New(zapcore.NewCore(fileEncoder, zapcore.AddSync(logFile), zapcore.DebugLevel))

	globalLogger = &Logger{
		console:  console,
		file:     file,
		logFile:  logFile,
		minLevel: minLevel,
	}

	return nil
}

func bracketLevelEncoder(l zapcore.Level, enc zapcore.PrimitiveArrayEncoder) {
	enc.AppendString("[" + l.CapitalString() + "]")
}

// Close flushes and closes the log file
func Close() {
	if globalLogger == nil {
		return
	}
	_ = globalLogger.console.Sync()
	_ = globalLogger.file.Sync()
	if globalLogger.logFile != nil {
		globalLogger.logFile.Close()
	}
	globalLogger = nil
}

// Debug logs a debug message (file only, unless verbose)
func Debug(format string, args ...interface{}) {
	if globalLogger == nil {
		return
	}
	globalLogger.log(LevelDebug, format, args...)
}

// Info logs an info message (console + file)
func Info(format string, args ...interface{}) {
	if globalLogger == nil {
		fmt.Printf(format+"\n", args...)
		return
	}
	globalLogger.log(LevelInfo, format, args...)
}

// Warn logs a warning message (console + file)
func Warn(format string, args ...interface{}) {
	if globalLogger == nil {
		fmt.Printf("WARN: "+format+"\n", args...)
		return
	}
	globalLogger.log(LevelWarn, format, args...)
}

// Error logs an error message (console + file)
func Error(format string, args ...interface{}) {
	if globalLogger == nil {
		fmt.Printf("ERROR: "+format+"\n", args...)
		return
	}
	globalLogger.log(LevelError, format, args...)
}

func (l *Logger) log(level Level, format string, args ...interface{}) {
	message := fmt.Sprintf(format, args...)

	switch level {
	case LevelDebug:
		l.file.Debug(message)
	case LevelInfo:
		l.file.Info(message)
	case LevelWarn:
		l.file.Warn(message)
	case LevelError:
		l.file.Error(message)
	}

	if level < l.minLevel {
		return
	}

	switch level {
	case LevelDebug:
		l.console.Debug("[DEBUG] " + message)
	case LevelInfo:
		l.console.Info(message)
	case LevelWarn:
		l.console.Warn("⚠️  " + message)
	case LevelError:
		l.console.Error("❌ " + message)
	}
}

// InfoClean logs an info message to the console only
func InfoClean(format string, args ...interface{}) {
	if globalLogger == nil {
		fmt.Printf(format+"\n", args...)
		return
	}
	globalLogger.console.Info(fmt.Sprintf(format, args...))
}

// LogParseError records a reply parse failure in the log file with its
// full context. The console only sees it in verbose mode.
func LogParseError(group string, err error, context string) {
	if globalLogger == nil {
		return
	}

	globalLogger.file.Error("[PARSE_ERROR]",
		zap.String("group", group),
		zap.String("context", context),
		zap.Error(err),
	)

	Debug("Parse error in %s: %v", group, err)
}

// GetLogFilePath returns the path to the current log file
func GetLogFilePath() string {
	if globalLogger != nil && globalLogger.logFile != nil {
		return globalLogger.logFile.Name()
	}
	return ""
}
