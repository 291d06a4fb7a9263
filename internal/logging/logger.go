package logging

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"gopkg.in/natefinch/lumberjack.v2"
)

// EnvLogLevel overrides the configured level when set.
const EnvLogLevel = "LOG_LEVEL"

// Options controls where adminctl logs go.
type Options struct {
	// File is the rotated JSON log file. Empty means <home>/.adminctl/logs/adminctl.log.
	File string
	// Level is one of debug, info, warn, error. LOG_LEVEL takes precedence.
	Level string
	// Verbose mirrors debug output to Console in a human readable form.
	Verbose bool
	// Console receives verbose output. Defaults to os.Stderr.
	Console io.Writer
}

// GetAdminctlDir returns the .adminctl directory path, creating it if it doesn't exist
func GetAdminctlDir() (string, error) {
	homeDir, err := os.UserHomeDir()
	if err != nil {
		return "", fmt.Errorf("failed to get user home directory: %v", err)
	}
	dir := filepath.Join(homeDir, ".adminctl")
	if err := os.MkdirAll(dir, 0755); err != nil {
		return "", fmt.Errorf("failed to create .adminctl directory: %v", err)
	}
	return dir, nil
}

// ParseLevel maps a level name (any case) to a zap level. Unknown names
// fall back to info.
func ParseLevel(name string) zapcore.Level {
	switch strings.ToLower(strings.TrimSpace(name)) {
	case "debug":
		return zapcore.DebugLevel
	case "warn", "warning":
		return zapcore.WarnLevel
	case "error":
		return zapcore.ErrorLevel
	default:
		return zapcore.InfoLevel
	}
}

// New builds the CLI logger. It writes JSON to a size-rotated file and,
// when verbose, also to the console. The returned func flushes the logger.
func New(opts Options) (*zap.Logger, func(), error) {
	logPath := opts.File
	if logPath == "" {
		dir, err := GetAdminctlDir()
		if err != nil {
			return nil, nil, err
		}
		logPath = filepath.Join(dir, "logs", "adminctl.log")
	}
	if err := os.MkdirAll(filepath.Dir(logPath), 0755); err != nil {
		return nil, nil, fmt.Errorf("failed to create logs directory: %v", err)
	}

	rotator := &lumberjack.Logger{
		Filename:   logPath,
		MaxSize:    2, // megabytes
		MaxBackups: 5,
		MaxAge:     15, // days
		Compress:   true,
	}

	levelName := opts.Level
	if env := os.Getenv(EnvLogLevel); env != "" {
		levelName = env
	}
	level := ParseLevel(levelName)

	cfg := zap.NewProductionConfig()
	fileCore := zapcore.NewCore(zapcore.NewJSONEncoder(cfg.EncoderConfig), zapcore.AddSync(rotator), level)

	cores := []zapcore.Core{fileCore}
	if opts.Verbose {
		console := opts.Console
		if console == nil {
			console = os.Stderr
		}
		devCfg := zap.NewDevelopmentEncoderConfig()
		cores = append(cores, zapcore.NewCore(
			zapcore.NewConsoleEncoder(devCfg), zapcore.AddSync(console), zapcore.DebugLevel,
		))
	}

	logger := zap.New(zapcore.NewTee(cores...), zap.AddCaller(), zap.AddStacktrace(zapcore.ErrorLevel))

	return logger, func() {
		_ = logger.Sync()
		_ = rotator.Close()
	}, nil
}
