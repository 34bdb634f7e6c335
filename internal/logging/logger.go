package logging

import (
	"os"
	"path/filepath"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"golang.org/x/term"
	"gopkg.in/natefinch/lumberjack.v2"

	"linguastory-backend/internal/config"
)

// Logger wraps a sugared zap logger with a file sink rotated by lumberjack
// and a console sink.
type Logger struct {
	*zap.SugaredLogger
}

func New(cfg config.LoggingConfig) *Logger {
	fileSink := zapcore.AddSync(&lumberjack.Logger{
		Filename:   filepath.Join(cfg.Dir, "linguastory.log"),
		MaxSize:    cfg.MaxSizeMB,
		MaxBackups: cfg.MaxBackups,
		MaxAge:     cfg.MaxAgeDays,
		Compress:   true,
	})

	encCfg := zap.NewProductionEncoderConfig()
	encCfg.EncodeTime = zapcore.ISO8601TimeEncoder

	consoleEncCfg := zap.NewDevelopmentEncoderConfig()
	if term.IsTerminal(int(os.Stdout.Fd())) {
		consoleEncCfg.EncodeLevel = zapcore.CapitalColorLevelEncoder
	}

	core := zapcore.NewTee(
		zapcore.NewCore(zapcore.NewJSONEncoder(encCfg), fileSink, zap.InfoLevel),
		zapcore.NewCore(zapcore.NewConsoleEncoder(consoleEncCfg), zapcore.AddSync(os.Stdout), zap.DebugLevel),
	)

	return &Logger{zap.New(core, zap.AddCaller()).Sugar()}
}

// NewNop returns a logger that discards everything. Used in tests.
func NewNop() *Logger {
	return &Logger{zap.NewNop().Sugar()}
}

func (l *Logger) Close() {
	_ = l.Sync()
}
