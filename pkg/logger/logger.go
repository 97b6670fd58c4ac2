package logger

import (
	"sync"

	"github.com/pkg/errors"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

var (
	Log      *zap.Logger
	onceInit sync.Once
)

// Options selects the level and encoder of the global logger.
type Options struct {
	Level zapcore.Level
	// JSON switches from the colored console encoder to JSON lines.
	JSON bool
}

// Init builds the global logger once. Later calls return the same instance.
func Init(opts Options, meta ...zap.Field) error {
	var buildErr error
	onceInit.Do(func() {
		instance, err := configure(opts).Build(zap.AddCaller())
		if err != nil {
			buildErr = err
			return
		}
		Log = instance.With(meta...)
	})

	if buildErr != nil {
		return errors.Wrap(buildErr, "build logger")
	}
	if Log == nil {
		return errors.New("logger not initialized")
	}

	return nil
}

// ParseLevel maps a LOG_LEVEL value onto a zap level, defaulting to info.
func ParseLevel(raw string) zapcore.Level {
	level, err := zapcore.ParseLevel(raw)
	if err != nil {
		return zapcore.InfoLevel
	}
	return level
}

// L returns the global logger, or a no-op logger before Init.
func L() *zap.Logger {
	if Log == nil {
		return zap.NewNop()
	}
	return Log
}

func configure(opts Options) zap.Config {
	encoder := zap.NewProductionEncoderConfig()
	encoder.TimeKey = "timestamp"
	encoder.EncodeTime = zapcore.ISO8601TimeEncoder
	encoder.EncodeCaller = zapcore.ShortCallerEncoder
	encoder.EncodeDuration = zapcore.SecondsDurationEncoder
	encoder.EncodeName = zapcore.FullNameEncoder
	encoder.CallerKey = "caller"

	encoding := "console"
	encoder.EncodeLevel = zapcore.CapitalColorLevelEncoder
	if opts.JSON {
		encoding = "json"
		encoder.EncodeLevel = zapcore.LowercaseLevelEncoder
	}

	return zap.Config{
		Level:             zap.NewAtomicLevelAt(opts.Level),
		Development:       false,
		DisableCaller:     false,
		DisableStacktrace: false,
		Encoding:          encoding,
		EncoderConfig:     encoder,
		OutputPaths:       []string{"stdout"},
		ErrorOutputPaths:  []string{"stderr"},
	}
}
