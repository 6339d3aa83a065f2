package log

import (
	"fmt"
	"os"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"moul.io/zapfilter"
)

// field helpers so callers don't need to import zap themselves
var (
	String     = zap.String
	Int        = zap.Int
	Int32      = zap.Int32
	Uint32     = zap.Uint32
	Float64    = zap.Float64
	Bool       = zap.Bool
	Time       = zap.Time
	Duration   = zap.Duration
	Any        = zap.Any
	ErrorField = zap.Error
)

var defaultLogger *zap.Logger

func init() {
	defaultLogger = zap.NewNop()
}

// InitLogger configures the process wide logger.
// format is either "json" or "text", level is a zap level value.
// filters may contain zapfilter rules to silence noisy named loggers
// during development (e.g. "*:replay.resample").
func InitLogger(format, level, filters string) (*zap.Logger, error) {
	lvl, err := zapcore.ParseLevel(level)
	if err != nil {
		return nil, fmt.Errorf("invalid log level %q: %w", level, err)
	}
	var encCfg zapcore.EncoderConfig
	var enc zapcore.Encoder
	switch format {
	case "json":
		encCfg = zap.NewProductionEncoderConfig()
		enc = zapcore.NewJSONEncoder(encCfg)
	case "text":
		encCfg = zap.NewDevelopmentEncoderConfig()
		enc = zapcore.NewConsoleEncoder(encCfg)
	default:
		return nil, fmt.Errorf("unknown log format %q", format)
	}
	core := zapcore.NewCore(enc, zapcore.Lock(os.Stderr), lvl)
	if filters != "" {
		rules, fErr := zapfilter.ParseRules(filters)
		if fErr != nil {
			return nil, fmt.Errorf("invalid log filters %q: %w", filters, fErr)
		}
		core = zapfilter.NewFilteringCore(core, rules)
	}
	defaultLogger = zap.New(core)
	return defaultLogger, nil
}

func InitProductionLogger() {
	defaultLogger, _ = zap.NewProduction()
}

func InitDevelopmentLogger() {
	defaultLogger, _ = zap.NewDevelopment()
}

func Default() *zap.Logger { return defaultLogger }

// Named returns a child logger of the default logger.
func Named(name string) *zap.Logger { return defaultLogger.Named(name) }

func Debug(msg string, fields ...zap.Field) { defaultLogger.Debug(msg, fields...) }
func Info(msg string, fields ...zap.Field)  { defaultLogger.Info(msg, fields...) }
func Warn(msg string, fields ...zap.Field)  { defaultLogger.Warn(msg, fields...) }
func Error(msg string, fields ...zap.Field) { defaultLogger.Error(msg, fields...) }
func Fatal(msg string, fields ...zap.Field) { defaultLogger.Fatal(msg, fields...) }

func Sync() { _ = defaultLogger.Sync() }
