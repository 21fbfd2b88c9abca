package logger

import (
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

// ServiceName is stamped on every log line so shipped logs can be told apart from other services
const ServiceName = "flashdeals-api"

// Logger is a no-op until Init is called.
var Logger = zap.NewNop()

func Init(environment string) error {
	built, err := newConfig(environment).Build(
		zap.AddCaller(),
		zap.AddStacktrace(zapcore.ErrorLevel),
	)
	if err != nil {
		return err
	}

	Logger = built
	zap.ReplaceGlobals(Logger)

	return nil
}

// newConfig picks JSON at info level for production and colored console output at debug level elsewhere
func newConfig(environment string) zap.Config {
	var cfg zap.Config
	if environment == "production" {
		cfg = zap.NewProductionConfig()
		cfg.Level = zap.NewAtomicLevelAt(zap.InfoLevel)
	} else {
		cfg = zap.NewDevelopmentConfig()
		cfg.Level = zap.NewAtomicLevelAt(zap.DebugLevel)
		cfg.EncoderConfig.EncodeLevel = zapcore.CapitalColorLevelEncoder
	}

	cfg.EncoderConfig.TimeKey = "timestamp"
	cfg.EncoderConfig.EncodeTime = zapcore.ISO8601TimeEncoder
	cfg.EncoderConfig.MessageKey = "message"
	cfg.EncoderConfig.LevelKey = "level"
	cfg.EncoderConfig.CallerKey = "caller"
	cfg.EncoderConfig.StacktraceKey = "stacktrace"
	cfg.InitialFields = map[string]interface{}{
		"service":     ServiceName,
		"environment": environment,
	}

	return cfg
}

func Sync() {
	if Logger != nil {
		_ = Logger.Sync()
	}
}

// WithRequestID scopes a logger to one HTTP request. An empty id is left off.
func WithRequestID(requestID string) *zap.Logger {
	if requestID == "" {
		return Logger
	}
	return Logger.With(zap.String("request_id", requestID))
}

// WithAccount adds the acting account to a request-scoped logger
func WithAccount(log *zap.Logger, accountID string) *zap.Logger {
	if accountID == "" {
		return log
	}
	return log.With(zap.String("account_id", accountID))
}

func Debug(msg string, fields ...zap.Field) {
	Logger.Debug(msg, fields...)
}

func Info(msg string, fields ...zap.Field) {
	Logger.Info(msg, fields...)
}

func Warn(msg string, fields ...zap.Field) {
	Logger.Warn(msg, fields...)
}

func Error(msg string, fields ...zap.Field) {
	Logger.Error(msg, fields...)
}

func Fatal(msg string, fields ...zap.Field) {
	Logger.Fatal(msg, fields...)
}
