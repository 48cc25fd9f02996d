package logger

import (
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

var sugar *zap.SugaredLogger

// Init configures the process logger. Production gets JSON output, anything
// else the development console encoder.
func Init(env string) {
	var config zap.Config
	if env == "production" {
		config = zap.NewProductionConfig()
		config.EncoderConfig.TimeKey = "timestamp"
		config.EncoderConfig.EncodeTime = zapcore.ISO8601TimeEncoder
	} else {
		config = zap.NewDevelopmentConfig()
		config.EncoderConfig.EncodeLevel = zapcore.CapitalColorLevelEncoder
	}

	log, err := config.Build(zap.AddCallerSkip(1))
	if err != nil {
		panic(err)
	}
	sugar = log.Sugar()
}

func logger() *zap.SugaredLogger {
	if sugar == nil {
		Init("development")
	}
	return sugar
}

func Info(msg string, keysAndValues ...any) {
	logger().Infow(msg, keysAndValues...)
}

func Warn(msg string, keysAndValues ...any) {
	logger().Warnw(msg, keysAndValues...)
}

func Error(msg string, keysAndValues ...any) {
	logger().Errorw(msg, keysAndValues...)
}

func Fatal(msg string, keysAndValues ...any) {
	logger().Fatalw(msg, keysAndValues...)
}
