package logger

import (
	"io"
	"os"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

// New builds the service logger and installs it as the zap global. Production uses JSON
// with ISO8601 timestamps, anything else the coloured development console. A non-nil
// shipper (the CloudWatch writer) receives a JSON copy of every entry.
func New(env string, shipper io.Writer) (*zap.Logger, error) {
	var cfg zap.Config
	if env == "production" {
		cfg = zap.NewProductionConfig()
		cfg.EncoderConfig.TimeKey = "timestamp"
		cfg.EncoderConfig.EncodeTime = zapcore.ISO8601TimeEncoder
	} else {
		cfg = zap.NewDevelopmentConfig()
		cfg.EncoderConfig.EncodeLevel = zapcore.CapitalColorLevelEncoder
	}

	var log *zap.Logger
	if shipper == nil {
		var err error
		if log, err = cfg.Build(); err != nil {
			return nil, err
		}
	} else {
		level := zap.NewAtomicLevelAt(cfg.Level.Level())
		console := zapcore.NewCore(zapcore.NewConsoleEncoder(cfg.EncoderConfig), zapcore.AddSync(os.Stdout), level)

		jsonCfg := cfg.EncoderConfig
		jsonCfg.EncodeLevel = zapcore.LowercaseLevelEncoder
		shipped := zapcore.NewCore(zapcore.NewJSONEncoder(jsonCfg), zapcore.AddSync(shipper), level)

		log = zap.New(zapcore.NewTee(console, shipped), zap.AddCaller(), zap.AddStacktrace(zapcore.ErrorLevel))
	}

	zap.ReplaceGlobals(log)
	return log, nil
}
