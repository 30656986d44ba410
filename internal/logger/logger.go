package logger

import (
	"fmt"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

var (
	newProduction  = zap.NewProduction
	newDevelopment = zap.NewDevelopment
)

// New production 輸出 JSON，其餘環境輸出彩色 console 格式
func New(env string) (*zap.Logger, error) {
	var (
		l   *zap.Logger
		err error
	)
	switch env {
	case "production":
		l, err = newProduction()
	case "test":
		return zap.NewNop(), nil
	default:
		cfg := zap.NewDevelopmentConfig()
		cfg.EncoderConfig.EncodeLevel = zapcore.CapitalColorLevelEncoder
		l, err = cfg.Build()
		if err != nil {
			l, err = newDevelopment()
		}
	}
	if err != nil {
		return nil, fmt.Errorf("logger.New: %w", err)
	}
	return l.With(zap.String("service", "crm-api")), nil
}
