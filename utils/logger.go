// utils/logger.go
package utils

import (
	"go.uber.org/zap"
)

// Logger is the shared application logger
var Logger *zap.SugaredLogger = zap.NewNop().Sugar()

// InitLogger builds the production logger and installs it as Logger
func InitLogger() func() {
	logger, err := zap.NewProduction()
	if err != nil {
		panic(err)
	}
	Logger = logger.Sugar()
	return func() {
		_ = logger.Sync()
	}
}
