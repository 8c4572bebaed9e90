package config

import (
	"go.uber.org/zap"

	"github.com/ne-attend/ne-attend-api/logging"
)

// setLogger picks the zap preset for the running environment
func setLogger(env string) (*zap.Logger, error) {
	return logging.Build(env)
}
