package logging

import "go.uber.org/zap"

// Build returns the zap logger for an environment name. Unknown names get the
// production preset.
func Build(env string) (*zap.Logger, error) {
	switch env {
	case "local", "":
		return zap.NewExample(), nil
	case "development":
		return zap.NewDevelopment()
	default:
		return zap.NewProduction()
	}
}
