package logger

import (
	"fmt"

	"go.uber.org/zap"
)

// New builds a named zap logger. "development" gets the human-readable console
// encoder at debug level; every other environment gets JSON at info level.
func New(appEnv, name string) (*zap.Logger, error) {
	var (
		log *zap.Logger
		err error
	)

	if appEnv == "development" {
		log, err = zap.NewDevelopment()
	} else {
		log, err = zap.NewProduction()
	}
	if err != nil {
		return nil, fmt.Errorf("new logger: build %s config: %w", appEnv, err)
	}

	return log.Named(name), nil
}
