package config

import (
	"os"

	"go.uber.org/zap"
)

// NewLogger builds the process logger. Development gets console output,
// everything else gets production JSON.
func NewLogger() (*zap.Logger, error) {
	if os.Getenv("APP_ENV") == "development" {
		return zap.NewDevelopment()
	}
	return zap.NewProduction()
}
