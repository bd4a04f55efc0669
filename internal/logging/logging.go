// Package logging builds the zap logger shared by the CLI and the builder.
package logging

import (
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

// Modes accepted by New.
const (
	ModeRelease = "release" // JSON, info level
	ModeDev     = "dev"     // Console, info level
	ModeDebug   = "debug"   // Console, debug level
)

// New returns a logger for mode. Unknown modes fall back to ModeDev.
func New(mode string) (*zap.Logger, error) {
	var config zap.Config

	if mode == ModeRelease {
		config = zap.NewProductionConfig()
	} else {
		config = zap.NewDevelopmentConfig()
		config.EncoderConfig.EncodeLevel = zapcore.CapitalColorLevelEncoder
		if mode != ModeDebug {
			config.Level = zap.NewAtomicLevelAt(zap.InfoLevel)
		}
	}

	return config.Build()
}
