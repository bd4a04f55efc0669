package logging

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

func TestNew_Levels(t *testing.T) {
	tests := []struct {
		mode      string
		wantDebug bool
	}{
		{ModeRelease, false},
		{ModeDev, false},
		{ModeDebug, true},
		{"something-else", false},
	}

	for _, tt := range tests {
		t.Run(tt.mode, func(t *testing.T) {
			logger, err := New(tt.mode)
			require.NoError(t, err)
			defer logger.Sync() //nolint:errcheck

			assert.Equal(t, tt.wantDebug, logger.Core().Enabled(zap.DebugLevel))
			assert.True(t, logger.Core().Enabled(zap.InfoLevel))
		})
	}
}
