package testhelpers

import (
	"github.com/NKTHUAN-2K5/portfolio/internal/logger"
)

// NewTestLogger creates a logger suitable for testing (discards output).
func NewTestLogger() logger.Logger {
	return logger.NewNop()
}
