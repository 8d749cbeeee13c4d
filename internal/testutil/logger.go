// Package testutil holds helpers shared by package tests.
package testutil

import (
	"testing"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"go.uber.org/zap/zaptest"
)

// NopLogger discards everything
func NopLogger() *zap.Logger {
	return zap.NewNop()
}

// Logger writes warnings and errors through t.Log so they show up next to
// the failing test
func Logger(t testing.TB) *zap.Logger {
	return zaptest.NewLogger(t, zaptest.Level(zapcore.WarnLevel))
}
