package logsvc

import "github.com/steliasaustin/outreach/core"

type nopLogger struct{}

var _ core.Logger = (*nopLogger)(nil)

// NewNopLogger returns a logger that discards everything. Used in tests.
func NewNopLogger() core.Logger { return nopLogger{} }

func (nopLogger) Debug(string, ...interface{}) {}
func (nopLogger) Info(string, ...interface{})  {}
func (nopLogger) Warn(string, ...interface{})  {}
func (nopLogger) Error(string, ...interface{}) {}
func (nopLogger) Fatal(string, ...interface{}) {}
