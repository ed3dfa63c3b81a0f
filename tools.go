//go:build tools

// Package dirmigrate tracks the Go tools run by go generate, such as
// mockgen for internal/platform/mocks, as module dependencies.
package dirmigrate

import (
	_ "go.uber.org/mock/mockgen"
)
