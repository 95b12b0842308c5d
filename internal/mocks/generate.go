// Package mocks provides generated mocks for testing the dictate services.
//
// This package uses go.uber.org/mock (gomock) to generate type-safe mocks for
// the ports interfaces. Hand-written lightweight doubles live in the auth
// subpackage; the generated mocks here are for tests that need call-by-call
// expectations.
//
// To regenerate mocks after interface changes, run:
//
//	go generate ./internal/mocks
package mocks

// Generate mock for SessionStore interface from internal/ports.
//go:generate go run go.uber.org/mock/mockgen -package=mocks -destination=session_store_mock.go github.com/dictate-io/dictate/internal/ports SessionStore

// Generate mock for ConfigSource interface from internal/ports.
//go:generate go run go.uber.org/mock/mockgen -package=mocks -destination=config_source_mock.go github.com/dictate-io/dictate/internal/ports ConfigSource
