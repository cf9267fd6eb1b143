package bapptest

import (
	"strconv"
	"testing"
)

// Env provides a chainable builder for setting [bapp.Settings] env vars
// via t.Setenv. Create one with [SetBaseEnv].
type Env struct {
	t testing.TB
}

// SetBaseEnv sets all [bapp.Settings] env vars to sensible test defaults.
// Port is required because each test must use a unique port to avoid collisions.
//
// Defaults:
//   - PROJECT_NAME: "test"
//   - API_V1_STR: "/api/v1"
//   - ENV: "test"
//   - LOG_LEVEL: "debug"
//   - LOG_FILE_PATH: a directory removed after the test
//   - OTEL_EXPORTER: "none"
//
// Use the returned [Env] to override individual values:
//
//	bapptest.SetBaseEnv(t, 18085).Stage("dev").APIPrefix("/v2")
func SetBaseEnv(t testing.TB, port int) *Env {
	t.Helper()
	t.Setenv("PORT", strconv.Itoa(port))
	t.Setenv("PROJECT_NAME", "test")
	t.Setenv("API_V1_STR", "/api/v1")
	t.Setenv("ENV", "test")
	t.Setenv("LOG_LEVEL", "debug")
	t.Setenv("LOG_FILE_PATH", t.TempDir())
	t.Setenv("OTEL_EXPORTER", "none")
	return &Env{t: t}
}

// Stage overrides ENV.
func (e *Env) Stage(stage string) *Env {
	e.t.Helper()
	e.t.Setenv("ENV", stage)
	return e
}

// APIPrefix overrides API_V1_STR.
func (e *Env) APIPrefix(prefix string) *Env {
	e.t.Helper()
	e.t.Setenv("API_V1_STR", prefix)
	return e
}

// LogDir overrides LOG_FILE_PATH.
func (e *Env) LogDir(dir string) *Env {
	e.t.Helper()
	e.t.Setenv("LOG_FILE_PATH", dir)
	return e
}

// ServiceName overrides PROJECT_NAME.
func (e *Env) ServiceName(name string) *Env {
	e.t.Helper()
	e.t.Setenv("PROJECT_NAME", name)
	return e
}
