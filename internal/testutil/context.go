// Package testutil holds helpers shared by package tests.
package testutil

import (
	"context"
	"testing"
	"time"
)

// ContextWithTimeout creates a context with timeout that is canceled when the test ends.
func ContextWithTimeout(t testing.TB, duration time.Duration) context.Context {
	t.Helper()

	ctx, cancel := context.WithTimeout(context.Background(), duration)
	t.Cleanup(cancel)

	return ctx
}

// ContextWithCancel creates a cancelable context that is canceled when the test ends.
func ContextWithCancel(t testing.TB) (context.Context, context.CancelFunc) {
	t.Helper()

	ctx, cancel := context.WithCancel(context.Background())
	t.Cleanup(cancel)

	return ctx, cancel
}
