// Package otel provides an OpenTelemetry observer plugin for the borrow library.
// It emits span events (acquire, release, teardown) with low overhead.
package otel
