// Package borrow provides a scoped borrow broadcaster: a Guard wraps a
// value the caller still owns and hands out any number of read-only
// Handles to other goroutines; the Guard's Close blocks until every
// Handle has been released, so the owner can safely let a stack-scoped
// value be read concurrently without moving it into shared ownership.
package borrow
