// Package mocks provides hand-written test doubles for the store and
// service interfaces. Each mock exposes Fn fields to override individual
// methods and falls back to a simple in-memory default when a field is nil.
package mocks
