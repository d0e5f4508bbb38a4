// Package domain contains the core entities and rules of the vocabulary
// trainer: items and their pool-qualified refs, per-item scheduling state,
// the daily practice streak, and the exercise and scheduling logic layered
// on top of them. It is independent of any storage or delivery mechanism.
package domain
