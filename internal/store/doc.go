// Package store defines the persistence interfaces the application depends
// on: vocabulary item lookup, per-user review state, and streaks. These
// interfaces keep the scheduling and session logic independent of the
// database technology behind them.
package store
