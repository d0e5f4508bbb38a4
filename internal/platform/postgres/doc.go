// Package postgres implements the internal/store interfaces on PostgreSQL.
// It owns the SQL, the row mapping to and from domain entities, and the
// upsert semantics the practice pipeline relies on.
package postgres
