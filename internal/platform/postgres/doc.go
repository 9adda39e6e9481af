// Package postgres provides PostgreSQL implementations of the store
// interfaces using the pgx driver through database/sql. Slice and map
// fields (interest tags, learned weights) are persisted as JSONB.
package postgres
