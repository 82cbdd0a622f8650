// Package postgres provides the PostgreSQL KVStore used when progress is
// kept in a shared database. Queries go through the Querier interface so
// the store runs against a pgxpool.Pool in production and pgxmock in tests.
package postgres
