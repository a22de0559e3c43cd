// Package dbal implements a bulk SQL generation and parameter-binding
// engine for MySQL-family and PostgreSQL-family databases.
//
// Given a batch of row-like records it produces a single dialect-correct
// statement (multi-row INSERT, CASE/WHEN UPDATE, UPSERT or DELETE) plus a
// flat, positionally ordered parameter list with matching wire types. The
// engine only generates SQL for its own fixed operation shapes; execution
// is delegated to a collaborator wrapping database/sql.
//
// The root package holds the error taxonomy shared by all subpackages:
// validation failures raised before any SQL is sent, and constraint
// violations classified from native driver errors.
package dbal
