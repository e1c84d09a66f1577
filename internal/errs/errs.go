// Package errs defines the error types returned by the data-access layer.
//
// Its purpose is to give callers (web routes, the CLI, background jobs)
// consistent error shapes: a client-safe Error with a machine code and a
// suggested status, field-level validation errors, and the
// QueryExecutionError signalled whenever a statement fails.
package errs
