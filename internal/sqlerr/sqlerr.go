// Package sqlerr specifically handles database driver errors.
//
// It parses cryptic SQLSTATE codes from the PostgreSQL driver and
// converts them into client-safe errors (e.g., converting a
// "unique violation" into a Conflict carrying USER_ALREADY_EXISTS).
package sqlerr
