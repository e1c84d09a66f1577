// Package validation validates domain payloads and filter options.
//
// It uses the `validator` library to enforce rules (like
// required fields or email formats) defined in struct tags
// and extracts validation errors into a format a client can
// understand.
package validation
