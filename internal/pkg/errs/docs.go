// Package errs provides standardized error types shared across the order
// lifecycle service.
//
// Each error type follows a consistent pattern:
//   - A sentinel error variable (e.g. ErrObjectNotFound)
//   - A struct type carrying error details
//   - Constructor functions with and without an underlying cause
//   - Error() for formatting and Unwrap() targeting the sentinel
//
// Callers classify errors with errors.Is against the sentinels: the HTTP
// adapter maps ErrObjectNotFound to 404, while validation sentinels map to
// 400. This keeps error classification independent of message text.
package errs
