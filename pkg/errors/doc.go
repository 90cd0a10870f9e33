// Package errors provides structured error types for better observability
// and programmatic error handling across the application.
//
// Unit classification failures carry their own codes so callers can skip or
// flag a single unit without aborting a whole enumeration:
//
//	typ, err := unit.ParseType(path)
//	if errors.IsCode(err, errors.ErrCodeUnrecognizedUnitType) {
//	    slog.Warn("skipping unit", "path", path, "error", err)
//	}
//
// Example usage:
//
//	err := errors.WrapWithContext(
//	    errors.ErrCodeTimeout,
//	    "failed to query journal",
//	    ctx.Err(),
//	    map[string]any{
//	        "command": "journalctl",
//	        "unit": name,
//	    },
//	)
package errors
