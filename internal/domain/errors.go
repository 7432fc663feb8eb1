package domain

import (
	"errors"
	"fmt"
	"strings"
)

// ErrEmptyResult marks a query or filter that matched zero rows. Surfaced
// as "not found", not as a system fault.
var ErrEmptyResult = errors.New("no records match the requested filters")

// ErrMLUnavailable marks the optional external scoring service as not
// configured or unreachable. The caller degrades the feature; the rule
// based detector is never substituted silently.
var ErrMLUnavailable = errors.New("ml scoring service not configured")

// SchemaError reports required dataset columns that are missing. Fatal for
// the current request and never retried.
type SchemaError struct {
	Missing []string
}

func (e *SchemaError) Error() string {
	return fmt.Sprintf("dataset missing required columns: %s", strings.Join(e.Missing, ", "))
}

// ComputationError wraps an unexpected numeric failure inside the batch
// computation. Deterministic input means retrying cannot help, so callers
// surface it as-is.
type ComputationError struct {
	Stage string
	Err   error
}

func (e *ComputationError) Error() string {
	return fmt.Sprintf("computation failed at %s: %v", e.Stage, e.Err)
}

func (e *ComputationError) Unwrap() error { return e.Err }
