// Package cmderr defines the error classes shared by every drivemeta
// command. Resolution and validation failures are fatal for a run; a
// partial batch failure is reported but does not fail the process.
package cmderr

import (
	"errors"
	"fmt"
)

// NotFoundError means a folder or file could not be resolved after every
// fallback tier.
type NotFoundError struct {
	Kind  string // "folder" or "file"
	Query string
}

func (e *NotFoundError) Error() string {
	return fmt.Sprintf("%s not found: %q", e.Kind, e.Query)
}

// ValidationError means the CLI input was malformed.
type ValidationError struct {
	Msg string
}

func (e *ValidationError) Error() string {
	return e.Msg
}

// ConnectionError wraps a transport-level failure talking to Supabase or
// an external API.
type ConnectionError struct {
	Op  string
	Err error
}

func (e *ConnectionError) Error() string {
	return fmt.Sprintf("%s: %v", e.Op, e.Err)
}

func (e *ConnectionError) Unwrap() error {
	return e.Err
}

// PartialBatchFailure records that some update batches failed while others
// succeeded. Prior batches are not rolled back.
type PartialBatchFailure struct {
	Failed int
	Total  int
	Errs   []error
}

func (e *PartialBatchFailure) Error() string {
	return fmt.Sprintf("%d of %d update batches failed", e.Failed, e.Total)
}

// ExitCode maps an error to the process exit code: validation, resolution
// and connection failures are fatal (1); partial batch failures and nil
// exit 0.
func ExitCode(err error) int {
	if err == nil {
		return 0
	}
	var pbf *PartialBatchFailure
	if errors.As(err, &pbf) {
		return 0
	}
	return 1
}
