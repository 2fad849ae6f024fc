package gallery

import (
	"fmt"

	"catalogdash/internal/apis/catalog/endpoints"
)

type Stage string

const (
	StageBounds Stage = "bounds"
	StagePage   Stage = "page"
)

// QueryError is a fatal render failure. Status is the upstream HTTP status,
// 0 for transport failures, timeouts and malformed payloads.
type QueryError struct {
	Stage  Stage
	Status int
	Err    error
}

func (e *QueryError) Error() string {
	if e.Status != 0 {
		return fmt.Sprintf("%s query failed with status %d: %v", e.Stage, e.Status, e.Err)
	}
	return fmt.Sprintf("%s query failed: %v", e.Stage, e.Err)
}

func (e *QueryError) Unwrap() error { return e.Err }

func newQueryError(stage Stage, err error) *QueryError {
	return &QueryError{Stage: stage, Status: endpoints.StatusOf(err), Err: err}
}
