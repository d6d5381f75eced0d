package core

import "fmt"

// StageError attaches pipeline context to a failure so callers can tell which
// stage and which CRS rejected the point. The underlying cause is one of the
// model error kinds and remains reachable through errors.Is / errors.As.
type StageError struct {
	Stage string
	CRS   string
	Err   error
}

func (e *StageError) Error() string {
	return fmt.Sprintf("%s (%s): %v", e.Stage, e.CRS, e.Err)
}

func (e *StageError) Unwrap() error { return e.Err }

func stageError(stage, crs string, err error) error {
	return &StageError{Stage: stage, CRS: crs, Err: err}
}
