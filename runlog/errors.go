package runlog

import "fmt"

var (
	// ErrNotFound is returned when no run record exists for the given id.
	ErrNotFound = fmt.Errorf("run record not found")
)
