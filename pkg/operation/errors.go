package operation

import (
	"fmt"
)

// 🛑 SourceError means the source tree could not be read or sized. It is
// fatal: no destination is attempted without a measured total.
type SourceError struct {
	Source string
	Err    error
}

func (e *SourceError) Error() string {
	return fmt.Sprintf("source %s unreadable: %v", e.Source, e.Err)
}

func (e *SourceError) Unwrap() error {
	return e.Err
}

// ⚠️ DestinationError records one destination's failure without stopping
// the run.
type DestinationError struct {
	Destination string
	Err         error
}

func (e *DestinationError) Error() string {
	return fmt.Sprintf("copying to %s: %v", e.Destination, e.Err)
}

func (e *DestinationError) Unwrap() error {
	return e.Err
}
