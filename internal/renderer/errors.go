package renderer

import (
	"errors"
	"fmt"
)

// ErrRootMissing is returned when the DOM has no root node.
var ErrRootMissing = errors.New("dom has no root node")

// FrameError records the pipeline stage that failed and the frame number.
type FrameError struct {
	Op    string // Stage name (e.g., "build", "layout", "emit")
	Frame uint64
	Err   error
}

func (e *FrameError) Error() string {
	if e == nil {
		return ""
	}
	return fmt.Sprintf("frame %d: %s: %v", e.Frame, e.Op, e.Err)
}

func (e *FrameError) Unwrap() error {
	if e == nil {
		return nil
	}
	return e.Err
}
