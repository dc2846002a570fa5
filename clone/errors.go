package clone

import (
	"errors"
	"fmt"

	"true-clone/classify"
)

var (
	ErrReconstruction = errors.New("composite cannot be reconstructed")
	ErrTooDeep        = errors.New("value graph is deeper than the configured limit")
)

// ReconstructError reports a recognized composite whose internal state cannot
// be rebuilt, such as a view outside its buffer. It matches ErrReconstruction
// and its Reason with errors.Is.
type ReconstructError struct {
	Kind   classify.KindEnum
	Reason error
}

func (e *ReconstructError) Error() string {
	return fmt.Sprintf("%s (%s): %v", ErrReconstruction, e.Kind, e.Reason)
}

func (e *ReconstructError) Unwrap() []error {
	return []error{ErrReconstruction, e.Reason}
}

func reconstructErr(kind classify.KindEnum, reason error) error {
	return &ReconstructError{Kind: kind, Reason: reason}
}
