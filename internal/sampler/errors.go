package sampler

import (
	"errors"
	"fmt"
)

var (
	// ErrEmptyPool is returned when a pool needed for sampling has no elements.
	ErrEmptyPool = errors.New("identifier pool is empty")

	// ErrPoolExhausted is wrapped by every *ExhaustedPoolError.
	ErrPoolExhausted = errors.New("pair pool exhausted")
)

// ExhaustedPoolError indicates that more unique pairs were requested than the
// pools can provide under the sampler's constraints.
type ExhaustedPoolError struct {
	Requested int
	Available int
}

func (e *ExhaustedPoolError) Error() string {
	return fmt.Sprintf("%v: requested %d unique pairs, only %d available", ErrPoolExhausted, e.Requested, e.Available)
}

func (e *ExhaustedPoolError) Unwrap() error {
	return ErrPoolExhausted
}
