package scoring

import (
	"errors"
	"fmt"
)

// ErrBatchSizeMismatch is wrapped in a ProviderError when a batch call
// returns a different number of vectors than texts it was given.
var ErrBatchSizeMismatch = errors.New("embedding batch size mismatch")

// InputError reports a CV or job description that cannot be scored at all.
// Missing optional fields never produce it; they are defaulted instead.
type InputError struct {
	Field  string
	Reason string
}

func (e *InputError) Error() string {
	return fmt.Sprintf("invalid %s: %s", e.Field, e.Reason)
}

// ProviderError wraps a failure of the embedding provider. It is never
// retried here; callers decide whether to retry, degrade or fail.
type ProviderError struct {
	Op  string
	Err error
}

func (e *ProviderError) Error() string {
	return fmt.Sprintf("embedding provider failed during %s: %v", e.Op, e.Err)
}

func (e *ProviderError) Unwrap() error {
	return e.Err
}
