package batch

import "errors"

// Usage errors. They indicate a caller bug and leave state unchanged.
var (
	ErrAlreadyOpen = errors.New("begin called twice without ending the current session")
	ErrNotOpen     = errors.New("no session is open")
	ErrBatchOpen   = errors.New("batch is already open")
	ErrBatchClosed = errors.New("batch is not open")
	ErrBatchFull   = errors.New("batch capacity exceeded")
)
