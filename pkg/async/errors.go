package async

import "errors"

var (
	ErrCanceled = errors.New("async: context done before future completion")
	ErrPanic    = errors.New("async: function panicked")
)
