package ai

import "errors"

var (
	// ErrUnparseable indicates the inference service returned output with no
	// well-formed JSON payload where one was required. Callers recover with
	// a typed default; the error never propagates past them.
	ErrUnparseable = errors.New("unparseable inference response")
)
