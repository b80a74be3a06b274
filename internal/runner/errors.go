package runner

import "errors"

var (
	// ErrMalformedInput means the request bytes did not parse as JSON.
	ErrMalformedInput = errors.New("malformed input: request is not valid JSON")

	// ErrMissingTask means the request carried no non-empty task string.
	ErrMissingTask = errors.New("missing 'task'")
)
