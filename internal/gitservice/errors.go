package gitservice

import (
	"errors"
	"fmt"
)

// APIError wraps errors from the hosting service API.
type APIError struct {
	Operation string
	Repo      string
	Err       error
}

func (e *APIError) Error() string {
	return fmt.Sprintf("gitservice: %s failed for %s: %v", e.Operation, e.Repo, e.Err)
}

func (e *APIError) Unwrap() error {
	return e.Err
}

// IsAPIError checks if an error chain contains an APIError.
func IsAPIError(err error) bool {
	var apiErr *APIError
	return errors.As(err, &apiErr)
}
