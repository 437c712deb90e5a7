package ordauth

import (
	"fmt"

	"github.com/layer-3/ordauth/core"
)

// APIError is returned by the HTTP client for non-2xx replies. It unwraps
// to the matching core sentinel, so errors.Is(err, core.ErrRateLimited)
// works on the client side too.
type APIError struct {
	StatusCode        int
	Code              string
	Message           string
	RetryAfterSeconds int
}

func (e *APIError) Error() string {
	if e.Code == "" {
		return fmt.Sprintf("ordauth: %d: %s", e.StatusCode, e.Message)
	}
	return fmt.Sprintf("ordauth: %d %s: %s", e.StatusCode, e.Code, e.Message)
}

func (e *APIError) Unwrap() error {
	return core.ErrorFromCode(e.Code)
}
