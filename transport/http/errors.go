package http

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/layer-3/ordauth"
	"github.com/layer-3/ordauth/core"
)

func statusFor(err error) int {
	switch {
	case errors.Is(err, core.ErrRateLimited):
		return http.StatusTooManyRequests
	case errors.Is(err, core.ErrInvalidSignature),
		errors.Is(err, core.ErrSessionExpired),
		errors.Is(err, core.ErrSessionNotFound):
		return http.StatusUnauthorized
	case errors.Is(err, core.ErrMalformedInput),
		errors.Is(err, core.ErrExpiredChallenge),
		errors.Is(err, core.ErrChallengeReused),
		errors.Is(err, core.ErrInvalidToken):
		return http.StatusBadRequest
	default:
		return http.StatusInternalServerError
	}
}

// abortWithError writes the JSON error body for err. Unknown errors are
// logged and reported without detail.
func abortWithError(c *gin.Context, err error) {
	status := statusFor(err)
	code := core.ErrorCode(err)

	resp := ordauth.ErrorResponse{Error: err.Error(), Code: code}
	if status == http.StatusInternalServerError {
		_ = c.Error(err)
		resp.Error = "internal error"
	}

	var rl *core.RateLimitedError
	if errors.As(err, &rl) {
		resp.RetryAfterSeconds = rl.RetrySeconds()
		c.Header("Retry-After", strconv.Itoa(rl.RetrySeconds()))
	}

	c.AbortWithStatusJSON(status, resp)
}

func abortBadRequest(c *gin.Context) {
	c.AbortWithStatusJSON(http.StatusBadRequest, ordauth.ErrorResponse{
		Error: "invalid request: " + core.ErrMalformedInput.Error(),
		Code:  core.CodeMalformedInput,
	})
}
