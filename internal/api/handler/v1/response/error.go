package response

import (
	"fmt"
	"net/http"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

// Err is the stable error shape rendered to callers. Store and internal
// errors are never exposed; only the documented kind and message are.
type Err struct {
	Err error `json:"-"`

	StatusCode int    `json:"-"`
	StatusText string `json:"status_text"`
	Message    string `json:"message"`
}

func (e *Err) Error() string {
	return e.Message
}

func RenderErr(ctx *gin.Context, err *Err) {
	if err.StatusCode >= http.StatusInternalServerError {
		zap.L().Error("server error",
			zap.Int("status", err.StatusCode),
			zap.String("path", ctx.FullPath()),
			zap.Error(err.Err),
		)
	}

	ctx.AbortWithStatusJSON(err.StatusCode, err)
}

func ErrBadRequest(err error) *Err {
	return &Err{
		Err:        err,
		StatusCode: http.StatusBadRequest,
		StatusText: http.StatusText(http.StatusBadRequest),
		Message:    err.Error(),
	}
}

func ErrUnauthenticated() *Err {
	return &Err{
		StatusCode: http.StatusUnauthorized,
		StatusText: http.StatusText(http.StatusUnauthorized),
		Message:    "authentication required",
	}
}

func ErrWrongCredentials(err error) *Err {
	return &Err{
		Err:        err,
		StatusCode: http.StatusUnauthorized,
		StatusText: http.StatusText(http.StatusUnauthorized),
		Message:    "wrong credentials",
	}
}

func ErrPermissionDenied(err error) *Err {
	return &Err{
		Err:        err,
		StatusCode: http.StatusForbidden,
		StatusText: http.StatusText(http.StatusForbidden),
		Message:    err.Error(),
	}
}

func ErrNotFound(object, key string, value any) *Err {
	return &Err{
		StatusCode: http.StatusNotFound,
		StatusText: http.StatusText(http.StatusNotFound),
		Message:    fmt.Sprintf("%v with %v (%v) not found", object, key, value),
	}
}

// ErrConflict renders business-state violations: full categories, closed
// events, terminal reservations, capacity floors. Terminal for the
// request; the caller must not retry without new input.
func ErrConflict(err error) *Err {
	return &Err{
		Err:        err,
		StatusCode: http.StatusConflict,
		StatusText: http.StatusText(http.StatusConflict),
		Message:    err.Error(),
	}
}

// ErrStoreUnavailable renders transient store failures. Safe to retry.
func ErrStoreUnavailable() *Err {
	return &Err{
		StatusCode: http.StatusServiceUnavailable,
		StatusText: http.StatusText(http.StatusServiceUnavailable),
		Message:    "store temporarily unavailable, retry later",
	}
}

func ErrInternalServerError(err error) *Err {
	return &Err{
		Err:        err,
		StatusCode: http.StatusInternalServerError,
		StatusText: http.StatusText(http.StatusInternalServerError),
		Message:    "internal server error",
	}
}
