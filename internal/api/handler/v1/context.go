package v1

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"github.com/clubseats/clubseats-api/internal/api/handler/v1/response"
	"github.com/clubseats/clubseats-api/internal/api/middleware"
	"github.com/clubseats/clubseats-api/internal/domain"
	"github.com/clubseats/clubseats-api/internal/service"
)

// PrincipalResolver maps the authenticated user id stored by the JWT
// middleware to a fresh principal snapshot.
type PrincipalResolver interface {
	Resolve(ctx context.Context, identityID uint) (domain.Principal, error)
}

// getPrincipalFromContext resolves the calling principal for the request.
// Resolution failures never reach the service layer: a missing identity is
// treated as unauthenticated, a disabled account as denied.
func getPrincipalFromContext(ctx *gin.Context, resolver PrincipalResolver) (domain.Principal, *response.Err) {
	value, exists := ctx.Get(middleware.ContextKeyUserID)
	if !exists {
		return domain.Principal{}, response.ErrUnauthenticated()
	}

	userID, ok := value.(uint)
	if !ok || userID == 0 {
		return domain.Principal{}, response.ErrUnauthenticated()
	}

	principal, err := resolver.Resolve(ctx.Request.Context(), userID)
	if err != nil {
		switch {
		case errors.Is(err, service.ErrIdentityNotFound):
			return domain.Principal{}, response.ErrUnauthenticated()
		case errors.Is(err, service.ErrAccountDisabled):
			return domain.Principal{}, response.ErrPermissionDenied(service.ErrAccountDisabled)
		case errors.Is(err, domain.ErrStoreUnavailable):
			return domain.Principal{}, response.ErrStoreUnavailable()
		}

		return domain.Principal{}, response.ErrInternalServerError(fmt.Errorf("resolver.Resolve -> %w", err))
	}

	return principal, nil
}

// renderServiceErr maps the cross-cutting error kinds shared by every
// authenticated route: unauthenticated, access denied, transient store
// failure, and the internal fallback. The denial reason is rendered on its
// own so wrapping context never leaks to the caller.
func renderServiceErr(ctx *gin.Context, err error) {
	switch {
	case errors.Is(err, domain.ErrUnauthenticated):
		response.RenderErr(ctx, response.ErrUnauthenticated())
	case errors.Is(err, domain.ErrAccessDenied):
		var denied *domain.AccessDeniedError
		if errors.As(err, &denied) {
			response.RenderErr(ctx, response.ErrPermissionDenied(denied))
			return
		}

		response.RenderErr(ctx, response.ErrPermissionDenied(domain.ErrAccessDenied))
	case errors.Is(err, domain.ErrStoreUnavailable):
		response.RenderErr(ctx, response.ErrStoreUnavailable())
	default:
		response.RenderErr(ctx, response.ErrInternalServerError(err))
	}
}

func parseUintParam(ctx *gin.Context, name string) (uint, error) {
	value, err := strconv.ParseUint(ctx.Param(name), 10, 32)
	if err != nil {
		return 0, fmt.Errorf("invalid %v", name)
	}

	return uint(value), nil
}

// HandleHealthcheck godoc
// @Summary      Healthcheck
// @Produce      json
// @Success      200  {object}  map[string]string
// @Router       / [get]
func HandleHealthcheck(ctx *gin.Context) {
	ctx.JSON(http.StatusOK, gin.H{"status": "ok"})
}
