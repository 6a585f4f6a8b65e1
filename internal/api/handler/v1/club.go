package v1

import (
	"context"
	"errors"
	"fmt"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/clubseats/clubseats-api/internal/api/handler/v1/request"
	"github.com/clubseats/clubseats-api/internal/api/handler/v1/response"
	"github.com/clubseats/clubseats-api/internal/domain"
	"github.com/clubseats/clubseats-api/internal/service"
)

type ClubService interface {
	CreateClub(ctx context.Context, principal domain.Principal, club domain.Club) (domain.Club, error)
	GetClub(ctx context.Context, id uint) (domain.Club, error)
	JoinClub(ctx context.Context, principal domain.Principal, clubID uint) (domain.Affiliation, error)
	PromoteManager(ctx context.Context, principal domain.Principal, clubID, userID uint) error
}

type ClubHandler struct {
	svc  ClubService
	pSvc PrincipalResolver
}

func NewClubHandler(svc ClubService, pSvc PrincipalResolver) *ClubHandler {
	return &ClubHandler{
		svc:  svc,
		pSvc: pSvc,
	}
}

// HandleCreateClub godoc
// @Summary      Create a club
// @Description  Creates a club; the caller becomes its admin.
// @Tags         clubs
// @Accept       json
// @Produce      json
// @Param        input  body      request.CreateClubRequest  true  "Club details"
// @Success      201    {object}  domain.Club
// @Failure      400    {object}  response.Err
// @Failure      401    {object}  response.Err
// @Failure      409    {object}  response.Err
// @Failure      500    {object}  response.Err
// @Router       /clubs [post]
// @Security BearerAuth
func (h *ClubHandler) HandleCreateClub(ctx *gin.Context) {
	principal, respErr := getPrincipalFromContext(ctx, h.pSvc)
	if respErr != nil {
		response.RenderErr(ctx, respErr)
		return
	}

	var input request.CreateClubRequest
	if err := ctx.ShouldBindJSON(&input); err != nil {
		response.RenderErr(ctx, response.ErrBadRequest(err))
		return
	}

	if err := input.Validate(); err != nil {
		response.RenderErr(ctx, response.ErrBadRequest(err))
		return
	}

	club, err := h.svc.CreateClub(ctx.Request.Context(), principal, domain.Club{
		Name:        input.Name,
		Description: input.Description,
	})
	if err != nil {
		if errors.Is(err, service.ErrAlreadyManagesClub) {
			response.RenderErr(ctx, response.ErrConflict(service.ErrAlreadyManagesClub))
			return
		}

		renderServiceErr(ctx, fmt.Errorf("v1.HandleCreateClub -> h.svc.CreateClub -> %w", err))
		return
	}

	ctx.JSON(http.StatusCreated, club)
}

// HandleGetClub godoc
// @Summary      Get a club
// @Tags         clubs
// @Produce      json
// @Param        clubID  path      int  true  "Club ID"
// @Success      200     {object}  domain.Club
// @Failure      404     {object}  response.Err
// @Failure      500     {object}  response.Err
// @Router       /clubs/{clubID} [get]
// @Security BearerAuth
func (h *ClubHandler) HandleGetClub(ctx *gin.Context) {
	clubID, err := parseUintParam(ctx, "clubID")
	if err != nil {
		response.RenderErr(ctx, response.ErrBadRequest(err))
		return
	}

	club, err := h.svc.GetClub(ctx.Request.Context(), clubID)
	if err != nil {
		if errors.Is(err, service.ErrClubNotFound) {
			response.RenderErr(ctx, response.ErrNotFound("club", "id", clubID))
			return
		}

		renderServiceErr(ctx, fmt.Errorf("v1.HandleGetClub -> h.svc.GetClub -> %w", err))
		return
	}

	ctx.JSON(http.StatusOK, club)
}

// HandleJoinClub godoc
// @Summary      Join a club as a member
// @Tags         clubs
// @Produce      json
// @Param        clubID  path      int  true  "Club ID"
// @Success      201     {object}  domain.Affiliation
// @Failure      401     {object}  response.Err
// @Failure      404     {object}  response.Err
// @Failure      409     {object}  response.Err
// @Failure      500     {object}  response.Err
// @Router       /clubs/{clubID}/join [post]
// @Security BearerAuth
func (h *ClubHandler) HandleJoinClub(ctx *gin.Context) {
	principal, respErr := getPrincipalFromContext(ctx, h.pSvc)
	if respErr != nil {
		response.RenderErr(ctx, respErr)
		return
	}

	clubID, err := parseUintParam(ctx, "clubID")
	if err != nil {
		response.RenderErr(ctx, response.ErrBadRequest(err))
		return
	}

	affiliation, err := h.svc.JoinClub(ctx.Request.Context(), principal, clubID)
	if err != nil {
		switch {
		case errors.Is(err, service.ErrClubNotFound):
			response.RenderErr(ctx, response.ErrNotFound("club", "id", clubID))
		case errors.Is(err, service.ErrAlreadyAffiliated):
			response.RenderErr(ctx, response.ErrConflict(service.ErrAlreadyAffiliated))
		case errors.Is(err, service.ErrClubInactive):
			response.RenderErr(ctx, response.ErrConflict(service.ErrClubInactive))
		default:
			renderServiceErr(ctx, fmt.Errorf("v1.HandleJoinClub -> h.svc.JoinClub -> %w", err))
		}
		return
	}

	ctx.JSON(http.StatusCreated, affiliation)
}

// HandlePromoteManager godoc
// @Summary      Promote a club member to manager
// @Tags         clubs
// @Accept       json
// @Param        clubID  path      int                            true  "Club ID"
// @Param        input   body      request.PromoteManagerRequest  true  "Member to promote"
// @Success      204
// @Failure      401     {object}  response.Err
// @Failure      403     {object}  response.Err
// @Failure      409     {object}  response.Err
// @Failure      500     {object}  response.Err
// @Router       /clubs/{clubID}/managers [post]
// @Security BearerAuth
func (h *ClubHandler) HandlePromoteManager(ctx *gin.Context) {
	principal, respErr := getPrincipalFromContext(ctx, h.pSvc)
	if respErr != nil {
		response.RenderErr(ctx, respErr)
		return
	}

	clubID, err := parseUintParam(ctx, "clubID")
	if err != nil {
		response.RenderErr(ctx, response.ErrBadRequest(err))
		return
	}

	var input request.PromoteManagerRequest
	if err := ctx.ShouldBindJSON(&input); err != nil {
		response.RenderErr(ctx, response.ErrBadRequest(err))
		return
	}

	if err := input.Validate(); err != nil {
		response.RenderErr(ctx, response.ErrBadRequest(err))
		return
	}

	if err := h.svc.PromoteManager(ctx.Request.Context(), principal, clubID, input.UserID); err != nil {
		switch {
		case errors.Is(err, service.ErrUserNotFound):
			response.RenderErr(ctx, response.ErrNotFound("user", "id", input.UserID))
		case errors.Is(err, service.ErrAlreadyManagesClub):
			response.RenderErr(ctx, response.ErrConflict(service.ErrAlreadyManagesClub))
		case errors.Is(err, service.ErrManagerScopeConflict):
			response.RenderErr(ctx, response.ErrConflict(service.ErrManagerScopeConflict))
		default:
			renderServiceErr(ctx, fmt.Errorf("v1.HandlePromoteManager -> h.svc.PromoteManager -> %w", err))
		}
		return
	}

	ctx.Status(http.StatusNoContent)
}

