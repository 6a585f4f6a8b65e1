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

type ReservationService interface {
	CreateReservation(ctx context.Context, principal domain.Principal, eventID, categoryID uint) (domain.Reservation, error)
	CancelReservation(ctx context.Context, principal domain.Principal, reservationID uint) error
	CheckIn(ctx context.Context, principal domain.Principal, token string) error
	GetReservation(ctx context.Context, principal domain.Principal, reservationID uint) (domain.Reservation, error)
	ListOwnReservations(ctx context.Context, principal domain.Principal) ([]domain.Reservation, error)
}

type ReservationHandler struct {
	svc  ReservationService
	pSvc PrincipalResolver
}

func NewReservationHandler(svc ReservationService, pSvc PrincipalResolver) *ReservationHandler {
	return &ReservationHandler{
		svc:  svc,
		pSvc: pSvc,
	}
}

// HandleCreateReservation godoc
// @Summary      Reserve a seat in an event category
// @Tags         reservations
// @Accept       json
// @Produce      json
// @Param        input  body      request.CreateReservationRequest  true  "Event and category"
// @Success      201    {object}  response.ReservationResponse
// @Failure      400    {object}  response.Err
// @Failure      401    {object}  response.Err
// @Failure      403    {object}  response.Err
// @Failure      404    {object}  response.Err
// @Failure      409    {object}  response.Err
// @Failure      500    {object}  response.Err
// @Router       /reservations [post]
// @Security BearerAuth
func (h *ReservationHandler) HandleCreateReservation(ctx *gin.Context) {
	principal, respErr := getPrincipalFromContext(ctx, h.pSvc)
	if respErr != nil {
		response.RenderErr(ctx, respErr)
		return
	}

	var input request.CreateReservationRequest
	if err := ctx.ShouldBindJSON(&input); err != nil {
		response.RenderErr(ctx, response.ErrBadRequest(err))
		return
	}

	if err := input.Validate(); err != nil {
		response.RenderErr(ctx, response.ErrBadRequest(err))
		return
	}

	reservation, err := h.svc.CreateReservation(ctx.Request.Context(), principal, input.EventID, input.CategoryID)
	if err != nil {
		switch {
		case errors.Is(err, service.ErrEventNotFound):
			response.RenderErr(ctx, response.ErrNotFound("event", "id", input.EventID))
		case errors.Is(err, service.ErrCategoryNotFound):
			response.RenderErr(ctx, response.ErrNotFound("category", "id", input.CategoryID))
		case errors.Is(err, service.ErrEventClosed):
			response.RenderErr(ctx, response.ErrConflict(service.ErrEventClosed))
		case errors.Is(err, service.ErrCategoryFull):
			response.RenderErr(ctx, response.ErrConflict(service.ErrCategoryFull))
		case errors.Is(err, service.ErrDuplicateReservation):
			response.RenderErr(ctx, response.ErrConflict(service.ErrDuplicateReservation))
		default:
			renderServiceErr(ctx, fmt.Errorf("v1.HandleCreateReservation -> h.svc.CreateReservation -> %w", err))
		}
		return
	}

	ctx.JSON(http.StatusCreated, response.NewReservationResponse(reservation))
}

// HandleListReservations godoc
// @Summary      List the caller's reservations
// @Tags         reservations
// @Produce      json
// @Success      200  {array}   response.ReservationResponse
// @Failure      401  {object}  response.Err
// @Failure      500  {object}  response.Err
// @Router       /reservations [get]
// @Security BearerAuth
func (h *ReservationHandler) HandleListReservations(ctx *gin.Context) {
	principal, respErr := getPrincipalFromContext(ctx, h.pSvc)
	if respErr != nil {
		response.RenderErr(ctx, respErr)
		return
	}

	reservations, err := h.svc.ListOwnReservations(ctx.Request.Context(), principal)
	if err != nil {
		renderServiceErr(ctx, fmt.Errorf("v1.HandleListReservations -> h.svc.ListOwnReservations -> %w", err))
		return
	}

	ctx.JSON(http.StatusOK, response.NewReservationListResponse(reservations))
}

// HandleGetReservation godoc
// @Summary      Get one of the caller's reservations
// @Tags         reservations
// @Produce      json
// @Param        reservationID  path      int  true  "Reservation ID"
// @Success      200  {object}  response.ReservationResponse
// @Failure      401  {object}  response.Err
// @Failure      403  {object}  response.Err
// @Failure      500  {object}  response.Err
// @Router       /reservations/{reservationID} [get]
// @Security BearerAuth
func (h *ReservationHandler) HandleGetReservation(ctx *gin.Context) {
	principal, respErr := getPrincipalFromContext(ctx, h.pSvc)
	if respErr != nil {
		response.RenderErr(ctx, respErr)
		return
	}

	reservationID, err := parseUintParam(ctx, "reservationID")
	if err != nil {
		response.RenderErr(ctx, response.ErrBadRequest(err))
		return
	}

	reservation, err := h.svc.GetReservation(ctx.Request.Context(), principal, reservationID)
	if err != nil {
		renderServiceErr(ctx, fmt.Errorf("v1.HandleGetReservation -> h.svc.GetReservation -> %w", err))
		return
	}

	ctx.JSON(http.StatusOK, response.NewReservationResponse(reservation))
}

// HandleCancelReservation godoc
// @Summary      Cancel one of the caller's reservations
// @Tags         reservations
// @Param        reservationID  path  int  true  "Reservation ID"
// @Success      204
// @Failure      401  {object}  response.Err
// @Failure      403  {object}  response.Err
// @Failure      409  {object}  response.Err
// @Failure      500  {object}  response.Err
// @Router       /reservations/{reservationID} [delete]
// @Security BearerAuth
func (h *ReservationHandler) HandleCancelReservation(ctx *gin.Context) {
	principal, respErr := getPrincipalFromContext(ctx, h.pSvc)
	if respErr != nil {
		response.RenderErr(ctx, respErr)
		return
	}

	reservationID, err := parseUintParam(ctx, "reservationID")
	if err != nil {
		response.RenderErr(ctx, response.ErrBadRequest(err))
		return
	}

	if err := h.svc.CancelReservation(ctx.Request.Context(), principal, reservationID); err != nil {
		if errors.Is(err, service.ErrAlreadyTerminal) {
			response.RenderErr(ctx, response.ErrConflict(err))
			return
		}

		renderServiceErr(ctx, fmt.Errorf("v1.HandleCancelReservation -> h.svc.CancelReservation -> %w", err))
		return
	}

	ctx.Status(http.StatusNoContent)
}

// HandleCheckIn godoc
// @Summary      Check in a reservation by its entry token
// @Description  Marks the reservation as used. Only managers or admins of the
// @Description  reservation's club may check tickets in. A token never checks
// @Description  in twice.
// @Tags         reservations
// @Accept       json
// @Param        input  body  request.CheckInRequest  true  "Entry token"
// @Success      204
// @Failure      400  {object}  response.Err
// @Failure      401  {object}  response.Err
// @Failure      403  {object}  response.Err
// @Failure      404  {object}  response.Err
// @Failure      409  {object}  response.Err
// @Failure      500  {object}  response.Err
// @Router       /reservations/check-in [post]
// @Security BearerAuth
func (h *ReservationHandler) HandleCheckIn(ctx *gin.Context) {
	principal, respErr := getPrincipalFromContext(ctx, h.pSvc)
	if respErr != nil {
		response.RenderErr(ctx, respErr)
		return
	}

	var input request.CheckInRequest
	if err := ctx.ShouldBindJSON(&input); err != nil {
		response.RenderErr(ctx, response.ErrBadRequest(err))
		return
	}

	if err := input.Validate(); err != nil {
		response.RenderErr(ctx, response.ErrBadRequest(err))
		return
	}

	if err := h.svc.CheckIn(ctx.Request.Context(), principal, input.NormalizedToken()); err != nil {
		switch {
		case errors.Is(err, service.ErrTokenNotFound):
			response.RenderErr(ctx, response.ErrNotFound("reservation", "token", input.Token))
		case errors.Is(err, service.ErrAlreadyTerminal):
			response.RenderErr(ctx, response.ErrConflict(err))
		default:
			renderServiceErr(ctx, fmt.Errorf("v1.HandleCheckIn -> h.svc.CheckIn -> %w", err))
		}
		return
	}

	ctx.Status(http.StatusNoContent)
}
