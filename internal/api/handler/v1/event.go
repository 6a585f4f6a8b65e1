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

type EventService interface {
	CreateEvent(ctx context.Context, principal domain.Principal, event domain.Event) (domain.Event, error)
	GetEvent(ctx context.Context, id uint) (domain.Event, error)
	ListClubEvents(ctx context.Context, principal domain.Principal, clubID uint) ([]domain.Event, error)
	CreateCategory(ctx context.Context, principal domain.Principal, eventID uint, name string, capacity int) (domain.Category, error)
}

// CapacityAdmissionService is the slice of the admission controller the
// event routes need: capacity changes and guarded deletions.
type CapacityAdmissionService interface {
	SetCategoryCapacity(ctx context.Context, principal domain.Principal, categoryID uint, capacity int) error
	DeleteCategory(ctx context.Context, principal domain.Principal, categoryID uint) error
	DeleteEvent(ctx context.Context, principal domain.Principal, eventID uint) error
}

type EventHandler struct {
	svc          EventService
	admissionSvc CapacityAdmissionService
	pSvc         PrincipalResolver
}

func NewEventHandler(svc EventService, admissionSvc CapacityAdmissionService, pSvc PrincipalResolver) *EventHandler {
	return &EventHandler{
		svc:          svc,
		admissionSvc: admissionSvc,
		pSvc:         pSvc,
	}
}

// HandleCreateEvent godoc
// @Summary      Create an event under a club
// @Tags         events
// @Accept       json
// @Produce      json
// @Param        clubID  path      int                        true  "Club ID"
// @Param        input   body      request.CreateEventRequest true  "Event details"
// @Success      201     {object}  domain.Event
// @Failure      400     {object}  response.Err
// @Failure      401     {object}  response.Err
// @Failure      403     {object}  response.Err
// @Failure      500     {object}  response.Err
// @Router       /clubs/{clubID}/events [post]
// @Security BearerAuth
func (h *EventHandler) HandleCreateEvent(ctx *gin.Context) {
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

	var input request.CreateEventRequest
	if err := ctx.ShouldBindJSON(&input); err != nil {
		response.RenderErr(ctx, response.ErrBadRequest(err))
		return
	}

	if err := input.Validate(); err != nil {
		response.RenderErr(ctx, response.ErrBadRequest(err))
		return
	}

	event, err := h.svc.CreateEvent(ctx.Request.Context(), principal, domain.Event{
		ClubID:      clubID,
		Name:        input.Name,
		Description: input.Description,
		StartsAt:    input.StartsAt,
		EndsAt:      input.EndsAt,
	})
	if err != nil {
		renderServiceErr(ctx, fmt.Errorf("v1.HandleCreateEvent -> h.svc.CreateEvent -> %w", err))
		return
	}

	ctx.JSON(http.StatusCreated, event)
}

// HandleGetEvent godoc
// @Summary      Get an event with its categories
// @Tags         events
// @Produce      json
// @Param        eventID  path      int  true  "Event ID"
// @Success      200      {object}  domain.Event
// @Failure      404      {object}  response.Err
// @Failure      500      {object}  response.Err
// @Router       /events/{eventID} [get]
// @Security BearerAuth
func (h *EventHandler) HandleGetEvent(ctx *gin.Context) {
	eventID, err := parseUintParam(ctx, "eventID")
	if err != nil {
		response.RenderErr(ctx, response.ErrBadRequest(err))
		return
	}

	event, err := h.svc.GetEvent(ctx.Request.Context(), eventID)
	if err != nil {
		if errors.Is(err, service.ErrEventNotFound) {
			response.RenderErr(ctx, response.ErrNotFound("event", "id", eventID))
			return
		}

		renderServiceErr(ctx, fmt.Errorf("v1.HandleGetEvent -> h.svc.GetEvent -> %w", err))
		return
	}

	ctx.JSON(http.StatusOK, event)
}

// HandleListClubEvents godoc
// @Summary      List a club's events
// @Tags         events
// @Produce      json
// @Param        clubID  path      int  true  "Club ID"
// @Success      200     {array}   domain.Event
// @Failure      401     {object}  response.Err
// @Failure      403     {object}  response.Err
// @Failure      500     {object}  response.Err
// @Router       /clubs/{clubID}/events [get]
// @Security BearerAuth
func (h *EventHandler) HandleListClubEvents(ctx *gin.Context) {
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

	events, err := h.svc.ListClubEvents(ctx.Request.Context(), principal, clubID)
	if err != nil {
		renderServiceErr(ctx, fmt.Errorf("v1.HandleListClubEvents -> h.svc.ListClubEvents -> %w", err))
		return
	}

	ctx.JSON(http.StatusOK, events)
}

// HandleCreateCategory godoc
// @Summary      Add a bookable category to an event
// @Tags         events
// @Accept       json
// @Produce      json
// @Param        eventID  path      int                           true  "Event ID"
// @Param        input    body      request.CreateCategoryRequest true  "Category details"
// @Success      201      {object}  domain.Category
// @Failure      400      {object}  response.Err
// @Failure      401      {object}  response.Err
// @Failure      403      {object}  response.Err
// @Failure      404      {object}  response.Err
// @Failure      500      {object}  response.Err
// @Router       /events/{eventID}/categories [post]
// @Security BearerAuth
func (h *EventHandler) HandleCreateCategory(ctx *gin.Context) {
	principal, respErr := getPrincipalFromContext(ctx, h.pSvc)
	if respErr != nil {
		response.RenderErr(ctx, respErr)
		return
	}

	eventID, err := parseUintParam(ctx, "eventID")
	if err != nil {
		response.RenderErr(ctx, response.ErrBadRequest(err))
		return
	}

	var input request.CreateCategoryRequest
	if err := ctx.ShouldBindJSON(&input); err != nil {
		response.RenderErr(ctx, response.ErrBadRequest(err))
		return
	}

	if err := input.Validate(); err != nil {
		response.RenderErr(ctx, response.ErrBadRequest(err))
		return
	}

	category, err := h.svc.CreateCategory(ctx.Request.Context(), principal, eventID, input.Name, *input.Capacity)
	if err != nil {
		if errors.Is(err, service.ErrEventNotFound) {
			response.RenderErr(ctx, response.ErrNotFound("event", "id", eventID))
			return
		}

		renderServiceErr(ctx, fmt.Errorf("v1.HandleCreateCategory -> h.svc.CreateCategory -> %w", err))
		return
	}

	ctx.JSON(http.StatusCreated, category)
}

// HandleSetCategoryCapacity godoc
// @Summary      Change a category's capacity
// @Description  Fails when the new capacity is below the number of confirmed reservations.
// @Tags         events
// @Accept       json
// @Param        categoryID  path      int                                true  "Category ID"
// @Param        input       body      request.SetCategoryCapacityRequest true  "New capacity"
// @Success      204
// @Failure      400         {object}  response.Err
// @Failure      401         {object}  response.Err
// @Failure      403         {object}  response.Err
// @Failure      404         {object}  response.Err
// @Failure      409         {object}  response.Err
// @Failure      500         {object}  response.Err
// @Router       /categories/{categoryID}/capacity [patch]
// @Security BearerAuth
func (h *EventHandler) HandleSetCategoryCapacity(ctx *gin.Context) {
	principal, respErr := getPrincipalFromContext(ctx, h.pSvc)
	if respErr != nil {
		response.RenderErr(ctx, respErr)
		return
	}

	categoryID, err := parseUintParam(ctx, "categoryID")
	if err != nil {
		response.RenderErr(ctx, response.ErrBadRequest(err))
		return
	}

	var input request.SetCategoryCapacityRequest
	if err := ctx.ShouldBindJSON(&input); err != nil {
		response.RenderErr(ctx, response.ErrBadRequest(err))
		return
	}

	if err := input.Validate(); err != nil {
		response.RenderErr(ctx, response.ErrBadRequest(err))
		return
	}

	if err := h.admissionSvc.SetCategoryCapacity(ctx.Request.Context(), principal, categoryID, *input.Capacity); err != nil {
		switch {
		case errors.Is(err, service.ErrCategoryNotFound):
			response.RenderErr(ctx, response.ErrNotFound("category", "id", categoryID))
		case errors.Is(err, service.ErrCapacityBelowOccupancy):
			response.RenderErr(ctx, response.ErrConflict(service.ErrCapacityBelowOccupancy))
		case errors.Is(err, service.ErrInvalidCapacity):
			response.RenderErr(ctx, response.ErrBadRequest(service.ErrInvalidCapacity))
		default:
			renderServiceErr(ctx, fmt.Errorf("v1.HandleSetCategoryCapacity -> h.admissionSvc.SetCategoryCapacity -> %w", err))
		}
		return
	}

	ctx.Status(http.StatusNoContent)
}

// HandleDeleteCategory godoc
// @Summary      Delete a category without confirmed reservations
// @Tags         events
// @Param        categoryID  path  int  true  "Category ID"
// @Success      204
// @Failure      401  {object}  response.Err
// @Failure      403  {object}  response.Err
// @Failure      404  {object}  response.Err
// @Failure      409  {object}  response.Err
// @Failure      500  {object}  response.Err
// @Router       /categories/{categoryID} [delete]
// @Security BearerAuth
func (h *EventHandler) HandleDeleteCategory(ctx *gin.Context) {
	principal, respErr := getPrincipalFromContext(ctx, h.pSvc)
	if respErr != nil {
		response.RenderErr(ctx, respErr)
		return
	}

	categoryID, err := parseUintParam(ctx, "categoryID")
	if err != nil {
		response.RenderErr(ctx, response.ErrBadRequest(err))
		return
	}

	if err := h.admissionSvc.DeleteCategory(ctx.Request.Context(), principal, categoryID); err != nil {
		switch {
		case errors.Is(err, service.ErrCategoryNotFound):
			response.RenderErr(ctx, response.ErrNotFound("category", "id", categoryID))
		case errors.Is(err, service.ErrHasActiveReservations):
			response.RenderErr(ctx, response.ErrConflict(service.ErrHasActiveReservations))
		default:
			renderServiceErr(ctx, fmt.Errorf("v1.HandleDeleteCategory -> h.admissionSvc.DeleteCategory -> %w", err))
		}
		return
	}

	ctx.Status(http.StatusNoContent)
}

// HandleDeleteEvent godoc
// @Summary      Delete an event without confirmed reservations
// @Tags         events
// @Param        eventID  path  int  true  "Event ID"
// @Success      204
// @Failure      401  {object}  response.Err
// @Failure      403  {object}  response.Err
// @Failure      404  {object}  response.Err
// @Failure      409  {object}  response.Err
// @Failure      500  {object}  response.Err
// @Router       /events/{eventID} [delete]
// @Security BearerAuth
func (h *EventHandler) HandleDeleteEvent(ctx *gin.Context) {
	principal, respErr := getPrincipalFromContext(ctx, h.pSvc)
	if respErr != nil {
		response.RenderErr(ctx, respErr)
		return
	}

	eventID, err := parseUintParam(ctx, "eventID")
	if err != nil {
		response.RenderErr(ctx, response.ErrBadRequest(err))
		return
	}

	if err := h.admissionSvc.DeleteEvent(ctx.Request.Context(), principal, eventID); err != nil {
		switch {
		case errors.Is(err, service.ErrEventNotFound):
			response.RenderErr(ctx, response.ErrNotFound("event", "id", eventID))
		case errors.Is(err, service.ErrHasActiveReservations):
			response.RenderErr(ctx, response.ErrConflict(service.ErrHasActiveReservations))
		default:
			renderServiceErr(ctx, fmt.Errorf("v1.HandleDeleteEvent -> h.admissionSvc.DeleteEvent -> %w", err))
		}
		return
	}

	ctx.Status(http.StatusNoContent)
}
