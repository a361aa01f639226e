package api

import (
	"net/http"

	"availability-engine/internal/domain/bookingrequest"
	reqdto "availability-engine/internal/handler/dto/request"
	resdto "availability-engine/internal/handler/dto/response"
	"availability-engine/internal/handler/httperr"
	"availability-engine/internal/handler/middleware"
	"availability-engine/internal/usecase/commands"
	"availability-engine/internal/usecase/queries"
	"availability-engine/internal/usecase/shared"

	"github.com/gin-gonic/gin"
)

type BookingRequestHandler struct {
	cmds commands.BookingRequestCommands
	q    queries.BookingRequestQueries
}

func NewBookingRequestHandler(cmds commands.BookingRequestCommands, q queries.BookingRequestQueries) *BookingRequestHandler {
	return &BookingRequestHandler{cmds: cmds, q: q}
}

// @Summary Create booking request
// @Description Ask a provider to confirm a specific time window
// @Tags booking-requests
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param request body reqdto.CreateBookingRequestRequest true "Booking request"
// @Success 201 {object} resdto.BookingRequestResponse
// @Failure 400 {object} httperr.Response
// @Failure 404 {object} httperr.Response
// @Failure 409 {object} httperr.Response
// @Router /booking-requests [post]
func (h *BookingRequestHandler) Create(c *gin.Context) {
	actor, ok := middleware.GetParty(c)
	if !ok {
		httperr.AbortWithError(c, http.StatusUnauthorized, errPartyMissing, "Unauthorized", nil)
		return
	}
	var req reqdto.CreateBookingRequestRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		httperr.AbortWithError(c, http.StatusBadRequest, err, "Invalid request", nil)
		return
	}
	in, err := req.ToInput()
	if err != nil {
		httperr.AbortWithError(c, http.StatusBadRequest, err, "Invalid request", err.Error())
		return
	}
	created, err := h.cmds.Request(c.Request.Context(), actor, in)
	if err != nil {
		abortWithUsecaseError(c, err, "Create booking request failed")
		return
	}
	c.JSON(http.StatusCreated, resdto.FromBookingRequest(created))
}

// @Summary List booking requests
// @Tags booking-requests
// @Produce json
// @Security BearerAuth
// @Param direction query string false "incoming, outgoing or all"
// @Param status query string false "Request status"
// @Param limit query int false "Page size"
// @Success 200 {array} resdto.BookingRequestResponse
// @Router /booking-requests [get]
func (h *BookingRequestHandler) List(c *gin.Context) {
	actor, ok := middleware.GetParty(c)
	if !ok {
		httperr.AbortWithError(c, http.StatusUnauthorized, errPartyMissing, "Unauthorized", nil)
		return
	}
	var q reqdto.ListQuery
	if err := c.ShouldBindQuery(&q); err != nil {
		httperr.AbortWithError(c, http.StatusBadRequest, err, "Invalid query", nil)
		return
	}
	params := queries.BookingRequestListParams{Direction: shared.Direction(q.Direction), Limit: q.Limit}
	if q.Status != "" {
		st, err := bookingrequest.NewStatus(q.Status)
		if err != nil {
			httperr.AbortWithError(c, http.StatusBadRequest, err, "Invalid status", nil)
			return
		}
		params.Status = &st
	}
	list, err := h.q.List(c.Request.Context(), actor, params)
	if err != nil {
		abortWithUsecaseError(c, err, "List booking requests failed")
		return
	}
	c.JSON(http.StatusOK, resdto.FromBookingRequests(list))
}

// @Summary Get booking request
// @Tags booking-requests
// @Produce json
// @Security BearerAuth
// @Param id path string true "Booking request ID"
// @Success 200 {object} resdto.BookingRequestResponse
// @Failure 403 {object} httperr.Response
// @Failure 404 {object} httperr.Response
// @Router /booking-requests/{id} [get]
func (h *BookingRequestHandler) Get(c *gin.Context) {
	actor, id, ok := actorAndID(c)
	if !ok {
		return
	}
	found, err := h.q.Get(c.Request.Context(), actor, id)
	if err != nil {
		abortWithUsecaseError(c, err, "Get booking request failed")
		return
	}
	c.JSON(http.StatusOK, resdto.FromBookingRequest(found))
}

// @Summary Respond to booking request
// @Description Target accepts or declines. Accepting blocks the requested window.
// @Tags booking-requests
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param id path string true "Booking request ID"
// @Param request body reqdto.RespondRequest true "Decision"
// @Success 200 {object} resdto.RespondBookingRequestResponse
// @Failure 403 {object} httperr.Response
// @Failure 404 {object} httperr.Response
// @Failure 409 {object} httperr.Response
// @Router /booking-requests/{id}/respond [post]
func (h *BookingRequestHandler) Respond(c *gin.Context) {
	actor, id, ok := actorAndID(c)
	if !ok {
		return
	}
	var req reqdto.RespondRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		httperr.AbortWithError(c, http.StatusBadRequest, err, "Invalid request", nil)
		return
	}
	result, err := h.cmds.Respond(c.Request.Context(), actor, id, bookingrequest.Decision(req.Decision), req.Message)
	if err != nil {
		abortWithUsecaseError(c, err, "Respond to booking request failed")
		return
	}
	c.JSON(http.StatusOK, resdto.FromRespondBookingResult(result))
}
