package api

import (
	"net/http"
	"time"

	"availability-engine/internal/domain/hold"
	"availability-engine/internal/domain/slot"
	reqdto "availability-engine/internal/handler/dto/request"
	resdto "availability-engine/internal/handler/dto/response"
	"availability-engine/internal/handler/httperr"
	"availability-engine/internal/usecase/queries"

	"github.com/gin-gonic/gin"
)

type AvailabilityHandler struct {
	q queries.AvailabilityQueries
}

func NewAvailabilityHandler(q queries.AvailabilityQueries) *AvailabilityHandler {
	return &AvailabilityHandler{q: q}
}

// @Summary Check availability
// @Description Default-open: a provider with no intersecting blocked or unavailable slot is available
// @Tags availability
// @Produce json
// @Security BearerAuth
// @Param ownerId query string true "Owner ID"
// @Param role query string true "guide or transport"
// @Param start query string true "RFC3339 start"
// @Param end query string true "RFC3339 end"
// @Success 200 {object} resdto.AvailabilityResponse
// @Failure 400 {object} httperr.Response
// @Router /availability [get]
func (h *AvailabilityHandler) IsAvailable(c *gin.Context) {
	var q reqdto.AvailabilityQuery
	if err := c.ShouldBindQuery(&q); err != nil {
		httperr.AbortWithError(c, http.StatusBadRequest, err, "Invalid query", nil)
		return
	}
	ownerID, role, ok := parseOwner(c, q.OwnerID, q.Role)
	if !ok {
		return
	}
	r, err := slot.NewTimeRange(q.Start, q.End)
	if err != nil {
		httperr.AbortWithError(c, http.StatusBadRequest, err, "Invalid range", err.Error())
		return
	}
	available, err := h.q.IsAvailable(c.Request.Context(), ownerID, role, r)
	if err != nil {
		abortWithUsecaseError(c, err, "Availability check failed")
		return
	}
	c.JSON(http.StatusOK, resdto.AvailabilityResponse{
		OwnerID:   ownerID,
		Role:      role.String(),
		StartsAt:  r.Start(),
		EndsAt:    r.End(),
		Available: available,
	})
}

// @Summary Availability calendar
// @Description Per-day resolved status for an inclusive date range
// @Tags availability
// @Produce json
// @Security BearerAuth
// @Param ownerId query string true "Owner ID"
// @Param role query string true "guide or transport"
// @Param from query string true "YYYY-MM-DD"
// @Param to query string true "YYYY-MM-DD"
// @Success 200 {object} resdto.CalendarResponse
// @Failure 400 {object} httperr.Response
// @Router /availability/calendar [get]
func (h *AvailabilityHandler) Calendar(c *gin.Context) {
	var q reqdto.CalendarQuery
	if err := c.ShouldBindQuery(&q); err != nil {
		httperr.AbortWithError(c, http.StatusBadRequest, err, "Invalid query", nil)
		return
	}
	ownerID, role, ok := parseOwner(c, q.OwnerID, q.Role)
	if !ok {
		return
	}
	from, err := time.Parse(time.DateOnly, q.From)
	if err != nil {
		httperr.AbortWithError(c, http.StatusBadRequest, err, "Invalid from date", nil)
		return
	}
	to, err := time.Parse(time.DateOnly, q.To)
	if err != nil {
		httperr.AbortWithError(c, http.StatusBadRequest, err, "Invalid to date", nil)
		return
	}
	dates, err := hold.NewDateRange(from, to)
	if err != nil {
		httperr.AbortWithError(c, http.StatusBadRequest, err, "Invalid date range", err.Error())
		return
	}
	days, err := h.q.Calendar(c.Request.Context(), ownerID, role, dates)
	if err != nil {
		abortWithUsecaseError(c, err, "Calendar failed")
		return
	}
	c.JSON(http.StatusOK, resdto.FromDayStatuses(ownerID, role.String(), days))
}

// @Summary Filter blocked providers
// @Description Returns the subset of ownerIds that have a blocking slot in the window
// @Tags availability
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param request body reqdto.BlockingOwnersRequest true "Owners and window"
// @Success 200 {object} resdto.BlockingOwnersResponse
// @Failure 400 {object} httperr.Response
// @Router /availability/blocking-owners [post]
func (h *AvailabilityHandler) BlockingOwners(c *gin.Context) {
	var req reqdto.BlockingOwnersRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		httperr.AbortWithError(c, http.StatusBadRequest, err, "Invalid request", nil)
		return
	}
	if len(req.OwnerIDs) > queries.MaxBlockingOwners {
		httperr.AbortWithError(c, http.StatusBadRequest, errTooManyOwners, "Too many owners", nil)
		return
	}
	r, err := slot.NewTimeRange(req.StartsAt, req.EndsAt)
	if err != nil {
		httperr.AbortWithError(c, http.StatusBadRequest, err, "Invalid range", err.Error())
		return
	}
	set, err := h.q.ListBlockingOwners(c.Request.Context(), req.OwnerIDs, r)
	if err != nil {
		abortWithUsecaseError(c, err, "Blocking owners lookup failed")
		return
	}
	c.JSON(http.StatusOK, resdto.FromOwnerSet(set))
}
