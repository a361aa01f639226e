package api

import (
	"net/http"

	"availability-engine/internal/domain/hold"
	"availability-engine/internal/domain/party"
	reqdto "availability-engine/internal/handler/dto/request"
	resdto "availability-engine/internal/handler/dto/response"
	"availability-engine/internal/handler/httperr"
	"availability-engine/internal/handler/middleware"
	"availability-engine/internal/usecase/commands"
	"availability-engine/internal/usecase/queries"
	"availability-engine/internal/usecase/shared"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

type HoldHandler struct {
	cmds commands.HoldCommands
	q    queries.HoldQueries
}

func NewHoldHandler(cmds commands.HoldCommands, q queries.HoldQueries) *HoldHandler {
	return &HoldHandler{cmds: cmds, q: q}
}

// @Summary Request hold
// @Description Place a tentative hold on a provider for an inclusive date range
// @Tags holds
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param request body reqdto.CreateHoldRequest true "Hold request"
// @Success 201 {object} resdto.HoldResponse
// @Failure 400 {object} httperr.Response
// @Failure 404 {object} httperr.Response
// @Failure 409 {object} httperr.Response
// @Router /holds [post]
func (h *HoldHandler) Create(c *gin.Context) {
	actor, ok := middleware.GetParty(c)
	if !ok {
		httperr.AbortWithError(c, http.StatusUnauthorized, errPartyMissing, "Unauthorized", nil)
		return
	}
	var req reqdto.CreateHoldRequest
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
		abortWithUsecaseError(c, err, "Request hold failed")
		return
	}
	c.JSON(http.StatusCreated, resdto.FromHold(created))
}

// @Summary List holds
// @Description List holds where the caller is holdee (incoming) or requester (outgoing)
// @Tags holds
// @Produce json
// @Security BearerAuth
// @Param direction query string false "incoming, outgoing or all"
// @Param status query string false "Hold status"
// @Param limit query int false "Page size"
// @Success 200 {array} resdto.HoldResponse
// @Failure 400 {object} httperr.Response
// @Router /holds [get]
func (h *HoldHandler) List(c *gin.Context) {
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
	params := queries.HoldListParams{Direction: shared.Direction(q.Direction), Limit: q.Limit}
	if q.Status != "" {
		st, err := hold.NewStatus(q.Status)
		if err != nil {
			httperr.AbortWithError(c, http.StatusBadRequest, err, "Invalid status", nil)
			return
		}
		params.Status = &st
	}
	list, err := h.q.List(c.Request.Context(), actor, params)
	if err != nil {
		abortWithUsecaseError(c, err, "List holds failed")
		return
	}
	c.JSON(http.StatusOK, resdto.FromHolds(list))
}

// @Summary Get hold
// @Tags holds
// @Produce json
// @Security BearerAuth
// @Param id path string true "Hold ID"
// @Success 200 {object} resdto.HoldResponse
// @Failure 403 {object} httperr.Response
// @Failure 404 {object} httperr.Response
// @Router /holds/{id} [get]
func (h *HoldHandler) Get(c *gin.Context) {
	actor, id, ok := actorAndID(c)
	if !ok {
		return
	}
	found, err := h.q.Get(c.Request.Context(), actor, id)
	if err != nil {
		abortWithUsecaseError(c, err, "Get hold failed")
		return
	}
	c.JSON(http.StatusOK, resdto.FromHold(found))
}

// @Summary Respond to hold
// @Description Holdee accepts or declines a pending hold. Accepting blocks every day of the range.
// @Tags holds
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param id path string true "Hold ID"
// @Param request body reqdto.RespondRequest true "Decision"
// @Success 200 {object} resdto.RespondHoldResponse
// @Failure 403 {object} httperr.Response
// @Failure 404 {object} httperr.Response
// @Failure 409 {object} httperr.Response
// @Router /holds/{id}/respond [post]
func (h *HoldHandler) Respond(c *gin.Context) {
	actor, id, ok := actorAndID(c)
	if !ok {
		return
	}
	var req reqdto.RespondRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		httperr.AbortWithError(c, http.StatusBadRequest, err, "Invalid request", nil)
		return
	}
	result, err := h.cmds.Respond(c.Request.Context(), actor, id, hold.Decision(req.Decision), req.Message)
	if err != nil {
		abortWithUsecaseError(c, err, "Respond to hold failed")
		return
	}
	c.JSON(http.StatusOK, resdto.FromRespondHoldResult(result))
}

// @Summary Cancel hold
// @Tags holds
// @Produce json
// @Security BearerAuth
// @Param id path string true "Hold ID"
// @Success 200 {object} resdto.HoldResponse
// @Failure 403 {object} httperr.Response
// @Failure 404 {object} httperr.Response
// @Failure 409 {object} httperr.Response
// @Router /holds/{id}/cancel [post]
func (h *HoldHandler) Cancel(c *gin.Context) {
	actor, id, ok := actorAndID(c)
	if !ok {
		return
	}
	cancelled, err := h.cmds.Cancel(c.Request.Context(), actor, id)
	if err != nil {
		abortWithUsecaseError(c, err, "Cancel hold failed")
		return
	}
	c.JSON(http.StatusOK, resdto.FromHold(cancelled))
}

func actorAndID(c *gin.Context) (actor party.Ref, id uuid.UUID, ok bool) {
	actor, ok = middleware.GetParty(c)
	if !ok {
		httperr.AbortWithError(c, http.StatusUnauthorized, errPartyMissing, "Unauthorized", nil)
		return actor, id, false
	}
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		httperr.AbortWithError(c, http.StatusBadRequest, err, "Invalid id", nil)
		return actor, id, false
	}
	return actor, id, true
}
