package api

import (
	"net/http"

	"availability-engine/internal/domain/party"
	reqdto "availability-engine/internal/handler/dto/request"
	resdto "availability-engine/internal/handler/dto/response"
	"availability-engine/internal/handler/httperr"
	"availability-engine/internal/handler/middleware"
	"availability-engine/internal/usecase/commands"
	"availability-engine/internal/usecase/queries"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

type SlotHandler struct {
	cmds commands.SlotCommands
	q    queries.SlotQueries
}

func NewSlotHandler(cmds commands.SlotCommands, q queries.SlotQueries) *SlotHandler {
	return &SlotHandler{cmds: cmds, q: q}
}

// @Summary Create slot
// @Description Provider records a manual availability slot on its own calendar
// @Tags slots
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param request body reqdto.CreateSlotRequest true "Slot"
// @Success 201 {object} resdto.SlotResponse
// @Failure 400 {object} httperr.Response
// @Failure 403 {object} httperr.Response
// @Router /slots [post]
func (h *SlotHandler) Create(c *gin.Context) {
	actor, ok := middleware.GetParty(c)
	if !ok {
		httperr.AbortWithError(c, http.StatusUnauthorized, errPartyMissing, "Unauthorized", nil)
		return
	}
	var req reqdto.CreateSlotRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		httperr.AbortWithError(c, http.StatusBadRequest, err, "Invalid request", nil)
		return
	}
	created, err := h.cmds.Create(c.Request.Context(), actor, req.ToInput())
	if err != nil {
		abortWithUsecaseError(c, err, "Create slot failed")
		return
	}
	c.JSON(http.StatusCreated, resdto.FromSlot(created))
}

// @Summary List slots
// @Tags slots
// @Produce json
// @Security BearerAuth
// @Param ownerId query string true "Owner ID"
// @Param role query string true "guide or transport"
// @Success 200 {array} resdto.SlotResponse
// @Failure 400 {object} httperr.Response
// @Router /slots [get]
func (h *SlotHandler) List(c *gin.Context) {
	var q reqdto.OwnerQuery
	if err := c.ShouldBindQuery(&q); err != nil {
		httperr.AbortWithError(c, http.StatusBadRequest, err, "Invalid query", nil)
		return
	}
	ownerID, role, ok := parseOwner(c, q.OwnerID, q.Role)
	if !ok {
		return
	}
	list, err := h.q.ListByOwner(c.Request.Context(), ownerID, role)
	if err != nil {
		abortWithUsecaseError(c, err, "List slots failed")
		return
	}
	c.JSON(http.StatusOK, resdto.FromSlots(list))
}

// @Summary Delete slot
// @Description Only manual slots owned by the caller can be deleted
// @Tags slots
// @Security BearerAuth
// @Param id path string true "Slot ID"
// @Success 204 "No Content"
// @Failure 403 {object} httperr.Response
// @Failure 404 {object} httperr.Response
// @Failure 409 {object} httperr.Response
// @Router /slots/{id} [delete]
func (h *SlotHandler) Delete(c *gin.Context) {
	actor, id, ok := actorAndID(c)
	if !ok {
		return
	}
	if err := h.cmds.Delete(c.Request.Context(), actor, id); err != nil {
		abortWithUsecaseError(c, err, "Delete slot failed")
		return
	}
	c.Status(http.StatusNoContent)
}

func parseOwner(c *gin.Context, rawID, rawRole string) (uuid.UUID, party.Type, bool) {
	ownerID, err := uuid.Parse(rawID)
	if err != nil {
		httperr.AbortWithError(c, http.StatusBadRequest, err, "Invalid ownerId", nil)
		return uuid.Nil, "", false
	}
	role, err := party.NewProviderRole(rawRole)
	if err != nil {
		httperr.AbortWithError(c, http.StatusBadRequest, err, "Invalid role", nil)
		return uuid.Nil, "", false
	}
	return ownerID, role, true
}
