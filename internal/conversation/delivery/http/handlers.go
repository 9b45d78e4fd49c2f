package http

import (
	"github.com/gin-gonic/gin"

	"multi-agent-chat/pkg/response"
)

// Create godoc
// @Summary     Create a conversation
// @Description Allocates a new conversation id. Clients may also let the first chat request create one.
// @Tags        Conversation
// @Produce     json
// @Success     200 {object} createResp
// @Failure     500 {object} response.Resp "Internal Server Error"
// @Router      /api/v1/conversations [POST]
func (h *handler) Create(c *gin.Context) {
	ctx := c.Request.Context()

	output, err := h.uc.Create(ctx)
	if err != nil {
		h.l.Errorf(ctx, "internal.conversation.delivery.http.Create: %v", err)
		response.Error(c, h.mapError(err), nil)
		return
	}

	response.OK(c, h.newCreateResp(output))
}

// Turns godoc
// @Summary     Read conversation history
// @Description Returns the persisted turns of a conversation in order, for example to restore a page after reload.
// @Tags        Conversation
// @Produce     json
// @Param       id    path  string true  "Conversation ID"
// @Param       limit query int    false "Only the most recent N turns"
// @Success     200 {object} turnsResp
// @Failure     400 {object} response.Resp "Bad Request"
// @Failure     404 {object} response.Resp "Not Found"
// @Failure     500 {object} response.Resp "Internal Server Error"
// @Router      /api/v1/conversations/{id}/turns [GET]
func (h *handler) Turns(c *gin.Context) {
	ctx := c.Request.Context()

	req, err := h.processTurnsReq(c)
	if err != nil {
		response.Error(c, err, nil)
		return
	}

	output, err := h.uc.History(ctx, req.toInput())
	if err != nil {
		h.l.Warnf(ctx, "internal.conversation.delivery.http.Turns: %v", err)
		response.Error(c, h.mapError(err), nil)
		return
	}

	response.OK(c, h.newTurnsResp(output))
}
