package http

import (
	"github.com/gin-gonic/gin"
)

// processTurnsReq binds the URI param and query.
func (h *handler) processTurnsReq(c *gin.Context) (turnsReq, error) {
	var req turnsReq
	if err := c.ShouldBindQuery(&req); err != nil {
		return req, err
	}
	req.ID = c.Param("id")
	return req, req.validate()
}
