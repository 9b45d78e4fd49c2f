package http

import (
	"github.com/gin-gonic/gin"
)

func (h *handler) processStreamReq(c *gin.Context) (streamReq, error) {
	var req streamReq
	if err := c.ShouldBindJSON(&req); err != nil {
		return req, err
	}
	return req, nil
}

func (h *handler) processWSQuery(c *gin.Context) (wsQuery, error) {
	var q wsQuery
	if err := c.ShouldBindQuery(&q); err != nil {
		return q, err
	}
	return q, nil
}
