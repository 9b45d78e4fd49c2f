package test

import (
	"errors"

	"github.com/gin-gonic/gin"

	"multi-agent-chat/internal/router"
	pkgLog "multi-agent-chat/pkg/log"
)

type handler struct {
	l      pkgLog.Logger
	router router.Router
}

// HandleClassify runs the classification agent alone
// @Summary Test classification
// @Description Classify a message within an agent family without running the specialist or touching history
// @Tags test
// @Accept json
// @Produce json
// @Param request body ClassifyRequest true "Test message"
// @Success 200 {object} ClassifyResponse
// @Router /test/classify [post]
func (h *handler) HandleClassify(c *gin.Context) {
	ctx := c.Request.Context()

	var req ClassifyRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(400, gin.H{"error": "Invalid request", "details": err.Error()})
		return
	}

	decision, err := h.router.Classify(ctx, req.Family, req.Text)
	if err != nil {
		status := 500
		if errors.Is(err, router.ErrUnknownFamily) {
			status = 400
		}
		h.l.Errorf(ctx, "internal.test.HandleClassify: Router classification failed: %v", err)
		c.JSON(status, ClassifyResponse{
			Success: false,
			Family:  req.Family,
			Text:    req.Text,
			Error:   "Router classification failed",
			Details: err.Error(),
		})
		return
	}

	h.l.Infof(ctx, "internal.test.HandleClassify: family=%s text=%q route=%s confidence=%d%%",
		req.Family, req.Text, decision.Route, decision.Confidence)

	c.JSON(200, ClassifyResponse{
		Success:    true,
		Family:     req.Family,
		Route:      decision.Route,
		Confidence: decision.Confidence,
		Reasoning:  decision.Reasoning,
		Text:       req.Text,
	})
}

// HandleHealthCheck returns the health status of test endpoints
// @Summary Test health check
// @Description Check if test endpoints are available
// @Tags test
// @Produce json
// @Success 200 {object} HealthCheckResponse
// @Router /test/health [get]
func (h *handler) HandleHealthCheck(c *gin.Context) {
	c.JSON(200, HealthCheckResponse{
		Status:  "ok",
		Message: "Test endpoints are available",
	})
}
