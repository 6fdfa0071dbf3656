package handlers

import (
	"net/http"

	"facestudio/utils"

	"github.com/gin-gonic/gin"
)

type HealthHandler struct {
	Monitor *utils.HealthMonitor
}

func NewHealthHandler(m *utils.HealthMonitor) *HealthHandler {
	return &HealthHandler{Monitor: m}
}

// Live only proves the process is serving HTTP.
func (h *HealthHandler) Live(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"status": "ok", "message": "Naomi Face Studio API"})
}

// Ready serves the monitor's latest snapshot and reports 503 if any service is down.
func (h *HealthHandler) Ready(c *gin.Context) {
	status := h.Monitor.Status(c.Request.Context())
	code := http.StatusOK
	if !status.Healthy {
		code = http.StatusServiceUnavailable
	}
	c.JSON(code, status)
}
