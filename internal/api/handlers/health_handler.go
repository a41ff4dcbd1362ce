package handlers

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
)

// HealthHandler reports liveness and the state of optional backends.
type HealthHandler struct {
	storage   string
	cache     bool
	email     bool
	wsClients func() int
}

// NewHealthHandler takes the storage backend name, whether the stats cache
// and the mail transport are live, and a counter of websocket sessions.
func NewHealthHandler(storage string, cacheEnabled, emailConfigured bool, wsClients func() int) *HealthHandler {
	return &HealthHandler{storage: storage, cache: cacheEnabled, email: emailConfigured, wsClients: wsClients}
}

func enabled(ok bool, on string) string {
	if ok {
		return on
	}
	return "disabled"
}

// Check - GET /health
func (h *HealthHandler) Check(c *gin.Context) {
	clients := 0
	if h.wsClients != nil {
		clients = h.wsClients()
	}

	c.JSON(http.StatusOK, gin.H{
		"status":     "ok",
		"message":    "Visual Creativa CRM API",
		"timestamp":  time.Now().UTC(),
		"database":   h.storage,
		"cache":      enabled(h.cache, "connected"),
		"email":      enabled(h.email, "configured"),
		"ws_clients": clients,
	})
}
