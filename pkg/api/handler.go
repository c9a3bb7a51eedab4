package api

import (
	"github.com/labstack/echo"
	"github.com/nats-io/nats.go"
	log "github.com/sirupsen/logrus"

	"github.com/ktan-wolf/Indexer/pkg/storage"
)

// Handler contains all properties to serve the API
type Handler struct {
	nc    *nats.Conn
	store storage.Interface
}

// NewHandler create a new API handler
func NewHandler(nc *nats.Conn, store storage.Interface) *Handler {
	return &Handler{
		nc:    nc,
		store: store,
	}
}

// RegisterRoutes attaches the handlers to the echo web server
func (h *Handler) RegisterRoutes(e *echo.Echo) {
	log.Debug("Register API routes")
	api := e.Group("/api/v1")
	api.GET("/nodes", h.handleFetchNodes)
	api.GET("/nodes/:pubkey", h.handleGetNodeByPubkey)
	api.GET("/network-stats", h.handleGetNetworkStats)

	api.Any("/realtime-events", h.realtimeEventsHandler())
}
