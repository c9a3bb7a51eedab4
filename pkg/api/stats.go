package api

import (
	"net/http"

	"github.com/labstack/echo"

	"github.com/ktan-wolf/Indexer/pkg/api/resource"
	"github.com/ktan-wolf/Indexer/pkg/storage"
)

func (h *Handler) handleGetNetworkStats(c echo.Context) error {
	m, err := h.store.Stats().Get()
	if err != nil && err == storage.ErrNotFound {
		// No cycle has completed yet, the mirror is empty.
		return c.JSON(http.StatusOK, resource.NewEmptyNetworkStats())
	} else if err != nil {
		return c.JSON(http.StatusInternalServerError, err)
	}

	return c.JSON(http.StatusOK, resource.NewNetworkStats(m))
}
