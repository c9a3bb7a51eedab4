package api

import (
	"net/http"

	"github.com/labstack/echo"

	"github.com/ktan-wolf/Indexer/pkg/api/resource"
	"github.com/ktan-wolf/Indexer/pkg/storage"
)

func (h *Handler) handleFetchNodes(c echo.Context) error {
	m, err := h.store.Nodes().FetchAll()
	if err != nil {
		return c.JSON(http.StatusInternalServerError, err)
	}

	return c.JSON(http.StatusOK, resource.NewNodeList(m))
}

func (h *Handler) handleGetNodeByPubkey(c echo.Context) error {
	pubkey := c.Param("pubkey")

	m, err := h.store.Nodes().FindByPubkey(pubkey)
	if err != nil && err == storage.ErrNotFound {
		return c.JSON(http.StatusNotFound, err)
	} else if err != nil {
		return c.JSON(http.StatusInternalServerError, err)
	}

	return c.JSON(http.StatusOK, resource.NewNode(m))
}
