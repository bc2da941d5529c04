package api

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"service-logger-backend/internal/catalog"
)

// CatalogResponse lists the brand and model choices for the machine form.
type CatalogResponse struct {
	Brands   []string            `json:"brands"`
	Models   map[string][]string `json:"models"`
	Sentinel string              `json:"sentinel"`
}

// GetCatalog handles the GET /api/catalog request.
func (h *Handler) GetCatalog(c *gin.Context) {
	cat := h.svc.Catalog()
	resp := CatalogResponse{
		Brands:   cat.Brands(),
		Models:   make(map[string][]string),
		Sentinel: catalog.Sentinel,
	}
	for _, b := range resp.Brands {
		resp.Models[b] = cat.Models(b)
	}
	c.JSON(http.StatusOK, resp)
}

// GetTechnicians handles the GET /api/technicians request.
func (h *Handler) GetTechnicians(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"technicians": h.svc.Technicians()})
}
