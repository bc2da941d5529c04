package api

import (
	"fmt"
	"net/http"

	"github.com/gin-gonic/gin"

	"service-logger-backend/internal/export"
	"service-logger-backend/internal/logbook"
)

// GetExport handles the GET /api/export.xlsx request.
func (h *Handler) GetExport(c *gin.Context) {
	ctx := c.Request.Context()
	customers, err := h.svc.Customers(ctx)
	if err != nil {
		h.fail(c, logbook.Initial(), err)
		return
	}
	machines, err := h.svc.AllMachines(ctx)
	if err != nil {
		h.fail(c, logbook.Initial(), err)
		return
	}
	jobs, err := h.svc.Jobs(ctx)
	if err != nil {
		h.fail(c, logbook.Initial(), err)
		return
	}

	f, err := export.Workbook(customers, machines, jobs)
	if err != nil {
		h.fail(c, logbook.Initial(), err)
		return
	}
	defer f.Close()

	buf, err := f.WriteToBuffer()
	if err != nil {
		h.fail(c, logbook.Initial(), err)
		return
	}
	c.Header("Content-Disposition", fmt.Sprintf("attachment; filename=%q", "service-log.xlsx"))
	c.Data(http.StatusOK, export.ContentType, buf.Bytes())
}
