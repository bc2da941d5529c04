package api

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"service-logger-backend/internal/catalog"
	"service-logger-backend/internal/logbook"
	"service-logger-backend/internal/validate"
)

func machineForm(c *gin.Context) (validate.MachineForm, error) {
	photo, err := formUpload(c, "photo")
	if err != nil {
		return validate.MachineForm{}, err
	}
	return validate.MachineForm{
		Brand:        catalog.Resolve(c.PostForm("brand"), c.PostForm("brand_other")),
		Model:        catalog.Resolve(c.PostForm("model"), c.PostForm("model_other")),
		Year:         c.PostForm("year"),
		SerialNumber: c.PostForm("serial_number"),
		Observations: c.PostForm("observations"),
		Photo:        photo,
	}, nil
}

// PostMachine handles the multipart POST /api/machines request.
func (h *Handler) PostMachine(c *gin.Context) {
	form, err := machineForm(c)
	if err != nil {
		badRequest(c, "invalid multipart form")
		return
	}

	st, res, err := h.svc.AddMachine(c.Request.Context(), formState(c), form)
	if err != nil {
		h.fail(c, st, err)
		return
	}
	c.JSON(http.StatusCreated, mutation(st, res))
}

// PutMachine handles the multipart PUT /api/machines/:id request.
// The photo is optional and replaces the stored one when present.
func (h *Handler) PutMachine(c *gin.Context) {
	form, err := machineForm(c)
	if err != nil {
		badRequest(c, "invalid multipart form")
		return
	}

	st, res, err := h.svc.UpdateMachine(c.Request.Context(), formState(c), c.Param("id"), form)
	if err != nil {
		h.fail(c, st, err)
		return
	}
	c.JSON(http.StatusOK, mutation(st, res))
}

// GetMachines handles the GET /api/machines request.
func (h *Handler) GetMachines(c *gin.Context) {
	machines, err := h.svc.AllMachines(c.Request.Context())
	if err != nil {
		h.fail(c, logbook.Initial(), err)
		return
	}
	resp := make([]MachineResponse, 0, len(machines))
	for _, m := range machines {
		resp = append(resp, MachineResponse{Machine: m, Label: logbook.MachineLabel(m)})
	}
	c.JSON(http.StatusOK, resp)
}
