package api

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"service-logger-backend/internal/logbook"
	"service-logger-backend/internal/validate"
)

// GetJobs handles the GET /api/jobs request.
func (h *Handler) GetJobs(c *gin.Context) {
	jobs, err := h.svc.Jobs(c.Request.Context())
	if err != nil {
		h.fail(c, logbook.Initial(), err)
		return
	}
	c.JSON(http.StatusOK, jobs)
}

// PostJob handles the multipart POST /api/jobs request.
func (h *Handler) PostJob(c *gin.Context) {
	st := formState(c)

	found, err := formUploads(c, "found")
	if err != nil {
		badRequest(c, "invalid multipart form")
		return
	}
	left, err := formUploads(c, "left")
	if err != nil {
		badRequest(c, "invalid multipart form")
		return
	}
	signature, err := formSignature(c)
	if err != nil {
		badRequest(c, "invalid multipart form")
		return
	}

	form := validate.JobForm{
		EmployeeName:       c.PostForm("employee_name"),
		Technician:         c.PostForm("technician"),
		Date:               c.PostForm("date"),
		TravelMinutes:      c.PostForm("travel_minutes"),
		TimeIn:             c.PostForm("time_in"),
		TimeOut:            c.PostForm("time_out"),
		Description:        c.PostForm("description"),
		PartsUsed:          c.PostForm("parts_used"),
		AdditionalComments: c.PostForm("additional_comments"),
		Found:              found,
		Left:               left,
		Signature:          signature,
	}

	st, res, err := h.svc.LogJob(c.Request.Context(), st, form)
	if err != nil {
		h.fail(c, st, err)
		return
	}
	c.JSON(http.StatusCreated, mutation(st, res))
}
