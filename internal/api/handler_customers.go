package api

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"service-logger-backend/internal/logbook"
	"service-logger-backend/internal/model"
	"service-logger-backend/internal/validate"
)

// CustomerRequest is the body of POST /api/customers.
type CustomerRequest struct {
	State logbook.State `json:"state"`
	validate.CustomerForm
}

// MachineResponse is a machine with its display label.
type MachineResponse struct {
	*model.Machine
	Label string `json:"label"`
}

// GetCustomers handles the GET /api/customers request.
func (h *Handler) GetCustomers(c *gin.Context) {
	customers, err := h.svc.Customers(c.Request.Context())
	if err != nil {
		h.fail(c, logbook.Initial(), err)
		return
	}
	c.JSON(http.StatusOK, customers)
}

// GetCustomerMachines handles the GET /api/customers/:id/machines request.
func (h *Handler) GetCustomerMachines(c *gin.Context) {
	machines, err := h.svc.Machines(c.Request.Context(), c.Param("id"))
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

// PostCustomer handles the POST /api/customers request.
func (h *Handler) PostCustomer(c *gin.Context) {
	var req CustomerRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		badRequest(c, "invalid request")
		return
	}

	st, res, err := h.svc.AddCustomer(c.Request.Context(), req.State, req.CustomerForm)
	if err != nil {
		h.fail(c, st, err)
		return
	}
	c.JSON(http.StatusCreated, mutation(st, res))
}
