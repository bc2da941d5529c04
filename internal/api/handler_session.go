package api

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"service-logger-backend/internal/geo"
	"service-logger-backend/internal/logbook"
)

// mapCenter is where the selection map opens.
var mapCenter = geo.Point{Lat: 43.7, Lon: -79.4}

// SessionRequest is the body of the /api/session endpoints.
type SessionRequest struct {
	State      logbook.State `json:"state"`
	CustomerID string        `json:"customer_id"`
	MachineID  string        `json:"machine_id"`
}

// ResolveRequest is a click on the selection map.
type ResolveRequest struct {
	State logbook.State `json:"state"`
	Lat   *float64      `json:"lat" binding:"required"`
	Lon   *float64      `json:"lon" binding:"required"`
}

// MapResponse is the data for drawing the selection map.
type MapResponse struct {
	Center  geo.Point    `json:"center"`
	Zoom    int          `json:"zoom"`
	Markers []geo.Marker `json:"markers"`
}

func bindSession(c *gin.Context) (SessionRequest, bool) {
	var req SessionRequest
	if c.Request.ContentLength == 0 {
		req.State = logbook.Initial()
		return req, true
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		badRequest(c, "invalid request")
		return req, false
	}
	return req, true
}

// GetMap handles the GET /api/map request.
func (h *Handler) GetMap(c *gin.Context) {
	markers, err := h.svc.Markers(c.Request.Context())
	if err != nil {
		h.fail(c, logbook.Initial(), err)
		return
	}
	c.JSON(http.StatusOK, MapResponse{Center: mapCenter, Zoom: 10, Markers: markers})
}

// PostResolveMap handles the POST /api/map/resolve request.
func (h *Handler) PostResolveMap(c *gin.Context) {
	var req ResolveRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		badRequest(c, "lat and lon are required")
		return
	}
	st, matched, err := h.svc.SelectOnMap(c.Request.Context(), req.State, geo.Point{Lat: *req.Lat, Lon: *req.Lon})
	if err != nil {
		h.fail(c, req.State, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"state": st, "matched": matched})
}

// GetPreview handles the GET /api/map/preview request.
func (h *Handler) GetPreview(c *gin.Context) {
	address := c.Query("address")
	if address == "" {
		badRequest(c, "address is required")
		return
	}
	c.JSON(http.StatusOK, gin.H{"url": geo.PreviewURL(address)})
}

// PostSelectCustomer handles the POST /api/session/customer request.
func (h *Handler) PostSelectCustomer(c *gin.Context) {
	req, ok := bindSession(c)
	if !ok {
		return
	}
	st, err := h.svc.SelectCustomer(c.Request.Context(), req.State, req.CustomerID)
	if err != nil {
		h.fail(c, st, err)
		return
	}
	c.JSON(http.StatusOK, StateResponse{State: st})
}

// PostSelectMachine handles the POST /api/session/machine request.
func (h *Handler) PostSelectMachine(c *gin.Context) {
	req, ok := bindSession(c)
	if !ok {
		return
	}
	st, err := h.svc.SelectMachine(c.Request.Context(), req.State, req.MachineID)
	if err != nil {
		h.fail(c, st, err)
		return
	}
	c.JSON(http.StatusOK, StateResponse{State: st})
}

// PostBeginAdd handles the POST /api/session/add request.
func (h *Handler) PostBeginAdd(c *gin.Context) {
	req, ok := bindSession(c)
	if !ok {
		return
	}
	c.JSON(http.StatusOK, StateResponse{State: h.svc.BeginAddCustomer(req.State)})
}

// PostCancel handles the POST /api/session/cancel request.
func (h *Handler) PostCancel(c *gin.Context) {
	req, ok := bindSession(c)
	if !ok {
		return
	}
	c.JSON(http.StatusOK, StateResponse{State: h.svc.Cancel(req.State)})
}
