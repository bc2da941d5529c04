package api

import (
	"time"

	"github.com/gin-gonic/gin"
	"github.com/patrickmn/go-cache"
	"go.uber.org/zap"
	"golang.org/x/time/rate"

	"service-logger-backend/internal/logbook"
	"service-logger-backend/internal/mw"
)

// RouterOptions tune the middleware in front of the API.
type RouterOptions struct {
	RateLimit   float64
	Burst       int
	IPHeader    string
	CacheTTL    time.Duration
	MediaRoot   string
	MaxUploadMB int
}

// NewRouter creates and configures a new Gin router.
func NewRouter(h *Handler, opts RouterOptions, logger *zap.Logger) *gin.Engine {
	if logger == nil {
		logger = zap.NewNop()
	}
	r := gin.New()
	r.Use(mw.Logger(logger), gin.Recovery())
	if opts.MaxUploadMB > 0 {
		r.MaxMultipartMemory = int64(opts.MaxUploadMB) << 20
	}

	rateLimiter := mw.RateLimiter(rate.Limit(opts.RateLimit), opts.Burst, opts.IPHeader)

	// Reads are cached until the next successful write.
	cacheStore := cache.New(opts.CacheTTL, 2*opts.CacheTTL)
	caching := mw.Cache(cacheStore, opts.CacheTTL)

	api := r.Group("/api")
	api.Use(rateLimiter, mw.FlushOnWrite(cacheStore))
	{
		api.GET("/catalog", caching, h.GetCatalog)
		api.GET("/technicians", caching, h.GetTechnicians)

		api.GET("/customers", caching, h.GetCustomers)
		api.POST("/customers", h.PostCustomer)
		api.GET("/customers/:id/machines", caching, h.GetCustomerMachines)

		api.GET("/machines", caching, h.GetMachines)
		api.POST("/machines", h.PostMachine)
		api.PUT("/machines/:id", h.PutMachine)

		api.GET("/jobs", caching, h.GetJobs)
		api.POST("/jobs", h.PostJob)

		api.GET("/map", caching, h.GetMap)
		api.POST("/map/resolve", h.PostResolveMap)
		api.GET("/map/preview", h.GetPreview)

		api.POST("/session/customer", h.PostSelectCustomer)
		api.POST("/session/machine", h.PostSelectMachine)
		api.POST("/session/add", h.PostBeginAdd)
		api.POST("/session/cancel", h.PostCancel)

		api.GET("/export.xlsx", h.GetExport)
	}

	if opts.MediaRoot != "" {
		r.Static(logbook.MediaRoute, opts.MediaRoot)
	}

	return r
}
