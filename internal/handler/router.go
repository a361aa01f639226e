package handler

import (
	"log/slog"
	"net/http"

	"github.com/gin-gonic/gin"
	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"

	"availability-engine/internal/handler/api"
	"availability-engine/internal/handler/middleware"
	"availability-engine/internal/pkg/config"
)

type route struct {
	Method  string
	Path    string
	Handler gin.HandlerFunc
	Mw      []gin.HandlerFunc
}

type Handlers struct {
	Hold           *api.HoldHandler
	BookingRequest *api.BookingRequestHandler
	Slot           *api.SlotHandler
	Availability   *api.AvailabilityHandler
	Health         *api.HealthHandler
}

func NewRouter(engine *gin.Engine, cfg config.Config, logger *slog.Logger, h Handlers, authMiddleware *middleware.AuthMiddleware) {
	setupMiddleware(engine, cfg, logger)
	setupRoutes(engine, h, authMiddleware)
}

func setupMiddleware(engine *gin.Engine, cfg config.Config, logger *slog.Logger) {
	// RequestLogger wraps Recovery so a recovered panic is still logged as a 500.
	engine.Use(middleware.RequestLogger(logger))
	engine.Use(middleware.Recovery(logger))
	engine.Use(middleware.NewCORSMiddleware(cfg.CORS, logger))
	engine.Use(middleware.ErrorHandler())
}

func setupRoutes(engine *gin.Engine, h Handlers, authMiddleware *middleware.AuthMiddleware) {
	engine.GET("/health", h.Health.Check)

	if gin.Mode() == gin.DebugMode {
		engine.GET("/swagger/*any", ginSwagger.WrapHandler(swaggerFiles.Handler))
	}

	apiGroup := engine.Group("/api")
	apiGroup.Use(authMiddleware.RequireAuth())
	{
		holds := apiGroup.Group("/holds")
		addRoutes(holds, []route{
			{Method: http.MethodPost, Path: "", Handler: h.Hold.Create},
			{Method: http.MethodGet, Path: "", Handler: h.Hold.List},
			{Method: http.MethodGet, Path: "/:id", Handler: h.Hold.Get},
			{Method: http.MethodPost, Path: "/:id/respond", Handler: h.Hold.Respond},
			{Method: http.MethodPost, Path: "/:id/cancel", Handler: h.Hold.Cancel},
		})

		requests := apiGroup.Group("/booking-requests")
		addRoutes(requests, []route{
			{Method: http.MethodPost, Path: "", Handler: h.BookingRequest.Create},
			{Method: http.MethodGet, Path: "", Handler: h.BookingRequest.List},
			{Method: http.MethodGet, Path: "/:id", Handler: h.BookingRequest.Get},
			{Method: http.MethodPost, Path: "/:id/respond", Handler: h.BookingRequest.Respond},
		})

		providerOnly := []gin.HandlerFunc{authMiddleware.RequireProvider()}
		slots := apiGroup.Group("/slots")
		addRoutes(slots, []route{
			{Method: http.MethodPost, Path: "", Handler: h.Slot.Create, Mw: providerOnly},
			{Method: http.MethodGet, Path: "", Handler: h.Slot.List},
			{Method: http.MethodDelete, Path: "/:id", Handler: h.Slot.Delete, Mw: providerOnly},
		})

		availability := apiGroup.Group("/availability")
		addRoutes(availability, []route{
			{Method: http.MethodGet, Path: "", Handler: h.Availability.IsAvailable},
			{Method: http.MethodGet, Path: "/calendar", Handler: h.Availability.Calendar},
			{Method: http.MethodPost, Path: "/blocking-owners", Handler: h.Availability.BlockingOwners},
		})
	}
}

func addRoutes(g *gin.RouterGroup, rs []route) {
	for _, r := range rs {
		h := r.Handler
		if len(r.Mw) > 0 {
			h = chainHandlers(append(r.Mw, r.Handler)...)
		}
		switch r.Method {
		case http.MethodGet:
			g.GET(r.Path, h)
		case http.MethodPost:
			g.POST(r.Path, h)
		case http.MethodPut:
			g.PUT(r.Path, h)
		case http.MethodPatch:
			g.PATCH(r.Path, h)
		case http.MethodDelete:
			g.DELETE(r.Path, h)
		default:
			g.Any(r.Path, h)
		}
	}
}

func chainHandlers(hs ...gin.HandlerFunc) gin.HandlerFunc {
	return func(c *gin.Context) {
		for _, h := range hs {
			h(c)
			if c.IsAborted() {
				return
			}
		}
	}
}
