package router // package router defines how HTTP routes are registered for the API

import (
	"github.com/labstack/echo/v4"

	"github.com/orhanozan33/menuslide-sub001/internal/handler"
	"github.com/orhanozan33/menuslide-sub001/internal/middleware"
)

// RegisterRoutes registers routes that carry no handler state on the
// provided Echo instance.  Currently it exposes only a health check, used
// by load balancers to verify that the service is up.
func RegisterRoutes(e *echo.Echo) {
	e.GET("/healthz", handler.Health)
}

// RegisterDisplay registers the public display endpoints.  None of them
// require authentication: an unattended screen identifies itself solely by
// the public identifier in its URL.
func RegisterDisplay(e *echo.Echo, h *handler.DisplayHandler) {
	// Broadcast code -> display stream URL, used by TV apps during setup.
	// Registered before the identifier route only for readability; Echo
	// matches the static "resolve" segment ahead of the parameter anyway.
	e.GET("/v1/display/resolve/:code", h.ResolveStream)
	// The payload poll. Rate limiting and response caching happen inside
	// the handler so both key on the public identifier, not the route.
	e.GET("/v1/display/:identifier", h.GetDisplay)
	// Periodic liveness beat from an open display page; detects the same
	// link being shown on several devices at once.
	e.POST("/v1/display/:identifier/heartbeat", h.Heartbeat)
}

// RegisterOps registers the operator endpoints under /v1/ops.  They are
// protected by JWT authentication plus a role check; display clients never
// call them.
func RegisterOps(e *echo.Echo, h *handler.OpsHandler, jwtSecret string) {
	g := e.Group("/v1/ops")
	g.Use(middleware.JWTAuth(jwtSecret))
	g.Use(middleware.RequireRole("OPERATOR", "ADMIN"))
	g.GET("/duplicate-viewers", h.GetDuplicateViewers)
}
