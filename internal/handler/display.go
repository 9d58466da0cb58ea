// Package handler exposes the HTTP handlers of the display service. This
// file serves the public display endpoints: the payload poll, the viewer
// heartbeat and the broadcast-code resolver. None of them require
// authentication; the public identifier in the URL is the whole credential
// an unattended screen carries.
package handler

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/labstack/echo/v4"

	"github.com/orhanozan33/menuslide-sub001/internal/cache"
	"github.com/orhanozan33/menuslide-sub001/internal/config"
	"github.com/orhanozan33/menuslide-sub001/internal/display"
	"github.com/orhanozan33/menuslide-sub001/internal/queue"
	"github.com/orhanozan33/menuslide-sub001/internal/ratelimit"
	"github.com/orhanozan33/menuslide-sub001/internal/repository"
	"github.com/orhanozan33/menuslide-sub001/internal/viewer"
)

// DisplayHandler aggregates the collaborators of the display endpoints. All
// shared state (cache, limiter, arbitrator) is injected with process
// lifetime; the handler itself is stateless.
type DisplayHandler struct {
	Store      display.Store          // screen resolution for heartbeats and stream links
	Assembler  *display.Assembler     // payload assembly on cache miss
	Cache      *cache.PayloadCache    // response cache, consulted before assembly
	Limiter    *ratelimit.Limiter     // fixed-window guard on the resolution path
	Arbitrator *viewer.Arbitrator     // viewer session table
	CacheCfg   config.DisplayCacheConfig
	ViewerCfg  config.ViewerConfig
	FrontendURL string

	// PublishAlert, when set, is called in the background whenever a
	// heartbeat leaves a screen with more than one fresh session. Failures
	// are the publisher's problem; the heartbeat response never waits on it.
	PublishAlert func(ctx context.Context, ev queue.DuplicateViewerEvent) error
}

// heartbeatRequest is the POST body of the heartbeat endpoint.
type heartbeatRequest struct {
	SessionID string `json:"session_id"`
}

// GetDisplay serves GET /v1/display/:identifier?rotation_index=N.
// Order matters: the rate limiter runs first so abusive pollers cannot keep
// the cache warm, then the cache, and only a miss reaches the assembler.
func (h *DisplayHandler) GetDisplay(c echo.Context) error {
	identifier := c.Param("identifier")

	if out := h.Limiter.Check(identifier); !out.Allowed {
		c.Response().Header().Set("Retry-After", strconv.Itoa(out.RetryAfter))
		return c.JSON(http.StatusTooManyRequests, echo.Map{
			"error":       "too_many_requests",
			"message":     "rate limit exceeded",
			"retry_after": out.RetryAfter,
		})
	}

	idx := 0
	if raw := c.QueryParam("rotation_index"); raw != "" {
		if n, err := strconv.Atoi(raw); err == nil && n > 0 {
			idx = n
		}
	}

	// Short intermediary caching with stale-while-revalidate keeps a CDN or
	// reverse proxy useful without it ever serving hours-old layouts.
	c.Response().Header().Set("Cache-Control",
		fmt.Sprintf("public, s-maxage=%d, stale-while-revalidate=%d", h.CacheCfg.SMaxAge, h.CacheCfg.StaleWhileRevalidate))

	key := cache.Key{Identifier: identifier, RotationIndex: idx}
	if p, ok := h.Cache.Get(key); ok {
		return c.JSON(http.StatusOK, p)
	}

	p, err := h.Assembler.Build(c.Request().Context(), identifier, idx)
	if err != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "database error"})
	}
	h.Cache.Set(key, p)
	return c.JSON(http.StatusOK, p)
}

// Heartbeat serves POST /v1/display/:identifier/heartbeat. A malformed beat
// (unknown screen, empty or oversized session id) is answered with ok=false
// and has no side effects; it is never an error status.
func (h *DisplayHandler) Heartbeat(c echo.Context) error {
	identifier := c.Param("identifier")

	var req heartbeatRequest
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusOK, echo.Map{"ok": false, "allowed": false})
	}
	sessionID := strings.TrimSpace(req.SessionID)
	if sessionID == "" || len(sessionID) > h.ViewerCfg.MaxSessionIDLen {
		return c.JSON(http.StatusOK, echo.Map{"ok": false, "allowed": false})
	}

	screenID, err := h.Store.ScreenIDByPublicID(c.Request().Context(), identifier)
	if err != nil {
		if errors.Is(err, repository.ErrScreenNotFound) {
			return c.JSON(http.StatusOK, echo.Map{"ok": false, "allowed": false})
		}
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "database error"})
	}

	allowed, sessions := h.Arbitrator.Heartbeat(screenID, sessionID)

	if sessions > 1 && h.PublishAlert != nil {
		ev := queue.DuplicateViewerEvent{
			ScreenID:   screenID,
			PublicID:   identifier,
			Sessions:   sessions,
			ObservedAt: time.Now().UTC().Format(time.RFC3339),
		}
		go func() { _ = h.PublishAlert(context.Background(), ev) }()
	}

	return c.JSON(http.StatusOK, echo.Map{"ok": true, "allowed": allowed})
}

// ResolveStream serves GET /v1/display/resolve/:code. A TV app asks the user
// for a short broadcast code and exchanges it here for the display URL.
func (h *DisplayHandler) ResolveStream(c echo.Context) error {
	code := strings.TrimSpace(c.Param("code"))
	if code == "" {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid code"})
	}
	target, err := h.Store.ResolveStreamTarget(c.Request().Context(), code)
	if err != nil {
		if errors.Is(err, repository.ErrScreenNotFound) {
			return c.JSON(http.StatusNotFound, echo.Map{"error": "screen not found"})
		}
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "database error"})
	}
	return c.JSON(http.StatusOK, echo.Map{"stream_url": h.FrontendURL + "/display/" + target})
}
