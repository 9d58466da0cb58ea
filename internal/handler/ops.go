package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/orhanozan33/menuslide-sub001/internal/viewer"
)

// OpsHandler exposes read-only operator endpoints. These live behind JWT +
// role middleware: the data is about customer screens, not for the screens
// themselves.
type OpsHandler struct {
	Arbitrator *viewer.Arbitrator
}

// GetDuplicateViewers returns every screen currently observed with more than
// one concurrent fresh session. Operators use it to spot shared links before
// customers call in about screens flickering between two devices.
func (h *OpsHandler) GetDuplicateViewers(c echo.Context) error {
	return c.JSON(http.StatusOK, echo.Map{"items": h.Arbitrator.DuplicateScreens()})
}
