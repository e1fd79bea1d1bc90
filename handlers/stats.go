package handlers

import (
	"net/http"
	"strconv"

	"github.com/labstack/echo/v4"
)

// Stats returns dashboard counters. "year" defaults to the current year.
func (h *Handler) Stats(c echo.Context) error {
	year := 0
	if s := c.QueryParam("year"); s != "" {
		y, err := strconv.Atoi(s)
		if err != nil || y < 1 {
			return echo.NewHTTPError(http.StatusBadRequest, "Year is invalid")
		}
		year = y
	}

	sum, err := h.svc.Stats.Summary(c.Request().Context(), year)
	if err != nil {
		return h.fail("STATS_GET", err)
	}
	return c.JSON(http.StatusOK, sum)
}
