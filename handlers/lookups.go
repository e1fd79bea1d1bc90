package handlers

import (
	"net/http"

	"github.com/labstack/echo/v4"

	mw "github.com/padraicbc/concursos/middleware"
	"github.com/padraicbc/concursos/services"
	"github.com/padraicbc/concursos/store"
)

var lookupRoutes = map[string]store.LookupColumn{
	"/razas":        store.LookupRaza,
	"/establos":     store.LookupEstablo,
	"/propietarios": store.LookupPropietario,
}

// ListLookup serves distinct values of col filtered by the "query" param.
func (h *Handler) ListLookup(col store.LookupColumn) echo.HandlerFunc {
	return func(c echo.Context) error {
		opts, err := h.svc.Lookups.List(c.Request().Context(), col, c.QueryParam("query"))
		if err != nil {
			return h.fail("LOOKUP_GET", err)
		}
		return c.JSON(http.StatusOK, opts)
	}
}

func (h *Handler) CreateLookup(c echo.Context) error {
	var in services.NameInput
	if err := bind(c, &in); err != nil {
		return err
	}
	opt, err := h.svc.Lookups.Create(c.Request().Context(), mw.Principal(c), in)
	if err != nil {
		return h.fail("LOOKUP_POST", err)
	}
	return c.JSON(http.StatusOK, opt)
}
