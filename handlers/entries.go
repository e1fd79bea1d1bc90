package handlers

import (
	"net/http"

	"github.com/labstack/echo/v4"

	mw "github.com/padraicbc/concursos/middleware"
	"github.com/padraicbc/concursos/services"
	"github.com/padraicbc/concursos/store"
)

// ListEntries returns entries ranked by posicion, unranked last.
func (h *Handler) ListEntries(c echo.Context) error {
	list, err := h.svc.Entries.List(c.Request().Context(), store.EntryFilter{
		ConcursoID: c.QueryParam("concursoId"),
		GanadoID:   c.QueryParam("ganadoId"),
	})
	if err != nil {
		return h.fail("GANADO_EN_CONCURSO_GET", err)
	}
	return c.JSON(http.StatusOK, list)
}

func (h *Handler) CreateEntry(c echo.Context) error {
	var in services.EntryInput
	if err := bind(c, &in); err != nil {
		return err
	}
	e, err := h.svc.Entries.Create(c.Request().Context(), mw.Principal(c), in)
	if err != nil {
		return h.fail("GANADO_EN_CONCURSO_POST", err)
	}
	return c.JSON(http.StatusOK, e)
}

// UpdateEntry sets or clears posicion.
func (h *Handler) UpdateEntry(c echo.Context) error {
	var in services.PosicionInput
	if err := bind(c, &in); err != nil {
		return err
	}
	e, err := h.svc.Entries.UpdatePosicion(c.Request().Context(), mw.Principal(c), c.Param("id"), in)
	if err != nil {
		return h.fail("GANADO_EN_CONCURSO_PATCH", err)
	}
	return c.JSON(http.StatusOK, e)
}

func (h *Handler) DeleteEntry(c echo.Context) error {
	e, err := h.svc.Entries.Delete(c.Request().Context(), mw.Principal(c), c.Param("id"))
	if err != nil {
		return h.fail("GANADO_EN_CONCURSO_DELETE", err)
	}
	return c.JSON(http.StatusOK, e)
}
