package handlers

import (
	"net/http"

	"github.com/labstack/echo/v4"

	mw "github.com/padraicbc/concursos/middleware"
	"github.com/padraicbc/concursos/services"
	"github.com/padraicbc/concursos/store"
)

// ListConcursos supports isFeatured, isPublished and companyId filters.
func (h *Handler) ListConcursos(c echo.Context) error {
	list, err := h.svc.Concursos.List(c.Request().Context(), store.ConcursoFilter{
		IsFeatured:  boolParam(c, "isFeatured"),
		IsPublished: boolParam(c, "isPublished"),
		CompanyID:   c.QueryParam("companyId"),
	})
	if err != nil {
		return h.fail("CONCURSOS_GET", err)
	}
	return c.JSON(http.StatusOK, list)
}

func (h *Handler) GetConcurso(c echo.Context) error {
	con, err := h.svc.Concursos.Get(c.Request().Context(), c.Param("concursoId"))
	if err != nil {
		return h.fail("CONCURSO_GET", err)
	}
	return c.JSON(http.StatusOK, con)
}

func (h *Handler) CreateConcurso(c echo.Context) error {
	var in services.ConcursoInput
	if err := bind(c, &in); err != nil {
		return err
	}
	con, err := h.svc.Concursos.Create(c.Request().Context(), mw.Principal(c), in)
	if err != nil {
		return h.fail("CONCURSOS_POST", err)
	}
	return c.JSON(http.StatusOK, con)
}

func (h *Handler) UpdateConcurso(c echo.Context) error {
	var in services.ConcursoInput
	if err := bind(c, &in); err != nil {
		return err
	}
	con, err := h.svc.Concursos.Update(c.Request().Context(), mw.Principal(c), c.Param("concursoId"), in)
	if err != nil {
		return h.fail("CONCURSO_PATCH", err)
	}
	return c.JSON(http.StatusOK, con)
}

func (h *Handler) DeleteConcurso(c echo.Context) error {
	con, err := h.svc.Concursos.Delete(c.Request().Context(), mw.Principal(c), c.Param("concursoId"))
	if err != nil {
		return h.fail("CONCURSO_DELETE", err)
	}
	return c.JSON(http.StatusOK, con)
}
