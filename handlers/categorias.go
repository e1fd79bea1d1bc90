package handlers

import (
	"net/http"

	"github.com/labstack/echo/v4"

	mw "github.com/padraicbc/concursos/middleware"
	"github.com/padraicbc/concursos/services"
)

func (h *Handler) ListCategorias(c echo.Context) error {
	list, err := h.svc.Categorias.List(c.Request().Context())
	if err != nil {
		return h.fail("CATEGORIAS_GET", err)
	}
	return c.JSON(http.StatusOK, list)
}

func (h *Handler) GetCategoria(c echo.Context) error {
	cat, err := h.svc.Categorias.Get(c.Request().Context(), c.Param("id"))
	if err != nil {
		return h.fail("CATEGORIA_GET", err)
	}
	return c.JSON(http.StatusOK, cat)
}

func (h *Handler) CreateCategoria(c echo.Context) error {
	var in services.CategoriaInput
	if err := bind(c, &in); err != nil {
		return err
	}
	cat, err := h.svc.Categorias.Create(c.Request().Context(), mw.Principal(c), in)
	if err != nil {
		return h.fail("CATEGORIAS_POST", err)
	}
	return c.JSON(http.StatusOK, cat)
}

func (h *Handler) UpdateCategoria(c echo.Context) error {
	var in services.CategoriaInput
	if err := bind(c, &in); err != nil {
		return err
	}
	cat, err := h.svc.Categorias.Update(c.Request().Context(), mw.Principal(c), c.Param("id"), in)
	if err != nil {
		return h.fail("CATEGORIA_PATCH", err)
	}
	return c.JSON(http.StatusOK, cat)
}

func (h *Handler) DeleteCategoria(c echo.Context) error {
	cat, err := h.svc.Categorias.Delete(c.Request().Context(), mw.Principal(c), c.Param("id"))
	if err != nil {
		return h.fail("CATEGORIA_DELETE", err)
	}
	return c.JSON(http.StatusOK, cat)
}
