package handlers

import (
	"net/http"

	"github.com/labstack/echo/v4"

	mw "github.com/padraicbc/concursos/middleware"
	"github.com/padraicbc/concursos/services"
	"github.com/padraicbc/concursos/store"
)

// ListCompanies returns companies newest first, optionally filtered by flags.
func (h *Handler) ListCompanies(c echo.Context) error {
	list, err := h.svc.Companies.List(c.Request().Context(), store.CompanyFilter{
		IsFeatured:  boolParam(c, "isFeatured"),
		IsPublished: boolParam(c, "isPublished"),
	})
	if err != nil {
		return h.fail("COMPANIES_GET", err)
	}
	return c.JSON(http.StatusOK, list)
}

// GetCompany returns one company with its concursos.
func (h *Handler) GetCompany(c echo.Context) error {
	co, err := h.svc.Companies.Get(c.Request().Context(), c.Param("companyId"))
	if err != nil {
		return h.fail("COMPANY_GET", err)
	}
	return c.JSON(http.StatusOK, co)
}

func (h *Handler) CreateCompany(c echo.Context) error {
	var in services.CompanyInput
	if err := bind(c, &in); err != nil {
		return err
	}
	co, err := h.svc.Companies.Create(c.Request().Context(), mw.Principal(c), in)
	if err != nil {
		return h.fail("COMPANIES_POST", err)
	}
	return c.JSON(http.StatusOK, co)
}

func (h *Handler) UpdateCompany(c echo.Context) error {
	var in services.CompanyInput
	if err := bind(c, &in); err != nil {
		return err
	}
	co, err := h.svc.Companies.Update(c.Request().Context(), mw.Principal(c), c.Param("companyId"), in)
	if err != nil {
		return h.fail("COMPANY_PATCH", err)
	}
	return c.JSON(http.StatusOK, co)
}

func (h *Handler) DeleteCompany(c echo.Context) error {
	co, err := h.svc.Companies.Delete(c.Request().Context(), mw.Principal(c), c.Param("companyId"))
	if err != nil {
		return h.fail("COMPANY_DELETE", err)
	}
	return c.JSON(http.StatusOK, co)
}
