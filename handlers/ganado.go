package handlers

import (
	"mime"
	"net/http"
	"path/filepath"
	"strings"

	"github.com/labstack/echo/v4"

	mw "github.com/padraicbc/concursos/middleware"
	"github.com/padraicbc/concursos/models"
	"github.com/padraicbc/concursos/services"
	"github.com/padraicbc/concursos/store"
)

// ListGanado supports isFeatured, isPublished, sexo, categoria and concursoId.
func (h *Handler) ListGanado(c echo.Context) error {
	list, err := h.svc.Ganado.List(c.Request().Context(), store.GanadoFilter{
		IsFeatured:  boolParam(c, "isFeatured"),
		IsPublished: boolParam(c, "isPublished"),
		Sexo:        models.Sexo(strings.ToUpper(strings.TrimSpace(c.QueryParam("sexo")))),
		Categoria:   c.QueryParam("categoria"),
		ConcursoID:  c.QueryParam("concursoId"),
	})
	if err != nil {
		return h.fail("GANADO_GET", err)
	}
	return c.JSON(http.StatusOK, list)
}

func (h *Handler) GetGanado(c echo.Context) error {
	g, err := h.svc.Ganado.Get(c.Request().Context(), c.Param("ganadoId"))
	if err != nil {
		return h.fail("GANADO_GET", err)
	}
	return c.JSON(http.StatusOK, g)
}

func (h *Handler) CreateGanado(c echo.Context) error {
	var in services.GanadoInput
	if err := bind(c, &in); err != nil {
		return err
	}
	g, err := h.svc.Ganado.Create(c.Request().Context(), mw.Principal(c), in)
	if err != nil {
		return h.fail("GANADO_POST", err)
	}
	return c.JSON(http.StatusOK, g)
}

func (h *Handler) UpdateGanado(c echo.Context) error {
	var in services.GanadoInput
	if err := bind(c, &in); err != nil {
		return err
	}
	g, err := h.svc.Ganado.Update(c.Request().Context(), mw.Principal(c), c.Param("ganadoId"), in)
	if err != nil {
		return h.fail("GANADO_PATCH", err)
	}
	return c.JSON(http.StatusOK, g)
}

func (h *Handler) DeleteGanado(c echo.Context) error {
	g, err := h.svc.Ganado.Delete(c.Request().Context(), mw.Principal(c), c.Param("ganadoId"))
	if err != nil {
		return h.fail("GANADO_DELETE", err)
	}
	return c.JSON(http.StatusOK, g)
}

// UploadImage stores the multipart "file" field as a picture of the ganado.
func (h *Handler) UploadImage(c echo.Context) error {
	fh, err := c.FormFile("file")
	if err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "File is required")
	}
	f, err := fh.Open()
	if err != nil {
		return h.fail("GANADO_IMAGE_POST", err)
	}
	defer f.Close()

	contentType := fh.Header.Get(echo.HeaderContentType)
	if contentType == "" || contentType == echo.MIMEOctetStream {
		contentType = mime.TypeByExtension(filepath.Ext(fh.Filename))
	}

	img, err := h.svc.Images.Add(c.Request().Context(), mw.Principal(c), c.Param("ganadoId"), services.Upload{
		Filename:    fh.Filename,
		ContentType: contentType,
		Body:        f,
	})
	if err != nil {
		return h.fail("GANADO_IMAGE_POST", err)
	}
	return c.JSON(http.StatusOK, img)
}

func (h *Handler) DeleteImage(c echo.Context) error {
	img, err := h.svc.Images.Remove(c.Request().Context(), mw.Principal(c), c.Param("ganadoId"), c.Param("imageId"))
	if err != nil {
		return h.fail("GANADO_IMAGE_DELETE", err)
	}
	return c.JSON(http.StatusOK, img)
}
