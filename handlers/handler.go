package handlers

import (
	"errors"
	"net/http"

	"github.com/labstack/echo/v4"
	"go.uber.org/zap"

	"github.com/padraicbc/concursos/services"
)

const msgInternal = "Internal error"

// Handler holds shared dependencies used by all route handlers.
type Handler struct {
	svc           *services.Services
	log           *zap.Logger
	secureCookies bool
}

// New creates a Handler. secureCookies marks the session cookie Secure.
func New(svc *services.Services, log *zap.Logger, secureCookies bool) *Handler {
	return &Handler{svc: svc, log: log, secureCookies: secureCookies}
}

// Register mounts the JSON API under /api.
func (h *Handler) Register(e *echo.Echo) {
	api := e.Group("/api")

	api.POST("/auth/signin", h.Signin)
	api.POST("/auth/signout", h.Signout)
	api.GET("/auth/me", h.Me)

	api.GET("/companies", h.ListCompanies)
	api.POST("/companies", h.CreateCompany)
	api.GET("/companies/:companyId", h.GetCompany)
	api.PATCH("/companies/:companyId", h.UpdateCompany)
	api.DELETE("/companies/:companyId", h.DeleteCompany)

	api.GET("/concursos", h.ListConcursos)
	api.POST("/concursos", h.CreateConcurso)
	api.GET("/concursos/:concursoId", h.GetConcurso)
	api.PATCH("/concursos/:concursoId", h.UpdateConcurso)
	api.DELETE("/concursos/:concursoId", h.DeleteConcurso)

	api.GET("/ganado", h.ListGanado)
	api.POST("/ganado", h.CreateGanado)
	api.GET("/ganado/:ganadoId", h.GetGanado)
	api.PATCH("/ganado/:ganadoId", h.UpdateGanado)
	api.DELETE("/ganado/:ganadoId", h.DeleteGanado)
	api.POST("/ganado/:ganadoId/images", h.UploadImage)
	api.DELETE("/ganado/:ganadoId/images/:imageId", h.DeleteImage)

	api.GET("/ganado-en-concurso", h.ListEntries)
	api.POST("/ganado-en-concurso", h.CreateEntry)
	api.PATCH("/ganado-en-concurso/:id", h.UpdateEntry)
	api.DELETE("/ganado-en-concurso/:id", h.DeleteEntry)

	for path, col := range lookupRoutes {
		api.GET(path, h.ListLookup(col))
		api.POST(path, h.CreateLookup)
	}

	api.GET("/categorias", h.ListCategorias)
	api.POST("/categorias", h.CreateCategoria)
	api.GET("/categorias/:id", h.GetCategoria)
	api.PATCH("/categorias/:id", h.UpdateCategoria)
	api.DELETE("/categorias/:id", h.DeleteCategoria)

	api.GET("/stats", h.Stats)
}

var kindStatus = map[services.Kind]int{
	services.KindInvalid:         http.StatusBadRequest,
	services.KindUnauthenticated: http.StatusUnauthorized,
	services.KindForbidden:       http.StatusForbidden,
	services.KindNotFound:        http.StatusNotFound,
	services.KindUnavailable:     http.StatusServiceUnavailable,
}

// fail turns a service error into an HTTP error. Anything unexpected is
// logged under tag and hidden behind a generic 500.
func (h *Handler) fail(tag string, err error) error {
	var se *services.Error
	if errors.As(err, &se) {
		if status, ok := kindStatus[se.Kind]; ok {
			return echo.NewHTTPError(status, se.Message)
		}
	}
	h.log.Error(tag, zap.Error(err))
	return echo.NewHTTPError(http.StatusInternalServerError, msgInternal)
}

// bind decodes the request body into v.
func bind(c echo.Context, v interface{}) error {
	if err := c.Bind(v); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "Invalid request body")
	}
	return nil
}

// boolParam reads "true"/"false" query values; anything else means no filter.
func boolParam(c echo.Context, name string) *bool {
	switch c.QueryParam(name) {
	case "true":
		v := true
		return &v
	case "false":
		v := false
		return &v
	}
	return nil
}

// ErrorHandler writes every error as a plain-text body.
func ErrorHandler(log *zap.Logger) echo.HTTPErrorHandler {
	return func(err error, c echo.Context) {
		if c.Response().Committed {
			return
		}

		status, msg := http.StatusInternalServerError, msgInternal
		var he *echo.HTTPError
		if errors.As(err, &he) {
			status = he.Code
			if s, ok := he.Message.(string); ok {
				msg = s
			} else {
				msg = http.StatusText(status)
			}
		} else {
			log.Error("unhandled error", zap.String("uri", c.Request().RequestURI), zap.Error(err))
		}

		if c.Request().Method == http.MethodHead {
			err = c.NoContent(status)
		} else {
			err = c.String(status, msg)
		}
		if err != nil {
			log.Error("write error response", zap.Error(err))
		}
	}
}
