// Package web renders the public site and the dashboard as server-side pages.
// Reads go straight to the services; writes go through the JSON API.
package web

import (
	"embed"
	"errors"
	"fmt"
	"html/template"
	"io"
	"net/http"
	"sort"
	"time"

	"github.com/labstack/echo/v4"

	"github.com/padraicbc/concursos/auth"
	mw "github.com/padraicbc/concursos/middleware"
	"github.com/padraicbc/concursos/models"
	"github.com/padraicbc/concursos/services"
	"github.com/padraicbc/concursos/store"
)

//go:embed templates/*.html
var templateFiles embed.FS

var pageNames = []string{
	"home.html",
	"concursos.html",
	"concurso.html",
	"dashboard.html",
	"dashboard_companies.html",
	"dashboard_concursos.html",
	"dashboard_ganado.html",
	"dashboard_categorias.html",
}

var funcs = template.FuncMap{
	"fecha": func(t interface{}) string {
		switch v := t.(type) {
		case time.Time:
			return v.Format("02/01/2006")
		case *time.Time:
			if v != nil {
				return v.Format("02/01/2006")
			}
		}
		return ""
	},
	"str": func(s *string) string {
		if s == nil {
			return ""
		}
		return *s
	},
	"posicion": func(p *int) string {
		if p == nil {
			return "-"
		}
		return fmt.Sprintf("%d", *p)
	},
}

// Renderer implements echo.Renderer. Each page is parsed together with the layout.
type Renderer struct {
	pages map[string]*template.Template
}

func NewRenderer() (*Renderer, error) {
	layout, err := template.New("layout.html").Funcs(funcs).ParseFS(templateFiles, "templates/layout.html")
	if err != nil {
		return nil, fmt.Errorf("parse layout: %w", err)
	}

	r := &Renderer{pages: make(map[string]*template.Template, len(pageNames))}
	for _, name := range pageNames {
		t, err := layout.Clone()
		if err != nil {
			return nil, err
		}
		if _, err := t.ParseFS(templateFiles, "templates/"+name); err != nil {
			return nil, fmt.Errorf("parse %s: %w", name, err)
		}
		r.pages[name] = t
	}
	return r, nil
}

func (r *Renderer) Render(w io.Writer, name string, data interface{}, c echo.Context) error {
	t, ok := r.pages[name]
	if !ok {
		return fmt.Errorf("unknown page %q", name)
	}
	return t.ExecuteTemplate(w, "layout", data)
}

// view is what every page template receives.
type view struct {
	Title     string
	Principal *auth.Principal
	Body      interface{}
}

// Pages serves the HTML routes.
type Pages struct {
	svc *services.Services
}

func New(svc *services.Services) *Pages {
	return &Pages{svc: svc}
}

// RequireAdmin is the page-level admin check for dashboard routes. It runs
// after the gate and redirects the same way.
func RequireAdmin(landing string) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			if !auth.IsAdmin(mw.Principal(c)) {
				return c.Redirect(http.StatusFound, landing)
			}
			return next(c)
		}
	}
}

// Register mounts the public pages and the dashboard.
func (p *Pages) Register(e *echo.Echo) {
	e.GET("/", p.Home)
	e.GET("/home", p.Home)
	e.GET("/concursos", p.Concursos)
	e.GET("/concursos/:concursoId", p.Concurso)

	d := e.Group("/dashboard", RequireAdmin("/"))
	d.GET("", p.Dashboard)
	d.GET("/companies", p.DashboardCompanies)
	d.GET("/concursos", p.DashboardConcursos)
	d.GET("/ganado", p.DashboardGanado)
	d.GET("/categorias", p.DashboardCategorias)
}

func (p *Pages) render(c echo.Context, page, title string, body interface{}) error {
	return c.Render(http.StatusOK, page, view{Title: title, Principal: mw.Principal(c), Body: body})
}

// byFechaDesc orders concursos by start date, latest first.
func byFechaDesc(list []models.Concurso) {
	sort.SliceStable(list, func(i, j int) bool {
		return list[i].FechaInicio.After(list[j].FechaInicio)
	})
}

func (p *Pages) published(c echo.Context, featured *bool) ([]models.Concurso, error) {
	yes := true
	list, err := p.svc.Concursos.List(c.Request().Context(), store.ConcursoFilter{IsPublished: &yes, IsFeatured: featured})
	if err != nil {
		return nil, err
	}
	byFechaDesc(list)
	return list, nil
}

// Home lists featured published concursos.
func (p *Pages) Home(c echo.Context) error {
	yes := true
	list, err := p.published(c, &yes)
	if err != nil {
		return err
	}
	return p.render(c, "home.html", "Concursos Destacados", list)
}

func (p *Pages) Concursos(c echo.Context) error {
	list, err := p.published(c, nil)
	if err != nil {
		return err
	}
	return p.render(c, "concursos.html", "Concursos", list)
}

// Concurso shows one published concurso with its ranked participants.
// Unpublished and missing concursos both answer 404.
func (p *Pages) Concurso(c echo.Context) error {
	con, err := p.svc.Concursos.Get(c.Request().Context(), c.Param("concursoId"))
	if err != nil {
		var se *services.Error
		if errors.As(err, &se) && se.Kind == services.KindNotFound {
			return echo.ErrNotFound
		}
		return err
	}
	if !con.IsPublished {
		return echo.ErrNotFound
	}
	return p.render(c, "concurso.html", con.Nombre, con)
}

func (p *Pages) Dashboard(c echo.Context) error {
	sum, err := p.svc.Stats.Summary(c.Request().Context(), 0)
	if err != nil {
		return err
	}
	return p.render(c, "dashboard.html", "Dashboard", sum)
}

func (p *Pages) DashboardCompanies(c echo.Context) error {
	list, err := p.svc.Companies.List(c.Request().Context(), store.CompanyFilter{})
	if err != nil {
		return err
	}
	return p.render(c, "dashboard_companies.html", "Compañías", list)
}

func (p *Pages) DashboardConcursos(c echo.Context) error {
	list, err := p.svc.Concursos.List(c.Request().Context(), store.ConcursoFilter{})
	if err != nil {
		return err
	}
	return p.render(c, "dashboard_concursos.html", "Concursos", list)
}

func (p *Pages) DashboardGanado(c echo.Context) error {
	list, err := p.svc.Ganado.List(c.Request().Context(), store.GanadoFilter{})
	if err != nil {
		return err
	}
	return p.render(c, "dashboard_ganado.html", "Ganado", list)
}

func (p *Pages) DashboardCategorias(c echo.Context) error {
	list, err := p.svc.Categorias.List(c.Request().Context())
	if err != nil {
		return err
	}
	return p.render(c, "dashboard_categorias.html", "Categorías", list)
}
