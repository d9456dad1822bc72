package server

import (
	"embed"
	"fmt"
	"io"

	"github.com/labstack/echo/v4"

	"github.com/nguyentranbao-ct/product-catalog/internal/models"
	pkgmdw "github.com/nguyentranbao-ct/product-catalog/internal/server/middleware"
	"github.com/nguyentranbao-ct/product-catalog/internal/usecase"
	"github.com/nguyentranbao-ct/product-catalog/pkg/tmplx"
)

//go:embed templates/*.html
var templateFS embed.FS

const (
	pageProductList = "product_list"
	pageProductForm = "product_form"
	pageConfirm     = "confirm"
	pageError       = "error"
)

// pageRenderer renders every page inside the shared layout.
type pageRenderer struct {
	pages map[string]*tmplx.Template
}

func newRenderer() (*pageRenderer, error) {
	r := &pageRenderer{pages: make(map[string]*tmplx.Template)}
	for _, name := range []string{pageProductList, pageProductForm, pageConfirm, pageError} {
		t, err := tmplx.ParseFS(templateFS, []string{"templates/layout.html", "templates/" + name + ".html"})
		if err != nil {
			return nil, fmt.Errorf("parse page %s: %w", name, err)
		}
		r.pages[name] = t
	}
	return r, nil
}

func (r *pageRenderer) Render(w io.Writer, name string, data any, _ echo.Context) error {
	t, ok := r.pages[name]
	if !ok {
		return fmt.Errorf("unknown page %q", name)
	}
	return t.ExecuteTemplate(w, "layout", data)
}

type layout struct {
	Title string
}

type listPage struct {
	layout
	Loaded   bool
	Products []productRow
}

type productRow struct {
	models.Product
	Route string
}

func newProductRow(p models.Product) productRow {
	return productRow{Product: p, Route: usecase.ProductRoute(p.ID)}
}

type formValue struct {
	Name        string
	Description string
	Price       string
}

type formPage struct {
	layout
	Action  string
	Editing bool
	Loading bool
	Value   formValue
	Errors  map[string]string
}

type confirmPage struct {
	layout
	Action   string
	Message  string
	YesLabel string
	NoLabel  string
}

type errorPage struct {
	layout
	Status  int
	Message string
}

// errorPageFunc renders failed page requests with the error template.
func errorPageFunc(title func() string) pkgmdw.ErrorPage {
	return func(c echo.Context, resp *pkgmdw.ResponseError) error {
		return c.Render(resp.Status, pageError, errorPage{
			layout:  layout{Title: title()},
			Status:  resp.Status,
			Message: resp.ErrorMessage,
		})
	}
}
