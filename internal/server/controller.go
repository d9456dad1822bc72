package server

import (
	"errors"
	"net/http"
	"strconv"
	"strings"

	"github.com/google/uuid"
	"github.com/labstack/echo/v4"
	"github.com/spf13/cast"

	"github.com/nguyentranbao-ct/product-catalog/internal/dialog"
	"github.com/nguyentranbao-ct/product-catalog/internal/models"
	"github.com/nguyentranbao-ct/product-catalog/internal/repo/productapi"
	"github.com/nguyentranbao-ct/product-catalog/internal/state"
	"github.com/nguyentranbao-ct/product-catalog/internal/usecase"
	log "github.com/nguyentranbao-ct/product-catalog/pkg/logger/log"
	"github.com/nguyentranbao-ct/product-catalog/pkg/util"
)

const (
	actionAdd    = "add"
	actionEdit   = "edit"
	actionCancel = "cancel"
)

type Controller interface {
	Health(c echo.Context) error
	GetTitle(c echo.Context, req TitleRequest) (*TitleResponse, error)

	ListProducts(c echo.Context) error
	ListAction(c echo.Context) error
	NewProduct(c echo.Context) error
	CreateProduct(c echo.Context) error
	EditProduct(c echo.Context) error
	UpdateProduct(c echo.Context) error
	DeleteProduct(c echo.Context) error
}

type TitleRequest struct {
	IfNoneMatch string `header:"If-None-Match"`
}

type TitleResponse struct {
	Title string `json:"title"`
}

type controller struct {
	store *state.Store
	repo  productapi.Client
}

func NewHandler(store *state.Store, repo productapi.Client) Controller {
	return &controller{
		store: store,
		repo:  repo,
	}
}

func (h *controller) Health(c echo.Context) error {
	return c.JSON(http.StatusOK, map[string]string{
		"status":  "healthy",
		"service": "product-catalog",
	})
}

// GetTitle answers 304 while the client already holds the current title.
func (h *controller) GetTitle(c echo.Context, req TitleRequest) (*TitleResponse, error) {
	title := h.title()
	etag := titleETag(title)
	c.Response().Header().Set("ETag", etag)
	if etagMatches(req.IfNoneMatch, etag) {
		return nil, c.NoContent(http.StatusNotModified)
	}
	return &TitleResponse{Title: title}, nil
}

func (h *controller) title() string {
	return state.Select(h.store, state.SelectHeaderTitle)
}

func titleETag(title string) string {
	return `"` + uuid.NewSHA1(uuid.NameSpaceURL, []byte(title)).String() + `"`
}

func etagMatches(header, etag string) bool {
	for _, v := range strings.Split(header, ",") {
		v = strings.TrimPrefix(strings.TrimSpace(v), "W/")
		if v == "*" || v == etag {
			return true
		}
	}
	return false
}

func (h *controller) ListProducts(c echo.Context) error {
	ctx := c.Request().Context()
	view := usecase.NewProductListView(h.store, h.repo, &routeNavigator{})
	defer view.Destroy()

	view.Init()
	products, loaded := view.Load(ctx)
	return c.Render(http.StatusOK, pageProductList, listPage{
		layout:   layout{Title: view.Title()},
		Loaded:   loaded,
		Products: util.ConvertList(products, newProductRow),
	})
}

func (h *controller) ListAction(c echo.Context) error {
	nav := &routeNavigator{}
	view := usecase.NewProductListView(h.store, h.repo, nav)
	defer view.Destroy()

	switch c.FormValue("action") {
	case actionAdd:
		view.AddProduct()
	case actionEdit:
		id, err := parseID(c.FormValue("id"))
		if err != nil {
			return err
		}
		view.EditProduct(id)
	default:
		return echo.NewHTTPError(http.StatusBadRequest, "unknown action")
	}
	_, err := redirect(c, nav)
	return err
}

func (h *controller) NewProduct(c echo.Context) error {
	view := usecase.NewAddProductView(h.store, h.repo, &routeNavigator{})
	defer view.Destroy()

	return renderForm(c, http.StatusOK, view.Title(), usecase.RouteAddProduct, false, view.Form, view.Loading())
}

func (h *controller) CreateProduct(c echo.Context) error {
	ctx := c.Request().Context()
	nav := &routeNavigator{}
	view := usecase.NewAddProductView(h.store, h.repo, nav)
	defer view.Destroy()

	if c.FormValue("action") == actionCancel {
		view.Cancel()
		_, err := redirect(c, nav)
		return err
	}

	view.Form.Input(c.FormValue("name"), c.FormValue("description"), c.FormValue("price"))
	_, err := view.Submit(ctx).Await(ctx)
	if ok, rerr := redirect(c, nav); ok {
		return rerr
	}

	status := http.StatusOK
	switch {
	case errors.Is(err, models.ErrValidation):
		status = http.StatusUnprocessableEntity
	case err != nil:
		log.Warnw(ctx, "create product failed", "error", err)
	}
	return renderForm(c, status, view.Title(), usecase.RouteAddProduct, false, view.Form, view.Loading())
}

func (h *controller) EditProduct(c echo.Context) error {
	ctx := c.Request().Context()
	id, err := parseID(c.Param("id"))
	if err != nil {
		return err
	}

	view := usecase.NewProductDetailsView(h.store, h.repo, &routeNavigator{}, newFormDialogs(""))
	defer view.Destroy()

	// a failed fetch is logged by the view and leaves the form empty
	_, _ = view.Activate(ctx, id).Await(ctx)
	return renderForm(c, http.StatusOK, view.Title(), usecase.ProductRoute(id), true, view.Form, view.Loading())
}

func (h *controller) UpdateProduct(c echo.Context) error {
	ctx := c.Request().Context()
	id, err := parseID(c.Param("id"))
	if err != nil {
		return err
	}

	nav := &routeNavigator{}
	view := usecase.NewProductDetailsView(h.store, h.repo, nav, newFormDialogs(""))
	defer view.Destroy()

	if c.FormValue("action") == actionCancel {
		view.Cancel()
		_, err := redirect(c, nav)
		return err
	}

	_, _ = view.Activate(ctx, id).Await(ctx)
	view.Form.Input(c.FormValue("name"), c.FormValue("description"), c.FormValue("price"))
	_, err = view.Save(ctx).Await(ctx)
	if ok, rerr := redirect(c, nav); ok {
		return rerr
	}

	status := http.StatusOK
	switch {
	case errors.Is(err, models.ErrValidation):
		status = http.StatusUnprocessableEntity
	case err != nil:
		log.Warnw(ctx, "update product failed", "product_id", id, "error", err)
	}
	return renderForm(c, status, view.Title(), usecase.ProductRoute(id), true, view.Form, view.Loading())
}

// DeleteProduct opens the confirmation prompt. Without a posted answer the
// prompt page is rendered and the pending deletion is dropped; the answer
// arrives with the next post.
func (h *controller) DeleteProduct(c echo.Context) error {
	ctx := c.Request().Context()
	id, err := parseID(c.Param("id"))
	if err != nil {
		return err
	}

	nav := &routeNavigator{}
	dialogs := newFormDialogs(c.FormValue("confirm"))
	view := usecase.NewProductDetailsView(h.store, h.repo, nav, dialogs)
	defer view.Destroy()

	_, _ = view.Activate(ctx, id).Await(ctx)
	deletion := view.Delete(ctx)

	if prompt := dialogs.Pending(); prompt != nil {
		view.Destroy()
		<-deletion.Done()
		return c.Render(http.StatusOK, pageConfirm, confirmPage{
			layout:   layout{Title: view.Title()},
			Action:   usecase.ProductRoute(id) + "/delete",
			Message:  prompt.Message,
			YesLabel: dialog.YesLabel,
			NoLabel:  dialog.NoLabel,
		})
	}

	if _, err := deletion.Await(ctx); err != nil {
		log.Warnw(ctx, "delete product failed", "product_id", id, "error", err)
	}
	if ok, rerr := redirect(c, nav); ok {
		return rerr
	}
	// declined or failed: stay on the product
	return c.Redirect(http.StatusSeeOther, usecase.ProductRoute(id))
}

func renderForm(c echo.Context, status int, title, action string, editing bool, form *usecase.ProductForm, loading bool) error {
	value := form.Value()
	price := ""
	if value.Price != nil {
		price = cast.ToString(*value.Price)
	}

	errs := make(map[string]string)
	for ctl, msg := range form.Errors() {
		if form.Touched(ctl) {
			errs[string(ctl)] = msg
		}
	}

	return c.Render(status, pageProductForm, formPage{
		layout:  layout{Title: title},
		Action:  action,
		Editing: editing,
		Loading: loading,
		Value: formValue{
			Name:        value.Name,
			Description: value.Description,
			Price:       price,
		},
		Errors: errs,
	})
}

// redirect follows the navigation recorded by a view, if any.
func redirect(c echo.Context, nav *routeNavigator) (bool, error) {
	target, ok := nav.Target()
	if !ok {
		return false, nil
	}
	return true, c.Redirect(http.StatusSeeOther, target)
}

func parseID(raw string) (int64, error) {
	id, err := strconv.ParseInt(raw, 10, 64)
	if err != nil || id <= 0 {
		return 0, echo.NewHTTPError(http.StatusNotFound, "product not found")
	}
	return id, nil
}
