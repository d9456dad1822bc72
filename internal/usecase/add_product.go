package usecase

import (
	"context"
	"fmt"

	"github.com/nguyentranbao-ct/product-catalog/internal/models"
	"github.com/nguyentranbao-ct/product-catalog/internal/repo/productapi"
	"github.com/nguyentranbao-ct/product-catalog/internal/state"
	"github.com/nguyentranbao-ct/product-catalog/pkg/task"
)

type AddProductView struct {
	header
	lifetime
	loadingFlag
	repo productapi.Client
	nav  Navigator

	Form *ProductForm
}

func NewAddProductView(d state.Dispatcher, repo productapi.Client, nav Navigator) *AddProductView {
	v := &AddProductView{
		header:   newHeader(d, TitleAddProduct),
		lifetime: newLifetime(),
		repo:     repo,
		nav:      nav,
		Form:     NewProductForm(),
	}
	return v
}

// Submit creates the product described by the form. An invalid form only
// marks its controls as touched. A failed create leaves the form as it is.
func (v *AddProductView) Submit(ctx context.Context) *task.Task[*models.Product] {
	if !v.Form.Valid() {
		v.Form.MarkAllAsTouched()
		return task.Completed[*models.Product](nil, models.ErrValidation)
	}

	draft := v.Form.Draft()
	v.setLoading(true)

	ctx, cancel := v.join(ctx)
	return task.Run(ctx, func(ctx context.Context) (*models.Product, error) {
		defer cancel()

		product, err := v.repo.Create(ctx, draft)
		if v.destroyed() {
			return nil, context.Canceled
		}
		v.setLoading(false)
		if err != nil {
			return nil, fmt.Errorf("create product: %w", err)
		}

		v.Form.Reset()
		v.nav.NavigateByURL(RouteList)
		return product, nil
	})
}

func (v *AddProductView) Cancel() {
	v.nav.NavigateByURL(RouteList)
}
