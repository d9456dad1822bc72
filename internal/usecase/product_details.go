package usecase

import (
	"context"
	"fmt"
	"sync"

	"github.com/nguyentranbao-ct/product-catalog/internal/dialog"
	"github.com/nguyentranbao-ct/product-catalog/internal/models"
	"github.com/nguyentranbao-ct/product-catalog/internal/repo/productapi"
	"github.com/nguyentranbao-ct/product-catalog/internal/state"
	log "github.com/nguyentranbao-ct/product-catalog/pkg/logger/log"
	"github.com/nguyentranbao-ct/product-catalog/pkg/task"
)

const DeleteConfirmationMessage = "Are you sure you want to delete this product?"

type ProductDetailsView struct {
	header
	lifetime
	loadingFlag
	repo    productapi.Client
	nav     Navigator
	dialogs dialog.Opener

	Form *ProductForm

	mu      sync.Mutex
	id      int64
	product *models.Product
}

func NewProductDetailsView(d state.Dispatcher, repo productapi.Client, nav Navigator, dialogs dialog.Opener) *ProductDetailsView {
	v := &ProductDetailsView{
		header:   newHeader(d, TitleEditProduct),
		lifetime: newLifetime(),
		repo:     repo,
		nav:      nav,
		dialogs:  dialogs,
		Form:     NewProductForm(),
	}
	return v
}

// Activate loads product id into the form. The id is kept even when the
// fetch fails.
func (v *ProductDetailsView) Activate(ctx context.Context, id int64) *task.Task[*models.Product] {
	v.mu.Lock()
	v.id = id
	v.mu.Unlock()
	v.setLoading(true)

	ctx, cancel := v.join(ctx)
	return task.Run(ctx, func(ctx context.Context) (*models.Product, error) {
		defer cancel()

		product, err := v.repo.Get(ctx, id)
		if v.destroyed() {
			return nil, context.Canceled
		}
		v.setLoading(false)
		if err != nil {
			log.Errorw(ctx, "error loading product", "product_id", id, "error", err)
			return nil, fmt.Errorf("get product %d: %w", id, err)
		}

		v.mu.Lock()
		v.product = product
		v.mu.Unlock()
		v.Form.PatchValue(*product)
		return product, nil
	})
}

func (v *ProductDetailsView) ID() int64 {
	v.mu.Lock()
	defer v.mu.Unlock()
	return v.id
}

// Product is the last fetched product, nil when the fetch failed.
func (v *ProductDetailsView) Product() *models.Product {
	v.mu.Lock()
	defer v.mu.Unlock()
	return v.product
}

// Save replaces the product with the form value.
func (v *ProductDetailsView) Save(ctx context.Context) *task.Task[*models.Product] {
	if !v.Form.Valid() {
		v.Form.MarkAllAsTouched()
		return task.Completed[*models.Product](nil, models.ErrValidation)
	}
	id := v.ID()
	if id <= 0 {
		return task.Completed[*models.Product](nil, fmt.Errorf("%w: product id is not set", models.ErrValidation))
	}

	product := v.Form.Draft().WithID(id)
	v.setLoading(true)

	ctx, cancel := v.join(ctx)
	return task.Run(ctx, func(ctx context.Context) (*models.Product, error) {
		defer cancel()

		updated, err := v.repo.Update(ctx, product)
		if v.destroyed() {
			return nil, context.Canceled
		}
		v.setLoading(false)
		if err != nil {
			return nil, fmt.Errorf("update product %d: %w", id, err)
		}

		v.Form.Reset()
		v.nav.NavigateByURL(RouteList)
		return updated, nil
	})
}

// Delete asks for confirmation and removes the product when confirmed. The
// task yields whether the product was deleted.
func (v *ProductDetailsView) Delete(ctx context.Context) *task.Task[bool] {
	prompt := v.dialogs.Open(DeleteConfirmationMessage)
	id := v.ID()

	ctx, cancel := v.join(ctx)
	return task.Run(ctx, func(ctx context.Context) (bool, error) {
		defer cancel()

		var confirmed bool
		select {
		case confirmed = <-prompt.AfterClosed():
		case <-ctx.Done():
			prompt.Close()
			return false, ctx.Err()
		}
		if !confirmed {
			return false, nil
		}

		v.setLoading(true)
		err := v.repo.Delete(ctx, id)
		if v.destroyed() {
			return false, context.Canceled
		}
		v.setLoading(false)
		if err != nil {
			return false, fmt.Errorf("delete product %d: %w", id, err)
		}

		v.nav.NavigateByURL(RouteList)
		return true, nil
	})
}

func (v *ProductDetailsView) Cancel() {
	v.nav.NavigateByURL(RouteList)
}
