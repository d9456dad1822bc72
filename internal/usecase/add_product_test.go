package usecase

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/nguyentranbao-ct/product-catalog/internal/models"
	"github.com/nguyentranbao-ct/product-catalog/internal/state"
	"github.com/nguyentranbao-ct/product-catalog/pkg/util"
)

func TestAddProductViewDispatchesTitle(t *testing.T) {
	d := &dispatcherMock{}
	v := NewAddProductView(d, &repoMock{}, &navigatorMock{})
	defer v.Destroy()

	assert.Equal(t, []state.Action{state.UpdateHeaderTitle{Title: "Add Product"}}, d.dispatched())
	assert.Equal(t, "Add Product", v.Title())
	assert.False(t, v.Loading())
}

func TestAddProductViewSubmit(t *testing.T) {
	var sent models.ProductDraft
	repo := &repoMock{
		create: func(ctx context.Context, draft models.ProductDraft) (*models.Product, error) {
			sent = draft
			return &models.Product{ID: 9, Name: draft.Name, Description: draft.Description, Price: draft.Price}, nil
		},
	}
	nav := &navigatorMock{}
	v := NewAddProductView(&dispatcherMock{}, repo, nav)
	defer v.Destroy()

	v.Form.SetValue(ProductFormValue{Name: "Test Product", Description: "Test Description", Price: util.Ptr(20.0)})
	product, err := v.Submit(context.Background()).Await(context.Background())
	require.NoError(t, err)

	assert.Equal(t, int64(9), product.ID)
	assert.Equal(t, models.ProductDraft{Name: "Test Product", Description: "Test Description", Price: 20}, sent)
	assert.Equal(t, 1, repo.count("Create"))
	assert.False(t, v.Loading())
	assert.Equal(t, ProductFormValue{}, v.Form.Value())
	assert.True(t, v.Form.Pristine())
	assert.Equal(t, []string{"/"}, nav.visited())
}

func TestAddProductViewSubmitInvalid(t *testing.T) {
	tests := []struct {
		name  string
		value ProductFormValue
	}{
		{name: "empty form", value: ProductFormValue{}},
		{name: "missing name", value: ProductFormValue{Price: util.Ptr(1.0)}},
		{name: "missing price", value: ProductFormValue{Name: "Test Product"}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			repo := &repoMock{}
			nav := &navigatorMock{}
			v := NewAddProductView(&dispatcherMock{}, repo, nav)
			defer v.Destroy()

			v.Form.SetValue(tt.value)
			_, err := v.Submit(context.Background()).Await(context.Background())
			assert.ErrorIs(t, err, models.ErrValidation)

			assert.Equal(t, 0, repo.total())
			for _, c := range Controls {
				assert.True(t, v.Form.Touched(c), "control %s", c)
			}
			assert.False(t, v.Loading())
			assert.Empty(t, nav.visited())
		})
	}
}

func TestAddProductViewSubmitFailure(t *testing.T) {
	repo := &repoMock{
		create: func(ctx context.Context, draft models.ProductDraft) (*models.Product, error) {
			return nil, models.ErrNetwork
		},
	}
	nav := &navigatorMock{}
	v := NewAddProductView(&dispatcherMock{}, repo, nav)
	defer v.Destroy()

	value := ProductFormValue{Name: "Test Product", Price: util.Ptr(20.0)}
	v.Form.SetValue(value)
	_, err := v.Submit(context.Background()).Await(context.Background())
	assert.ErrorIs(t, err, models.ErrNetwork)

	assert.False(t, v.Loading())
	assert.Equal(t, value, v.Form.Value())
	assert.Empty(t, nav.visited())
	assert.Equal(t, 1, repo.count("Create"))
}

func TestAddProductViewLoadingWhileInFlight(t *testing.T) {
	release := make(chan struct{})
	repo := &repoMock{
		create: func(ctx context.Context, draft models.ProductDraft) (*models.Product, error) {
			<-release
			return &models.Product{ID: 1, Name: draft.Name}, nil
		},
	}
	v := NewAddProductView(&dispatcherMock{}, repo, &navigatorMock{})
	defer v.Destroy()

	v.Form.SetValue(ProductFormValue{Name: "Test Product", Price: util.Ptr(1.0)})
	tk := v.Submit(context.Background())
	assert.True(t, v.Loading())

	close(release)
	<-tk.Done()
	assert.False(t, v.Loading())
}

func TestAddProductViewDestroyDropsCompletion(t *testing.T) {
	started := make(chan struct{})
	repo := &repoMock{
		create: func(ctx context.Context, draft models.ProductDraft) (*models.Product, error) {
			close(started)
			<-ctx.Done()
			return nil, ctx.Err()
		},
	}
	nav := &navigatorMock{}
	v := NewAddProductView(&dispatcherMock{}, repo, nav)

	v.Form.SetValue(ProductFormValue{Name: "Test Product", Price: util.Ptr(1.0)})
	tk := v.Submit(context.Background())
	<-started
	v.Destroy()

	select {
	case <-tk.Done():
	case <-time.After(time.Second):
		t.Fatal("task not released on destroy")
	}
	assert.Empty(t, nav.visited())
	assert.Equal(t, "Test Product", v.Form.Value().Name)
}

func TestAddProductViewCancel(t *testing.T) {
	repo := &repoMock{}
	nav := &navigatorMock{}
	v := NewAddProductView(&dispatcherMock{}, repo, nav)
	defer v.Destroy()

	v.Form.Input("unsaved", "", "")
	v.Cancel()
	assert.Equal(t, []string{"/"}, nav.visited())
	assert.Equal(t, 0, repo.total())
}

func TestAddProductViewSubmitNonFinitePrice(t *testing.T) {
	for _, price := range []string{"NaN", "Inf", "-Infinity"} {
		t.Run(price, func(t *testing.T) {
			repo := &repoMock{}
			nav := &navigatorMock{}
			v := NewAddProductView(&dispatcherMock{}, repo, nav)
			defer v.Destroy()

			v.Form.Input("Widget", "", price)
			_, err := v.Submit(context.Background()).Await(context.Background())

			assert.ErrorIs(t, err, models.ErrValidation)
			assert.NotErrorIs(t, err, models.ErrNetwork)
			assert.Zero(t, repo.total())
			assert.Empty(t, nav.visited())
			assert.True(t, v.Form.Touched(ControlPrice))
		})
	}
}
