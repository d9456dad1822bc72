package usecase

import (
	"context"
	"sync"

	"github.com/nguyentranbao-ct/product-catalog/internal/state"
)

const (
	TitleProducts    = "Products"
	TitleAddProduct  = "Add Product"
	TitleEditProduct = "Edit Product"
)

// header is the page title a view dispatched when it was created.
type header string

func newHeader(d state.Dispatcher, title string) header {
	d.Dispatch(state.UpdateHeaderTitle{Title: title})
	return header(title)
}

// Title returns the title of the view. It stays the same when other views
// update the header state later.
func (h header) Title() string {
	return string(h)
}

// lifetime ties pending work to a view. Results that arrive after Destroy
// are dropped.
type lifetime struct {
	ctx    context.Context
	cancel context.CancelFunc
}

func newLifetime() lifetime {
	ctx, cancel := context.WithCancel(context.Background())
	return lifetime{ctx: ctx, cancel: cancel}
}

// Destroy cancels in-flight requests of the view.
func (l lifetime) Destroy() {
	l.cancel()
}

func (l lifetime) destroyed() bool {
	return l.ctx.Err() != nil
}

// join derives a context that ends with either ctx or the view.
func (l lifetime) join(ctx context.Context) (context.Context, context.CancelFunc) {
	ctx, cancel := context.WithCancel(ctx)
	stop := context.AfterFunc(l.ctx, cancel)
	return ctx, func() {
		stop()
		cancel()
	}
}

type loadingFlag struct {
	mu      sync.Mutex
	loading bool
}

func (f *loadingFlag) setLoading(v bool) {
	f.mu.Lock()
	f.loading = v
	f.mu.Unlock()
}

// Loading reports whether a request of the view is in flight.
func (f *loadingFlag) Loading() bool {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.loading
}
