package usecase

import (
	"cmp"
	"context"
	"slices"
	"sync"

	"github.com/nguyentranbao-ct/product-catalog/internal/models"
	"github.com/nguyentranbao-ct/product-catalog/internal/repo/productapi"
	"github.com/nguyentranbao-ct/product-catalog/internal/state"
	log "github.com/nguyentranbao-ct/product-catalog/pkg/logger/log"
)

type ListState int

const (
	ListIdle ListState = iota
	ListLoading
	ListLoaded
	ListFailed
)

func (s ListState) String() string {
	switch s {
	case ListLoading:
		return "loading"
	case ListLoaded:
		return "loaded"
	case ListFailed:
		return "failed"
	default:
		return "idle"
	}
}

type ProductListView struct {
	header
	lifetime
	repo productapi.Client
	nav  Navigator

	mu       sync.Mutex
	state    ListState
	products []models.Product
	seq      *ProductSequence
}

func NewProductListView(d state.Dispatcher, repo productapi.Client, nav Navigator) *ProductListView {
	return &ProductListView{
		header:   newHeader(d, TitleProducts),
		lifetime: newLifetime(),
		repo:     repo,
		nav:      nav,
	}
}

// Init exposes the product sequence. Nothing is fetched until the sequence
// is subscribed.
func (v *ProductListView) Init() {
	v.mu.Lock()
	defer v.mu.Unlock()
	v.seq = &ProductSequence{view: v}
}

// Products is nil before Init.
func (v *ProductListView) Products() *ProductSequence {
	v.mu.Lock()
	defer v.mu.Unlock()
	return v.seq
}

func (v *ProductListView) State() ListState {
	v.mu.Lock()
	defer v.mu.Unlock()
	return v.state
}

// Collection returns the last loaded products. ok is false while nothing
// was loaded or the last load failed; a loaded empty catalog is ([]{}, true).
func (v *ProductListView) Collection() ([]models.Product, bool) {
	v.mu.Lock()
	defer v.mu.Unlock()
	if v.state != ListLoaded {
		return nil, false
	}
	return slices.Clone(v.products), true
}

// Load subscribes to the sequence and waits for its single delivery.
func (v *ProductListView) Load(ctx context.Context) ([]models.Product, bool) {
	seq := v.Products()
	if seq == nil {
		v.Init()
		seq = v.Products()
	}
	products, ok := <-seq.Subscribe(ctx)
	return products, ok
}

func (v *ProductListView) EditProduct(id int64) {
	v.nav.NavigateByURL(ProductRoute(id))
}

func (v *ProductListView) AddProduct() {
	v.nav.NavigateByURL(RouteAddProduct)
}

func (v *ProductListView) transition(s ListState, products []models.Product) {
	v.mu.Lock()
	defer v.mu.Unlock()
	v.state = s
	v.products = products
}

// ProductSequence delivers the catalog sorted by descending id. Every
// subscription performs its own fetch and yields at most one value.
type ProductSequence struct {
	view *ProductListView
}

// Subscribe starts a fetch. The returned channel receives the products once
// and is closed; on failure it is closed without a value.
func (s *ProductSequence) Subscribe(ctx context.Context) <-chan []models.Product {
	out := make(chan []models.Product, 1)
	v := s.view
	v.transition(ListLoading, nil)

	ctx, cancel := v.join(ctx)
	go func() {
		defer close(out)
		defer cancel()

		products, err := v.repo.List(ctx)
		if v.destroyed() {
			return
		}
		if err != nil {
			log.Warnw(ctx, "list products failed", "error", err)
			v.transition(ListFailed, nil)
			return
		}

		sorted := sortByIDDesc(products)
		v.transition(ListLoaded, sorted)
		out <- slices.Clone(sorted)
	}()
	return out
}

func sortByIDDesc(products []models.Product) []models.Product {
	sorted := slices.Clone(products)
	if sorted == nil {
		sorted = []models.Product{}
	}
	slices.SortFunc(sorted, func(a, b models.Product) int {
		return cmp.Compare(b.ID, a.ID)
	})
	return sorted
}
