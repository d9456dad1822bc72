package productapi

import (
	"context"
	"fmt"
	"net/http"
	"strconv"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/go-resty/resty/v2"
	"github.com/goccy/go-json"
	"github.com/prometheus/client_golang/prometheus"

	"github.com/nguyentranbao-ct/product-catalog/internal/config"
	"github.com/nguyentranbao-ct/product-catalog/internal/models"
	"github.com/nguyentranbao-ct/product-catalog/pkg/util"
)

// Client is the product REST backend. Every call is one request/response
// round trip; nothing is cached.
type Client interface {
	List(ctx context.Context) ([]models.Product, error)
	Get(ctx context.Context, id int64) (*models.Product, error)
	Create(ctx context.Context, draft models.ProductDraft) (*models.Product, error)
	Update(ctx context.Context, product models.Product) (*models.Product, error)
	Delete(ctx context.Context, id int64) error
}

type client struct {
	http     *resty.Client
	validate *validator.Validate
	latency  *prometheus.HistogramVec
}

func NewClient(cfg *config.Config) (Client, error) {
	latency, err := util.GetHistogramVec("product_api_request_duration_seconds", "method", "code")
	if err != nil {
		return nil, fmt.Errorf("product api metrics: %w", err)
	}

	return &client{
		http: util.NewRestyClient(util.RestyOptions{
			BaseURL:    cfg.ProductAPI.BaseURL,
			Timeout:    cfg.ProductAPI.Timeout,
			RetryCount: cfg.ProductAPI.RetryCount,
		}),
		validate: validator.New(),
		latency:  latency,
	}, nil
}

func (c *client) List(ctx context.Context) ([]models.Product, error) {
	resp, err := c.do(ctx, http.MethodGet, "/products", c.http.R())
	if err != nil {
		return nil, err
	}

	var products []models.Product
	if err := c.decode(resp, &products); err != nil {
		return nil, err
	}
	for i := range products {
		if err := c.validate.Struct(products[i]); err != nil {
			return nil, fmt.Errorf("%w: products[%d]: %w", models.ErrMalformedPayload, i, err)
		}
	}
	if products == nil {
		products = []models.Product{}
	}
	return products, nil
}

func (c *client) Get(ctx context.Context, id int64) (*models.Product, error) {
	resp, err := c.do(ctx, http.MethodGet, "/products/{id}", c.withID(id))
	if err != nil {
		return nil, err
	}
	return c.decodeProduct(resp)
}

func (c *client) Create(ctx context.Context, draft models.ProductDraft) (*models.Product, error) {
	resp, err := c.do(ctx, http.MethodPost, "/products", c.http.R().SetBody(draft))
	if err != nil {
		return nil, err
	}
	return c.decodeProduct(resp)
}

func (c *client) Update(ctx context.Context, product models.Product) (*models.Product, error) {
	resp, err := c.do(ctx, http.MethodPut, "/products/{id}", c.withID(product.ID).SetBody(product))
	if err != nil {
		return nil, err
	}
	return c.decodeProduct(resp)
}

func (c *client) Delete(ctx context.Context, id int64) error {
	_, err := c.do(ctx, http.MethodDelete, "/products/{id}", c.withID(id))
	return err
}

func (c *client) withID(id int64) *resty.Request {
	return c.http.R().SetPathParam("id", strconv.FormatInt(id, 10))
}

func (c *client) do(ctx context.Context, method, path string, req *resty.Request) (*resty.Response, error) {
	start := time.Now()
	req.SetContext(ctx).SetHeader("Accept", "application/json")

	resp, err := req.Execute(method, path)
	if err != nil {
		c.latency.WithLabelValues(method, "error").Observe(time.Since(start).Seconds())
		return nil, fmt.Errorf("%w: %s %s: %w", models.ErrNetwork, method, path, err)
	}
	c.latency.WithLabelValues(method, strconv.Itoa(resp.StatusCode())).Observe(time.Since(start).Seconds())

	if resp.IsError() || resp.StatusCode() >= http.StatusMultipleChoices {
		return nil, &StatusError{
			Method:     method,
			URL:        resp.Request.URL,
			StatusCode: resp.StatusCode(),
		}
	}
	return resp, nil
}

func (c *client) decode(resp *resty.Response, out any) error {
	if err := json.Unmarshal(resp.Body(), out); err != nil {
		return fmt.Errorf("%w: %w", models.ErrMalformedPayload, err)
	}
	return nil
}

func (c *client) decodeProduct(resp *resty.Response) (*models.Product, error) {
	var product models.Product
	if err := c.decode(resp, &product); err != nil {
		return nil, err
	}
	if err := c.validate.Struct(product); err != nil {
		return nil, fmt.Errorf("%w: %w", models.ErrMalformedPayload, err)
	}
	return &product, nil
}
