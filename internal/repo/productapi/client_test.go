package productapi

import (
	"context"
	"errors"
	"io"
	"net/http"
	"net/http/httptest"
	"sync"
	"testing"
	"time"

	"github.com/goccy/go-json"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/nguyentranbao-ct/product-catalog/internal/config"
	"github.com/nguyentranbao-ct/product-catalog/internal/models"
)

type recordedRequest struct {
	Method string
	Path   string
	Body   string
}

func newTestClient(t *testing.T, handler func(w http.ResponseWriter, r *http.Request)) (Client, func() []recordedRequest) {
	t.Helper()
	var (
		mu       sync.Mutex
		requests []recordedRequest
	)
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		body, _ := io.ReadAll(r.Body)
		mu.Lock()
		requests = append(requests, recordedRequest{Method: r.Method, Path: r.URL.Path, Body: string(body)})
		mu.Unlock()
		handler(w, r)
	}))
	t.Cleanup(srv.Close)

	c, err := NewClient(&config.Config{
		ProductAPI: config.ProductAPIConfig{
			BaseURL: srv.URL + "/api",
			Timeout: 2 * time.Second,
		},
	})
	require.NoError(t, err)
	return c, func() []recordedRequest {
		mu.Lock()
		defer mu.Unlock()
		return append([]recordedRequest(nil), requests...)
	}
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

func TestList(t *testing.T) {
	c, reqs := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		writeJSON(w, http.StatusOK, []models.Product{
			{ID: 1, Name: "Laptop", Description: "A powerful laptop", Price: 1299.99},
			{ID: 2, Name: "Mouse", Price: 29.99},
		})
	})

	products, err := c.List(context.Background())
	require.NoError(t, err)
	assert.Len(t, products, 2)
	assert.Equal(t, "Laptop", products[0].Name)
	assert.Equal(t, []recordedRequest{{Method: http.MethodGet, Path: "/api/products", Body: ""}}, reqs())
}

func TestListEmpty(t *testing.T) {
	c, _ := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		writeJSON(w, http.StatusOK, []models.Product{})
	})

	products, err := c.List(context.Background())
	require.NoError(t, err)
	assert.NotNil(t, products)
	assert.Empty(t, products)
}

func TestGet(t *testing.T) {
	c, reqs := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		writeJSON(w, http.StatusOK, models.Product{ID: 1, Name: "Mock Product", Description: "Mock Description", Price: 10.99})
	})

	p, err := c.Get(context.Background(), 1)
	require.NoError(t, err)
	assert.Equal(t, &models.Product{ID: 1, Name: "Mock Product", Description: "Mock Description", Price: 10.99}, p)
	assert.Equal(t, "/api/products/1", reqs()[0].Path)
}

func TestGetNotFound(t *testing.T) {
	c, _ := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		writeJSON(w, http.StatusNotFound, map[string]string{"error": "missing"})
	})

	_, err := c.Get(context.Background(), 7)
	require.Error(t, err)
	assert.ErrorIs(t, err, models.ErrNotFound)

	var statusErr *StatusError
	require.True(t, errors.As(err, &statusErr))
	assert.Equal(t, http.StatusNotFound, statusErr.StatusCode)
	assert.Equal(t, http.MethodGet, statusErr.Method)
}

func TestServerErrorIsNotNotFound(t *testing.T) {
	c, reqs := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusInternalServerError)
	})

	_, err := c.Get(context.Background(), 1)
	require.Error(t, err)
	assert.NotErrorIs(t, err, models.ErrNotFound)
	assert.Len(t, reqs(), 1, "no retries by default")
}

func TestMalformedPayload(t *testing.T) {
	tests := []struct {
		name string
		body string
	}{
		{name: "not json", body: "<html>"},
		{name: "missing id", body: `{"name":"x","price":1}`},
		{name: "missing name", body: `{"id":3,"price":1}`},
		{name: "wrong type", body: `{"id":"three","name":"x"}`},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			c, _ := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
				w.Header().Set("Content-Type", "application/json")
				_, _ = io.WriteString(w, tt.body)
			})

			_, err := c.Get(context.Background(), 3)
			assert.ErrorIs(t, err, models.ErrMalformedPayload)
		})
	}
}

func TestCreateOmitsID(t *testing.T) {
	c, reqs := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		writeJSON(w, http.StatusCreated, models.Product{ID: 10, Name: "Test Product", Description: "Test Description", Price: 20})
	})

	p, err := c.Create(context.Background(), models.ProductDraft{Name: "Test Product", Description: "Test Description", Price: 20})
	require.NoError(t, err)
	assert.Equal(t, int64(10), p.ID)

	req := reqs()[0]
	assert.Equal(t, http.MethodPost, req.Method)
	assert.Equal(t, "/api/products", req.Path)

	var sent map[string]any
	require.NoError(t, json.Unmarshal([]byte(req.Body), &sent))
	assert.NotContains(t, sent, "id")
	assert.Equal(t, "Test Product", sent["name"])
	assert.Equal(t, 20.0, sent["price"])
}

func TestUpdate(t *testing.T) {
	c, reqs := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		writeJSON(w, http.StatusOK, models.Product{ID: 1, Name: "Updated", Price: 25})
	})

	_, err := c.Update(context.Background(), models.Product{ID: 1, Name: "Updated", Price: 25})
	require.NoError(t, err)

	req := reqs()[0]
	assert.Equal(t, http.MethodPut, req.Method)
	assert.Equal(t, "/api/products/1", req.Path)
	assert.JSONEq(t, `{"id":1,"name":"Updated","description":"","price":25}`, req.Body)
}

func TestDelete(t *testing.T) {
	t.Run("ack without body", func(t *testing.T) {
		c, reqs := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
			w.WriteHeader(http.StatusNoContent)
		})

		require.NoError(t, c.Delete(context.Background(), 4))
		assert.Equal(t, recordedRequest{Method: http.MethodDelete, Path: "/api/products/4"}, reqs()[0])
	})

	t.Run("deleted product body is ignored", func(t *testing.T) {
		c, _ := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
			writeJSON(w, http.StatusOK, models.Product{ID: 4, Name: "Gone"})
		})

		assert.NoError(t, c.Delete(context.Background(), 4))
	})

	t.Run("failure", func(t *testing.T) {
		c, _ := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
			w.WriteHeader(http.StatusBadGateway)
		})

		var statusErr *StatusError
		assert.ErrorAs(t, c.Delete(context.Background(), 4), &statusErr)
	})
}

func TestNetworkFailure(t *testing.T) {
	c, err := NewClient(&config.Config{
		ProductAPI: config.ProductAPIConfig{
			BaseURL: "http://127.0.0.1:1/api",
			Timeout: time.Second,
		},
	})
	require.NoError(t, err)

	_, err = c.List(context.Background())
	assert.ErrorIs(t, err, models.ErrNetwork)
}

func TestContextCancellation(t *testing.T) {
	release := make(chan struct{})
	c, _ := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		select {
		case <-release:
		case <-r.Context().Done():
		}
	})
	defer close(release)

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := c.List(ctx)
	assert.ErrorIs(t, err, context.Canceled)
}
