package productapi

import (
	"fmt"
	"net/http"

	"github.com/nguyentranbao-ct/product-catalog/internal/models"
)

// StatusError reports a non-2xx response. The response body is not interpreted.
type StatusError struct {
	Method     string
	URL        string
	StatusCode int
}

func (e *StatusError) Error() string {
	return fmt.Sprintf("%s %s: unexpected status %d", e.Method, e.URL, e.StatusCode)
}

func (e *StatusError) Is(target error) bool {
	return target == models.ErrNotFound && e.StatusCode == http.StatusNotFound
}
