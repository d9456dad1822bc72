package usecase

import "fmt"

const (
	RouteList       = "/"
	RouteAddProduct = "/add-product"
)

// ProductRoute is the edit page of a product.
func ProductRoute(id int64) string {
	return fmt.Sprintf("/products/%d", id)
}

// Navigator changes the current route.
type Navigator interface {
	NavigateByURL(url string)
}
