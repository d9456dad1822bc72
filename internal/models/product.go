package models

// Product is a catalog entry as returned by the product API.
type Product struct {
	ID          int64   `json:"id" validate:"required,gt=0"`
	Name        string  `json:"name" validate:"required"`
	Description string  `json:"description"`
	Price       float64 `json:"price"`
}

// ProductDraft is the create payload. The backend assigns the id.
type ProductDraft struct {
	Name        string  `json:"name"`
	Description string  `json:"description"`
	Price       float64 `json:"price"`
}

// WithID merges the draft with an existing identifier.
func (d ProductDraft) WithID(id int64) Product {
	return Product{
		ID:          id,
		Name:        d.Name,
		Description: d.Description,
		Price:       d.Price,
	}
}
