package usecase

import (
	"errors"
	"math"
	"reflect"
	"strings"
	"sync"

	"github.com/go-playground/validator/v10"
	"github.com/spf13/cast"

	"github.com/nguyentranbao-ct/product-catalog/internal/models"
	"github.com/nguyentranbao-ct/product-catalog/pkg/util"
)

type Control string

const (
	ControlName        Control = "name"
	ControlDescription Control = "description"
	ControlPrice       Control = "price"
)

var Controls = []Control{ControlName, ControlDescription, ControlPrice}

// ProductFormValue is the editable part of a product. Price is nil until set.
type ProductFormValue struct {
	Name        string   `json:"name" validate:"required"`
	Description string   `json:"description"`
	Price       *float64 `json:"price" validate:"required"`
}

var formValidate = newFormValidator()

func newFormValidator() *validator.Validate {
	v := validator.New()
	v.RegisterTagNameFunc(func(fld reflect.StructField) string {
		name := strings.SplitN(fld.Tag.Get("json"), ",", 2)[0]
		if name == "-" {
			return ""
		}
		return name
	})
	return v
}

// ProductForm tracks the value of the product controls together with their
// touched and dirty flags.
type ProductForm struct {
	mu          sync.Mutex
	value       ProductFormValue
	touched     map[Control]bool
	dirty       map[Control]bool
	inputErrors map[Control]string
}

func NewProductForm() *ProductForm {
	f := &ProductForm{}
	f.reset()
	return f
}

func (f *ProductForm) reset() {
	f.value = ProductFormValue{}
	f.touched = make(map[Control]bool, len(Controls))
	f.dirty = make(map[Control]bool, len(Controls))
	f.inputErrors = make(map[Control]string)
}

// Reset returns the form to its pristine empty state.
func (f *ProductForm) Reset() {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.reset()
}

func (f *ProductForm) Value() ProductFormValue {
	f.mu.Lock()
	defer f.mu.Unlock()
	v := f.value
	if v.Price != nil {
		v.Price = util.Ptr(*v.Price)
	}
	return v
}

// SetValue replaces every control value without touching the interaction flags.
func (f *ProductForm) SetValue(v ProductFormValue) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.value = v
	f.inputErrors = make(map[Control]string)
}

// PatchValue copies the editable fields of p into the form.
func (f *ProductForm) PatchValue(p models.Product) {
	f.SetValue(ProductFormValue{
		Name:        p.Name,
		Description: p.Description,
		Price:       util.Ptr(p.Price),
	})
}

// Input applies raw user input. Controls whose value changed become dirty;
// a price that is not a number is kept as an input error.
func (f *ProductForm) Input(name, description, price string) {
	parsed, priceOK := parsePrice(price)

	f.mu.Lock()
	defer f.mu.Unlock()

	if name != f.value.Name {
		f.dirty[ControlName] = true
	}
	if description != f.value.Description {
		f.dirty[ControlDescription] = true
	}
	if !samePrice(parsed, f.value.Price) || !priceOK {
		f.dirty[ControlPrice] = true
	}

	f.value = ProductFormValue{Name: name, Description: description, Price: parsed}
	f.inputErrors = make(map[Control]string)
	if !priceOK {
		f.inputErrors[ControlPrice] = "Price must be a number"
	}
}

func parsePrice(raw string) (*float64, bool) {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return nil, true
	}
	v, err := cast.ToFloat64E(raw)
	if err != nil || math.IsNaN(v) || math.IsInf(v, 0) {
		return nil, false
	}
	return &v, true
}

func samePrice(a, b *float64) bool {
	if a == nil || b == nil {
		return a == b
	}
	return *a == *b
}

func (f *ProductForm) MarkAllAsTouched() {
	f.mu.Lock()
	defer f.mu.Unlock()
	for _, c := range Controls {
		f.touched[c] = true
	}
}

func (f *ProductForm) Touched(c Control) bool {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.touched[c]
}

func (f *ProductForm) Dirty(c Control) bool {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.dirty[c]
}

// Pristine reports whether no control has been changed by the user.
func (f *ProductForm) Pristine() bool {
	f.mu.Lock()
	defer f.mu.Unlock()
	return len(f.dirty) == 0
}

func (f *ProductForm) Valid() bool {
	return len(f.Errors()) == 0
}

// Errors returns one message per invalid control.
func (f *ProductForm) Errors() map[Control]string {
	f.mu.Lock()
	value := f.value
	errs := make(map[Control]string, len(f.inputErrors))
	for c, msg := range f.inputErrors {
		errs[c] = msg
	}
	f.mu.Unlock()

	var verrs validator.ValidationErrors
	if err := formValidate.Struct(value); errors.As(err, &verrs) {
		for _, fe := range verrs {
			c := Control(fe.Field())
			if _, ok := errs[c]; ok {
				continue
			}
			errs[c] = controlMessage(c, fe.Tag())
		}
	}
	return errs
}

func controlMessage(c Control, tag string) string {
	label := strings.ToUpper(string(c[:1])) + string(c[1:])
	if tag == "required" {
		return label + " is required"
	}
	return label + " is invalid"
}

// Draft converts the form value into a create payload.
func (f *ProductForm) Draft() models.ProductDraft {
	v := f.Value()
	return models.ProductDraft{
		Name:        v.Name,
		Description: v.Description,
		Price:       util.Val(v.Price),
	}
}
