// internal/models/product.go
package models

import (
	apperrors "franchise-catalog/internal/common/errors"
)

const MaxProductNameLength = 100

// Product is a named stock entry inside a branch. The zero value is not a
// valid product; use NewProduct.
type Product struct {
	name  string
	stock int
}

// NewProduct validates name and stock and returns the product.
func NewProduct(name string, stock int) (Product, error) {
	if isBlank(name) {
		return Product{}, apperrors.NewDomainValidationError(apperrors.ErrCodeInvalidProduct, "Product name cannot be blank")
	}
	if nameLength(name) > MaxProductNameLength {
		return Product{}, apperrors.NewDomainValidationError(apperrors.ErrCodeInvalidProduct, "Product name length cannot be greater than 100 characters")
	}
	if stock < 0 {
		return Product{}, apperrors.NewDomainValidationError(apperrors.ErrCodeInvalidProduct, "Product stock cannot be less than 0")
	}
	return Product{name: name, stock: stock}, nil
}

// RestoreProduct rebuilds a stored product. The name is validated as in
// NewProduct; the stock is taken as stored, since UpdateStock may have
// written a negative value under the allow policy.
func RestoreProduct(name string, stock int) (Product, error) {
	p, err := NewProduct(name, 0)
	if err != nil {
		return Product{}, err
	}
	return p.WithStock(stock), nil
}

func (p Product) Name() string { return p.name }

func (p Product) Stock() int { return p.stock }

// WithName returns a renamed copy. The name goes through NewProduct's
// checks; the stock is kept as is.
func (p Product) WithName(name string) (Product, error) {
	return RestoreProduct(name, p.stock)
}

// WithStock returns a copy with stock replaced. It does not re-check the
// lower bound; the stock policy in the catalog engine decides that.
func (p Product) WithStock(stock int) Product {
	p.stock = stock
	return p
}
