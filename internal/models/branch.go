// internal/models/branch.go
package models

import (
	"fmt"

	apperrors "franchise-catalog/internal/common/errors"
)

const MaxBranchNameLength = 50

// Branch owns an ordered list of products with case-insensitively unique names.
type Branch struct {
	name     string
	products []Product
}

// NewBranch validates the name and product uniqueness. products is copied.
func NewBranch(name string, products []Product) (Branch, error) {
	if isBlank(name) {
		return Branch{}, apperrors.NewDomainValidationError(apperrors.ErrCodeInvalidBranch, "Branch name cannot be blank")
	}
	if nameLength(name) > MaxBranchNameLength {
		return Branch{}, apperrors.NewDomainValidationError(apperrors.ErrCodeInvalidBranch, "Branch name length cannot be greater than 50 characters")
	}
	for i := range products {
		for j := 0; j < i; j++ {
			if SameName(products[i].name, products[j].name) {
				return Branch{}, apperrors.NewDomainValidationError(apperrors.ErrCodeInvalidBranch,
					fmt.Sprintf("Branch %q has duplicate product %q", name, products[i].name))
			}
		}
	}
	return Branch{name: name, products: copyProducts(products)}, nil
}

func (b Branch) Name() string { return b.name }

// Products returns a copy of the product list.
func (b Branch) Products() []Product { return copyProducts(b.products) }

// ProductCount avoids the copy made by Products.
func (b Branch) ProductCount() int { return len(b.products) }

// WithName returns a renamed copy validated through NewBranch.
func (b Branch) WithName(name string) (Branch, error) {
	return NewBranch(name, b.products)
}

// WithProducts returns a copy with the product list replaced, validated
// through NewBranch.
func (b Branch) WithProducts(products []Product) (Branch, error) {
	return NewBranch(b.name, products)
}

func copyProducts(in []Product) []Product {
	out := make([]Product, len(in))
	copy(out, in)
	return out
}
