// internal/models/franchise.go
package models

import (
	"fmt"

	apperrors "franchise-catalog/internal/common/errors"
)

const MaxFranchiseNameLength = 100

// Franchise is the aggregate root: one document holding every branch and
// product. version is the store revision used for compare-and-swap writes;
// 0 means the franchise has never been persisted.
type Franchise struct {
	id       string
	name     string
	branches []Branch
	version  int64
}

// NewFranchise validates id, name and branch-name uniqueness. branches is copied.
func NewFranchise(id, name string, branches []Branch) (*Franchise, error) {
	if isBlank(id) {
		return nil, apperrors.NewDomainValidationError(apperrors.ErrCodeInvalidFranchise, "Franchise ID cannot be blank")
	}
	if isBlank(name) {
		return nil, apperrors.NewDomainValidationError(apperrors.ErrCodeInvalidFranchise, "Franchise name cannot be blank")
	}
	if nameLength(name) > MaxFranchiseNameLength {
		return nil, apperrors.NewDomainValidationError(apperrors.ErrCodeInvalidFranchise, "Franchise name length cannot be greater than 100 characters")
	}
	for i := range branches {
		for j := 0; j < i; j++ {
			if SameName(branches[i].name, branches[j].name) {
				return nil, apperrors.NewDomainValidationError(apperrors.ErrCodeInvalidFranchise,
					fmt.Sprintf("Franchise %q has duplicate branch %q", name, branches[i].name))
			}
		}
	}
	return &Franchise{id: id, name: name, branches: copyBranches(branches)}, nil
}

func (f *Franchise) ID() string { return f.id }

func (f *Franchise) Name() string { return f.name }

func (f *Franchise) Version() int64 { return f.version }

// Branches returns a copy of the branch list. Branch values share no
// mutable state with the franchise.
func (f *Franchise) Branches() []Branch { return copyBranches(f.branches) }

func (f *Franchise) BranchCount() int { return len(f.branches) }

// WithName returns a renamed copy, keeping the version.
func (f *Franchise) WithName(name string) (*Franchise, error) {
	next, err := NewFranchise(f.id, name, f.branches)
	if err != nil {
		return nil, err
	}
	next.version = f.version
	return next, nil
}

// WithBranches returns a copy with the branch list replaced, keeping the version.
func (f *Franchise) WithBranches(branches []Branch) (*Franchise, error) {
	next, err := NewFranchise(f.id, f.name, branches)
	if err != nil {
		return nil, err
	}
	next.version = f.version
	return next, nil
}

// WithVersion returns a copy carrying the given store revision. Only store
// implementations should call it.
func (f *Franchise) WithVersion(version int64) *Franchise {
	next := *f
	next.branches = copyBranches(f.branches)
	next.version = version
	return &next
}

func copyBranches(in []Branch) []Branch {
	out := make([]Branch, len(in))
	for i, b := range in {
		out[i] = Branch{name: b.name, products: copyProducts(b.products)}
	}
	return out
}
