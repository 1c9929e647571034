// internal/catalog/operations.go
package catalog

import (
	"context"

	apperrors "franchise-catalog/internal/common/errors"
	"franchise-catalog/internal/models"
)

// AddBranch appends branch to the franchise.
func (e *Engine) AddBranch(ctx context.Context, franchiseID string, branch models.Branch) (*models.Franchise, error) {
	var saved *models.Franchise
	err := e.observe(ctx, opAddBranch, franchiseID, func(ctx context.Context) (err error) {
		saved, err = e.mutate(ctx, opAddBranch, franchiseID, func(f *models.Franchise) (*models.Franchise, error) {
			branches := f.Branches()
			if CollidesWith(branch.Name(), branchNames(branches)) {
				return nil, apperrors.NewDuplicateBranchNameError(franchiseID, branch.Name())
			}
			return f.WithBranches(append(branches, branch))
		})
		return err
	})
	return saved, err
}

// AddProduct appends product to the named branch.
func (e *Engine) AddProduct(ctx context.Context, franchiseID, branchName string, product models.Product) (*models.Franchise, error) {
	var saved *models.Franchise
	err := e.observe(ctx, opAddProduct, franchiseID, func(ctx context.Context) (err error) {
		saved, err = e.mutate(ctx, opAddProduct, franchiseID, func(f *models.Franchise) (*models.Franchise, error) {
			return editBranch(f, branchName, func(b models.Branch) (models.Branch, error) {
				products := b.Products()
				if CollidesWith(product.Name(), productNames(products)) {
					return models.Branch{}, apperrors.NewDuplicateProductNameError(b.Name(), product.Name())
				}
				return b.WithProducts(append(products, product))
			})
		})
		return err
	})
	return saved, err
}

// RemoveProduct drops the first product of the branch named productName.
func (e *Engine) RemoveProduct(ctx context.Context, franchiseID, branchName, productName string) (*models.Franchise, error) {
	var saved *models.Franchise
	err := e.observe(ctx, opRemoveProduct, franchiseID, func(ctx context.Context) (err error) {
		saved, err = e.mutate(ctx, opRemoveProduct, franchiseID, func(f *models.Franchise) (*models.Franchise, error) {
			return editBranch(f, branchName, func(b models.Branch) (models.Branch, error) {
				products := b.Products()
				i := findProduct(products, productName)
				if i < 0 {
					return models.Branch{}, apperrors.NewProductNotFoundError(b.Name(), productName)
				}
				return b.WithProducts(append(products[:i], products[i+1:]...))
			})
		})
		return err
	})
	return saved, err
}

// UpdateStock sets the stock of one product. The product constructor is not
// re-run; a negative value is stored unless the engine rejects it by policy.
func (e *Engine) UpdateStock(ctx context.Context, franchiseID, branchName, productName string, newStock int) (*models.Franchise, error) {
	var saved *models.Franchise
	err := e.observe(ctx, opUpdateStock, franchiseID, func(ctx context.Context) (err error) {
		saved, err = e.mutate(ctx, opUpdateStock, franchiseID, func(f *models.Franchise) (*models.Franchise, error) {
			return editProduct(f, branchName, productName, func(p models.Product) (models.Product, error) {
				if newStock < 0 && e.rejectNegativeStock {
					return models.Product{}, apperrors.NewDomainValidationError(apperrors.ErrCodeInvalidProduct, "Product stock cannot be less than 0")
				}
				return p.WithStock(newStock), nil
			})
		})
		return err
	})
	return saved, err
}

// RenameFranchise checks global name uniqueness first, then loads the
// franchise. Renaming to the current name in another case is allowed.
func (e *Engine) RenameFranchise(ctx context.Context, franchiseID, newName string) (*models.Franchise, error) {
	var saved *models.Franchise
	err := e.observe(ctx, opRenameFranchise, franchiseID, func(ctx context.Context) error {
		all, err := e.store.List(ctx)
		if err != nil {
			return err
		}
		if FranchiseNameTaken(newName, franchiseID, all) {
			return duplicateFranchiseName(newName)
		}

		saved, err = e.mutate(ctx, opRenameFranchise, franchiseID, func(f *models.Franchise) (*models.Franchise, error) {
			return f.WithName(newName)
		})
		return err
	})
	return saved, err
}

// RenameBranch checks for a sibling already named newName before locating
// currentName, so a duplicate wins over a missing branch.
func (e *Engine) RenameBranch(ctx context.Context, franchiseID, currentName, newName string) (*models.Franchise, error) {
	var saved *models.Franchise
	err := e.observe(ctx, opRenameBranch, franchiseID, func(ctx context.Context) (err error) {
		saved, err = e.mutate(ctx, opRenameBranch, franchiseID, func(f *models.Franchise) (*models.Franchise, error) {
			branches := f.Branches()
			if renameCollides(branchNames(branches), currentName, newName) {
				return nil, apperrors.NewDuplicateBranchNameError(franchiseID, newName)
			}
			i := findBranch(branches, currentName)
			if i < 0 {
				return nil, apperrors.NewBranchNotFoundError(franchiseID, currentName)
			}
			renamed, err := branches[i].WithName(newName)
			if err != nil {
				return nil, err
			}
			branches[i] = renamed
			return f.WithBranches(branches)
		})
		return err
	})
	return saved, err
}

// RenameProduct locates the branch, checks sibling products for newName, then
// locates currentName.
func (e *Engine) RenameProduct(ctx context.Context, franchiseID, branchName, currentName, newName string) (*models.Franchise, error) {
	var saved *models.Franchise
	err := e.observe(ctx, opRenameProduct, franchiseID, func(ctx context.Context) (err error) {
		saved, err = e.mutate(ctx, opRenameProduct, franchiseID, func(f *models.Franchise) (*models.Franchise, error) {
			return editBranch(f, branchName, func(b models.Branch) (models.Branch, error) {
				products := b.Products()
				if renameCollides(productNames(products), currentName, newName) {
					return models.Branch{}, apperrors.NewDuplicateProductNameError(b.Name(), newName)
				}
				i := findProduct(products, currentName)
				if i < 0 {
					return models.Branch{}, apperrors.NewProductNotFoundError(b.Name(), currentName)
				}
				renamed, err := products[i].WithName(newName)
				if err != nil {
					return models.Branch{}, err
				}
				products[i] = renamed
				return b.WithProducts(products)
			})
		})
		return err
	})
	return saved, err
}

// editBranch applies edit to the first branch named branchName.
func editBranch(f *models.Franchise, branchName string, edit func(models.Branch) (models.Branch, error)) (*models.Franchise, error) {
	branches := f.Branches()
	i := findBranch(branches, branchName)
	if i < 0 {
		return nil, apperrors.NewBranchNotFoundError(f.ID(), branchName)
	}
	edited, err := edit(branches[i])
	if err != nil {
		return nil, err
	}
	branches[i] = edited
	return f.WithBranches(branches)
}

// editProduct applies edit to the first matching product of the first
// matching branch.
func editProduct(f *models.Franchise, branchName, productName string, edit func(models.Product) (models.Product, error)) (*models.Franchise, error) {
	return editBranch(f, branchName, func(b models.Branch) (models.Branch, error) {
		products := b.Products()
		i := findProduct(products, productName)
		if i < 0 {
			return models.Branch{}, apperrors.NewProductNotFoundError(b.Name(), productName)
		}
		edited, err := edit(products[i])
		if err != nil {
			return models.Branch{}, err
		}
		products[i] = edited
		return b.WithProducts(products)
	})
}
