// internal/models/branch_top_product.go
package models

// BranchTopProduct pairs a branch with its highest-stock product. It is
// computed on read and never stored.
type BranchTopProduct struct {
	BranchName string
	Product    Product
}
