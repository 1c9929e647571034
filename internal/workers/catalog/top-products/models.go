// internal/workers/catalog/top-products/models.go
package topproducts

type Input struct {
	FranchiseID string `json:"franchiseId"`
}

type TopProduct struct {
	BranchName  string `json:"branchName"`
	ProductName string `json:"productName"`
	Stock       int    `json:"stock"`
}

type Output struct {
	FranchiseID string       `json:"franchiseId"`
	TopProducts []TopProduct `json:"topProducts"`
	TotalStock  int          `json:"totalStock"`
}
