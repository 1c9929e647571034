// internal/workers/catalog/add-product/models.go
package addproduct

type Input struct {
	FranchiseID string       `json:"franchiseId"`
	BranchName  string       `json:"branchName"`
	Product     ProductInput `json:"product"`
}

type ProductInput struct {
	Name  string `json:"name"`
	Stock int    `json:"stock"`
}

type Output struct {
	FranchiseID  string `json:"franchiseId"`
	BranchName   string `json:"branchName"`
	ProductName  string `json:"productName"`
	ProductCount int    `json:"productCount"`
	Version      int64  `json:"franchiseVersion"`
}
