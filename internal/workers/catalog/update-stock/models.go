// internal/workers/catalog/update-stock/models.go
package updatestock

type Input struct {
	FranchiseID string `json:"franchiseId"`
	BranchName  string `json:"branchName"`
	ProductName string `json:"productName"`
	NewStock    int    `json:"newStock"`
}

type Output struct {
	FranchiseID string `json:"franchiseId"`
	BranchName  string `json:"branchName"`
	ProductName string `json:"productName"`
	Stock       int    `json:"stock"`
	Version     int64  `json:"franchiseVersion"`
}
