// internal/api/dto.go
package api

import (
	"franchise-catalog/internal/models"
)

// ==========================
// Requests
// ==========================

type ProductRequest struct {
	Name  string `json:"name"`
	Stock int    `json:"stock"`
}

type BranchRequest struct {
	Name     string           `json:"name"`
	Products []ProductRequest `json:"products"`
}

type FranchiseRequest struct {
	ID       string          `json:"id"`
	Name     string          `json:"name"`
	Branches []BranchRequest `json:"branches"`
}

func (r ProductRequest) toModel() (models.Product, error) {
	return models.NewProduct(r.Name, r.Stock)
}

func (r BranchRequest) toModel() (models.Branch, error) {
	products := make([]models.Product, 0, len(r.Products))
	for _, p := range r.Products {
		product, err := p.toModel()
		if err != nil {
			return models.Branch{}, err
		}
		products = append(products, product)
	}
	return models.NewBranch(r.Name, products)
}

func (r FranchiseRequest) toModel() (*models.Franchise, error) {
	branches := make([]models.Branch, 0, len(r.Branches))
	for _, b := range r.Branches {
		branch, err := b.toModel()
		if err != nil {
			return nil, err
		}
		branches = append(branches, branch)
	}
	return models.NewFranchise(r.ID, r.Name, branches)
}

// ==========================
// Responses
// ==========================

type ProductResponse struct {
	Name  string `json:"name"`
	Stock int    `json:"stock"`
}

type BranchResponse struct {
	Name     string            `json:"name"`
	Products []ProductResponse `json:"products"`
}

type FranchiseResponse struct {
	ID       string           `json:"id"`
	Name     string           `json:"name"`
	Branches []BranchResponse `json:"branches"`
}

type BranchTopProductResponse struct {
	BranchName string          `json:"branchName"`
	Product    ProductResponse `json:"product"`
}

// ErrorResponse is the body of every non-2xx answer.
type ErrorResponse struct {
	Status    int    `json:"status"`
	Code      string `json:"code"`
	Message   string `json:"message"`
	Path      string `json:"path"`
	Timestamp string `json:"timestamp"`
	RequestID string `json:"requestId"`
}

func toProductResponse(p models.Product) ProductResponse {
	return ProductResponse{Name: p.Name(), Stock: p.Stock()}
}

func toFranchiseResponse(f *models.Franchise) FranchiseResponse {
	out := FranchiseResponse{
		ID:       f.ID(),
		Name:     f.Name(),
		Branches: make([]BranchResponse, 0, f.BranchCount()),
	}
	for _, b := range f.Branches() {
		branch := BranchResponse{
			Name:     b.Name(),
			Products: make([]ProductResponse, 0, b.ProductCount()),
		}
		for _, p := range b.Products() {
			branch.Products = append(branch.Products, toProductResponse(p))
		}
		out.Branches = append(out.Branches, branch)
	}
	return out
}

func toFranchiseResponses(fs []*models.Franchise) []FranchiseResponse {
	out := make([]FranchiseResponse, 0, len(fs))
	for _, f := range fs {
		out = append(out, toFranchiseResponse(f))
	}
	return out
}

func toTopProductResponses(tops []models.BranchTopProduct) []BranchTopProductResponse {
	out := make([]BranchTopProductResponse, 0, len(tops))
	for _, t := range tops {
		out = append(out, BranchTopProductResponse{
			BranchName: t.BranchName,
			Product:    toProductResponse(t.Product),
		})
	}
	return out
}
