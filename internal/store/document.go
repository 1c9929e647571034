// internal/store/document.go
package store

import (
	"encoding/json"
	"fmt"

	"franchise-catalog/internal/models"
)

// FranchiseDocument is the stored shape of a franchise aggregate.
type FranchiseDocument struct {
	ID       string           `json:"id"`
	Name     string           `json:"name"`
	Branches []BranchDocument `json:"branches"`
	Version  int64            `json:"version"`
}

type BranchDocument struct {
	Name     string            `json:"name"`
	Products []ProductDocument `json:"products"`
}

type ProductDocument struct {
	Name  string `json:"name"`
	Stock int    `json:"stock"`
}

// ToDocument maps an entity to its stored shape.
func ToDocument(f *models.Franchise) FranchiseDocument {
	branches := f.Branches()
	doc := FranchiseDocument{
		ID:       f.ID(),
		Name:     f.Name(),
		Branches: make([]BranchDocument, 0, len(branches)),
		Version:  f.Version(),
	}
	for _, b := range branches {
		products := b.Products()
		bd := BranchDocument{Name: b.Name(), Products: make([]ProductDocument, 0, len(products))}
		for _, p := range products {
			bd.Products = append(bd.Products, ProductDocument{Name: p.Name(), Stock: p.Stock()})
		}
		doc.Branches = append(doc.Branches, bd)
	}
	return doc
}

// ToEntity rebuilds the entity through the validating constructors. Stock is
// restored as stored; names and uniqueness are re-checked.
func ToEntity(doc FranchiseDocument) (*models.Franchise, error) {
	branches := make([]models.Branch, 0, len(doc.Branches))
	for _, bd := range doc.Branches {
		products := make([]models.Product, 0, len(bd.Products))
		for _, pd := range bd.Products {
			p, err := models.RestoreProduct(pd.Name, pd.Stock)
			if err != nil {
				return nil, err
			}
			products = append(products, p)
		}
		b, err := models.NewBranch(bd.Name, products)
		if err != nil {
			return nil, err
		}
		branches = append(branches, b)
	}

	f, err := models.NewFranchise(doc.ID, doc.Name, branches)
	if err != nil {
		return nil, err
	}
	return f.WithVersion(doc.Version), nil
}

func encode(f *models.Franchise, version int64) ([]byte, error) {
	doc := ToDocument(f)
	doc.Version = version
	data, err := json.Marshal(doc)
	if err != nil {
		return nil, fmt.Errorf("encode franchise %s: %w", f.ID(), err)
	}
	return data, nil
}

func decode(data []byte) (*models.Franchise, error) {
	var doc FranchiseDocument
	if err := json.Unmarshal(data, &doc); err != nil {
		return nil, fmt.Errorf("decode franchise document: %w", err)
	}
	return ToEntity(doc)
}
