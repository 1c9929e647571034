package catalog

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"franchise-catalog/internal/models"
)

func TestCollidesWith(t *testing.T) {
	tests := []struct {
		name      string
		candidate string
		existing  []string
		want      bool
	}{
		{"empty", "Main", nil, false},
		{"exact", "Main", []string{"Main"}, true},
		{"case variant", "Main", []string{"other", "MAIN"}, true},
		{"no trimming", "Main ", []string{"Main"}, false},
		{"distinct", "Main", []string{"Mains"}, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, CollidesWith(tt.candidate, tt.existing))
		})
	}
}

func TestFranchiseNameTaken(t *testing.T) {
	all := []*models.Franchise{
		franchise(t, "f-1", "Acme"),
		franchise(t, "f-2", "Bolt"),
	}

	assert.True(t, FranchiseNameTaken("acme", "", all))
	assert.False(t, FranchiseNameTaken("ACME", "f-1", all))
	assert.True(t, FranchiseNameTaken("bolt", "f-1", all))
	assert.False(t, FranchiseNameTaken("Cargo", "", all))
}

func TestFindHelpers_FirstMatchWins(t *testing.T) {
	branches := []models.Branch{branch(t, "North"), branch(t, "South")}
	assert.Equal(t, 1, findBranch(branches, "SOUTH"))
	assert.Equal(t, -1, findBranch(branches, "East"))

	products := []models.Product{product(t, "Cola", 1), product(t, "Fries", 2)}
	assert.Equal(t, 0, findProduct(products, "cola"))
	assert.Equal(t, -1, findProduct(products, "Water"))
}

func TestRenameCollides(t *testing.T) {
	names := []string{"North", "South"}
	assert.False(t, renameCollides(names, "North", "NORTH"))
	assert.True(t, renameCollides(names, "North", "south"))
	assert.False(t, renameCollides(names, "North", "East"))
}
