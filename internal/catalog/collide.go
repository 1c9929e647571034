// internal/catalog/collide.go
package catalog

import "franchise-catalog/internal/models"

// CollidesWith reports whether candidate equals any of existing,
// case-insensitively.
func CollidesWith(candidate string, existing []string) bool {
	for _, name := range existing {
		if models.SameName(candidate, name) {
			return true
		}
	}
	return false
}

// FranchiseNameTaken reports whether a franchise other than excludeID already
// uses name. An empty excludeID checks against every franchise.
func FranchiseNameTaken(name, excludeID string, all []*models.Franchise) bool {
	names := make([]string, 0, len(all))
	for _, f := range all {
		if excludeID != "" && f.ID() == excludeID {
			continue
		}
		names = append(names, f.Name())
	}
	return CollidesWith(name, names)
}

// findBranch returns the index of the first branch named name, or -1.
func findBranch(branches []models.Branch, name string) int {
	for i, b := range branches {
		if models.SameName(b.Name(), name) {
			return i
		}
	}
	return -1
}

// findProduct returns the index of the first product named name, or -1.
func findProduct(products []models.Product, name string) int {
	for i, p := range products {
		if models.SameName(p.Name(), name) {
			return i
		}
	}
	return -1
}

// renameCollides reports whether some element other than the one being
// renamed already carries newName. Elements named like currentName are
// treated as the renamed element itself.
func renameCollides(names []string, currentName, newName string) bool {
	for _, n := range names {
		if models.SameName(n, newName) && !models.SameName(n, currentName) {
			return true
		}
	}
	return false
}

func branchNames(branches []models.Branch) []string {
	out := make([]string, len(branches))
	for i, b := range branches {
		out[i] = b.Name()
	}
	return out
}

func productNames(products []models.Product) []string {
	out := make([]string, len(products))
	for i, p := range products {
		out[i] = p.Name()
	}
	return out
}
