package models

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	apperrors "franchise-catalog/internal/common/errors"
)

func mustProduct(t *testing.T, name string, stock int) Product {
	t.Helper()
	p, err := NewProduct(name, stock)
	require.NoError(t, err)
	return p
}

func mustBranch(t *testing.T, name string, products ...Product) Branch {
	t.Helper()
	b, err := NewBranch(name, products)
	require.NoError(t, err)
	return b
}

func TestNewProduct(t *testing.T) {
	tests := []struct {
		name    string
		pName   string
		stock   int
		wantErr bool
	}{
		{"valid", "Burger", 10, false},
		{"zero stock", "Burger", 0, false},
		{"blank name", "   ", 1, true},
		{"empty name", "", 1, true},
		{"negative stock", "Burger", -1, true},
		{"max length", strings.Repeat("a", 100), 1, false},
		{"too long", strings.Repeat("a", 101), 1, true},
		{"multibyte at limit", strings.Repeat("ñ", 100), 1, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			p, err := NewProduct(tt.pName, tt.stock)
			if tt.wantErr {
				require.Error(t, err)
				assert.ErrorIs(t, err, apperrors.ErrInvalidProduct)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.pName, p.Name())
			assert.Equal(t, tt.stock, p.Stock())
		})
	}
}

func TestProduct_WithStockIsUnchecked(t *testing.T) {
	p := mustProduct(t, "Fries", 5)

	neg := p.WithStock(-3)
	assert.Equal(t, -3, neg.Stock())
	assert.Equal(t, 5, p.Stock())

	_, err := p.WithName("")
	assert.ErrorIs(t, err, apperrors.ErrInvalidProduct)

	renamed, err := neg.WithName("Curly Fries")
	require.NoError(t, err)
	assert.Equal(t, -3, renamed.Stock())
}

func TestRestoreProduct(t *testing.T) {
	p, err := RestoreProduct("Fries", -4)
	require.NoError(t, err)
	assert.Equal(t, -4, p.Stock())

	_, err = RestoreProduct("", 4)
	assert.ErrorIs(t, err, apperrors.ErrInvalidProduct)
}

func TestNewBranch(t *testing.T) {
	t.Run("rejects duplicate product names ignoring case", func(t *testing.T) {
		_, err := NewBranch("Center", []Product{mustProduct(t, "Cola", 1), mustProduct(t, "COLA", 2)})
		assert.ErrorIs(t, err, apperrors.ErrInvalidBranch)
	})

	t.Run("rejects blank and long names", func(t *testing.T) {
		_, err := NewBranch(" ", nil)
		assert.ErrorIs(t, err, apperrors.ErrInvalidBranch)

		_, err = NewBranch(strings.Repeat("b", 51), nil)
		assert.ErrorIs(t, err, apperrors.ErrInvalidBranch)
	})

	t.Run("products are copied", func(t *testing.T) {
		in := []Product{mustProduct(t, "Cola", 1)}
		b := mustBranch(t, "Center", in...)

		in[0] = mustProduct(t, "Water", 9)
		out := b.Products()
		out[0] = mustProduct(t, "Juice", 3)

		assert.Equal(t, "Cola", b.Products()[0].Name())
		assert.Equal(t, 1, b.ProductCount())
	})
}

func TestNewFranchise(t *testing.T) {
	tests := []struct {
		name     string
		id       string
		fName    string
		branches []Branch
		wantErr  bool
	}{
		{"valid", "f-1", "Acme", nil, false},
		{"blank id", " ", "Acme", nil, true},
		{"blank name", "f-1", "", nil, true},
		{"too long name", "f-1", strings.Repeat("x", 101), nil, true},
		{"duplicate branches", "f-1", "Acme", []Branch{{name: "North"}, {name: "north"}}, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			f, err := NewFranchise(tt.id, tt.fName, tt.branches)
			if tt.wantErr {
				assert.ErrorIs(t, err, apperrors.ErrInvalidFranchise)
				assert.Nil(t, f)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.id, f.ID())
			assert.Equal(t, int64(0), f.Version())
		})
	}
}

func TestFranchise_CopyOnWrite(t *testing.T) {
	f, err := NewFranchise("f-1", "Acme", []Branch{mustBranch(t, "North", mustProduct(t, "Cola", 1))})
	require.NoError(t, err)
	f = f.WithVersion(4)

	renamed, err := f.WithName("Acme Two")
	require.NoError(t, err)
	assert.Equal(t, "Acme", f.Name())
	assert.Equal(t, "Acme Two", renamed.Name())
	assert.Equal(t, int64(4), renamed.Version())

	grown, err := f.WithBranches(append(f.Branches(), mustBranch(t, "South")))
	require.NoError(t, err)
	assert.Equal(t, 1, f.BranchCount())
	assert.Equal(t, 2, grown.BranchCount())

	_, err = f.WithBranches(append(f.Branches(), mustBranch(t, "NORTH")))
	assert.ErrorIs(t, err, apperrors.ErrInvalidFranchise)

	_, err = f.WithName("  ")
	assert.ErrorIs(t, err, apperrors.ErrInvalidFranchise)
}

func TestSameName(t *testing.T) {
	assert.True(t, SameName("Cola", "cOLA"))
	assert.False(t, SameName("Cola ", "Cola"))
}
