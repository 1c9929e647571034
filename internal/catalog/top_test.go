package catalog

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"franchise-catalog/internal/store"
)

func TestTopProducts_SkipsEmptyBranches(t *testing.T) {
	f := franchise(t, "f-1", "Acme",
		branch(t, "A", product(t, "p1", 5), product(t, "p2", 9)),
		branch(t, "B"),
	)

	top := TopProducts(f)
	require.Len(t, top, 1)
	assert.Equal(t, "A", top[0].BranchName)
	assert.Equal(t, "p2", top[0].Product.Name())
	assert.Equal(t, 9, top[0].Product.Stock())
}

func TestTopProducts_TieKeepsFirst(t *testing.T) {
	f := franchise(t, "f-1", "Acme",
		branch(t, "North", product(t, "first", 4), product(t, "second", 4), product(t, "low", 1)),
		branch(t, "South", product(t, "only", 0)),
	)

	top := TopProducts(f)
	require.Len(t, top, 2)
	assert.Equal(t, "first", top[0].Product.Name())
	assert.Equal(t, "South", top[1].BranchName)
	assert.Equal(t, "only", top[1].Product.Name())
}

func TestEngine_TopProductsPerBranch(t *testing.T) {
	ctx := context.Background()
	e, _ := seeded(t)

	top, err := e.TopProductsPerBranch(ctx, "f-1")
	require.NoError(t, err)
	require.Len(t, top, 1)
	assert.Equal(t, "Store1", top[0].BranchName)
	assert.Equal(t, "Gadget", top[0].Product.Name())

	missing, err := e.TopProductsPerBranch(ctx, "f-404")
	require.NoError(t, err)
	assert.NotNil(t, missing)
	assert.Empty(t, missing)
}

func TestEngine_TopProductsPerBranch_EmptyStore(t *testing.T) {
	e := NewEngine(store.NewMemoryStore())
	top, err := e.TopProductsPerBranch(context.Background(), "anything")
	require.NoError(t, err)
	assert.Empty(t, top)
}
