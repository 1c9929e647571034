package registry

import (
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"franchise-catalog/internal/common/validation"
)

func sampleRegistry() *ActivityRegistry {
	return &ActivityRegistry{
		Version: "1.0.0",
		Activities: []Activity{
			{
				ID:                   "update-stock",
				DisplayName:          "Update Stock",
				Category:             "catalog",
				TaskType:             "catalog-update-stock",
				ImplementationStatus: StatusCompleted,
				InputSchema:          validation.SchemaUpdateStockJob,
				Timeout:              "30s",
				Retries:              3,
			},
		},
	}
}

// ==========================
// Shipped registry
// ==========================

func TestShippedRegistry(t *testing.T) {
	reg, err := LoadRegistry(filepath.Join("..", "..", DefaultPath))
	require.NoError(t, err)

	require.NoError(t, reg.Validate(validation.HasSchema))
	for _, taskType := range []string{"catalog-add-product", "catalog-update-stock", "catalog-top-products"} {
		assert.NotNil(t, reg.Find(taskType), taskType)
	}
}

// ==========================
// Validate
// ==========================

func TestValidate(t *testing.T) {
	tests := []struct {
		name    string
		mutate  func(r *ActivityRegistry)
		wantErr string
	}{
		{"valid", func(r *ActivityRegistry) {}, ""},
		{"empty", func(r *ActivityRegistry) { r.Activities = nil }, "no activities"},
		{"missing id", func(r *ActivityRegistry) { r.Activities[0].ID = "" }, "ID"},
		{"duplicate id", func(r *ActivityRegistry) {
			dup := r.Activities[0]
			dup.TaskType = "other"
			r.Activities = append(r.Activities, dup)
		}, "duplicate activity ID"},
		{"duplicate task type", func(r *ActivityRegistry) {
			dup := r.Activities[0]
			dup.ID = "other"
			r.Activities = append(r.Activities, dup)
		}, "duplicate task type"},
		{"bad status", func(r *ActivityRegistry) { r.Activities[0].ImplementationStatus = "done" }, "unknown status"},
		{"bad timeout", func(r *ActivityRegistry) { r.Activities[0].Timeout = "soon" }, "invalid timeout"},
		{"unknown schema", func(r *ActivityRegistry) { r.Activities[0].InputSchema = "order" }, "unknown schema"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			reg := sampleRegistry()
			tt.mutate(reg)

			err := reg.Validate(validation.HasSchema)
			if tt.wantErr == "" {
				assert.NoError(t, err)
				return
			}
			require.Error(t, err)
			assert.Contains(t, err.Error(), tt.wantErr)
		})
	}
}

// ==========================
// Update and persistence
// ==========================

func TestUpdateAndSave(t *testing.T) {
	reg := sampleRegistry()

	require.NoError(t, reg.Update("update-stock", "status", StatusVerified))
	require.NoError(t, reg.Update("update-stock", "retries", "5"))
	assert.Error(t, reg.Update("update-stock", "retries", "many"))
	assert.Error(t, reg.Update("update-stock", "status", "done"))
	assert.Error(t, reg.Update("update-stock", "owner", "ops"))
	assert.Error(t, reg.Update("missing", "status", StatusPlanned))

	path := filepath.Join(t.TempDir(), "nested", "registry.json")
	require.NoError(t, reg.Save(path))

	loaded, err := LoadRegistry(path)
	require.NoError(t, err)
	a := loaded.Find("catalog-update-stock")
	require.NotNil(t, a)
	assert.Equal(t, StatusVerified, a.ImplementationStatus)
	assert.Equal(t, 5, a.Retries)
	assert.NotEmpty(t, loaded.LastUpdated)
	assert.Nil(t, loaded.Find("catalog-remove-product"))
}
