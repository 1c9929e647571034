package validation

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func decode(t *testing.T, body string) interface{} {
	t.Helper()
	var v interface{}
	require.NoError(t, json.Unmarshal([]byte(body), &v))
	return v
}

func TestValidateRequest(t *testing.T) {
	tests := []struct {
		name      string
		schema    string
		body      string
		wantValid bool
		wantField string
	}{
		{"franchise ok", SchemaFranchise, `{"id":"f-1","name":"Acme","branches":[{"name":"North","products":[{"name":"Cola","stock":3}]}]}`, true, ""},
		{"franchise missing branches", SchemaFranchise, `{"id":"f-1","name":"Acme"}`, false, "(root)"},
		{"franchise blank name", SchemaFranchise, `{"id":"f-1","name":"   ","branches":[]}`, false, "name"},
		{"franchise nested blank product", SchemaFranchise, `{"id":"f-1","name":"Acme","branches":[{"name":"North","products":[{"name":"","stock":1}]}]}`, false, "branches.0.products.0.name"},
		{"branch without products", SchemaBranch, `{"name":"North"}`, true, ""},
		{"branch null products", SchemaBranch, `{"name":"North","products":null}`, true, ""},
		{"branch name wrong type", SchemaBranch, `{"name":7}`, false, "name"},
		{"product ok negative stock left to domain", SchemaProduct, `{"name":"Cola","stock":-1}`, true, ""},
		{"product fractional stock", SchemaProduct, `{"name":"Cola","stock":1.5}`, false, "stock"},
		{"product missing stock", SchemaProduct, `{"name":"Cola"}`, false, "(root)"},
		{"add product job ok", SchemaAddProductJob, `{"franchiseId":"f-1","branchName":"North","product":{"name":"Cola","stock":2}}`, true, ""},
		{"add product job missing product", SchemaAddProductJob, `{"franchiseId":"f-1","branchName":"North"}`, false, "(root)"},
		{"update stock job string stock", SchemaUpdateStockJob, `{"franchiseId":"f-1","branchName":"North","productName":"Cola","newStock":"5"}`, false, "newStock"},
		{"top products job blank id", SchemaTopProductsJob, `{"franchiseId":" "}`, false, "franchiseId"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			result, err := ValidateRequest(tt.schema, decode(t, tt.body))
			require.NoError(t, err)
			assert.Equal(t, tt.wantValid, result.Valid, result.GetErrorMessages())
			if tt.wantField != "" {
				assert.True(t, result.HasErrors(tt.wantField), result.GetErrorMessages())
			}
		})
	}
}

func TestValidateRequest_UnknownSchema(t *testing.T) {
	_, err := ValidateRequest("order", map[string]interface{}{})
	assert.Error(t, err)
}

func TestHasSchema(t *testing.T) {
	assert.True(t, HasSchema(SchemaUpdateStockJob))
	assert.False(t, HasSchema("order"))
}
