package catalog

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestFlexString(t *testing.T) {
	tests := []struct {
		raw  string
		want flexString
	}{
		{`"7421201"`, "7421201"},
		{`7421201`, "7421201"},
		{`2019`, "2019"},
		{`null`, ""},
		{`""`, ""},
	}

	for _, tt := range tests {
		var got flexString
		require.NoError(t, json.Unmarshal([]byte(tt.raw), &got), tt.raw)
		assert.Equal(t, tt.want, got, tt.raw)
	}
}

func TestMapProducts(t *testing.T) {
	var resp searchResponse
	require.NoError(t, json.Unmarshal([]byte(`{"products": [
		{"productNumber": 12, "productNameBold": " Musar ", "productNameThin": null, "producerName": "Château Musar", "volume": 750, "categoryLevel2": "Rött vin", "vintage": null},
		{"productNumber": null, "productNameBold": "No number"}
	]}`), &resp))

	records := mapProducts(resp.Products)

	require.Len(t, records, 1)
	assert.Equal(t, "12", records[0].ProductNumber)
	assert.Equal(t, "Musar", records[0].DisplayName())
	assert.Equal(t, "Château Musar", records[0].Producer)
	assert.Equal(t, "Rött vin", records[0].Category)
	assert.Empty(t, records[0].Vintage)
}
