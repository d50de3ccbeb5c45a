package models

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestParseAssetType(t *testing.T) {
	tests := []struct {
		input string
		want  AssetType
		ok    bool
	}{
		{"stock", AssetStock, true},
		{"Hisse", AssetStock, true},
		{" fon ", AssetFund, true},
		{"Altın/Döviz", AssetMetalFX, true},
		{"ALTIN/DÖVİZ", AssetMetalFX, true},
		{"altin/doviz", AssetMetalFX, true},
		{"metal_fx", AssetMetalFX, true},
		{"Nakit", AssetCash, true},
		{"Kripto", AssetType("Kripto"), false},
		{"", AssetType(""), false},
	}

	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			got, ok := ParseAssetType(tt.input)
			assert.Equal(t, tt.want, got)
			assert.Equal(t, tt.ok, ok)
		})
	}
}

func TestAssetTypeLabel(t *testing.T) {
	assert.Equal(t, "Altın/Döviz", AssetMetalFX.Label())
	assert.Equal(t, "Kripto", AssetType("Kripto").Label())
}
