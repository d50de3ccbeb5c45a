package models

import "strings"

type AssetType string

const (
	AssetStock   AssetType = "stock"
	AssetFund    AssetType = "fund"
	AssetMetalFX AssetType = "metal_fx"
	AssetCash    AssetType = "cash"
)

// AssetTypes lists the categories in the order the form shows them.
var AssetTypes = []AssetType{AssetStock, AssetFund, AssetMetalFX, AssetCash}

var assetLabels = map[AssetType]string{
	AssetStock:   "Hisse",
	AssetFund:    "Fon",
	AssetMetalFX: "Altın/Döviz",
	AssetCash:    "Nakit",
}

// Label is the text written to the worksheet's Tur column.
func (t AssetType) Label() string {
	if l, ok := assetLabels[t]; ok {
		return l
	}
	return string(t)
}

var turkishFold = strings.NewReplacer(
	"ı", "i", "İ", "i", "ş", "s", "Ş", "s", "ğ", "g", "Ğ", "g",
	"ü", "u", "Ü", "u", "ö", "o", "Ö", "o", "ç", "c", "Ç", "c",
)

func foldKey(s string) string {
	return strings.ToLower(turkishFold.Replace(strings.TrimSpace(s)))
}

// ParseAssetType accepts either a form code ("metal_fx") or a worksheet
// label ("Altın/Döviz", "altin/doviz"). Unknown text yields ok == false.
func ParseAssetType(s string) (AssetType, bool) {
	key := foldKey(s)
	for _, t := range AssetTypes {
		if key == string(t) || key == foldKey(t.Label()) {
			return t, true
		}
	}
	return AssetType(strings.TrimSpace(s)), false
}

// Header is the first row of the holdings worksheet.
var Header = []string{"Tur", "Isim", "Adet", "Fiyat"}

const (
	ColType = iota + 1
	ColName
	ColQuantity
	ColPrice
)

// Holding is one row of the worksheet. Quantity and Price keep whatever the
// form or the store handed over: numbers, or text in any locale.
type Holding struct {
	Type     AssetType `json:"type"`
	Name     string    `json:"name"`
	Quantity any       `json:"quantity"`
	Price    any       `json:"price"`
}

type NormalizedHolding struct {
	Type     AssetType `json:"type"`
	Label    string    `json:"label"`
	Name     string    `json:"name"`
	Quantity float64   `json:"quantity"`
	Price    float64   `json:"price"`
	Total    float64   `json:"total"`
}
