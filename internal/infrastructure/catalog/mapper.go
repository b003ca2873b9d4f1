package catalog

import (
	"bytes"
	"encoding/json"
	"strings"

	"github.com/winematch/backend/internal/domain"
)

// searchResponse is the product-search payload; only the fields we map are declared
type searchResponse struct {
	Products []product `json:"products"`
}

type product struct {
	ProductNumber     flexString `json:"productNumber"`
	ProductNameBold   string     `json:"productNameBold"`
	ProductNameThin   string     `json:"productNameThin"`
	ProducerName      string     `json:"producerName"`
	Price             float64    `json:"price"`
	Country           string     `json:"country"`
	OriginLevel1      string     `json:"originLevel1"`
	PackagingLevel1   string     `json:"packagingLevel1"`
	Volume            float64    `json:"volume"`
	CategoryLevel2    string     `json:"categoryLevel2"`
	Vintage           flexString `json:"vintage"`
	AlcoholPercentage float64    `json:"alcoholPercentage"`
}

// flexString accepts a JSON string, number or null
type flexString string

func (f *flexString) UnmarshalJSON(data []byte) error {
	data = bytes.TrimSpace(data)
	if bytes.Equal(data, []byte("null")) {
		*f = ""
		return nil
	}
	if len(data) > 0 && data[0] == '"' {
		var s string
		if err := json.Unmarshal(data, &s); err != nil {
			return err
		}
		*f = flexString(s)
		return nil
	}
	var n json.Number
	if err := json.Unmarshal(data, &n); err != nil {
		return err
	}
	*f = flexString(n.String())
	return nil
}

// mapProduct converts one catalog product into a domain record
func mapProduct(p product) domain.CatalogRecord {
	return domain.CatalogRecord{
		ProductNumber:     strings.TrimSpace(string(p.ProductNumber)),
		NameBold:          strings.TrimSpace(p.ProductNameBold),
		NameThin:          strings.TrimSpace(p.ProductNameThin),
		Producer:          strings.TrimSpace(p.ProducerName),
		Price:             p.Price,
		Country:           p.Country,
		Region:            p.OriginLevel1,
		Packaging:         p.PackagingLevel1,
		Volume:            p.Volume,
		Category:          p.CategoryLevel2,
		Vintage:           string(p.Vintage),
		AlcoholPercentage: p.AlcoholPercentage,
	}
}

// mapProducts converts a page of products, skipping entries without a product number
func mapProducts(products []product) []domain.CatalogRecord {
	records := make([]domain.CatalogRecord, 0, len(products))
	for _, p := range products {
		record := mapProduct(p)
		if record.ProductNumber == "" {
			continue
		}
		records = append(records, record)
	}
	return records
}
