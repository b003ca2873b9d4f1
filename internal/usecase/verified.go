package usecase

import (
	"encoding/json"
	"errors"
	"io"
	"io/fs"
	"os"

	"github.com/rotisserie/eris"
	"go.uber.org/zap"
)

// VerifiedEntry is one manually verified pair. An empty ProductNumber records a
// known absence from the catalog.
type VerifiedEntry struct {
	Winery        string  `json:"winery"`
	Name          string  `json:"name"`
	Product       *string `json:"product"`
	ProductNumber string  `json:"-"`
}

// verifiedEntryJSON accepts both the current keys and the older
// vivino_winery/vivino_name/sb_product layout
type verifiedEntryJSON struct {
	Winery        string          `json:"winery"`
	Name          string          `json:"name"`
	Product       json.RawMessage `json:"product"`
	SourceWinery  string          `json:"vivino_winery"`
	SourceName    string          `json:"vivino_name"`
	CatalogNumber json.RawMessage `json:"sb_product"`
}

// UnmarshalJSON decodes either key layout. The product number may be a string,
// a number or null.
func (e *VerifiedEntry) UnmarshalJSON(data []byte) error {
	var raw verifiedEntryJSON
	if err := json.Unmarshal(data, &raw); err != nil {
		return err
	}

	e.Winery = raw.Winery
	if e.Winery == "" {
		e.Winery = raw.SourceWinery
	}
	e.Name = raw.Name
	if e.Name == "" {
		e.Name = raw.SourceName
	}

	product := raw.Product
	if len(product) == 0 {
		product = raw.CatalogNumber
	}
	number, err := decodeProductNumber(product)
	if err != nil {
		return eris.Wrapf(err, "invalid product for %q", e.Name)
	}
	e.Product = number
	return nil
}

func decodeProductNumber(raw json.RawMessage) (*string, error) {
	if len(raw) == 0 || string(raw) == "null" {
		return nil, nil
	}
	var s string
	if err := json.Unmarshal(raw, &s); err == nil {
		return &s, nil
	}
	var n json.Number
	if err := json.Unmarshal(raw, &n); err != nil {
		return nil, err
	}
	s = n.String()
	return &s, nil
}

type verifiedFile struct {
	Matches []VerifiedEntry `json:"matches"`
}

type verifiedKey struct {
	winery, name string
}

// VerifiedMatches holds manually verified pairs keyed on normalized winery and
// name. It is read-only after loading.
type VerifiedMatches struct {
	entries map[verifiedKey]VerifiedEntry
}

// LoadVerifiedMatches reads a verified-matches file. An empty path disables the
// feature; a missing file yields an empty set.
func LoadVerifiedMatches(path string) (*VerifiedMatches, error) {
	if path == "" {
		return nil, nil
	}

	f, err := os.Open(path)
	if errors.Is(err, fs.ErrNotExist) {
		zap.L().Warn("verified matches file not found", zap.String("path", path))
		return NewVerifiedMatches(nil), nil
	}
	if err != nil {
		return nil, eris.Wrapf(err, "failed to open verified matches %s", path)
	}
	defer f.Close()

	v, err := ReadVerifiedMatches(f)
	if err != nil {
		return nil, eris.Wrapf(err, "failed to read verified matches %s", path)
	}
	zap.L().Info("loaded verified matches", zap.String("path", path), zap.Int("count", v.Len()))
	return v, nil
}

// ReadVerifiedMatches decodes {"matches": [{"winery", "name", "product"}]}.
// The vivino_winery, vivino_name and sb_product keys are read as well.
func ReadVerifiedMatches(r io.Reader) (*VerifiedMatches, error) {
	var file verifiedFile
	if err := json.NewDecoder(r).Decode(&file); err != nil {
		return nil, eris.Wrap(err, "failed to decode verified matches")
	}
	return NewVerifiedMatches(file.Matches), nil
}

// NewVerifiedMatches indexes entries; later duplicates win
func NewVerifiedMatches(entries []VerifiedEntry) *VerifiedMatches {
	v := &VerifiedMatches{entries: make(map[verifiedKey]VerifiedEntry, len(entries))}
	for _, e := range entries {
		if e.Product != nil {
			e.ProductNumber = *e.Product
		}
		v.entries[newVerifiedKey(e.Winery, e.Name)] = e
	}
	return v
}

func newVerifiedKey(winery, name string) verifiedKey {
	return verifiedKey{
		winery: Normalize(winery, NormalizeOptions{}),
		name:   Normalize(name, NormalizeOptions{}),
	}
}

// Lookup returns the verified entry for a winery and name
func (v *VerifiedMatches) Lookup(winery, name string) (VerifiedEntry, bool) {
	if v == nil {
		return VerifiedEntry{}, false
	}
	e, ok := v.entries[newVerifiedKey(winery, name)]
	return e, ok
}

// Len returns the number of verified pairs
func (v *VerifiedMatches) Len() int {
	if v == nil {
		return 0
	}
	return len(v.entries)
}
