package b3

import (
	_ "embed"
	"fmt"
	"strings"

	"gopkg.in/yaml.v3"
)

//go:embed indices.yaml
var indicesYAML []byte

// IndexInfo describes one B3 index with a constituents table
type IndexInfo struct {
	Code string `yaml:"code" json:"code"`
	Name string `yaml:"name" json:"name"`
}

// Catalog is the ordered list of known indices
// ⭐ SSOT: 전체 지수 목록은 indices.yaml 에서만 관리
type Catalog []IndexInfo

type catalogFile struct {
	Indices Catalog `yaml:"indices"`
}

// LoadCatalog parses the embedded index catalog
func LoadCatalog() (Catalog, error) {
	return parseCatalog(indicesYAML)
}

func parseCatalog(data []byte) (Catalog, error) {
	var file catalogFile
	if err := yaml.Unmarshal(data, &file); err != nil {
		return nil, fmt.Errorf("parse index catalog: %w", err)
	}

	seen := make(map[string]bool, len(file.Indices))
	for i, idx := range file.Indices {
		code := strings.ToUpper(strings.TrimSpace(idx.Code))
		if code == "" {
			return nil, fmt.Errorf("parse index catalog: entry %d has no code", i)
		}
		if seen[code] {
			return nil, fmt.Errorf("parse index catalog: duplicate code %s", code)
		}
		seen[code] = true
		file.Indices[i].Code = code
	}

	return file.Indices, nil
}

// Codes returns the index codes in catalog order
func (c Catalog) Codes() []string {
	codes := make([]string, len(c))
	for i, idx := range c {
		codes[i] = idx.Code
	}
	return codes
}

// Lookup finds an index by code (case-insensitive)
func (c Catalog) Lookup(code string) (IndexInfo, bool) {
	code = strings.ToUpper(strings.TrimSpace(code))
	for _, idx := range c {
		if idx.Code == code {
			return idx, true
		}
	}
	return IndexInfo{}, false
}
