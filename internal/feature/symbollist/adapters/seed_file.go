package adapters

import (
	"fmt"
	"os"

	"chart_backend/internal/feature/symbollist/domain/entity"

	"gopkg.in/yaml.v3"
)

// seedFile は銘柄シードファイル（YAML）の構造です。
//
//	symbols:
//	  - code: AAPL
//	    name: Apple Inc.
//	    market: NASDAQ
//	    sort_key: 1
type seedFile struct {
	Symbols []seedEntry `yaml:"symbols"`
}

// seedEntry の active は省略時に有効として扱うため、ポインタで受けます。
type seedEntry struct {
	Code    string `yaml:"code"`
	Name    string `yaml:"name"`
	Market  string `yaml:"market"`
	SortKey int    `yaml:"sort_key"`
	Active  *bool  `yaml:"active"`
}

// LoadSeedFile はYAMLの銘柄シードファイルを読み込みます。
// 銘柄コードの検証は SymbolUsecase.SeedSymbols が行います。
func LoadSeedFile(path string) ([]entity.Symbol, error) {
	b, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read seed file: %w", err)
	}
	return ParseSeed(b)
}

// ParseSeed はYAMLの銘柄シードをパースします。
func ParseSeed(b []byte) ([]entity.Symbol, error) {
	var f seedFile
	if err := yaml.Unmarshal(b, &f); err != nil {
		return nil, fmt.Errorf("parse seed file: %w", err)
	}
	out := make([]entity.Symbol, 0, len(f.Symbols))
	for _, e := range f.Symbols {
		out = append(out, entity.Symbol{
			Code:     e.Code,
			Name:     e.Name,
			Market:   e.Market,
			SortKey:  e.SortKey,
			IsActive: e.Active == nil || *e.Active,
		})
	}
	return out, nil
}
