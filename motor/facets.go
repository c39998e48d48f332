package motor

import (
	"golang.org/x/text/collate"
	"golang.org/x/text/language"
)

// DefaultProvinceOrder is the display order of province options on the
// companies page. Provinces missing from the data are not offered.
var DefaultProvinceOrder = []string{"전북", "광주", "서울", "경기", "인천", "부산"}

// DefaultRegions are the region options offered on the jobs page.
var DefaultRegions = []string{
	"서울", "부산", "대구", "인천", "광주", "대전", "울산", "세종", "경기",
	"강원", "충북", "충남", "전북", "전남", "경북", "경남", "제주",
}

// Facets maps each province found in the data to the cities seen under it.
type Facets struct {
	provinces []string
	cities    map[string][]string
}

// BuildFacets scans classifications of at least two tokens. When order is
// empty every province is offered, sorted with Korean collation; otherwise
// only provinces listed in order (and present in the data) are offered.
func BuildFacets(records []Record, order []string) *Facets {
	seen := make(map[string]map[string]struct{})
	for i := range records {
		tokens := records[i].Tokens()
		if len(tokens) < 2 {
			continue
		}
		province, city := tokens[TokenProvince], tokens[TokenCity]
		set, ok := seen[province]
		if !ok {
			set = make(map[string]struct{})
			seen[province] = set
		}
		set[city] = struct{}{}
	}

	coll := collate.New(language.Korean)

	f := &Facets{
		cities: make(map[string][]string, len(seen)),
	}
	for province, set := range seen {
		list := make([]string, 0, len(set))
		for city := range set {
			list = append(list, city)
		}
		coll.SortStrings(list)
		f.cities[province] = list
	}

	if len(order) == 0 {
		for province := range seen {
			f.provinces = append(f.provinces, province)
		}
		coll.SortStrings(f.provinces)
		return f
	}

	for _, province := range order {
		if _, ok := seen[province]; ok {
			f.provinces = append(f.provinces, province)
		}
	}
	return f
}

// Provinces returns the province options in display order
func (f *Facets) Provinces() []string {
	if f == nil {
		return nil
	}
	return f.provinces
}

// Cities returns the sorted city options for province; none for "" or an unknown province.
func (f *Facets) Cities(province string) []string {
	if f == nil || province == "" {
		return nil
	}
	return f.cities[province]
}

// HasProvince reports whether province is one of the offered options
func (f *Facets) HasProvince(province string) bool {
	for _, p := range f.Provinces() {
		if p == province {
			return true
		}
	}
	return false
}
