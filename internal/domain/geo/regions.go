// Package geo holds the static region table used to widen location filters.
// A region maps to its member cities; the table is configuration data, not
// derived, and is loaded alongside the taxonomy.
package geo

import "strings"

// Region is one named region with its member cities.
type Region struct {
	name   string
	cities []string
}

// NewRegion creates a region entry.
func NewRegion(name string, cities []string) Region {
	c := make([]string, len(cities))
	copy(c, cities)
	return Region{name: name, cities: c}
}

// Name returns the region name.
func (r Region) Name() string { return r.name }

// Cities returns the member cities.
func (r Region) Cities() []string { return r.cities }

// Table is an ordered region lookup table.
type Table struct {
	regions []Region
}

// NewTable creates a table from regions. Lookup walks regions in order, so
// the first matching region wins.
func NewTable(regions []Region) Table {
	rs := make([]Region, len(regions))
	copy(rs, regions)
	return Table{regions: rs}
}

// DefaultTable returns the built-in Dutch province table.
func DefaultTable() Table {
	return NewTable([]Region{
		NewRegion("Gelderland", []string{"Arnhem", "Nijmegen", "Apeldoorn", "Ede", "Doetinchem"}),
		NewRegion("Overijssel", []string{"Zwolle", "Enschede", "Deventer", "Almelo", "Hengelo"}),
		NewRegion("Noord-Brabant", []string{"Eindhoven", "Tilburg", "Breda", "'s-Hertogenbosch", "Helmond"}),
		NewRegion("Limburg", []string{"Maastricht", "Venlo", "Roermond", "Heerlen", "Sittard"}),
		NewRegion("Utrecht", []string{"Utrecht", "Amersfoort", "Nieuwegein", "Veenendaal", "Zeist"}),
	})
}

// Nearby returns the location plus, when the location names a known region or
// a city inside one, every city of that region. Matching is case-insensitive
// and exact; the first matching region wins. Blank input yields nil.
// The result is deduplicated case-insensitively, input first, then the
// region's cities in table order.
func (t Table) Nearby(location string) []string {
	location = strings.TrimSpace(location)
	if location == "" {
		return nil
	}

	result := []string{location}
	seen := map[string]struct{}{strings.ToLower(location): {}}

	for _, region := range t.regions {
		if !t.matches(region, location) {
			continue
		}
		for _, city := range region.cities {
			key := strings.ToLower(city)
			if _, dup := seen[key]; dup {
				continue
			}
			seen[key] = struct{}{}
			result = append(result, city)
		}
		break
	}

	return result
}

func (t Table) matches(region Region, location string) bool {
	if strings.EqualFold(region.name, location) {
		return true
	}
	for _, city := range region.cities {
		if strings.EqualFold(city, location) {
			return true
		}
	}
	return false
}
