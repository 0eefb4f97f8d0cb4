// Package taxonomy loads the function-group dataset from its YAML file and
// builds the immutable store the engine reads. Loading happens once at
// startup; malformed entries fail the whole load rather than degrading into
// empty queries later.
package taxonomy

import (
	"fmt"
	"os"
	"path/filepath"

	"gopkg.in/yaml.v3"

	"github.com/kailas-cloud/querydex/internal/domain/geo"
	domtax "github.com/kailas-cloud/querydex/internal/domain/taxonomy"
)

// groupDoc is the YAML shape of one function group.
type groupDoc struct {
	ID               string   `yaml:"id"`
	Name             string   `yaml:"name"`
	Category         string   `yaml:"category"`
	Titles           []string `yaml:"titles"`
	Synonyms         []string `yaml:"synonyms"`
	EnglishTitles    []string `yaml:"english_titles"`
	Skills           []string `yaml:"skills"`
	Certifications   []string `yaml:"certifications"`
	LookAlikes       []string `yaml:"look_alikes"`
	TypicalEmployers []string `yaml:"typical_employers"`
	Competitors      []string `yaml:"competitors"`
	SeniorityLevels  []string `yaml:"seniority_levels"`
	SectorKeywords   []string `yaml:"sector_keywords"`
}

// regionDoc is the YAML shape of one region entry.
type regionDoc struct {
	Name   string   `yaml:"name"`
	Cities []string `yaml:"cities"`
}

// fileDoc is the YAML shape of the taxonomy dataset file.
type fileDoc struct {
	Groups  []groupDoc  `yaml:"groups"`
	Regions []regionDoc `yaml:"regions"`
}

// Load reads the taxonomy dataset and builds the store and region table.
// When the file declares no regions, the built-in region table is used.
func Load(path string) (domtax.Store, geo.Table, error) {
	data, err := os.ReadFile(filepath.Clean(path))
	if err != nil {
		return domtax.Store{}, geo.Table{}, fmt.Errorf("read taxonomy %s: %w", path, err)
	}
	return Parse(data)
}

// Parse builds the store and region table from raw YAML.
func Parse(data []byte) (domtax.Store, geo.Table, error) {
	var doc fileDoc
	if err := yaml.Unmarshal(data, &doc); err != nil {
		return domtax.Store{}, geo.Table{}, fmt.Errorf("parse taxonomy: %w", err)
	}
	if len(doc.Groups) == 0 {
		return domtax.Store{}, geo.Table{}, fmt.Errorf("taxonomy declares no groups")
	}

	groups := make([]domtax.Group, 0, len(doc.Groups))
	for _, gd := range doc.Groups {
		g, err := domtax.NewGroup(gd.ID, gd.Name, gd.Category, domtax.GroupParams{
			Titles:           gd.Titles,
			Synonyms:         gd.Synonyms,
			EnglishTitles:    gd.EnglishTitles,
			Skills:           gd.Skills,
			Certifications:   gd.Certifications,
			LookAlikes:       gd.LookAlikes,
			TypicalEmployers: gd.TypicalEmployers,
			Competitors:      gd.Competitors,
			SeniorityLevels:  gd.SeniorityLevels,
			SectorKeywords:   gd.SectorKeywords,
		})
		if err != nil {
			return domtax.Store{}, geo.Table{}, fmt.Errorf("taxonomy entry %q: %w", gd.ID, err)
		}
		groups = append(groups, g)
	}

	store, err := domtax.NewStore(groups)
	if err != nil {
		return domtax.Store{}, geo.Table{}, err
	}

	table := geo.DefaultTable()
	if len(doc.Regions) > 0 {
		regions := make([]geo.Region, 0, len(doc.Regions))
		for _, rd := range doc.Regions {
			regions = append(regions, geo.NewRegion(rd.Name, rd.Cities))
		}
		table = geo.NewTable(regions)
	}

	return store, table, nil
}
