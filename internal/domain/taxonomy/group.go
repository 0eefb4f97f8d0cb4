// Package taxonomy defines the immutable function-group records and the
// in-memory store they live in. A function group is a curated cluster of
// related job roles sharing titles, skills, and market context; the store is
// built once at startup and only read afterwards.
package taxonomy

import (
	"fmt"

	"github.com/kailas-cloud/querydex/internal/domain"
)

// defaultSeniorityLevels is used when a group declares none.
var defaultSeniorityLevels = []string{"junior", "medior", "senior", "lead", "hoofd", "manager"}

// GroupParams carries the list-valued attributes of a function group.
// Order matters for titles, skills, certifications and sector keywords:
// compact query variants truncate to the leading entries.
type GroupParams struct {
	Titles           []string
	Synonyms         []string
	EnglishTitles    []string
	Skills           []string
	Certifications   []string
	LookAlikes       []string
	TypicalEmployers []string
	Competitors      []string
	SeniorityLevels  []string
	SectorKeywords   []string
}

// Group is an immutable function-group record.
type Group struct {
	id       string
	name     string
	category string

	titles           []string
	synonyms         []string
	englishTitles    []string
	skills           []string
	certifications   []string
	lookAlikes       []string
	typicalEmployers []string
	competitors      []string
	seniorityLevels  []string
	sectorKeywords   []string
}

// NewGroup validates and creates a function group. A group needs a non-empty
// id, name and at least one title — a title-less group cannot produce a base
// query and is rejected here rather than emitting empty searches downstream.
func NewGroup(id, name, category string, p GroupParams) (Group, error) {
	if id == "" {
		return Group{}, fmt.Errorf("%w: empty id", domain.ErrMalformedGroup)
	}
	if name == "" {
		return Group{}, fmt.Errorf("%w: group %q has no name", domain.ErrMalformedGroup, id)
	}
	titles := withoutBlanks(p.Titles)
	if len(titles) == 0 {
		return Group{}, fmt.Errorf("%w: group %q has no titles", domain.ErrMalformedGroup, id)
	}

	seniority := withoutBlanks(p.SeniorityLevels)
	if len(seniority) == 0 {
		seniority = cloneStrings(defaultSeniorityLevels)
	}

	return Group{
		id:               id,
		name:             name,
		category:         category,
		titles:           titles,
		synonyms:         withoutBlanks(p.Synonyms),
		englishTitles:    withoutBlanks(p.EnglishTitles),
		skills:           withoutBlanks(p.Skills),
		certifications:   withoutBlanks(p.Certifications),
		lookAlikes:       withoutBlanks(p.LookAlikes),
		typicalEmployers: withoutBlanks(p.TypicalEmployers),
		competitors:      withoutBlanks(p.Competitors),
		seniorityLevels:  seniority,
		sectorKeywords:   withoutBlanks(p.SectorKeywords),
	}, nil
}

// ID returns the stable group identifier.
func (g Group) ID() string { return g.id }

// Name returns the display name.
func (g Group) Name() string { return g.name }

// Category returns the coarse taxonomy bucket.
func (g Group) Category() string { return g.category }

// Titles returns the primary job titles.
func (g Group) Titles() []string { return cloneStrings(g.titles) }

// Synonyms returns the title variants.
func (g Group) Synonyms() []string { return cloneStrings(g.synonyms) }

// EnglishTitles returns the English title equivalents.
func (g Group) EnglishTitles() []string { return cloneStrings(g.englishTitles) }

// Skills returns the related skills and tools.
func (g Group) Skills() []string { return cloneStrings(g.skills) }

// Certifications returns the relevant certificates and trainings.
func (g Group) Certifications() []string { return cloneStrings(g.certifications) }

// LookAlikes returns the ids of related function groups.
func (g Group) LookAlikes() []string { return cloneStrings(g.lookAlikes) }

// TypicalEmployers returns companies currently employing this profile.
func (g Group) TypicalEmployers() []string { return cloneStrings(g.typicalEmployers) }

// Competitors returns rival companies for competitor targeting.
// Kept separate from typical employers: current staff vs. rival-company staff
// are distinct search audiences and are never merged.
func (g Group) Competitors() []string { return cloneStrings(g.competitors) }

// SeniorityLevels returns the seniority ladder. Informational only.
func (g Group) SeniorityLevels() []string { return cloneStrings(g.seniorityLevels) }

// SectorKeywords returns sector-specific search terms.
func (g Group) SectorKeywords() []string { return cloneStrings(g.sectorKeywords) }

// AllTitles returns titles, synonyms and English titles in that order.
// This is the term set for broad queries and title matching.
func (g Group) AllTitles() []string {
	all := make([]string, 0, len(g.titles)+len(g.synonyms)+len(g.englishTitles))
	all = append(all, g.titles...)
	all = append(all, g.synonyms...)
	all = append(all, g.englishTitles...)
	return all
}

// withoutBlanks copies the slice, dropping empty entries.
func withoutBlanks(in []string) []string {
	out := make([]string, 0, len(in))
	for _, s := range in {
		if s != "" {
			out = append(out, s)
		}
	}
	return out
}

func cloneStrings(in []string) []string {
	out := make([]string, len(in))
	copy(out, in)
	return out
}
