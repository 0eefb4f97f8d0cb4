package match

import (
	"errors"
	"testing"

	"github.com/kailas-cloud/querydex/internal/domain"
	"github.com/kailas-cloud/querydex/internal/domain/taxonomy"
)

func makeStore(t *testing.T, groups ...taxonomy.Group) taxonomy.Store {
	t.Helper()
	store, err := taxonomy.NewStore(groups)
	if err != nil {
		t.Fatalf("NewStore: %v", err)
	}
	return store
}

func makeGroup(t *testing.T, id string, p taxonomy.GroupParams) taxonomy.Group {
	t.Helper()
	g, err := taxonomy.NewGroup(id, "Group "+id, "engineering", p)
	if err != nil {
		t.Fatalf("NewGroup(%q): %v", id, err)
	}
	return g
}

func TestMatch_LongestTitleWins(t *testing.T) {
	software := makeGroup(t, "software", taxonomy.GroupParams{
		Titles:   []string{"Software Engineer", "Developer"},
		Synonyms: []string{"Programmeur"},
	})
	hardware := makeGroup(t, "hardware", taxonomy.GroupParams{
		Titles: []string{"Hardware Engineer"},
	})
	svc := New(makeStore(t, hardware, software))

	g, score, err := svc.Match("Senior Software Engineer at a tech firm")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if g.ID() != "software" {
		t.Errorf("matched %q, want software", g.ID())
	}
	if score != len("Software Engineer") {
		t.Errorf("score = %d, want %d", score, len("Software Engineer"))
	}
}

func TestMatch_SectorKeywordBonus(t *testing.T) {
	g := makeGroup(t, "elektro", taxonomy.GroupParams{
		Titles:         []string{"Monteur"},
		SectorKeywords: []string{"elektrotechniek"},
	})
	svc := New(makeStore(t, g))

	_, score, err := svc.Match("Monteur Elektrotechniek")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if score != len("Monteur")+sectorKeywordBonus {
		t.Errorf("score = %d, want title length plus keyword bonus", score)
	}
}

func TestMatch_MultipleVariantsAccumulate(t *testing.T) {
	g := makeGroup(t, "wvb", taxonomy.GroupParams{
		Titles:   []string{"Werkvoorbereider"},
		Synonyms: []string{"Calculator"},
	})
	svc := New(makeStore(t, g))

	_, score, err := svc.Match("Werkvoorbereider / Calculator")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if score != len("Werkvoorbereider")+len("Calculator") {
		t.Errorf("score = %d, want both matches summed", score)
	}
}

func TestMatch_NoMatch(t *testing.T) {
	g := makeGroup(t, "elektro", taxonomy.GroupParams{Titles: []string{"Monteur"}})
	svc := New(makeStore(t, g))

	_, _, err := svc.Match("Verpleegkundige")
	if !errors.Is(err, domain.ErrNoMatch) {
		t.Errorf("expected ErrNoMatch, got %v", err)
	}
}

func TestMatch_TieBreakKeepsStoreOrder(t *testing.T) {
	first := makeGroup(t, "first", taxonomy.GroupParams{Titles: []string{"Monteur"}})
	second := makeGroup(t, "second", taxonomy.GroupParams{Titles: []string{"Monteur"}})
	svc := New(makeStore(t, first, second))

	g, _, err := svc.Match("Monteur")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if g.ID() != "first" {
		t.Errorf("tie broke to %q, want first group in store order", g.ID())
	}
}

func TestMatch_DiacriticTitleScoresRunes(t *testing.T) {
	ascii := makeGroup(t, "ascii", taxonomy.GroupParams{Titles: []string{"Coordinatie"}})
	diacritic := makeGroup(t, "diacritic", taxonomy.GroupParams{Titles: []string{"Coördinatie"}})
	svc := New(makeStore(t, ascii, diacritic))

	g, score, err := svc.Match("Coordinatie / Coördinatie medewerker")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	// Both titles are 11 characters, so the scores tie and store order wins.
	if score != 11 {
		t.Errorf("score = %d, want 11 runes", score)
	}
	if g.ID() != "ascii" {
		t.Errorf("tie broke to %q, want first group in store order", g.ID())
	}
}

func TestScore_CaseInsensitive(t *testing.T) {
	g := makeGroup(t, "g", taxonomy.GroupParams{Titles: []string{"Service Engineer"}})
	if got := Score(g, "senior service engineer"); got != len("Service Engineer") {
		t.Errorf("Score = %d", got)
	}
}
