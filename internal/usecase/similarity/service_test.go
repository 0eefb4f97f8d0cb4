package similarity

import (
	"errors"
	"testing"

	"github.com/kailas-cloud/querydex/internal/domain"
	"github.com/kailas-cloud/querydex/internal/domain/taxonomy"
)

func makeGroup(t *testing.T, id, category string, p taxonomy.GroupParams) taxonomy.Group {
	t.Helper()
	if p.Titles == nil {
		p.Titles = []string{"Title " + id}
	}
	g, err := taxonomy.NewGroup(id, "Group "+id, category, p)
	if err != nil {
		t.Fatalf("NewGroup(%q): %v", id, err)
	}
	return g
}

func makeService(t *testing.T, groups ...taxonomy.Group) *Service {
	t.Helper()
	store, err := taxonomy.NewStore(groups)
	if err != nil {
		t.Fatalf("NewStore: %v", err)
	}
	return New(store)
}

func TestScore_IdenticalGroups(t *testing.T) {
	p := taxonomy.GroupParams{
		Titles:         []string{"Monteur"},
		Skills:         []string{"NEN 1010", "Kabels"},
		Certifications: []string{"VCA"},
		SectorKeywords: []string{"elektrotechniek"},
	}
	a := makeGroup(t, "a", "montage", p)
	b := makeGroup(t, "b", "montage", p)
	svc := makeService(t, a, b)

	if got := svc.Score(a, b); got != 1.0 {
		t.Errorf("identical groups score %v, want 1.0", got)
	}
}

func TestScore_Symmetric(t *testing.T) {
	a := makeGroup(t, "a", "montage", taxonomy.GroupParams{
		Skills:         []string{"Autocad", "Revit", "Eplan"},
		Certifications: []string{"VCA"},
	})
	b := makeGroup(t, "b", "engineering", taxonomy.GroupParams{
		Skills:         []string{"Eplan", "See Electrical"},
		Certifications: []string{"VCA", "NEN 3140"},
	})
	svc := makeService(t, a, b)

	if svc.Score(a, b) != svc.Score(b, a) {
		t.Errorf("Score not symmetric: %v vs %v", svc.Score(a, b), svc.Score(b, a))
	}
}

func TestScore_Bounds(t *testing.T) {
	a := makeGroup(t, "a", "montage", taxonomy.GroupParams{Skills: []string{"X"}})
	b := makeGroup(t, "b", "engineering", taxonomy.GroupParams{Skills: []string{"Y"}})
	svc := makeService(t, a, b)

	got := svc.Score(a, b)
	if got < 0 || got > 1 {
		t.Errorf("score %v out of [0,1]", got)
	}
	// Nothing shared, different category: exactly zero.
	if got != 0.0 {
		t.Errorf("disjoint groups score %v, want 0", got)
	}
}

func TestScore_CategoryBonus(t *testing.T) {
	a := makeGroup(t, "a", "montage", taxonomy.GroupParams{})
	b := makeGroup(t, "b", "montage", taxonomy.GroupParams{})
	svc := makeService(t, a, b)

	// Same category alone: 1.0 of max 5.0.
	if got := svc.Score(a, b); got != 0.2 {
		t.Errorf("category-only score %v, want 0.2", got)
	}
}

func TestScore_EmptySkillSetsContributeZero(t *testing.T) {
	a := makeGroup(t, "a", "montage", taxonomy.GroupParams{Skills: []string{"X"}})
	b := makeGroup(t, "b", "engineering", taxonomy.GroupParams{})
	svc := makeService(t, a, b)

	if got := svc.Score(a, b); got != 0.0 {
		t.Errorf("empty-vs-nonempty skills scored %v, want 0", got)
	}
}

func TestRank(t *testing.T) {
	base := makeGroup(t, "base", "montage", taxonomy.GroupParams{
		Skills: []string{"A", "B", "C", "D"},
	})
	near := makeGroup(t, "near", "montage", taxonomy.GroupParams{
		Skills: []string{"A", "B", "C", "D"},
	})
	far := makeGroup(t, "far", "montage", taxonomy.GroupParams{
		Skills: []string{"A", "B", "X", "Y"},
	})
	unrelated := makeGroup(t, "unrelated", "productie", taxonomy.GroupParams{
		Skills: []string{"Q"},
	})
	svc := makeService(t, base, far, near, unrelated)

	ranked, err := svc.Rank("base", 0.3)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if len(ranked) != 2 {
		t.Fatalf("ranked = %v, want near and far only", ranked)
	}
	if ranked[0].ID != "near" || ranked[1].ID != "far" {
		t.Errorf("ranking order = %q, %q", ranked[0].ID, ranked[1].ID)
	}
	for _, r := range ranked {
		if r.ID == "base" {
			t.Error("queried group must not rank itself")
		}
		if r.Score < 0.3 {
			t.Errorf("score %v below threshold leaked into ranking", r.Score)
		}
	}
}

func TestRank_UnknownGroup(t *testing.T) {
	svc := makeService(t, makeGroup(t, "a", "montage", taxonomy.GroupParams{}))
	if _, err := svc.Rank("ghost", 0.3); !errors.Is(err, domain.ErrGroupNotFound) {
		t.Errorf("expected ErrGroupNotFound, got %v", err)
	}
}

func TestMatrix(t *testing.T) {
	a := makeGroup(t, "a", "montage", taxonomy.GroupParams{Skills: []string{"X"}})
	b := makeGroup(t, "b", "engineering", taxonomy.GroupParams{Skills: []string{"X"}})
	svc := makeService(t, a, b)

	m := svc.Matrix()
	if len(m.IDs) != 2 || len(m.Scores) != 2 {
		t.Fatalf("matrix shape %dx%d", len(m.IDs), len(m.Scores))
	}
	if m.IDs[0] != "a" || m.IDs[1] != "b" {
		t.Errorf("matrix ids = %v, want store order", m.IDs)
	}
	for i := range m.Scores {
		if m.Scores[i][i] != 1.0 {
			t.Errorf("diagonal [%d][%d] = %v, want 1.0", i, i, m.Scores[i][i])
		}
	}
	if m.Scores[0][1] != m.Scores[1][0] {
		t.Errorf("matrix not symmetric: %v vs %v", m.Scores[0][1], m.Scores[1][0])
	}
}

func TestJaccard(t *testing.T) {
	tests := []struct {
		name string
		a, b []string
		want float64
	}{
		{"identical", []string{"x", "y"}, []string{"x", "y"}, 1.0},
		{"case insensitive", []string{"Autocad"}, []string{"autocad"}, 1.0},
		{"half", []string{"x", "y"}, []string{"y", "z"}, 1.0 / 3.0},
		{"disjoint", []string{"x"}, []string{"y"}, 0.0},
		{"one empty", []string{"x"}, nil, 0.0},
		{"both empty", nil, nil, 0.0},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := jaccard(tt.a, tt.b); got != tt.want {
				t.Errorf("jaccard = %v, want %v", got, tt.want)
			}
		})
	}
}
