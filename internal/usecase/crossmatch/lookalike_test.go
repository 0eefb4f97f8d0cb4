package crossmatch

import (
	"errors"
	"testing"

	"github.com/kailas-cloud/querydex/internal/domain"
	"github.com/kailas-cloud/querydex/internal/domain/taxonomy"
	"github.com/kailas-cloud/querydex/internal/domain/variant"
)

// stubCompiler returns a canned broad query per group.
type stubCompiler struct{}

func (stubCompiler) Variants(g taxonomy.Group) map[variant.Variant]string {
	return map[variant.Variant]string{variant.Broad: "broad for " + g.ID()}
}

func TestLookalikes(t *testing.T) {
	primary := makeGroup(t, "primary", taxonomy.GroupParams{
		Titles:     []string{"Monteur"},
		Skills:     []string{"Eplan"},
		LookAlikes: []string{"la1", "ghost", "la2"},
	})
	la1 := makeGroup(t, "la1", taxonomy.GroupParams{
		Titles: []string{"Tekenaar"},
		Skills: []string{"Eplan"},
	})
	la2 := makeGroup(t, "la2", taxonomy.GroupParams{
		Titles: []string{"Engineer"},
	})
	svc, _ := makeService(t, primary, la1, la2)

	report, err := svc.Lookalikes("primary", stubCompiler{})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if report.Primary.ID != "primary" {
		t.Errorf("primary = %q", report.Primary.ID)
	}
	if report.PrimarySearches[variant.Broad] != "broad for primary" {
		t.Errorf("primary searches = %v", report.PrimarySearches)
	}

	// Dangling "ghost" reference is skipped.
	if len(report.Lookalikes) != 2 {
		t.Fatalf("lookalikes = %v", report.Lookalikes)
	}
	if report.Lookalikes[0].ID != "la1" || report.Lookalikes[1].ID != "la2" {
		t.Errorf("lookalike order = %q, %q", report.Lookalikes[0].ID, report.Lookalikes[1].ID)
	}
	if report.Lookalikes[0].Similarity <= report.Lookalikes[1].Similarity {
		t.Errorf("la1 shares a skill with primary and should score higher: %v vs %v",
			report.Lookalikes[0].Similarity, report.Lookalikes[1].Similarity)
	}

	if len(report.CrossMatches) != 2 {
		t.Fatalf("cross matches = %v", report.CrossMatches)
	}
	cm := report.CrossMatches[0]
	if cm.Primary != "primary" || cm.Lookalike != "la1" {
		t.Errorf("cross match pair = %q/%q", cm.Primary, cm.Lookalike)
	}
	if cm.Query != "(Monteur OR Tekenaar) AND Eplan" {
		t.Errorf("cross match query = %q", cm.Query)
	}
	if cm.Description != "Profiles overlapping Group primary and Group la1" {
		t.Errorf("description = %q", cm.Description)
	}
}

func TestLookalikes_UnknownGroup(t *testing.T) {
	svc, _ := makeService(t, makeGroup(t, "a", taxonomy.GroupParams{}))
	if _, err := svc.Lookalikes("ghost", stubCompiler{}); !errors.Is(err, domain.ErrGroupNotFound) {
		t.Errorf("expected ErrGroupNotFound, got %v", err)
	}
}
