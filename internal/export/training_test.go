package export

import (
	"bufio"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"reflect"
	"testing"

	"github.com/kailas-cloud/querydex/internal/domain/taxonomy"
)

func trainingStore(t *testing.T) taxonomy.Store {
	t.Helper()

	monteur, err := taxonomy.NewGroup("monteur_elektro", "Monteur Elektrotechniek", "montage", taxonomy.GroupParams{
		Titles:         []string{"Monteur", "Elektromonteur"},
		Synonyms:       []string{"Servicemonteur"},
		EnglishTitles:  []string{"Electrician"},
		Skills:         []string{"NEN 1010", "Eplan"},
		Certifications: []string{"VCA"},
		SectorKeywords: []string{"elektrotechniek"},
		LookAlikes:     []string{"tekenaar_elektro"},
	})
	if err != nil {
		t.Fatalf("NewGroup: %v", err)
	}
	tekenaar, err := taxonomy.NewGroup("tekenaar_elektro", "Tekenaar Elektrotechniek", "montage", taxonomy.GroupParams{
		Titles: []string{"Tekenaar"},
	})
	if err != nil {
		t.Fatalf("NewGroup: %v", err)
	}
	verpleeg, err := taxonomy.NewGroup("verpleegkundige", "Verpleegkundige", "zorg", taxonomy.GroupParams{
		Titles: []string{"Verpleegkundige"},
		Skills: []string{"Triage"},
	})
	if err != nil {
		t.Fatalf("NewGroup: %v", err)
	}

	store, err := taxonomy.NewStore([]taxonomy.Group{monteur, tekenaar, verpleeg})
	if err != nil {
		t.Fatalf("NewStore: %v", err)
	}
	return store
}

func TestClassificationSamples(t *testing.T) {
	gen := NewTrainingGenerator(trainingStore(t))
	samples := gen.ClassificationSamples()

	// monteur: 4 title variants + 2 titles x 2 skills + 2 titles x 1 keyword,
	// tekenaar: 1 title, verpleegkundige: 1 title + 1 skill combo.
	if len(samples) != 13 {
		t.Fatalf("len = %d, want 13", len(samples))
	}
	if samples[0].Text != "Monteur" || samples[0].Label != "monteur_elektro" || samples[0].Category != "montage" {
		t.Errorf("first sample = %+v", samples[0])
	}

	var sawSkill, sawKeyword bool
	for _, s := range samples {
		if s.Text == "Monteur met ervaring in Eplan" {
			sawSkill = true
		}
		if s.Text == "Elektromonteur elektrotechniek" {
			sawKeyword = true
		}
	}
	if !sawSkill || !sawKeyword {
		t.Errorf("skill combo %v, keyword combo %v", sawSkill, sawKeyword)
	}
}

func TestSimilaritySamples(t *testing.T) {
	gen := NewTrainingGenerator(trainingStore(t))
	samples := gen.SimilaritySamples()

	byType := map[string][]SimilaritySample{}
	for _, s := range samples {
		byType[s.MatchType] = append(byType[s.MatchType], s)
	}

	// 2 monteur titles x 1 synonym.
	if len(byType["exact"]) != 2 {
		t.Errorf("exact = %d", len(byType["exact"]))
	}
	if byType["exact"][0].Sentence1 != "Vacature: Monteur" ||
		byType["exact"][0].Sentence2 != "Profiel: Servicemonteur" ||
		byType["exact"][0].Score != 0.95 {
		t.Errorf("exact sample = %+v", byType["exact"][0])
	}

	// monteur 2x2 + verpleegkundige 1x1.
	if len(byType["skill"]) != 5 {
		t.Errorf("skill = %d", len(byType["skill"]))
	}
	for _, s := range byType["skill"] {
		if s.Score != 0.8 {
			t.Errorf("skill score = %v", s.Score)
		}
	}

	// 2 monteur titles x 1 tekenaar title.
	if len(byType["lookalike"]) != 2 {
		t.Errorf("lookalike = %d", len(byType["lookalike"]))
	}
	if byType["lookalike"][0].Sentence2 != "Profiel: Tekenaar" || byType["lookalike"][0].Score != 0.6 {
		t.Errorf("lookalike sample = %+v", byType["lookalike"][0])
	}

	// montage groups each pair with zorg (1 each), zorg pairs with both.
	if len(byType["negative"]) != 4 {
		t.Errorf("negative = %d", len(byType["negative"]))
	}
	for _, s := range byType["negative"] {
		if s.Score != 0.1 {
			t.Errorf("negative score = %v", s.Score)
		}
	}
}

func TestSimilaritySamples_NegativeCap(t *testing.T) {
	base, err := taxonomy.NewGroup("base", "Base", "montage", taxonomy.GroupParams{
		Titles: []string{"Base"},
	})
	if err != nil {
		t.Fatalf("NewGroup: %v", err)
	}
	groups := []taxonomy.Group{base}
	for i := 0; i < 5; i++ {
		g, err := taxonomy.NewGroup(fmt.Sprintf("zorg_%d", i), fmt.Sprintf("Zorg %d", i), "zorg", taxonomy.GroupParams{
			Titles: []string{fmt.Sprintf("Zorgtitel %d", i)},
		})
		if err != nil {
			t.Fatalf("NewGroup: %v", err)
		}
		groups = append(groups, g)
	}
	store, err := taxonomy.NewStore(groups)
	if err != nil {
		t.Fatalf("NewStore: %v", err)
	}

	negatives := 0
	for _, s := range NewTrainingGenerator(store).SimilaritySamples() {
		if s.MatchType == "negative" && s.Sentence1 == "Vacature: Base" {
			negatives++
		}
	}
	if negatives != 3 {
		t.Errorf("negatives for base = %d, want cap of 3", negatives)
	}
}

func TestNERSamples(t *testing.T) {
	gen := NewTrainingGenerator(trainingStore(t))
	samples := gen.NERSamples()

	// monteur: 2 titles x 2 skills + 1 cert, verpleegkundige: 1x1.
	if len(samples) != 6 {
		t.Fatalf("len = %d, want 6", len(samples))
	}

	first := samples[0]
	wantTokens := []string{"Gezocht:", "Monteur", "met", "kennis", "van", "NEN", "1010"}
	wantTags := []string{"O", "B-TITLE", "O", "O", "O", "B-SKILL", "I-SKILL"}
	if !reflect.DeepEqual(first.Tokens, wantTokens) {
		t.Errorf("tokens = %v", first.Tokens)
	}
	if !reflect.DeepEqual(first.Tags, wantTags) {
		t.Errorf("tags = %v", first.Tags)
	}
	if first.Group != "monteur_elektro" {
		t.Errorf("group = %q", first.Group)
	}

	var cert *NERSample
	for i := range samples {
		for _, tag := range samples[i].Tags {
			if tag == "B-CERT" {
				cert = &samples[i]
			}
		}
	}
	if cert == nil {
		t.Fatal("no certification sample")
	}
	if !reflect.DeepEqual(cert.Tokens, []string{"Vereist:", "certificering", "VCA"}) {
		t.Errorf("cert tokens = %v", cert.Tokens)
	}
	if !reflect.DeepEqual(cert.Tags, []string{"O", "O", "B-CERT"}) {
		t.Errorf("cert tags = %v", cert.Tags)
	}
}

func TestWriteTrainingData(t *testing.T) {
	gen := NewTrainingGenerator(trainingStore(t))
	dir := filepath.Join(t.TempDir(), "training")

	meta, err := gen.WriteTrainingData(dir)
	if err != nil {
		t.Fatalf("WriteTrainingData: %v", err)
	}

	if meta.Statistics["total_classification_samples"] != 13 {
		t.Errorf("classification stat = %d", meta.Statistics["total_classification_samples"])
	}
	if meta.DataVersion != "1.0" || len(meta.Tasks) != 3 {
		t.Errorf("meta = %+v", meta)
	}
	wantIDs := []string{"monteur_elektro", "tekenaar_elektro", "verpleegkundige"}
	if !reflect.DeepEqual(meta.GroupIDs, wantIDs) {
		t.Errorf("group ids = %v", meta.GroupIDs)
	}

	if n := countLines(t, filepath.Join(dir, "classification_train.jsonl")); n != 13 {
		t.Errorf("classification lines = %d", n)
	}
	if n := countLines(t, filepath.Join(dir, "similarity_train.jsonl")); n != meta.Statistics["total_similarity_samples"] {
		t.Errorf("similarity lines = %d", n)
	}
	if n := countLines(t, filepath.Join(dir, "ner_train.jsonl")); n != 6 {
		t.Errorf("ner lines = %d", n)
	}

	stored := openJSONMap(t, filepath.Join(dir, "metadata.json"))
	if stored["data_version"] != "1.0" {
		t.Errorf("stored metadata = %v", stored)
	}
}

func TestWriteJSONL_PathError(t *testing.T) {
	err := writeJSONL(filepath.Join(t.TempDir(), "missing", "out.jsonl"), []int{1})
	if err == nil {
		t.Fatal("expected error for unwritable path")
	}
}

func countLines(t *testing.T, path string) int {
	t.Helper()

	f, err := os.Open(path)
	if err != nil {
		t.Fatalf("open %s: %v", path, err)
	}
	defer f.Close()

	n := 0
	scanner := bufio.NewScanner(f)
	for scanner.Scan() {
		var v map[string]any
		if err := json.Unmarshal(scanner.Bytes(), &v); err != nil {
			t.Fatalf("line %d of %s: %v", n+1, path, err)
		}
		n++
	}
	if err := scanner.Err(); err != nil {
		t.Fatalf("scan %s: %v", path, err)
	}
	return n
}

func openJSONMap(t *testing.T, path string) map[string]any {
	t.Helper()

	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("read %s: %v", path, err)
	}
	var v map[string]any
	if err := json.Unmarshal(data, &v); err != nil {
		t.Fatalf("unmarshal %s: %v", path, err)
	}
	return v
}
