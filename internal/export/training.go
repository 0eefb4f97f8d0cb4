package export

import (
	"bufio"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/kailas-cloud/querydex/internal/domain/taxonomy"
)

// Sample caps keep the generated datasets proportional per group.
const (
	classificationSkills   = 5
	classificationKeywords = 3
	similaritySkills       = 10
	similarityLookalikes   = 2
	similarityNegatives    = 3
	nerSkillsPerTitle      = 3
	nerCertifications      = 5
)

// ClassificationSample is one text-classification training row.
type ClassificationSample struct {
	Text     string `json:"text"`
	Label    string `json:"label"`
	Category string `json:"category"`
}

// SimilaritySample is one sentence-similarity training pair.
type SimilaritySample struct {
	Sentence1 string  `json:"sentence1"`
	Sentence2 string  `json:"sentence2"`
	Score     float64 `json:"score"`
	MatchType string  `json:"match_type"`
}

// NERSample is one token-classification training row with BIO tags.
type NERSample struct {
	Tokens []string `json:"tokens"`
	Tags   []string `json:"ner_tags"`
	Group  string   `json:"group"`
}

// TrainingGenerator derives model training datasets from the taxonomy.
type TrainingGenerator struct {
	store taxonomy.Store
}

// NewTrainingGenerator creates a generator over the given store.
func NewTrainingGenerator(store taxonomy.Store) *TrainingGenerator {
	return &TrainingGenerator{store: store}
}

// ClassificationSamples labels every title variant with its group, plus
// title+skill and title+keyword combinations for harder examples.
func (g *TrainingGenerator) ClassificationSamples() []ClassificationSample {
	var samples []ClassificationSample

	for _, grp := range g.store.Groups() {
		for _, title := range grp.AllTitles() {
			samples = append(samples, ClassificationSample{
				Text: title, Label: grp.ID(), Category: grp.Category(),
			})
		}
		for _, title := range grp.Titles() {
			for _, skill := range limitTerms(grp.Skills(), classificationSkills) {
				samples = append(samples, ClassificationSample{
					Text:  fmt.Sprintf("%s met ervaring in %s", title, skill),
					Label: grp.ID(), Category: grp.Category(),
				})
			}
			for _, kw := range limitTerms(grp.SectorKeywords(), classificationKeywords) {
				samples = append(samples, ClassificationSample{
					Text:  fmt.Sprintf("%s %s", title, kw),
					Label: grp.ID(), Category: grp.Category(),
				})
			}
		}
	}
	return samples
}

// SimilaritySamples builds scored sentence pairs: exact synonym matches,
// skill matches, look-alike title pairs, and negative pairs drawn from
// other categories.
func (g *TrainingGenerator) SimilaritySamples() []SimilaritySample {
	var samples []SimilaritySample
	groups := g.store.Groups()

	for _, grp := range groups {
		for _, title := range grp.Titles() {
			for _, syn := range grp.Synonyms() {
				samples = append(samples, SimilaritySample{
					Sentence1: "Vacature: " + title,
					Sentence2: "Profiel: " + syn,
					Score:     0.95,
					MatchType: "exact",
				})
			}
			for _, skill := range limitTerms(grp.Skills(), similaritySkills) {
				samples = append(samples, SimilaritySample{
					Sentence1: fmt.Sprintf("Vacature: %s met %s", title, skill),
					Sentence2: "Ervaring: " + skill,
					Score:     0.8,
					MatchType: "skill",
				})
			}
		}

		for _, laID := range grp.LookAlikes() {
			la, err := g.store.Get(laID)
			if err != nil {
				continue
			}
			for _, t1 := range limitTerms(grp.Titles(), similarityLookalikes) {
				for _, t2 := range limitTerms(la.Titles(), similarityLookalikes) {
					samples = append(samples, SimilaritySample{
						Sentence1: "Vacature: " + t1,
						Sentence2: "Profiel: " + t2,
						Score:     0.6,
						MatchType: "lookalike",
					})
				}
			}
		}

		negatives := 0
		for _, other := range groups {
			if negatives == similarityNegatives {
				break
			}
			if other.Category() == grp.Category() {
				continue
			}
			samples = append(samples, SimilaritySample{
				Sentence1: "Vacature: " + grp.Titles()[0],
				Sentence2: "Profiel: " + other.Titles()[0],
				Score:     0.1,
				MatchType: "negative",
			})
			negatives++
		}
	}
	return samples
}

// NERSamples builds BIO-tagged sentences for title, skill, and
// certification extraction.
func (g *TrainingGenerator) NERSamples() []NERSample {
	var samples []NERSample

	for _, grp := range g.store.Groups() {
		for _, title := range grp.Titles() {
			for _, skill := range limitTerms(grp.Skills(), nerSkillsPerTitle) {
				text := fmt.Sprintf("Gezocht: %s met kennis van %s", title, skill)
				tokens := strings.Fields(text)
				samples = append(samples, NERSample{
					Tokens: tokens,
					Tags:   tagTokens(tokens, title, skill),
					Group:  grp.ID(),
				})
			}
		}

		for _, cert := range limitTerms(grp.Certifications(), nerCertifications) {
			text := "Vereist: certificering " + cert
			tokens := strings.Fields(text)
			tags := make([]string, 0, len(tokens))
			tags = append(tags, "O", "O")
			for i := 2; i < len(tokens); i++ {
				if i == 2 {
					tags = append(tags, "B-CERT")
				} else {
					tags = append(tags, "I-CERT")
				}
			}
			samples = append(samples, NERSample{Tokens: tokens, Tags: tags, Group: grp.ID()})
		}
	}
	return samples
}

// tagTokens assigns BIO tags for one title and one skill inside a sentence.
func tagTokens(tokens []string, title, skill string) []string {
	titleWords := wordSet(title)
	skillWords := wordSet(skill)

	tags := make([]string, len(tokens))
	for i, tok := range tokens {
		switch {
		case titleWords[tok]:
			tags[i] = bioTag(tags, i, "TITLE")
		case skillWords[tok]:
			tags[i] = bioTag(tags, i, "SKILL")
		default:
			tags[i] = "O"
		}
	}
	return tags
}

func bioTag(tags []string, i int, entity string) string {
	if i > 0 && (tags[i-1] == "B-"+entity || tags[i-1] == "I-"+entity) {
		return "I-" + entity
	}
	return "B-" + entity
}

func wordSet(s string) map[string]bool {
	set := map[string]bool{}
	for _, w := range strings.Fields(s) {
		set[w] = true
	}
	return set
}

// TrainingMetadata summarizes a generated training data bundle.
type TrainingMetadata struct {
	Statistics  map[string]int `json:"statistics"`
	GroupIDs    []string       `json:"groups"`
	GeneratedAt string         `json:"generated_at"`
	DataVersion string         `json:"data_version"`
	Tasks       []string       `json:"supported_tasks"`
}

// WriteTrainingData writes the full training bundle into dir:
// classification_train.jsonl, similarity_train.jsonl, ner_train.jsonl and
// metadata.json. Returns the metadata that was written.
func (g *TrainingGenerator) WriteTrainingData(dir string) (TrainingMetadata, error) {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return TrainingMetadata{}, fmt.Errorf("create %s: %w", dir, err)
	}

	classification := g.ClassificationSamples()
	similarity := g.SimilaritySamples()
	ner := g.NERSamples()

	if err := writeJSONL(filepath.Join(dir, "classification_train.jsonl"), classification); err != nil {
		return TrainingMetadata{}, err
	}
	if err := writeJSONL(filepath.Join(dir, "similarity_train.jsonl"), similarity); err != nil {
		return TrainingMetadata{}, err
	}
	if err := writeJSONL(filepath.Join(dir, "ner_train.jsonl"), ner); err != nil {
		return TrainingMetadata{}, err
	}

	meta := TrainingMetadata{
		Statistics: map[string]int{
			"total_classification_samples": len(classification),
			"total_similarity_samples":     len(similarity),
			"total_ner_samples":            len(ner),
		},
		GroupIDs:    g.store.IDs(),
		GeneratedAt: time.Now().Format(time.RFC3339),
		DataVersion: "1.0",
		Tasks:       []string{"text-classification", "sentence-similarity", "token-classification"},
	}
	if err := WriteJSON(filepath.Join(dir, "metadata.json"), meta); err != nil {
		return TrainingMetadata{}, err
	}
	return meta, nil
}

// writeJSONL writes one JSON object per line.
func writeJSONL[T any](path string, items []T) error {
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("create %s: %w", path, err)
	}
	w := bufio.NewWriter(f)
	enc := json.NewEncoder(w)
	for _, item := range items {
		if err := enc.Encode(item); err != nil {
			f.Close()
			return fmt.Errorf("encode %s: %w", path, err)
		}
	}
	if err := w.Flush(); err != nil {
		f.Close()
		return fmt.Errorf("flush %s: %w", path, err)
	}
	// Close errors surface write failures on some filesystems, so the
	// success path must not drop them.
	if err := f.Close(); err != nil {
		return fmt.Errorf("close %s: %w", path, err)
	}
	return nil
}

func limitTerms(in []string, n int) []string {
	if len(in) <= n {
		return in
	}
	return in[:n]
}
