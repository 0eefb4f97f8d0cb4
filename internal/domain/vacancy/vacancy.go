// Package vacancy defines the validated vacancy input record.
package vacancy

import (
	"fmt"
	"regexp"
	"strings"

	"github.com/kailas-cloud/querydex/internal/domain"
)

var (
	controlChars = regexp.MustCompile(`[\x00-\x1f\x7f-\x9f]`)
	whitespace   = regexp.MustCompile(`\s+`)
)

// Vacancy is one vacancy row from the ingestion layer.
// Title is required; company and location may be empty.
type Vacancy struct {
	title    string
	company  string
	location string
}

// New validates and creates a vacancy. Input text is sanitized: control
// characters are stripped and whitespace runs collapsed. An empty title
// (after sanitizing) is rejected.
func New(title, company, location string) (Vacancy, error) {
	title = Sanitize(title)
	if title == "" {
		return Vacancy{}, fmt.Errorf("%w: empty title", domain.ErrInvalidVacancy)
	}

	return Vacancy{
		title:    title,
		company:  Sanitize(company),
		location: Sanitize(location),
	}, nil
}

// Title returns the vacancy title.
func (v Vacancy) Title() string { return v.title }

// Company returns the posting company, possibly empty.
func (v Vacancy) Company() string { return v.company }

// Location returns the vacancy location, possibly empty.
func (v Vacancy) Location() string { return v.location }

// Sanitize strips control characters and collapses whitespace runs.
func Sanitize(text string) string {
	text = controlChars.ReplaceAllString(text, "")
	text = whitespace.ReplaceAllString(text, " ")
	return strings.TrimSpace(text)
}
