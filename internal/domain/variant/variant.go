// Package variant enumerates the canonical boolean search variants and their
// fixed metadata: priority tier and expected result-size band. Both are
// static lookups keyed by variant name, not data-dependent.
package variant

// Variant names one of the seven canonical query variants.
type Variant string

// The canonical variants. Broad and OpenToWork are always compiled; the
// others only when the group carries the corresponding source list.
const (
	Broad             Variant = "broad"
	Narrow            Variant = "narrow"
	LookalikeEmployer Variant = "lookalike_employer"
	Competitor        Variant = "competitor"
	SkillBased        Variant = "skill_based"
	OpenToWork        Variant = "open_to_work"
	Certification     Variant = "certification"
)

// Priority is a fixed sourcing priority tier.
type Priority string

// Priority tiers.
const (
	PriorityHigh   Priority = "high"
	PriorityMedium Priority = "medium"
	PriorityLow    Priority = "low"
)

// All returns the variants in canonical order. Exports and bundles follow
// this order so output is stable across runs.
func All() []Variant {
	return []Variant{Broad, Narrow, LookalikeEmployer, Competitor, SkillBased, OpenToWork, Certification}
}

// IsValid reports whether v names a known variant.
func (v Variant) IsValid() bool {
	switch v {
	case Broad, Narrow, LookalikeEmployer, Competitor, SkillBased, OpenToWork, Certification:
		return true
	}
	return false
}

// Priority returns the fixed priority tier for the variant.
func (v Variant) Priority() Priority {
	switch v {
	case OpenToWork, LookalikeEmployer:
		return PriorityHigh
	case Narrow, Competitor, SkillBased:
		return PriorityMedium
	case Broad, Certification:
		return PriorityLow
	}
	return PriorityMedium
}

// ExpectedResults returns the fixed result-size band for the variant.
func (v Variant) ExpectedResults() string {
	switch v {
	case Broad:
		return "500-2000"
	case Narrow:
		return "100-500"
	case LookalikeEmployer:
		return "10-50"
	case Competitor:
		return "200-800"
	case SkillBased:
		return "100-400"
	case OpenToWork:
		return "50-200"
	case Certification:
		return "50-150"
	}
	return "100-500"
}
