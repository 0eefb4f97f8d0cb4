package querydex

// Option configures the Engine.
type Option func(*engineConfig)

type engineConfig struct {
	taxonomyPath string
	taxonomyData []byte
}

// WithTaxonomyFile loads the taxonomy from a YAML file.
func WithTaxonomyFile(path string) Option {
	return func(c *engineConfig) { c.taxonomyPath = path }
}

// WithTaxonomyData parses the taxonomy from in-memory YAML. Takes
// precedence over WithTaxonomyFile when both are set.
func WithTaxonomyData(data []byte) Option {
	return func(c *engineConfig) { c.taxonomyData = data }
}
