package types

// ChemicalConfig holds settings for the formula recognizer.
type ChemicalConfig struct {
	// ExcludedUnits are added to the built-in excluded-unit set. Candidates
	// equal to any entry are never reported as chemicals.
	ExcludedUnits []string `json:"excluded_units" yaml:"excluded_units" mapstructure:"excluded_units"`
}

// QuantityConfig holds the unit settings of one property.
type QuantityConfig struct {
	// Domain selects the unit table: temperature or length.
	Domain UnitDomain `json:"domain" yaml:"domain" mapstructure:"domain"`

	// Units overrides the domain's default unit symbols when non-empty.
	Units []string `json:"units,omitempty" yaml:"units,omitempty" mapstructure:"units"`

	// TargetUnit is the canonical unit values are converted to (K, nm, Å).
	TargetUnit string `json:"target_unit" yaml:"target_unit" mapstructure:"target_unit"`

	// RoundTo is the number of decimal places kept after conversion.
	// Nil leaves values unrounded.
	RoundTo *int `json:"round_to,omitempty" yaml:"round_to,omitempty" mapstructure:"round_to"`
}

// PropertyProfile describes one physical property to mine, such as the
// Curie temperature or the skyrmion size.
type PropertyProfile struct {
	// Name identifies the property in records (e.g. "curie_temperature").
	Name string `json:"name" yaml:"name" mapstructure:"name"`

	QuantityConfig `yaml:",inline" mapstructure:",squash"`

	// Keywords lists the sentence keywords. A keyword written "A AND B"
	// requires both terms; a sentence qualifies when any keyword matches.
	Keywords []string `json:"keywords" yaml:"keywords" mapstructure:"keywords"`

	// Exclusions are substrings (thin-film and nanostructure markers) that
	// disqualify a sentence.
	Exclusions []string `json:"exclusions" yaml:"exclusions" mapstructure:"exclusions"`

	// Quantitative requires at least one digit in a qualifying sentence.
	Quantitative bool `json:"quantitative" yaml:"quantitative" mapstructure:"quantitative"`

	// MaterialInSentence requires at least one recognized chemical in a
	// qualifying sentence.
	MaterialInSentence bool `json:"material_in_sentence" yaml:"material_in_sentence" mapstructure:"material_in_sentence"`
}

// MinerConfig holds settings for the mining stage.
type MinerConfig struct {
	ChemicalConfig `yaml:",inline" mapstructure:",squash"`

	// PapersDir is the base directory for input documents (contains text/, metadata/).
	PapersDir string `json:"papers_dir" yaml:"papers_dir" mapstructure:"papers_dir"`

	// RecordsDir is the base directory for mined output (contains extracted/).
	RecordsDir string `json:"records_dir" yaml:"records_dir" mapstructure:"records_dir"`

	// Profiles lists the properties to mine.
	Profiles []PropertyProfile `json:"profiles" yaml:"profiles" mapstructure:"profiles"`

	// Material is an explicitly supplied material name used when a sentence
	// names no chemical and the document offers none either.
	Material string `json:"material,omitempty" yaml:"material,omitempty" mapstructure:"material"`

	// MaxSentenceLength drops longer sentences (default 1500 characters).
	MaxSentenceLength int `json:"max_sentence_length" yaml:"max_sentence_length" mapstructure:"max_sentence_length"`

	// SourceMaxSentenceLength overrides MaxSentenceLength per document source.
	SourceMaxSentenceLength map[string]int `json:"source_max_sentence_length,omitempty" yaml:"source_max_sentence_length,omitempty" mapstructure:"source_max_sentence_length"`

	// Workers is the number of documents mined concurrently (default 1).
	Workers int `json:"workers" yaml:"workers" mapstructure:"workers"`

	// Rewrite re-mines documents whose output is already up to date.
	Rewrite bool `json:"rewrite" yaml:"rewrite" mapstructure:"rewrite"`
}

// RecordStoreConfig holds settings for the record store.
type RecordStoreConfig struct {
	// RecordsDir is the base directory for records (contains extracted/, index/).
	RecordsDir string `json:"records_dir" yaml:"records_dir" mapstructure:"records_dir"`

	// MaxResults is the default maximum number of query results (default 20).
	MaxResults int `json:"max_results" yaml:"max_results" mapstructure:"max_results"`
}

// LogConfig holds logger settings.
type LogConfig struct {
	// Level is one of debug, info, warn, error (default info).
	Level string `json:"level" yaml:"level" mapstructure:"level"`

	// Format is console or json (default console).
	Format string `json:"format" yaml:"format" mapstructure:"format"`
}
