package config

import "slices"

// LanguageConfig holds the dictionary settings for one language tag.
type LanguageConfig struct {
	// Dictionaries are word-list files for this language.
	// Hunspell .dic files are accepted; affix flags are ignored.
	Dictionaries []string `yaml:"dictionaries,omitempty"`

	// ExtraWords are accepted as real words in this language.
	ExtraWords []string `yaml:"extraWords,omitempty"`
}

// File represents the structure of the .simcheck configuration file.
type File struct {
	// Language is the default dictionary language.
	Language string `yaml:"language,omitempty"`

	// Extensions lists the accepted submission file types.
	Extensions []string `yaml:"extensions,omitempty"`

	// Concurrency is the number of pairs compared at once.
	Concurrency int `yaml:"concurrency,omitempty"`

	// LogFile is the append-only run log.
	LogFile string `yaml:"logFile,omitempty"`

	// Template is a custom HTML matrix template.
	Template string `yaml:"template,omitempty"`

	// IgnorePatterns are glob patterns for file names that are not
	// submissions.
	IgnorePatterns []string `yaml:"ignorePatterns,omitempty"`

	// Languages maps language tags to their dictionary settings.
	Languages map[string]LanguageConfig `yaml:"languages,omitempty"`

	// Defaults is applied to every language.
	Defaults LanguageConfig `yaml:"defaults,omitempty"`
}

// GetLanguageConfig returns the configuration for a language tag.
// Defaults are merged with the language entry: word lists and extra words
// from both are used, defaults first.
func (cf *File) GetLanguageConfig(lang string) LanguageConfig {
	result := LanguageConfig{
		Dictionaries: slices.Clone(cf.Defaults.Dictionaries),
		ExtraWords:   slices.Clone(cf.Defaults.ExtraWords),
	}

	if lc, ok := cf.Languages[lang]; ok {
		result.Dictionaries = append(result.Dictionaries, lc.Dictionaries...)
		result.ExtraWords = append(result.ExtraWords, lc.ExtraWords...)
	}

	return result
}
