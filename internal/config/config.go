package config

import (
	"path/filepath"
	"slices"

	"github.com/adrg/xdg"
)

// Default configuration values.
const (
	// AppName is the application name used for XDG directory paths.
	AppName = "simcheck"

	// DefaultLanguage is the dictionary language used for non-word detection.
	// Submissions are Dutch course reports unless configured otherwise.
	DefaultLanguage = "nl"

	// DefaultConcurrency of 1 keeps comparisons sequential. Pair comparison is
	// CPU bound, so values above the number of cores gain nothing.
	DefaultConcurrency = 1

	// DefaultLogFile is the append-only run log, relative to the working
	// directory.
	DefaultLogFile = "textsimilarity.log"
)

// DefaultExtensions is the set of file types read by default.
// Only PDF is enabled unless the user asks for more.
var DefaultExtensions = []string{".pdf"}

// Config holds all configuration options for one simcheck run.
// This struct is populated from CLI flags and the config file and passed
// through the application via dependency injection rather than global state.
//
// Design decision: We use a single flat struct for the run options. The
// per-language dictionary settings live in File because they are keyed by
// language tag.
type Config struct {
	// AssignmentsDir is the folder holding one subfolder per submission.
	AssignmentsDir string

	// Language is the BCP 47 tag of the dictionary used for non-word remarks.
	Language string

	// Extensions lists the file types the text source accepts.
	// Any other extension aborts the run.
	Extensions []string

	// DictionaryPaths are word-list files loaded in addition to the store.
	DictionaryPaths []string

	// ExtraWords are accepted as real words on top of the dictionary.
	// Course-specific jargon goes here.
	ExtraWords []string

	// IgnorePatterns are glob patterns for file names that do not count as
	// submitted files (e.g. ".DS_Store").
	IgnorePatterns []string

	// Concurrency is the number of pairs compared at once.
	Concurrency int

	// LogFile is the append-only log file. Empty disables file logging.
	LogFile string

	// Verbose enables detailed log output using slog.LevelDebug.
	Verbose bool

	// ConfigFilePath is the path to the configuration file.
	// If empty, the tool searches for .simcheck in the current directory,
	// the user's home directory and the XDG config directory.
	ConfigFilePath string

	// Languages holds the per-language settings loaded from the config file.
	Languages *File

	// JSONReport selects JSON output. Mutually exclusive with the other formats.
	JSONReport bool

	// MarkdownReport selects Markdown output.
	MarkdownReport bool

	// TextReport selects the plain-text terminal summary.
	TextReport bool

	// ReportFile is the output file path for the report.
	// When empty, the report goes to stdout.
	ReportFile string

	// TemplatePath is a custom HTML matrix template.
	// It is parsed before any comparison work starts.
	TemplatePath string

	// DBDir is the directory holding the lexicon database.
	// Defaults to the XDG data directory (~/.local/share/simcheck on Linux).
	DBDir string

	// NoStore disables reading words from the lexicon database.
	NoStore bool
}

// NewConfig creates a new Config with default values.
//
// Design decision: We use a constructor function instead of relying on
// zero values because several defaults are non-zero. This also serves as
// documentation of what the defaults are.
func NewConfig() *Config {
	return &Config{
		Language:    DefaultLanguage,
		Extensions:  slices.Clone(DefaultExtensions),
		Concurrency: DefaultConcurrency,
		LogFile:     DefaultLogFile,
		DBDir:       XDGDataDir(),
	}
}

// ApplyFile merges file settings into the config. Values already set from
// flags win; changed reports whether a flag was given explicitly.
func (c *Config) ApplyFile(f *File, changed func(flag string) bool) {
	if f == nil {
		return
	}
	c.Languages = f

	if f.Language != "" && !changed("language") {
		c.Language = f.Language
	}
	if len(f.Extensions) > 0 && !changed("extension") {
		c.Extensions = slices.Clone(f.Extensions)
	}
	if f.Concurrency > 0 && !changed("concurrency") {
		c.Concurrency = f.Concurrency
	}
	if f.LogFile != "" && !changed("log-file") {
		c.LogFile = f.LogFile
	}
	if f.Template != "" && !changed("template") {
		c.TemplatePath = f.Template
	}
	c.IgnorePatterns = append(c.IgnorePatterns, f.IgnorePatterns...)
}

// LanguageSettings returns the dictionary settings for the configured
// language, merged with the config file. Word lists given on the command line
// come first.
func (c *Config) LanguageSettings() LanguageConfig {
	var lc LanguageConfig
	if c.Languages != nil {
		lc = c.Languages.GetLanguageConfig(c.Language)
	}
	lc.Dictionaries = append(slices.Clone(c.DictionaryPaths), lc.Dictionaries...)
	lc.ExtraWords = append(slices.Clone(c.ExtraWords), lc.ExtraWords...)
	return lc
}

// XDGDataDir returns the XDG data directory for simcheck.
// On Linux: ~/.local/share/simcheck
// On macOS: ~/Library/Application Support/simcheck
// On Windows: %LOCALAPPDATA%\simcheck
func XDGDataDir() string {
	return filepath.Join(xdg.DataHome, AppName)
}

// XDGConfigDir returns the XDG config directory for simcheck.
// On Linux: ~/.config/simcheck
// On macOS: ~/Library/Application Support/simcheck
// On Windows: %APPDATA%\simcheck
func XDGConfigDir() string {
	return filepath.Join(xdg.ConfigHome, AppName)
}

// Validate checks if the configuration is valid.
// It returns a specific error describing what is invalid.
//
// Design decision: We validate at the config level rather than at each
// point of use to fail fast, before any document is read.
// We return the first error found because fixing one error often makes
// others irrelevant.
func (c *Config) Validate() error {
	if c.AssignmentsDir == "" {
		return ErrNoAssignmentsDir
	}

	if c.Language == "" {
		return ErrNoLanguage
	}

	if len(c.Extensions) == 0 {
		return ErrNoExtensions
	}

	if c.Concurrency <= 0 {
		return ErrInvalidConcurrency
	}

	formats := 0
	for _, selected := range []bool{c.JSONReport, c.MarkdownReport, c.TextReport} {
		if selected {
			formats++
		}
	}
	if formats > 1 {
		return ErrConflictingReportFormats
	}

	if c.TemplatePath != "" && (c.JSONReport || c.MarkdownReport || c.TextReport) {
		return ErrTemplateWithoutHTML
	}

	return nil
}
