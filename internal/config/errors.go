package config

import "errors"

// Configuration validation errors.
// These errors are returned by Config.Validate() and provide specific
// information about what is wrong with the configuration.
//
// Design decision: We use package-level sentinel errors rather than
// creating new error instances in Validate(). This allows callers to use
// errors.Is() for programmatic error handling while still providing
// human-readable messages.
var (
	// ErrNoAssignmentsDir is returned when no assignments folder is given.
	ErrNoAssignmentsDir = errors.New("no assignments folder specified")

	// ErrNoLanguage is returned when the dictionary language is empty.
	ErrNoLanguage = errors.New("no dictionary language specified: use --language")

	// ErrNoExtensions is returned when every file type has been disabled.
	ErrNoExtensions = errors.New("no file extensions enabled")

	// ErrInvalidConcurrency is returned when the concurrency is not positive.
	ErrInvalidConcurrency = errors.New("invalid concurrency: must be positive")

	// ErrConflictingReportFormats is returned when more than one of
	// --json, --markdown and --text is specified.
	ErrConflictingReportFormats = errors.New("conflicting report formats: choose one of --json, --markdown, --text")

	// ErrTemplateWithoutHTML is returned when a custom template is given
	// together with a non-HTML report format.
	ErrTemplateWithoutHTML = errors.New("--template only applies to the HTML report")
)
