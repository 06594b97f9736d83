package main

import (
	"context"
	"errors"
	"fmt"
	"html/template"
	"io"
	"log/slog"
	"os"
	"os/signal"
	"path/filepath"
	"strings"
	"syscall"
	"time"

	"github.com/nao1215/simcheck/internal/config"
	"github.com/nao1215/simcheck/internal/database"
	"github.com/nao1215/simcheck/internal/engine"
	"github.com/nao1215/simcheck/internal/extract"
	"github.com/nao1215/simcheck/internal/lexicon"
	slogx "github.com/nao1215/simcheck/internal/log"
	"github.com/nao1215/simcheck/internal/model"
	"github.com/nao1215/simcheck/internal/pipeline"
	"github.com/nao1215/simcheck/internal/report"
	"github.com/spf13/cobra"
)

// NewCheckCmd creates the check command.
func NewCheckCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "check <assignments-folder>",
		Short: "Compare every pair of submissions in a folder",
		Long: `Check compares every pair of submissions in the assignments folder.

Each subfolder is one submission and must contain exactly one document.
Folders with no file or more than one file are reported and skipped.

For every pair the report shows:
- The normalized Levenshtein distance of the raw texts (0 = identical)
- A remark when the texts are identical apart from case and surrounding whitespace
- A remark for every word both texts use that is not in the dictionary

Examples:
  # HTML matrix on stdout
  simcheck check assignments/ > matrix.html

  # Markdown report into a file
  simcheck check --markdown -o report.md assignments/

  # Use a hunspell word list and accept docx files as well
  simcheck check --dictionary /usr/share/hunspell/nl.dic -x .pdf -x .docx assignments/

Configuration file (.simcheck) example:
  language: nl
  extensions: [.pdf, .docx]
  languages:
    nl:
      dictionaries: [/usr/share/hunspell/nl.dic]
      extraWords: [levenshtein]`,
		Args: cobra.ExactArgs(1),
		RunE: runCheckCmd,
	}

	// Comparison flags
	cmd.Flags().StringP("language", "l", config.DefaultLanguage,
		"Dictionary language (BCP 47 tag)")
	cmd.Flags().StringSliceP("extension", "x", config.DefaultExtensions,
		"Accepted submission file types (supported: "+strings.Join(extract.SupportedExtensions(), ", ")+")")
	cmd.Flags().StringSliceP("dictionary", "d", nil,
		"Word-list file to load in addition to the lexicon database (repeatable)")
	cmd.Flags().StringSlice("word", nil,
		"Extra word to accept as correctly spelled (repeatable)")
	cmd.Flags().IntP("concurrency", "n", config.DefaultConcurrency,
		"Number of pairs compared at once")
	cmd.Flags().Bool("no-store", false,
		"Do not read words from the lexicon database")
	cmd.Flags().String("db-dir", config.XDGDataDir(),
		"Directory of the lexicon database")

	// Configuration and logging
	cmd.Flags().StringP("config", "c", "",
		"Configuration file path (default: .simcheck in current or home directory)")
	cmd.Flags().String("log-file", config.DefaultLogFile,
		"Append-only log file (empty to disable)")

	// Report flags
	cmd.Flags().BoolP("json", "j", false,
		"Output JSON report")
	cmd.Flags().BoolP("markdown", "m", false,
		"Output Markdown report")
	cmd.Flags().BoolP("text", "t", false,
		"Output plain-text summary")
	cmd.Flags().StringP("output", "o", "",
		"Write report to specified file path (creates directories if needed)")
	cmd.Flags().String("template", "",
		"Custom HTML matrix template")

	return cmd
}

// runCheckCmd executes the check command.
func runCheckCmd(cmd *cobra.Command, args []string) error {
	cfg, err := buildConfig(cmd, args)
	if err != nil {
		return err
	}

	if err := cfg.Validate(); err != nil {
		return fmt.Errorf("configuration error: %w", err)
	}

	logger, closer, err := slogx.NewRunLogger(cfg.LogFile, cmd.ErrOrStderr(), cfg.Verbose)
	if err != nil {
		return err
	}
	defer closer.Close()
	slog.SetDefault(logger)

	ctx, cancel := context.WithCancel(cmd.Context())
	defer cancel()

	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, os.Interrupt, syscall.SIGTERM)
	defer signal.Stop(sigCh)
	go func() {
		select {
		case <-sigCh:
			logger.Info("received shutdown signal, cancelling...")
			cancel()
		case <-ctx.Done():
		}
	}()

	return runCheck(ctx, cfg, logger, cmd.OutOrStdout())
}

// getVerboseFlag retrieves the verbose flag from the command or its parent.
func getVerboseFlag(cmd *cobra.Command) bool {
	verbose, err := cmd.Flags().GetBool("verbose")
	if err != nil {
		verbose, err = cmd.Root().PersistentFlags().GetBool("verbose")
		if err != nil {
			return false
		}
	}
	return verbose
}

// buildConfig creates a Config from cobra command flags and the config file.
func buildConfig(cmd *cobra.Command, args []string) (*config.Config, error) {
	cfg := config.NewConfig()
	flags := cmd.Flags()

	var err error
	if cfg.Language, err = flags.GetString("language"); err != nil {
		return nil, err
	}
	if cfg.Extensions, err = flags.GetStringSlice("extension"); err != nil {
		return nil, err
	}
	if cfg.DictionaryPaths, err = flags.GetStringSlice("dictionary"); err != nil {
		return nil, err
	}
	if cfg.ExtraWords, err = flags.GetStringSlice("word"); err != nil {
		return nil, err
	}
	if cfg.Concurrency, err = flags.GetInt("concurrency"); err != nil {
		return nil, err
	}
	if cfg.NoStore, err = flags.GetBool("no-store"); err != nil {
		return nil, err
	}
	if cfg.DBDir, err = flags.GetString("db-dir"); err != nil {
		return nil, err
	}
	if cfg.ConfigFilePath, err = flags.GetString("config"); err != nil {
		return nil, err
	}
	if cfg.LogFile, err = flags.GetString("log-file"); err != nil {
		return nil, err
	}
	if cfg.JSONReport, err = flags.GetBool("json"); err != nil {
		return nil, err
	}
	if cfg.MarkdownReport, err = flags.GetBool("markdown"); err != nil {
		return nil, err
	}
	if cfg.TextReport, err = flags.GetBool("text"); err != nil {
		return nil, err
	}
	if cfg.ReportFile, err = flags.GetString("output"); err != nil {
		return nil, err
	}
	if cfg.TemplatePath, err = flags.GetString("template"); err != nil {
		return nil, err
	}
	cfg.Verbose = getVerboseFlag(cmd)

	// If user explicitly specified a config file path, error if not found.
	// If no path specified, silently run without one.
	configPath := config.FindConfigFile(cfg.ConfigFilePath)
	if configPath != "" {
		file, err := config.LoadConfigFile(configPath)
		if err != nil {
			return nil, fmt.Errorf("failed to load config file %s: %w", configPath, err)
		}
		cfg.ApplyFile(file, flags.Changed)
	} else if cfg.ConfigFilePath != "" {
		return nil, fmt.Errorf("%w: %s", config.ErrConfigNotFound, cfg.ConfigFilePath)
	}

	if len(args) > 0 {
		cfg.AssignmentsDir = args[0]
	}

	return cfg, nil
}

// runCheck sets up every component, runs the pipeline and writes the report.
// Template, extractor and dictionary problems fail before any document is read.
func runCheck(ctx context.Context, cfg *config.Config, logger *slog.Logger, stdout io.Writer) error {
	logger.Info("starting check",
		"root", cfg.AssignmentsDir,
		"language", cfg.Language,
		"extensions", cfg.Extensions,
		"concurrency", cfg.Concurrency,
	)

	var tmpl *template.Template
	if cfg.TemplatePath != "" {
		var err error
		if tmpl, err = report.LoadTemplate(cfg.TemplatePath); err != nil {
			return err
		}
	}

	extractor, err := extract.NewExtractor(cfg.Extensions)
	if err != nil {
		return fmt.Errorf("configuration error: %w", err)
	}
	logger.Debug("extractor ready", "extensions", extractor.Extensions())

	dict, err := loadDictionary(ctx, cfg, logger)
	if err != nil {
		return err
	}
	logger.Info("dictionary loaded", "language", dict.Language(), "words", dict.Len())

	eng := engine.New(dict,
		engine.WithLogger(logger),
		engine.WithConcurrency(cfg.Concurrency),
	)
	p := pipeline.DefaultPipeline(extract.NewCache(extractor), eng, pipeline.DefaultOptions{
		IgnorePatterns: cfg.IgnorePatterns,
		Concurrency:    cfg.Concurrency,
		Logger:         logger,
	})
	logger.Debug("pipeline ready", "steps", p.StepNames())

	run := model.NewRun(cfg.AssignmentsDir, dict.Language())
	startTime := time.Now()
	if err := p.Execute(ctx, run); err != nil {
		return err
	}
	logger.Info("check completed",
		"elapsed", time.Since(startTime).Round(time.Millisecond),
		"pairs", run.Matrix.Len(),
	)

	return outputReport(cfg, tmpl, model.NewReport(run), stdout)
}

// loadDictionary builds the oracle from word lists, the lexicon database and
// extra words. A missing dictionary is fatal.
func loadDictionary(ctx context.Context, cfg *config.Config, logger *slog.Logger) (*lexicon.Dictionary, error) {
	settings := cfg.LanguageSettings()
	src := lexicon.Sources{
		WordLists:  settings.Dictionaries,
		ExtraWords: settings.ExtraWords,
	}

	if !cfg.NoStore {
		db, err := openStore(cfg.DBDir)
		if err != nil {
			return nil, err
		}
		if db != nil {
			defer db.Close()
			src.Store = db
			logger.Debug("lexicon database opened", "path", db.Path())
		}
	}

	return lexicon.Load(ctx, cfg.Language, src)
}

// openStore opens the lexicon database read-write without creating it.
// It returns nil when no database has been imported yet.
func openStore(dir string) (*database.LexiconDB, error) {
	if _, err := os.Stat(filepath.Join(dir, database.FileName)); errors.Is(err, os.ErrNotExist) {
		return nil, nil
	}
	db, err := database.Open(dir, database.Options{CreateIfNotExists: false})
	if err != nil {
		return nil, fmt.Errorf("failed to open lexicon database: %w", err)
	}
	return db, nil
}

// outputReport writes the report in the requested format.
func outputReport(cfg *config.Config, tmpl *template.Template, rep *model.Report, stdout io.Writer) error {
	output := stdout
	if cfg.ReportFile != "" {
		dir := filepath.Dir(cfg.ReportFile)
		if dir != "" && dir != "." {
			if err := os.MkdirAll(dir, 0750); err != nil {
				return fmt.Errorf("failed to create output directory: %w", err)
			}
		}

		// Reports name students, so keep them private to the owner.
		f, err := os.OpenFile(cfg.ReportFile, os.O_CREATE|os.O_WRONLY|os.O_TRUNC, 0600)
		if err != nil {
			return fmt.Errorf("failed to create output file: %w", err)
		}
		defer f.Close()
		output = f
	}

	var w report.Writer
	switch {
	case cfg.JSONReport:
		w = report.NewJSONWriter(output, report.WithPrettyPrint(), report.WithVersion(getVersion()))
	case cfg.MarkdownReport:
		w = report.NewMarkdownWriter(output)
	case cfg.TextReport:
		w = report.NewSimpleWriter(output, report.WithVerbose(cfg.Verbose))
	default:
		w = report.NewHTMLWriter(output, report.WithTemplate(tmpl))
	}

	_, err := w.Write(rep)
	return err
}
