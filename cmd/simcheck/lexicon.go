package main

import (
	"context"
	"fmt"
	"io"
	"text/tabwriter"

	"github.com/nao1215/simcheck/internal/config"
	"github.com/nao1215/simcheck/internal/database"
	"github.com/nao1215/simcheck/internal/lexicon"
	"github.com/spf13/cobra"
)

// NewLexiconCmd creates the lexicon command group.
func NewLexiconCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "lexicon",
		Short: "Manage the dictionaries used for non-word detection",
		Long: `Lexicon manages the word database simcheck reads its dictionaries from.

Words are stored per language in a SQLite database in the XDG data
directory (~/.local/share/simcheck/lexicon.db on Linux). Word lists given
with --dictionary on the check command are used in addition.`,
	}

	cmd.PersistentFlags().String("db-dir", config.XDGDataDir(),
		"Directory of the lexicon database")

	cmd.AddCommand(newLexiconImportCmd())
	cmd.AddCommand(newLexiconListCmd())

	return cmd
}

func newLexiconImportCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "import <wordlist>...",
		Short: "Import word-list files into the lexicon database",
		Long: `Import reads one or more word lists and stores their words for a language.

A word list has one word per line. Lines starting with '#' are ignored.
Hunspell .dic files are accepted as is: the leading word count and the
affix flags after '/' are skipped. Importing the same list twice adds
nothing.

Examples:
  simcheck lexicon import --language nl /usr/share/hunspell/nl.dic
  simcheck lexicon import -l en words-a.txt words-b.txt`,
		Args: cobra.MinimumNArgs(1),
		RunE: runLexiconImportCmd,
	}

	cmd.Flags().StringP("language", "l", config.DefaultLanguage,
		"Language (BCP 47 tag) of the imported words")

	return cmd
}

func newLexiconListCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "list",
		Short: "List the languages in the lexicon database",
		Args:  cobra.NoArgs,
		RunE:  runLexiconListCmd,
	}
}

// runLexiconImportCmd executes the lexicon import command.
func runLexiconImportCmd(cmd *cobra.Command, args []string) error {
	lang, err := cmd.Flags().GetString("language")
	if err != nil {
		return err
	}
	tag, err := lexicon.ParseLanguage(lang)
	if err != nil {
		return err
	}
	dbDir, err := cmd.Flags().GetString("db-dir")
	if err != nil {
		return err
	}

	db, err := database.Open(dbDir, database.DefaultOptions())
	if err != nil {
		return fmt.Errorf("failed to open lexicon database: %w", err)
	}
	defer db.Close()

	ctx := cmd.Context()
	out := cmd.OutOrStdout()
	for _, path := range args {
		words, err := lexicon.ReadWordListFile(path)
		if err != nil {
			return err
		}
		added, err := db.ImportWords(ctx, tag.String(), words)
		if err != nil {
			return fmt.Errorf("failed to import %s: %w", path, err)
		}
		fmt.Fprintf(out, "Imported %s: %d words read, %d new\n", path, len(words), added)
	}

	total, err := db.CountWords(ctx, tag.String())
	if err != nil {
		return err
	}
	fmt.Fprintf(out, "Lexicon %q now holds %d words (%s)\n", tag.String(), total, db.Path())
	return nil
}

// runLexiconListCmd executes the lexicon list command.
func runLexiconListCmd(cmd *cobra.Command, _ []string) error {
	dbDir, err := cmd.Flags().GetString("db-dir")
	if err != nil {
		return err
	}

	db, err := openStore(dbDir)
	if err != nil {
		return err
	}
	out := cmd.OutOrStdout()
	if db == nil {
		fmt.Fprintln(out, "No words imported yet (use 'simcheck lexicon import')")
		return nil
	}
	defer db.Close()

	return listLanguages(cmd.Context(), db, out)
}

// listLanguages prints one line per stored language.
func listLanguages(ctx context.Context, db *database.LexiconDB, out io.Writer) error {
	summaries, err := db.Languages(ctx)
	if err != nil {
		return err
	}

	if len(summaries) == 0 {
		fmt.Fprintln(out, "No words imported yet (use 'simcheck lexicon import')")
		return nil
	}

	fmt.Fprintf(out, "Languages (%d):\n\n", len(summaries))
	tw := tabwriter.NewWriter(out, 0, 0, 2, ' ', 0)
	fmt.Fprintln(tw, "  LANGUAGE\tWORDS\tLAST IMPORT")
	for _, s := range summaries {
		last := "-"
		if !s.LastImported.IsZero() {
			last = s.LastImported.Format("2006-01-02 15:04:05")
		}
		fmt.Fprintf(tw, "  %s\t%d\t%s\n", s.Language, s.WordCount, last)
	}
	return tw.Flush()
}
