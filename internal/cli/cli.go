package cli

import (
	"fmt"
	"io"
	"os"
	"strings"
	"time"

	"github.com/hanair-data/hnair-table/internal/logger"
	"github.com/hanair-data/hnair-table/internal/scraper"
	"github.com/hanair-data/hnair-table/internal/workbook"
	"github.com/spf13/cobra"
)

const (
	ExitSuccess = 0
	ExitError   = 1
)

var (
	flagURL          string
	flagOutput       string
	flagTableIndex   int
	flagLatestSheet  string
	flagHistorySheet string
	flagSkipHistory  bool
	flagTimeout      int
	flagFormat       string
	flagVerbose      bool
)

// Config carries one run's settings through the pipeline. It is built once
// from the command-line flags and never mutated.
type Config struct {
	URL              string
	TableIndex       int
	OutputPath       string
	LatestSheetName  string
	HistorySheetName string
	SkipHistory      bool
	Timeout          time.Duration
}

// NewRootCmd creates the root command
func NewRootCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "hnair-table",
		Short: "Download the HNAir table and update an Excel workbook",
		Long: `Download the HNAir announcement table and update an Excel workbook.
If the workbook already exists, the 'Latest' sheet is replaced and a dated
history sheet is added (unless disabled).`,
		RunE: runUpdate,
	}

	// Define flags
	cmd.Flags().StringVar(&flagURL, "url", envOr("HNAIR_TABLE_URL", scraper.DefaultTableURL), "Page containing the target table")
	cmd.Flags().IntVar(&flagTableIndex, "table-index", 0, "Zero-based index of the table to extract when multiple tables are present")
	cmd.Flags().StringVar(&flagOutput, "output", envOr("HNAIR_TABLE_OUTPUT", "hnair_table.xlsx"), "Excel workbook to update")
	cmd.Flags().StringVar(&flagLatestSheet, "latest-sheet-name", workbook.DefaultLatestSheetName, "Name of the sheet that stores the most recent snapshot")
	cmd.Flags().StringVar(&flagHistorySheet, "history-sheet-name", "", "Explicit name for the historical sheet (default: today's date, YYYY-MM-DD)")
	cmd.Flags().BoolVar(&flagSkipHistory, "skip-history", false, "Only update the latest sheet without keeping dated history sheets")
	cmd.Flags().IntVar(&flagTimeout, "timeout", 30, "Timeout (in seconds) for the HTTP request")
	cmd.Flags().StringVar(&flagFormat, "format", "text", "Output format: text or json")
	cmd.Flags().BoolVar(&flagVerbose, "verbose", false, "Enable verbose logging")

	return cmd
}

// runUpdate is the main command logic
func runUpdate(cmd *cobra.Command, args []string) error {
	format := OutputFormat(strings.ToLower(flagFormat))
	if format != FormatText && format != FormatJSON {
		return fmt.Errorf("invalid format: %s (must be 'text' or 'json')", flagFormat)
	}

	if flagTableIndex < 0 {
		return fmt.Errorf("--table-index must be >= 0, got %d", flagTableIndex)
	}
	if flagTimeout <= 0 {
		return fmt.Errorf("--timeout must be a positive number of seconds, got %d", flagTimeout)
	}

	if flagVerbose {
		logger.SetDefault(logger.New(logger.LevelDebug, cmd.ErrOrStderr()))
	}

	cfg := Config{
		URL:              flagURL,
		TableIndex:       flagTableIndex,
		OutputPath:       flagOutput,
		LatestSheetName:  flagLatestSheet,
		HistorySheetName: flagHistorySheet,
		SkipHistory:      flagSkipHistory,
		Timeout:          time.Duration(flagTimeout) * time.Second,
	}

	return run(cfg, format, cmd.OutOrStdout())
}

// run executes one fetch-extract-write pass.
func run(cfg Config, format OutputFormat, w io.Writer) error {
	logger.Debug("fetching table", logger.Fields{
		"url":         cfg.URL,
		"table_index": cfg.TableIndex,
	})

	sc := scraper.New(cfg.URL, cfg.Timeout)
	rows, err := sc.FetchTable(cfg.TableIndex)
	if err != nil {
		return fmt.Errorf("downloading table: %w", err)
	}
	fetchedAt := time.Now()

	if rows.IsEmpty() {
		return fmt.Errorf("no table rows were found; check that the page structure has not changed")
	}

	logger.Debug("extracted table", logger.Fields{
		"rows":    rows.RowCount(),
		"columns": rows.ColumnCount(),
	})

	err = workbook.Update(cfg.OutputPath, rows, workbook.Options{
		LatestSheetName:  cfg.LatestSheetName,
		IncludeHistory:   !cfg.SkipHistory,
		HistorySheetName: cfg.HistorySheetName,
		FetchedAt:        fetchedAt,
		SourceURL:        cfg.URL,
	})
	if err != nil {
		return fmt.Errorf("updating workbook: %w", err)
	}

	logger.Debug("workbook saved", logger.Fields{
		"output": cfg.OutputPath,
	})

	result := &RunResult{
		RowCount:   rows.RowCount(),
		OutputPath: cfg.OutputPath,
		FetchedAt:  fetchedAt,
		SourceURL:  cfg.URL,
	}
	return WriteResult(w, result, format)
}

// envOr returns the environment variable's value when set, otherwise fallback.
func envOr(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}

// Execute runs the CLI
func Execute() {
	if err := NewRootCmd().Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(ExitError)
	}
}
