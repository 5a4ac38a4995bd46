package cli

import (
	"encoding/json"
	"fmt"
	"io"
	"time"
)

// OutputFormat specifies the output format
type OutputFormat string

const (
	FormatText OutputFormat = "text"
	FormatJSON OutputFormat = "json"
)

// RunResult summarizes a completed run for the operator.
type RunResult struct {
	RowCount   int       `json:"row_count"`
	OutputPath string    `json:"output"`
	FetchedAt  time.Time `json:"fetched_at"`
	SourceURL  string    `json:"source_url"`
}

// WriteResult writes the result in the specified format
func WriteResult(w io.Writer, result *RunResult, format OutputFormat) error {
	switch format {
	case FormatJSON:
		return writeJSON(w, result)
	case FormatText:
		return writeText(w, result)
	default:
		return fmt.Errorf("unknown format: %s", format)
	}
}

// writeJSON outputs the result as JSON
func writeJSON(w io.Writer, result *RunResult) error {
	encoder := json.NewEncoder(w)
	encoder.SetIndent("", "  ")
	return encoder.Encode(result)
}

// writeText outputs the result as a human-readable summary line
func writeText(w io.Writer, result *RunResult) error {
	_, err := fmt.Fprintf(w, "Saved %d rows to '%s'. Fetched at %s from %s.\n",
		result.RowCount,
		result.OutputPath,
		result.FetchedAt.Format("2006-01-02T15:04:05"),
		result.SourceURL,
	)
	return err
}
