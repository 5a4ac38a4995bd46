package workbook

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/hanair-data/hnair-table/internal/table"
	"github.com/xuri/excelize/v2"
)

const (
	// DefaultLatestSheetName is the sheet that always reflects the most
	// recent download.
	DefaultLatestSheetName = "Latest"

	// maxSheetNameLength is Excel's hard limit on sheet names.
	maxSheetNameLength = 31

	// defaultSheetName is the placeholder sheet excelize creates in a
	// fresh workbook.
	defaultSheetName = "Sheet1"

	minColumnWidth = 10
	maxColumnWidth = 60
	columnPadding  = 2
)

// Options control how Update writes the workbook.
type Options struct {
	// LatestSheetName names the sheet that stores the most recent
	// snapshot. Empty means DefaultLatestSheetName.
	LatestSheetName string
	// IncludeHistory adds a dated snapshot sheet alongside the latest one.
	IncludeHistory bool
	// HistorySheetName overrides the history sheet name. Empty means the
	// fetch date formatted as YYYY-MM-DD.
	HistorySheetName string
	// FetchedAt is the timestamp recorded in the workbook metadata and
	// used for the default history sheet name. Zero means now.
	FetchedAt time.Time
	// SourceURL is recorded in the workbook description.
	SourceURL string
}

// Update writes rows into the workbook at path, creating the file if it does
// not exist. The latest sheet (and, when enabled, the history sheet) is fully
// recreated before writing so no stale cells survive from a previous run.
// The file on disk is only replaced after a complete successful save.
func Update(path string, rows table.Table, opts Options) error {
	if rows.IsEmpty() {
		return fmt.Errorf("no rows provided for workbook export")
	}

	timestamp := opts.FetchedAt
	if timestamp.IsZero() {
		timestamp = time.Now()
	}

	latestName := opts.LatestSheetName
	if latestName == "" {
		latestName = DefaultLatestSheetName
	}
	if err := validateSheetName(latestName); err != nil {
		return err
	}

	historyName := ""
	if opts.IncludeHistory {
		historyName = opts.HistorySheetName
		if historyName == "" {
			historyName = timestamp.Format("2006-01-02")
		}
		if err := validateSheetName(historyName); err != nil {
			return err
		}
	}

	if dir := filepath.Dir(path); dir != "." {
		if err := os.MkdirAll(dir, 0755); err != nil {
			return fmt.Errorf("creating output directory: %w", err)
		}
	}

	f, err := open(path)
	if err != nil {
		return err
	}
	defer f.Close()

	if err := writeSheet(f, latestName, rows); err != nil {
		return err
	}
	if opts.IncludeHistory {
		if err := writeSheet(f, historyName, rows); err != nil {
			return err
		}
	}

	removeEmptyDefaultSheet(f)

	if err := setDocProps(f, timestamp, opts.SourceURL); err != nil {
		return fmt.Errorf("setting workbook properties: %w", err)
	}

	return save(f, path)
}

// validateSheetName enforces Excel's sheet name constraints.
func validateSheetName(name string) error {
	if strings.TrimSpace(name) == "" {
		return fmt.Errorf("sheet name must not be empty")
	}
	if len(name) > maxSheetNameLength {
		return fmt.Errorf("sheet name %q is longer than Excel's %d character limit", name, maxSheetNameLength)
	}
	return nil
}

// open loads an existing workbook or starts a new one
func open(path string) (*excelize.File, error) {
	if _, err := os.Stat(path); err != nil {
		if os.IsNotExist(err) {
			return excelize.NewFile(), nil
		}
		return nil, fmt.Errorf("checking workbook: %w", err)
	}

	f, err := excelize.OpenFile(path)
	if err != nil {
		return nil, fmt.Errorf("opening workbook: %w", err)
	}
	return f, nil
}

// resetSheet recreates the named sheet so prior content is dropped.
func resetSheet(f *excelize.File, name string) error {
	idx, err := f.GetSheetIndex(name)
	if err != nil {
		return fmt.Errorf("looking up sheet %q: %w", name, err)
	}
	if idx == -1 {
		if _, err := f.NewSheet(name); err != nil {
			return fmt.Errorf("creating sheet %q: %w", name, err)
		}
		return nil
	}

	// DeleteSheet refuses to drop a workbook's only sheet, so park a
	// scratch sheet while the target is recreated.
	const scratch = "__hnair_reset__"
	if _, err := f.NewSheet(scratch); err != nil {
		return fmt.Errorf("creating scratch sheet: %w", err)
	}
	if err := f.DeleteSheet(name); err != nil {
		return fmt.Errorf("removing sheet %q: %w", name, err)
	}
	if _, err := f.NewSheet(name); err != nil {
		return fmt.Errorf("recreating sheet %q: %w", name, err)
	}
	if err := f.DeleteSheet(scratch); err != nil {
		return fmt.Errorf("removing scratch sheet: %w", err)
	}
	return nil
}

// writeSheet resets the named sheet and fills it with rows, sizing columns to
// their longest line and freezing the header row.
func writeSheet(f *excelize.File, name string, rows table.Table) error {
	if err := resetSheet(f, name); err != nil {
		return err
	}

	widths := make(map[int]int)
	for rowIdx, row := range rows {
		for colIdx, value := range row {
			cell, err := excelize.CoordinatesToCellName(colIdx+1, rowIdx+1)
			if err != nil {
				return fmt.Errorf("addressing cell (%d,%d): %w", rowIdx+1, colIdx+1, err)
			}
			if err := f.SetCellValue(name, cell, value); err != nil {
				return fmt.Errorf("writing cell %s!%s: %w", name, cell, err)
			}
			if w := longestLine(value); w > widths[colIdx+1] {
				widths[colIdx+1] = w
			}
		}
	}

	for col, width := range widths {
		adjusted := width + columnPadding
		if adjusted < minColumnWidth {
			adjusted = minColumnWidth
		}
		if adjusted > maxColumnWidth {
			adjusted = maxColumnWidth
		}
		colName, err := excelize.ColumnNumberToName(col)
		if err != nil {
			return fmt.Errorf("naming column %d: %w", col, err)
		}
		if err := f.SetColWidth(name, colName, colName, float64(adjusted)); err != nil {
			return fmt.Errorf("sizing column %s: %w", colName, err)
		}
	}

	if err := f.SetPanes(name, &excelize.Panes{
		Freeze:      true,
		YSplit:      1,
		TopLeftCell: "A2",
		ActivePane:  "bottomLeft",
	}); err != nil {
		return fmt.Errorf("freezing header row: %w", err)
	}

	return nil
}

// longestLine returns the rune length of the longest line in a cell value.
func longestLine(value string) int {
	max := 0
	for _, line := range strings.Split(value, "\n") {
		if n := len([]rune(line)); n > max {
			max = n
		}
	}
	return max
}

// removeEmptyDefaultSheet drops the placeholder sheet left behind when a
// fresh workbook was created, as long as it holds no data and is not the
// only sheet remaining.
func removeEmptyDefaultSheet(f *excelize.File) {
	idx, err := f.GetSheetIndex(defaultSheetName)
	if err != nil || idx == -1 || len(f.GetSheetList()) < 2 {
		return
	}
	rows, err := f.GetRows(defaultSheetName)
	if err != nil {
		return
	}
	for _, row := range rows {
		for _, cell := range row {
			if cell != "" {
				return
			}
		}
	}
	f.DeleteSheet(defaultSheetName)
}

func setDocProps(f *excelize.File, fetchedAt time.Time, sourceURL string) error {
	return f.SetDocProps(&excelize.DocProperties{
		Modified:       fetchedAt.Format(time.RFC3339),
		LastModifiedBy: "hnair-table automation",
		Description: fmt.Sprintf("Data fetched from %s on %s",
			sourceURL, fetchedAt.Format(time.RFC3339)),
	})
}

// save serializes the workbook to a temp file beside the target and renames
// it into place, so a failed save leaves the original file untouched.
func save(f *excelize.File, path string) error {
	tmp, err := os.CreateTemp(filepath.Dir(path), filepath.Base(path)+".tmp-*")
	if err != nil {
		return fmt.Errorf("creating temp workbook: %w", err)
	}
	tmpPath := tmp.Name()

	if err := f.Write(tmp); err != nil {
		tmp.Close()
		os.Remove(tmpPath)
		return fmt.Errorf("writing workbook: %w", err)
	}
	if err := tmp.Close(); err != nil {
		os.Remove(tmpPath)
		return fmt.Errorf("closing temp workbook: %w", err)
	}
	if err := os.Rename(tmpPath, path); err != nil {
		os.Remove(tmpPath)
		return fmt.Errorf("replacing workbook: %w", err)
	}
	return nil
}
