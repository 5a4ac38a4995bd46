// Package workbook persists extracted table rows into an xlsx workbook.
//
// Each run rewrites a "latest" sheet and, unless disabled, a dated history
// sheet with the same rows. Target sheets are recreated before writing so a
// shrinking table leaves no stale cells behind. The workbook is saved through
// a temp-file-then-rename step: a failure at any point before the rename
// leaves the existing file exactly as it was.
package workbook
