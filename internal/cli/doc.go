// Package cli implements the command-line interface for hnair-table.
//
// The cli package provides the Cobra-based CLI that drives one linear run:
// fetch the announcement page, extract the configured table, and write it
// into the workbook's latest sheet plus an optional dated history sheet. It
// formats the run summary as text or JSON and maps any failure to a non-zero
// exit status.
package cli
