// Package scraper provides HTTP fetching and HTML table extraction for the
// HNAir announcement page.
//
// The scraper fetches the public announcement page and extracts the table at a
// configured zero-based index among all tables on the page. Cells keep their
// text content verbatim with whitespace trimmed; <br> elements inside a cell
// become newlines so multi-line values are preserved.
package scraper
