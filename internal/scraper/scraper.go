package scraper

import (
	"errors"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"github.com/PuerkitoBio/goquery"
	"github.com/hanair-data/hnair-table/internal/table"
	"golang.org/x/net/html"
)

const (
	DefaultTableURL = "https://www.hnair.com/xwzx/gsgg/fare-routes/"
	UserAgent       = "Mozilla/5.0 (X11; Linux x86_64) AppleWebKit/537.36 " +
		"(KHTML, like Gecko) Chrome/124.0 Safari/537.36"
	DefaultTimeout = 30 * time.Second
)

// ErrTableNotFound indicates the page has fewer tables than the requested index.
var ErrTableNotFound = errors.New("table not found")

// Scraper fetches the announcement page and extracts the target table
type Scraper struct {
	client *http.Client
	url    string
}

// New creates a Scraper for the given page URL. A non-positive timeout
// falls back to DefaultTimeout.
func New(url string, timeout time.Duration) *Scraper {
	if timeout <= 0 {
		timeout = DefaultTimeout
	}
	return &Scraper{
		client: &http.Client{
			Timeout: timeout,
		},
		url: url,
	}
}

// URL returns the page URL the scraper fetches from.
func (s *Scraper) URL() string {
	return s.url
}

// FetchTable downloads the page and extracts the table at tableIndex.
// A connect failure, timeout, or non-OK status aborts without retrying.
func (s *Scraper) FetchTable(tableIndex int) (table.Table, error) {
	req, err := http.NewRequest("GET", s.url, nil)
	if err != nil {
		return nil, fmt.Errorf("creating request: %w", err)
	}
	req.Header.Set("User-Agent", UserAgent)

	resp, err := s.client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("fetching page: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("unexpected status code: %d", resp.StatusCode)
	}

	return Extract(resp.Body, tableIndex)
}

// Extract parses HTML and returns the rows of the table at tableIndex,
// counting <table> elements in document order. Every <tr> becomes a row;
// an empty table yields an empty Table, not an error.
func Extract(r io.Reader, tableIndex int) (table.Table, error) {
	if tableIndex < 0 {
		return nil, fmt.Errorf("table index must be >= 0, got %d", tableIndex)
	}

	doc, err := goquery.NewDocumentFromReader(r)
	if err != nil {
		return nil, fmt.Errorf("parsing HTML: %w", err)
	}

	tables := doc.Find("table")
	if tableIndex >= tables.Length() {
		return nil, fmt.Errorf("%w: index %d, page has %d table(s)",
			ErrTableNotFound, tableIndex, tables.Length())
	}

	rows := make(table.Table, 0)
	tables.Eq(tableIndex).Find("tr").Each(func(_ int, tr *goquery.Selection) {
		row := make([]string, 0)
		tr.Find("th, td").Each(func(_ int, cell *goquery.Selection) {
			row = append(row, cellText(cell))
		})
		rows = append(rows, row)
	})

	return rows.Normalize(), nil
}

// cellText renders a cell's text content, turning <br> into a newline so
// multi-line values survive extraction.
func cellText(s *goquery.Selection) string {
	var b strings.Builder
	for _, n := range s.Nodes {
		writeNodeText(n, &b)
	}
	return normalizeCellText(b.String())
}

func writeNodeText(n *html.Node, b *strings.Builder) {
	for c := n.FirstChild; c != nil; c = c.NextSibling {
		switch {
		case c.Type == html.TextNode:
			b.WriteString(c.Data)
		case c.Type == html.ElementNode && c.Data == "br":
			b.WriteString("\n")
		default:
			writeNodeText(c, b)
		}
	}
}

// normalizeCellText trims each line and collapses internal whitespace for
// single-line values. NBSP is treated as a plain space.
func normalizeCellText(text string) string {
	text = strings.ReplaceAll(text, " ", " ")

	lines := strings.Split(text, "\n")
	for i, line := range lines {
		lines[i] = strings.TrimSpace(line)
	}
	joined := strings.TrimSpace(strings.Join(lines, "\n"))

	if !strings.Contains(joined, "\n") {
		return strings.Join(strings.Fields(joined), " ")
	}
	return joined
}
