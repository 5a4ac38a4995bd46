package scraper

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"
)

func TestFetchTable(t *testing.T) {
	tests := []struct {
		name        string
		htmlContent string
		statusCode  int
		tableIndex  int
		wantError   bool
		wantRows    int
	}{
		{
			name: "successful fetch",
			htmlContent: `
				<html><body>
					<table>
						<tr><th>Route</th><th>Valid</th></tr>
						<tr><td>BJS-SHA</td><td>2024-01-01</td></tr>
					</table>
				</body></html>
			`,
			statusCode: http.StatusOK,
			tableIndex: 0,
			wantError:  false,
			wantRows:   2,
		},
		{
			name:        "HTTP error status",
			htmlContent: "",
			statusCode:  http.StatusNotFound,
			tableIndex:  0,
			wantError:   true,
		},
		{
			name:        "page without tables",
			htmlContent: `<html><body><p>No announcement today</p></body></html>`,
			statusCode:  http.StatusOK,
			tableIndex:  0,
			wantError:   true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
				// Verify User-Agent is set
				if userAgent := r.Header.Get("User-Agent"); userAgent != UserAgent {
					t.Errorf("User-Agent = %q, want %q", userAgent, UserAgent)
				}

				w.WriteHeader(tt.statusCode)
				w.Write([]byte(tt.htmlContent))
			}))
			defer server.Close()

			s := New(server.URL, DefaultTimeout)
			rows, err := s.FetchTable(tt.tableIndex)

			if tt.wantError {
				if err == nil {
					t.Error("FetchTable() expected error, got nil")
				}
			} else {
				if err != nil {
					t.Errorf("FetchTable() unexpected error: %v", err)
				}
				if rows.RowCount() != tt.wantRows {
					t.Errorf("FetchTable() returned %d rows, want %d", rows.RowCount(), tt.wantRows)
				}
			}
		})
	}
}

func TestFetchTable_Timeout(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		time.Sleep(500 * time.Millisecond)
		w.Write([]byte("<html><body><table></table></body></html>"))
	}))
	defer server.Close()

	s := New(server.URL, 50*time.Millisecond)
	if _, err := s.FetchTable(0); err == nil {
		t.Fatal("expected timeout error, got nil")
	}
}
