package source

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/sony/gobreaker"

	"github.com/gyeh/hisdash/internal/resilience"
)

// DefaultSheetsURL is the Google Sheets host the CSV export is fetched from.
const DefaultSheetsURL = "https://docs.google.com/spreadsheets"

// maxSheetBytes caps the size of a downloaded export.
const maxSheetBytes = 64 << 20

// Sheet fetches the CSV export of a publicly shared Google Sheet.
type Sheet struct {
	ID      string
	BaseURL string // DefaultSheetsURL when empty
	Client  *http.Client
	Breaker *gobreaker.CircuitBreaker
	Retry   resilience.Config
}

// NewSheet returns a Sheet source with default client, breaker and retry.
func NewSheet(id string) *Sheet {
	return &Sheet{
		ID:      id,
		Client:  &http.Client{Timeout: 30 * time.Second},
		Breaker: resilience.NewCircuitBreaker("google-sheets"),
		Retry:   resilience.DefaultConfig,
	}
}

func (s *Sheet) Name() string { return "sheet:" + strings.TrimSpace(s.ID) }

// ExportURL is the CSV export address for the sheet.
func (s *Sheet) ExportURL() string {
	base := strings.TrimRight(s.BaseURL, "/")
	if base == "" {
		base = DefaultSheetsURL
	}
	id := url.PathEscape(strings.TrimSpace(s.ID))
	return fmt.Sprintf("%s/d/%s/export?format=csv&id=%s", base, id, id)
}

func (s *Sheet) Load(ctx context.Context) (*Table, error) {
	if strings.TrimSpace(s.ID) == "" {
		return nil, fmt.Errorf("sheet id is empty")
	}
	client := s.Client
	if client == nil {
		client = http.DefaultClient
	}
	cb := s.Breaker
	if cb == nil {
		cb = resilience.NewCircuitBreaker("google-sheets")
	}

	body, err := resilience.Call(ctx, cb, s.Retry, func() ([]byte, error) {
		req, err := http.NewRequestWithContext(ctx, http.MethodGet, s.ExportURL(), nil)
		if err != nil {
			return nil, resilience.Permanent(fmt.Errorf("create http request: %w", err))
		}
		resp, err := client.Do(req)
		if err != nil {
			return nil, fmt.Errorf("fetch sheet export: %w", err)
		}
		defer resp.Body.Close()

		if resp.StatusCode != http.StatusOK {
			err := fmt.Errorf("sheet export returned status %d; check that the sheet is shared publicly (anyone with the link can view)", resp.StatusCode)
			if resp.StatusCode < 500 && resp.StatusCode != http.StatusTooManyRequests {
				return nil, resilience.Permanent(err)
			}
			return nil, err
		}
		// A private sheet redirects to a sign-in page instead of failing.
		if strings.HasPrefix(resp.Header.Get("Content-Type"), "text/html") {
			return nil, resilience.Permanent(fmt.Errorf("sheet export returned an HTML page; check that the sheet is shared publicly (anyone with the link can view)"))
		}
		return io.ReadAll(io.LimitReader(resp.Body, maxSheetBytes))
	})
	if err != nil {
		return nil, err
	}
	return ParseCSV(ctx, bytes.NewReader(body))
}
