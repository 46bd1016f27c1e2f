package gviz

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"
)

// DefaultBaseURL is where public spreadsheets answer GViz queries.
const DefaultBaseURL = "https://docs.google.com/spreadsheets/d"

// Client queries a publicly shared spreadsheet anonymously.
type Client struct {
	SpreadsheetID string
	BaseURL       string
	HTTPClient    *http.Client
}

// NewClient creates a client for the given spreadsheet with a bounded timeout.
func NewClient(spreadsheetID string, timeout time.Duration) *Client {
	if timeout <= 0 {
		timeout = 15 * time.Second
	}
	return &Client{
		SpreadsheetID: spreadsheetID,
		BaseURL:       DefaultBaseURL,
		HTTPClient:    &http.Client{Timeout: timeout},
	}
}

// URL returns the query endpoint for one sheet (tab).
func (c *Client) URL(sheet string) string {
	base := strings.TrimSuffix(c.BaseURL, "/")
	if base == "" {
		base = DefaultBaseURL
	}
	q := url.Values{}
	q.Set("tqx", "out:json")
	q.Set("sheet", sheet)
	return fmt.Sprintf("%s/%s/gviz/tq?%s", base, url.PathEscape(c.SpreadsheetID), q.Encode())
}

// FetchRows downloads and decodes every data row of the named sheet.
func (c *Client) FetchRows(ctx context.Context, sheet string) ([]Row, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.URL(sheet), nil)
	if err != nil {
		return nil, fmt.Errorf("failed to build request for sheet %s: %w", sheet, err)
	}

	httpClient := c.HTTPClient
	if httpClient == nil {
		httpClient = http.DefaultClient
	}

	resp, err := httpClient.Do(req)
	if err != nil {
		return nil, &FetchError{
			Kind:    KindTransport,
			Sheet:   sheet,
			Message: fmt.Sprintf("Erro de conexão com a planilha (aba %s).", sheet),
			Err:     err,
		}
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		if resp.StatusCode == http.StatusNotFound {
			return nil, NotFound(sheet, c.SpreadsheetID, resp.StatusCode)
		}
		return nil, &FetchError{
			Kind:    KindTransport,
			Sheet:   sheet,
			Status:  resp.StatusCode,
			Message: fmt.Sprintf("Erro HTTP: %d", resp.StatusCode),
		}
	}

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, &FetchError{
			Kind:    KindTransport,
			Sheet:   sheet,
			Status:  resp.StatusCode,
			Message: fmt.Sprintf("Erro de conexão com a planilha (aba %s).", sheet),
			Err:     err,
		}
	}

	decoded, err := Decode(sheet, body)
	if err != nil {
		return nil, err
	}
	return decoded.Table.Rows, nil
}
