// Package sheets reads tabs through the Google Sheets v4 API. It is the
// authenticated alternative to the anonymous gviz endpoint and yields the
// same row shape, so the normalizers don't care which one ran.
package sheets

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"strings"
	"time"

	"google.golang.org/api/googleapi"
	"google.golang.org/api/option"
	"google.golang.org/api/sheets/v4"

	"github.com/harrisonrobin/portfolio/pkg/gviz"
)

// Source fetches rows of one spreadsheet.
type Source struct {
	// Timeout bounds each FetchRows call. Zero means only ctx applies.
	Timeout time.Duration

	srv           *sheets.Service
	spreadsheetID string
}

// NewSource creates a Source. Pass option.WithAPIKey for a public sheet or
// option.WithHTTPClient with an OAuth client for a private one.
func NewSource(ctx context.Context, spreadsheetID string, opts ...option.ClientOption) (*Source, error) {
	srv, err := sheets.NewService(ctx, opts...)
	if err != nil {
		return nil, fmt.Errorf("unable to retrieve Sheets client: %w", err)
	}
	return NewSourceFromService(srv, spreadsheetID), nil
}

// NewSourceFromService wraps an existing service.
func NewSourceFromService(srv *sheets.Service, spreadsheetID string) *Source {
	return &Source{srv: srv, spreadsheetID: spreadsheetID}
}

// FetchRows returns every row of the tab after the header. Dates come back
// as the sheet displays them; everything else is unformatted.
func (s *Source) FetchRows(ctx context.Context, sheet string) ([]gviz.Row, error) {
	if s.Timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, s.Timeout)
		defer cancel()
	}
	resp, err := s.srv.Spreadsheets.Values.Get(s.spreadsheetID, quoteRange(sheet)).
		ValueRenderOption("UNFORMATTED_VALUE").
		DateTimeRenderOption("FORMATTED_STRING").
		Context(ctx).
		Do()
	if err != nil {
		return nil, s.classify(sheet, err)
	}

	if len(resp.Values) <= 1 {
		return []gviz.Row{}, nil
	}
	rows := make([]gviz.Row, 0, len(resp.Values)-1)
	for _, values := range resp.Values[1:] {
		rows = append(rows, toRow(values))
	}
	return rows, nil
}

func (s *Source) classify(sheet string, err error) error {
	var apiErr *googleapi.Error
	if !errors.As(err, &apiErr) {
		return &gviz.FetchError{
			Kind:    gviz.KindTransport,
			Sheet:   sheet,
			Message: fmt.Sprintf("Erro de conexão com a planilha (aba %s).", sheet),
			Err:     err,
		}
	}
	if apiErr.Code == http.StatusNotFound {
		return gviz.NotFound(sheet, s.spreadsheetID, apiErr.Code)
	}
	detail := apiErr.Message
	if detail == "" {
		detail = http.StatusText(apiErr.Code)
	}
	fe := gviz.SourceFailure(sheet, detail)
	fe.Status = apiErr.Code
	fe.Err = err
	return fe
}

// quoteRange turns a tab name into an A1 range covering the whole tab.
func quoteRange(sheet string) string {
	return "'" + strings.ReplaceAll(sheet, "'", "''") + "'"
}

func toRow(values []interface{}) gviz.Row {
	r := gviz.Row{C: make([]*gviz.Cell, len(values))}
	for i, v := range values {
		if s, ok := v.(string); ok && strings.TrimSpace(s) == "" {
			continue
		}
		if v != nil {
			r.C[i] = &gviz.Cell{V: v}
		}
	}
	return r
}
