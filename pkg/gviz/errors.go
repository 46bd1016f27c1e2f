package gviz

import (
	"errors"
	"fmt"
)

// ErrorKind classifies why a table could not be loaded.
type ErrorKind int

const (
	// KindTransport covers unreachable endpoints and non-2xx statuses.
	KindTransport ErrorKind = iota + 1
	// KindFormat is a payload without the callback wrapper or with bad JSON.
	KindFormat
	// KindSource means the payload itself reported an error.
	KindSource
	// KindEmpty means the table parsed but had no rows.
	KindEmpty
)

func (k ErrorKind) String() string {
	switch k {
	case KindTransport:
		return "transport"
	case KindFormat:
		return "format"
	case KindSource:
		return "source"
	case KindEmpty:
		return "empty"
	default:
		return "unknown"
	}
}

// FetchError is returned by every source when a table can't be read.
// Message is the human-readable diagnostic shown in the offline banner.
type FetchError struct {
	Kind    ErrorKind
	Sheet   string
	Status  int
	Message string
	Err     error
}

func (e *FetchError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("%s: %v", e.Message, e.Err)
	}
	return e.Message
}

func (e *FetchError) Unwrap() error { return e.Err }

// IsKind reports whether err carries a FetchError of the given kind.
func IsKind(err error, kind ErrorKind) bool {
	var fe *FetchError
	return errors.As(err, &fe) && fe.Kind == kind
}

// Diagnostic returns the banner text for err: the FetchError message when
// there is one, err.Error() otherwise.
func Diagnostic(err error) string {
	var fe *FetchError
	if errors.As(err, &fe) {
		return fe.Message
	}
	return err.Error()
}

// NotFound builds the error for a spreadsheet id that doesn't resolve.
func NotFound(sheet, spreadsheetID string, status int) *FetchError {
	return &FetchError{
		Kind:    KindTransport,
		Sheet:   sheet,
		Status:  status,
		Message: fmt.Sprintf("Planilha não encontrada. Verifique se o ID '%s' está correto.", spreadsheetID),
	}
}

// FormatFailure builds the error for a payload that couldn't be interpreted.
func FormatFailure(sheet string, err error) *FetchError {
	return &FetchError{
		Kind:    KindFormat,
		Sheet:   sheet,
		Message: fmt.Sprintf("Erro ao interpretar dados da aba %s. Verifique se a planilha está pública.", sheet),
		Err:     err,
	}
}

// SourceFailure builds the error for a payload that reports its own error.
func SourceFailure(sheet, detail string) *FetchError {
	return &FetchError{
		Kind:    KindSource,
		Sheet:   sheet,
		Message: fmt.Sprintf("Erro na planilha (%s): %s", sheet, detail),
	}
}
