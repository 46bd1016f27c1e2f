package gviz

import (
	"encoding/json"
	"errors"
	"regexp"
)

// The endpoint has no raw JSON output; the payload always arrives as
// google.visualization.Query.setResponse({...});
var wrapperRe = regexp.MustCompile(`google\.visualization\.Query\.setResponse\(([\s\S]+)\);`)

// ErrNoWrapper is wrapped by Decode when the callback wrapper is missing.
var ErrNoWrapper = errors.New("gviz: response wrapper not found")

// Response is the part of the GViz payload the pipeline reads.
type Response struct {
	Status string `json:"status"`
	Errors []struct {
		Reason          string `json:"reason"`
		Message         string `json:"message"`
		DetailedMessage string `json:"detailed_message"`
	} `json:"errors"`
	Table struct {
		Cols []struct {
			ID    string `json:"id"`
			Label string `json:"label"`
			Type  string `json:"type"`
		} `json:"cols"`
		Rows []Row `json:"rows"`
	} `json:"table"`
}

// Decode unwraps and parses one GViz response body for the named sheet.
// A missing wrapper or invalid JSON is a KindFormat error; a payload whose
// status is "error" is a KindSource error.
func Decode(sheet string, body []byte) (*Response, error) {
	m := wrapperRe.FindSubmatch(body)
	if m == nil || len(m[1]) == 0 {
		return nil, FormatFailure(sheet, ErrNoWrapper)
	}

	var resp Response
	if err := json.Unmarshal(m[1], &resp); err != nil {
		return nil, FormatFailure(sheet, err)
	}

	if resp.Status == "error" {
		detail := ""
		if len(resp.Errors) > 0 {
			detail = resp.Errors[0].DetailedMessage
			if detail == "" {
				detail = resp.Errors[0].Message
			}
		}
		return nil, SourceFailure(sheet, detail)
	}
	return &resp, nil
}
