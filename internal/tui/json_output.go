package tui

import (
	"encoding/json"
	"errors"
	"io"

	"github.com/mrz1836/postbuild/internal/domain"
)

// Message types written by JSONOutput.
const (
	typeSuccess = "success"
	typeWarning = "warning"
	typeInfo    = "info"
	typeError   = "error"
)

// JSONOutput writes one JSON document per call, newline-delimited, so a
// build script can decode the stream line by line.
type JSONOutput struct {
	enc *json.Encoder
}

// NewJSONOutput creates a JSONOutput writing to w.
func NewJSONOutput(w io.Writer) *JSONOutput {
	return &JSONOutput{enc: json.NewEncoder(w)}
}

type jsonMessage struct {
	Type    string `json:"type"`
	Message string `json:"message"`
}

// jsonError carries the user-facing message; Details holds the raw error
// chain, including paths, when it differs from Message.
type jsonError struct {
	Type       string `json:"type"`
	Message    string `json:"message"`
	Details    string `json:"details,omitempty"`
	Suggestion string `json:"suggestion,omitempty"`
}

// emit encodes v. The Output methods have no error return; a broken pipe
// to the caller's script has nowhere to be reported.
func (o *JSONOutput) emit(v any) {
	_ = o.enc.Encode(v) //nolint:errchkjson // see above
}

// Success writes {"type":"success","message":msg}.
func (o *JSONOutput) Success(msg string) { o.emit(jsonMessage{typeSuccess, msg}) }

// Warning writes {"type":"warning","message":msg}.
func (o *JSONOutput) Warning(msg string) { o.emit(jsonMessage{typeWarning, msg}) }

// Info writes {"type":"info","message":msg}.
func (o *JSONOutput) Info(msg string) { o.emit(jsonMessage{typeInfo, msg}) }

// Error writes err as a jsonError, filling details and suggestion from an
// ActionableError.
func (o *JSONOutput) Error(err error) {
	out := jsonError{Type: typeError, Message: err.Error()}
	if ae := (*ActionableError)(nil); errors.As(err, &ae) {
		out.Message, out.Details, out.Suggestion = ae.Message, ae.Context, ae.Suggestion
	}
	o.emit(out)
}

// Table writes rows as an array of objects keyed by header. Missing cells
// are empty strings.
func (o *JSONOutput) Table(headers []string, rows [][]string) {
	objects := make([]map[string]string, 0, len(rows))
	if len(headers) == 0 {
		o.emit(objects)
		return
	}
	for _, row := range rows {
		obj := make(map[string]string, len(headers))
		for i, h := range headers {
			obj[h] = ""
			if i < len(row) {
				obj[h] = row[i]
			}
		}
		objects = append(objects, obj)
	}
	o.emit(objects)
}

// Result writes the run result as one object.
func (o *JSONOutput) Result(r *domain.Result) { o.emit(r) }

// JSON writes v and reports encoding errors.
func (o *JSONOutput) JSON(v any) error {
	return o.enc.Encode(v)
}
