package responseformat

import (
	"bytes"
	"encoding/csv"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"

	"github.com/vmihailenco/msgpack/v5"
)

// Supported values of the format query parameter
const (
	FormatJSON    = "json"
	FormatMsgPack = "msgpack"
	FormatCSV     = "csv"
)

// ErrEncode is returned when data cannot be encoded. Nothing has been written
// to the response when it is returned, so the caller can still send an error.
var ErrEncode = errors.New("response encoding failed")

// Tabular is implemented by responses that can be written as CSV
type Tabular interface {
	Rows() [][]string
}

// Formatter handles encoding and writing responses in JSON, MessagePack or CSV format
type Formatter struct{}

// NewFormatter creates a new response formatter
func NewFormatter() *Formatter {
	return &Formatter{}
}

// WriteResponse writes the response in the format named by the format query
// parameter. JSON is the default. CSV is only available for Tabular data.
func (f *Formatter) WriteResponse(w http.ResponseWriter, req *http.Request, data any, headers map[string]string) error {
	// Set any provided headers first
	for k, v := range headers {
		w.Header().Set(k, v)
	}

	// Always set CORS header
	w.Header().Set("Access-Control-Allow-Origin", "*")

	switch req.URL.Query().Get("format") {
	case FormatMsgPack:
		return f.writeMsgPack(w, data)
	case FormatCSV:
		t, ok := data.(Tabular)
		if !ok {
			return f.WriteError(w, req, http.StatusBadRequest, fmt.Errorf("csv output is not available for this endpoint"))
		}
		return f.writeCSV(w, t)
	}

	// Default to JSON format (when no format parameter or any other value)
	return f.writeJSON(w, data)
}

// WriteError writes {"error": msg} with the given status, honouring format=msgpack
func (f *Formatter) WriteError(w http.ResponseWriter, req *http.Request, status int, err error) error {
	body := map[string]string{"error": err.Error()}
	w.Header().Set("Access-Control-Allow-Origin", "*")

	if req.URL.Query().Get("format") == FormatMsgPack {
		w.Header().Set("Content-Type", "application/x-msgpack")
		w.WriteHeader(status)
		return msgpack.NewEncoder(w).Encode(body)
	}

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	return json.NewEncoder(w).Encode(body)
}

func (f *Formatter) writeJSON(w http.ResponseWriter, data any) error {
	var buf bytes.Buffer
	if err := json.NewEncoder(&buf).Encode(data); err != nil {
		return fmt.Errorf("%w: %v", ErrEncode, err)
	}
	w.Header().Set("Content-Type", "application/json")
	_, err := w.Write(buf.Bytes())
	return err
}

func (f *Formatter) writeMsgPack(w http.ResponseWriter, data any) error {
	var buf bytes.Buffer
	encoder := msgpack.NewEncoder(&buf)
	encoder.SetCustomStructTag("json") // Use json tags for MessagePack
	if err := encoder.Encode(data); err != nil {
		return fmt.Errorf("%w: %v", ErrEncode, err)
	}
	w.Header().Set("Content-Type", "application/x-msgpack")
	_, err := w.Write(buf.Bytes())
	return err
}

func (f *Formatter) writeCSV(w http.ResponseWriter, data Tabular) error {
	var buf bytes.Buffer
	cw := csv.NewWriter(&buf)
	if err := cw.WriteAll(data.Rows()); err != nil {
		return fmt.Errorf("%w: %v", ErrEncode, err)
	}
	w.Header().Set("Content-Type", "text/csv")
	_, err := w.Write(buf.Bytes())
	return err
}
