// Package envelope implements the adapter's wire format: a pretty-printed
// JSON object with sorted keys, either {status:"ok",data} or
// {status:"error",message}. Failures are only ever signaled through this
// envelope; the process still exits 0.
package envelope

import (
	"encoding/json"
	"fmt"
	"io"
)

// Response is the parsed form of an adapter reply, used by the bridge.
type Response struct {
	Status  string          `json:"status"`
	Data    json.RawMessage `json:"data,omitempty"`
	Message string          `json:"message,omitempty"`
}

const (
	StatusOK    = "ok"
	StatusError = "error"
)

// Writer emits envelopes to a single output stream.
type Writer struct {
	Out io.Writer
}

// OK writes a success envelope wrapping data.
func (w *Writer) OK(data interface{}) error {
	// Round-trip through a generic value so MarshalIndent sorts every level
	// of keys, matching the wire contract.
	raw, err := json.Marshal(data)
	if err != nil {
		return w.Error(err.Error())
	}
	var generic interface{}
	if err := json.Unmarshal(raw, &generic); err != nil {
		return w.Error(err.Error())
	}
	return w.write(map[string]interface{}{
		"status": StatusOK,
		"data":   generic,
	})
}

// Error writes an error envelope carrying message.
func (w *Writer) Error(message string) error {
	return w.write(map[string]interface{}{
		"status":  StatusError,
		"message": message,
	})
}

func (w *Writer) write(body map[string]interface{}) error {
	out, err := json.MarshalIndent(body, "", "  ")
	if err != nil {
		return err
	}
	_, err = fmt.Fprintln(w.Out, string(out))
	return err
}

// Parse decodes raw adapter output into a Response.
func Parse(raw []byte) (Response, error) {
	var resp Response
	if err := json.Unmarshal(raw, &resp); err != nil {
		return Response{}, err
	}
	return resp, nil
}
