// Package render writes resource results and reads request bodies for the
// HTTP bindings.
package render

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"

	"github.com/dtroode/userdesk-server/internal/api/resource"
)

// ErrBodyTooLarge is returned when the body exceeds the configured limit.
var ErrBodyTooLarge = errors.New("request body too large")

// WriteResult writes the status and the JSON encoded envelope.
func WriteResult(w http.ResponseWriter, r resource.Result) {
	body, err := json.Marshal(r.Envelope)
	if err != nil {
		r = resource.Internal()
		body, _ = json.Marshal(r.Envelope)
	}

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(r.Status)
	_, _ = w.Write(body)
}

// ReadBody reads the whole body, up to limit bytes.
func ReadBody(r io.Reader, limit int64) ([]byte, error) {
	body, err := io.ReadAll(io.LimitReader(r, limit+1))
	if err != nil {
		return nil, fmt.Errorf("failed to read body: %w", err)
	}
	if int64(len(body)) > limit {
		return nil, ErrBodyTooLarge
	}
	return body, nil
}
