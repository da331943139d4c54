package httputil

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
)

// maxBodyBytes bounds non-upload request bodies.
const maxBodyBytes = 10 << 20

// DecodeBody normalizes a request body into one canonical structured value
// before it reaches any service. Clients send either a JSON object or a
// double-encoded JSON string (a JSON string whose content is the object);
// both collapse to the same decode, so no downstream code branches on the
// request encoding.
func DecodeBody(w http.ResponseWriter, r *http.Request, dest interface{}) error {
	r.Body = http.MaxBytesReader(w, r.Body, maxBodyBytes)

	raw, err := io.ReadAll(r.Body)
	if err != nil {
		return fmt.Errorf("read request body: %w", err)
	}

	raw = bytes.TrimSpace(raw)
	if len(raw) == 0 {
		return fmt.Errorf("empty request body")
	}

	// Double-encoded: unwrap the outer string first
	if raw[0] == '"' {
		var inner string
		if err := json.Unmarshal(raw, &inner); err != nil {
			return fmt.Errorf("invalid JSON: %w", err)
		}
		raw = []byte(inner)
	}

	if err := json.Unmarshal(raw, dest); err != nil {
		return fmt.Errorf("invalid JSON: %w", err)
	}

	return nil
}
