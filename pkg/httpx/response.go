package httpx

import (
	"encoding/json"
	"errors"
	"fmt"
	"mime"
	"net/http"
)

// MaxBodyBytes caps request bodies read by DecodeBody.
const MaxBodyBytes = 1 << 20

// ErrUnsupportedMediaType is returned by DecodeBody for bodies that are
// neither JSON nor form encoded.
var ErrUnsupportedMediaType = errors.New("httpx: unsupported media type")

// WriteJSON writes a JSON response with the given status code.
// It automatically sets the Content-Type header and Cache-Control headers.
func WriteJSON(w http.ResponseWriter, code int, v any) {
	NoCache(w)
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(code)
	_ = json.NewEncoder(w).Encode(v)
}

// WriteError writes the {"error","error_description"} body used for every
// non-field error.
func WriteError(w http.ResponseWriter, code int, errCode, desc string) {
	body := map[string]string{"error": errCode}
	if desc != "" {
		body["error_description"] = desc
	}
	WriteJSON(w, code, body)
}

// NoCache sets the Cache-Control and Pragma headers to prevent caching.
// This is commonly required for sensitive responses like tokens.
func NoCache(w http.ResponseWriter) {
	w.Header().Set("Cache-Control", "no-store")
	w.Header().Set("Pragma", "no-cache")
}

// DecodeBody fills dst from a JSON or application/x-www-form-urlencoded
// body. Form fields are matched against dst's json tags, so one request
// struct serves both encodings. A missing Content-Type is read as JSON.
func DecodeBody(w http.ResponseWriter, r *http.Request, dst any) error {
	r.Body = http.MaxBytesReader(w, r.Body, MaxBodyBytes)

	mediaType := "application/json"
	if ct := r.Header.Get("Content-Type"); ct != "" {
		mt, _, err := mime.ParseMediaType(ct)
		if err != nil {
			return fmt.Errorf("%w: %v", ErrUnsupportedMediaType, err)
		}
		mediaType = mt
	}

	switch mediaType {
	case "application/json":
		if err := json.NewDecoder(r.Body).Decode(dst); err != nil {
			return fmt.Errorf("httpx: decode json: %w", err)
		}
		return nil
	case "application/x-www-form-urlencoded":
		if err := r.ParseForm(); err != nil {
			return fmt.Errorf("httpx: parse form: %w", err)
		}
		fields := make(map[string]string, len(r.PostForm))
		for k := range r.PostForm {
			fields[k] = r.PostForm.Get(k)
		}
		raw, err := json.Marshal(fields)
		if err != nil {
			return err
		}
		return json.Unmarshal(raw, dst)
	default:
		return fmt.Errorf("%w: %s", ErrUnsupportedMediaType, mediaType)
	}
}
