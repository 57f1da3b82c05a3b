// internal/app/system/httperr/httperr.go

// Package httperr defines the API error taxonomy and the JSON error
// envelope written at the HTTP boundary.
//
// Stores signal absence with nil/false returns, never errors; handlers
// and the auth guard convert those into the taxonomy below, and every
// boundary writes the same envelope:
//
//	{ "errorText": "...", "url": "/v0/...", "moreInfo": ... }
package httperr

import (
	"encoding/json"
	"errors"
	"net/http"

	"go.uber.org/zap"
)

// Error is an API error carrying the HTTP status it maps to. MoreInfo
// is optional detail (e.g. per-field validation messages).
type Error struct {
	Status   int
	Text     string
	MoreInfo any
}

func (e *Error) Error() string { return e.Text }

// BadRequest builds a 400 with optional detail.
func BadRequest(text string, moreInfo any) *Error {
	return &Error{Status: http.StatusBadRequest, Text: text, MoreInfo: moreInfo}
}

// Unauthenticated builds a 401: missing, invalid, expired, or no longer
// resolvable credential.
func Unauthenticated(text string) *Error {
	return &Error{Status: http.StatusUnauthorized, Text: text}
}

// Forbidden builds a 403: authenticated but insufficient role or
// ownership.
func Forbidden(text string) *Error {
	return &Error{Status: http.StatusForbidden, Text: text}
}

// NotFound builds a 404.
func NotFound(text string) *Error {
	return &Error{Status: http.StatusNotFound, Text: text}
}

// envelope is the wire shape of every error response.
type envelope struct {
	ErrorText string `json:"errorText"`
	URL       string `json:"url"`
	MoreInfo  any    `json:"moreInfo,omitempty"`
}

// Write renders err as the JSON error envelope. Unclassified errors map
// to 500 and are logged; classified ones pass through with their status.
func Write(w http.ResponseWriter, r *http.Request, err error, log *zap.Logger) {
	var apiErr *Error
	if !errors.As(err, &apiErr) {
		if log != nil {
			log.Error("unhandled error",
				zap.String("url", r.URL.Path),
				zap.Error(err))
		}
		apiErr = &Error{Status: http.StatusInternalServerError, Text: err.Error()}
	}

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(apiErr.Status)
	_ = json.NewEncoder(w).Encode(envelope{
		ErrorText: apiErr.Text,
		URL:       r.URL.Path,
		MoreInfo:  apiErr.MoreInfo,
	})
}
