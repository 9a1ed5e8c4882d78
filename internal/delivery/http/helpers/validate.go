package helpers

import (
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"strings"
)

// MaxBodyBytes caps request bodies. Group and participant payloads are a few hundred bytes.
const MaxBodyBytes = 64 << 10

// Validator is implemented by request bodies that check their own fields.
type Validator interface {
	Validate() []string
}

// DecodeAndValidate reads exactly one JSON object from the body into dest,
// rejecting unknown fields, then runs dest's Validate when it has one. Any
// failure is answered with 400 and false is returned; the caller just returns.
func DecodeAndValidate(w http.ResponseWriter, r *http.Request, dest any) bool {
	dec := json.NewDecoder(http.MaxBytesReader(w, r.Body, MaxBodyBytes))
	dec.DisallowUnknownFields()
	if err := dec.Decode(dest); err != nil {
		WriteJSONError(w, http.StatusBadRequest, ErrCodeBadRequest, decodeMessage(err))
		return false
	}
	if dec.Decode(&struct{}{}) != io.EOF {
		WriteJSONError(w, http.StatusBadRequest, ErrCodeBadRequest, "invalid request body: must contain a single JSON object")
		return false
	}
	if v, ok := dest.(Validator); ok {
		if problems := v.Validate(); len(problems) > 0 {
			WriteJSONError(w, http.StatusBadRequest, ErrCodeBadRequest, strings.Join(problems, "; "))
			return false
		}
	}
	return true
}

func decodeMessage(err error) string {
	var tooLarge *http.MaxBytesError
	switch {
	case errors.Is(err, io.EOF):
		return "invalid request body: body is empty"
	case errors.As(err, &tooLarge):
		return "invalid request body: body is too large"
	}
	return "invalid request body: " + err.Error()
}
