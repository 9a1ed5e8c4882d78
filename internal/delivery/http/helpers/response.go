package helpers

import (
	"encoding/json"
	"errors"
	"net/http"

	"secretsanta/internal/domain"
)

// Error codes carried in APIError.Code.
const (
	ErrCodeBadRequest            = "bad_request"
	ErrCodeUnauthorized          = "unauthorized"
	ErrCodeForbidden             = "forbidden"
	ErrCodeNotFound              = "not_found"
	ErrCodeConflict              = "conflict"
	ErrCodeNotEnoughParticipants = "not_enough_participants"
	ErrCodeInternalError         = "internal_error"
)

// APIError is the error half of the envelope.
// swagger:model APIError
type APIError struct {
	Code    string `json:"code"`
	Message string `json:"message"`
}

// APIResponse wraps every body the API writes. Exactly one of Data and Error is set.
// swagger:model APIResponse
type APIResponse struct {
	Data  any       `json:"data"`
	Error *APIError `json:"error"`
}

// domainStatus ties a domain sentinel to what the client sees. An empty
// message means the error's own text is shown.
type domainStatus struct {
	target  error
	status  int
	code    string
	message string
}

var domainStatuses = []domainStatus{
	{domain.ErrForbidden, http.StatusForbidden, ErrCodeForbidden, "you do not own this group"},
	{domain.ErrInvalidInput, http.StatusBadRequest, ErrCodeBadRequest, ""},
	{domain.ErrNotEnoughParticipants, http.StatusBadRequest, ErrCodeNotEnoughParticipants, domain.ErrNotEnoughParticipants.Error()},
	{domain.ErrGroupFinalized, http.StatusConflict, ErrCodeConflict, "Group is already finalized"},
	{domain.ErrGroupNotFinalized, http.StatusConflict, ErrCodeConflict, "Group is not finalized yet"},
	{domain.ErrRosterChanged, http.StatusConflict, ErrCodeConflict, "Participants changed while drawing, please try again"},
	{domain.ErrDuplicateParticipant, http.StatusConflict, ErrCodeConflict, "A participant with this email already exists in this group"},
	{domain.ErrInvalidAssignments, http.StatusInternalServerError, ErrCodeInternalError, "Failed to generate valid assignments"},
}

// ErrorStatus translates a service error into a status and envelope error.
// ErrNotFound uses notFound as its message, since only the caller knows what
// was missing. Errors outside the domain set become an opaque 500.
func ErrorStatus(err error, notFound string) (int, APIError) {
	if errors.Is(err, domain.ErrNotFound) {
		return http.StatusNotFound, APIError{Code: ErrCodeNotFound, Message: notFound}
	}
	for _, d := range domainStatuses {
		if !errors.Is(err, d.target) {
			continue
		}
		msg := d.message
		if msg == "" {
			msg = err.Error()
		}
		return d.status, APIError{Code: d.code, Message: msg}
	}
	return http.StatusInternalServerError, APIError{Code: ErrCodeInternalError, Message: "internal server error"}
}

// WriteJSONSuccess writes data inside the envelope.
func WriteJSONSuccess(w http.ResponseWriter, statusCode int, data any) {
	writeEnvelope(w, statusCode, APIResponse{Data: data})
}

// WriteJSONError writes an error envelope with a nil data field.
func WriteJSONError(w http.ResponseWriter, statusCode int, code, message string) {
	writeEnvelope(w, statusCode, APIResponse{Error: &APIError{Code: code, Message: message}})
}

func writeEnvelope(w http.ResponseWriter, statusCode int, body APIResponse) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(statusCode)
	_ = json.NewEncoder(w).Encode(body)
}
