package helpers

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"secretsanta/internal/domain"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type nameRequest struct {
	Name string `json:"name"`
}

func (n nameRequest) Validate() []string {
	if strings.TrimSpace(n.Name) == "" {
		return []string{"name is required"}
	}
	return nil
}

func TestDecodeAndValidate(t *testing.T) {
	tests := []struct {
		name        string
		body        string
		wantOK      bool
		wantMessage string
	}{
		{name: "valid", body: `{"name":"Office"}`, wantOK: true},
		{name: "validation failure", body: `{"name":"  "}`, wantMessage: "name is required"},
		{name: "unknown field", body: `{"name":"x","extra":1}`, wantMessage: "invalid request body"},
		{name: "malformed json", body: `{`, wantMessage: "invalid request body"},
		{name: "empty body", body: ``, wantMessage: "body is empty"},
		{name: "two objects", body: `{"name":"a"}{"name":"b"}`, wantMessage: "single JSON object"},
		{name: "trailing whitespace is fine", body: "{\"name\":\"Office\"}\n  ", wantOK: true},
		{name: "oversized body", body: `{"name":"` + strings.Repeat("x", MaxBodyBytes) + `"}`, wantMessage: "too large"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req := httptest.NewRequest(http.MethodPost, "/groups", strings.NewReader(tt.body))
			rr := httptest.NewRecorder()
			var dest nameRequest

			ok := DecodeAndValidate(rr, req, &dest)
			assert.Equal(t, tt.wantOK, ok)
			if tt.wantOK {
				assert.Equal(t, "Office", dest.Name)
				return
			}
			require.Equal(t, http.StatusBadRequest, rr.Code)
			var resp APIResponse
			require.NoError(t, json.NewDecoder(rr.Body).Decode(&resp))
			require.NotNil(t, resp.Error)
			assert.Equal(t, ErrCodeBadRequest, resp.Error.Code)
			assert.Contains(t, resp.Error.Message, tt.wantMessage)
		})
	}
}

func TestWriteJSONSuccess(t *testing.T) {
	rr := httptest.NewRecorder()
	WriteJSONSuccess(rr, http.StatusCreated, map[string]int{"count": 2})

	assert.Equal(t, http.StatusCreated, rr.Code)
	assert.Equal(t, "application/json", rr.Header().Get("Content-Type"))
	assert.JSONEq(t, `{"data":{"count":2},"error":null}`, rr.Body.String())
}

func TestWriteJSONError(t *testing.T) {
	rr := httptest.NewRecorder()
	WriteJSONError(rr, http.StatusConflict, ErrCodeConflict, "Group is already finalized")

	assert.Equal(t, http.StatusConflict, rr.Code)
	assert.JSONEq(t, `{"data":null,"error":{"code":"conflict","message":"Group is already finalized"}}`, rr.Body.String())
}

func TestErrorStatus(t *testing.T) {
	tests := []struct {
		name        string
		err         error
		wantStatus  int
		wantCode    string
		wantMessage string
	}{
		{"not found uses caller message", fmt.Errorf("get group: %w", domain.ErrNotFound), http.StatusNotFound, ErrCodeNotFound, "Group not found"},
		{"forbidden", domain.ErrForbidden, http.StatusForbidden, ErrCodeForbidden, "you do not own this group"},
		{"invalid input shows detail", fmt.Errorf("%w: group name is required", domain.ErrInvalidInput), http.StatusBadRequest, ErrCodeBadRequest, "invalid input: group name is required"},
		{"not enough participants", domain.ErrNotEnoughParticipants, http.StatusBadRequest, ErrCodeNotEnoughParticipants, "At least 2 participants are required"},
		{"finalized", domain.ErrGroupFinalized, http.StatusConflict, ErrCodeConflict, "Group is already finalized"},
		{"not finalized", domain.ErrGroupNotFinalized, http.StatusConflict, ErrCodeConflict, "Group is not finalized yet"},
		{"roster changed", domain.ErrRosterChanged, http.StatusConflict, ErrCodeConflict, "Participants changed while drawing, please try again"},
		{"duplicate email", domain.ErrDuplicateParticipant, http.StatusConflict, ErrCodeConflict, "A participant with this email already exists in this group"},
		{"invalid assignments", fmt.Errorf("%w: dup", domain.ErrInvalidAssignments), http.StatusInternalServerError, ErrCodeInternalError, "Failed to generate valid assignments"},
		{"unknown error is opaque", errors.New("pq: connection refused"), http.StatusInternalServerError, ErrCodeInternalError, "internal server error"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			status, apiErr := ErrorStatus(tt.err, "Group not found")
			assert.Equal(t, tt.wantStatus, status)
			assert.Equal(t, APIError{Code: tt.wantCode, Message: tt.wantMessage}, apiErr)
		})
	}
}
