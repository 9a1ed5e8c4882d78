package controllers

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"secretsanta/internal/delivery/http/helpers"
	"secretsanta/internal/domain"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// fakeAssignmentService implements domain.AssignmentService for handler tests.
type fakeAssignmentService struct {
	randomizeErr      error
	randomizeResult   *domain.RandomizeResult
	resendAllErr      error
	resendOneErr      error
	getByTokenErr     error
	lastGroupID       string
	lastParticipantID string
	lastOwnerID       string
	lastLocale        string
	lastToken         string
}

func (f *fakeAssignmentService) Randomize(ctx context.Context, groupID, ownerID, locale string) (*domain.RandomizeResult, error) {
	f.lastGroupID, f.lastOwnerID, f.lastLocale = groupID, ownerID, locale
	if f.randomizeErr != nil {
		return nil, f.randomizeErr
	}
	return f.randomizeResult, nil
}

func (f *fakeAssignmentService) ResendAll(ctx context.Context, groupID, ownerID, locale string) (*domain.ResendResult, error) {
	f.lastGroupID, f.lastOwnerID, f.lastLocale = groupID, ownerID, locale
	if f.resendAllErr != nil {
		return nil, f.resendAllErr
	}
	return &domain.ResendResult{EmailsSent: 3}, nil
}

func (f *fakeAssignmentService) ResendOne(ctx context.Context, groupID, participantID, ownerID, locale string) (*domain.Participant, error) {
	f.lastGroupID, f.lastParticipantID, f.lastOwnerID, f.lastLocale = groupID, participantID, ownerID, locale
	if f.resendOneErr != nil {
		return nil, f.resendOneErr
	}
	return &domain.Participant{ID: participantID, Name: "Alice"}, nil
}

func (f *fakeAssignmentService) GetByToken(ctx context.Context, token string) (*domain.AssignmentView, error) {
	f.lastToken = token
	if f.getByTokenErr != nil {
		return nil, f.getByTokenErr
	}
	return &domain.AssignmentView{GiverName: "Alice", ReceiverName: "Bob", GroupName: "Office"}, nil
}

func TestAssignmentController_Randomize(t *testing.T) {
	tests := []struct {
		name        string
		target      string
		header      map[string]string
		userID      string
		svcErr      error
		wantStatus  int
		wantCode    string
		wantMessage string
		wantLocale  string
	}{
		{
			name:       "drawn with default locale",
			target:     "/groups/group-1/randomize",
			userID:     "owner-1",
			wantStatus: http.StatusOK,
			wantLocale: "en",
		},
		{
			name:       "locale from query",
			target:     "/groups/group-1/randomize?lang=es",
			userID:     "owner-1",
			wantStatus: http.StatusOK,
			wantLocale: "es",
		},
		{
			name:       "locale from Accept-Language",
			target:     "/groups/group-1/randomize",
			header:     map[string]string{"Accept-Language": "es-MX,es;q=0.9"},
			userID:     "owner-1",
			wantStatus: http.StatusOK,
			wantLocale: "es",
		},
		{
			name:        "not enough participants",
			target:      "/groups/group-1/randomize",
			userID:      "owner-1",
			svcErr:      domain.ErrNotEnoughParticipants,
			wantStatus:  http.StatusBadRequest,
			wantCode:    helpers.ErrCodeNotEnoughParticipants,
			wantMessage: "At least 2 participants are required",
		},
		{
			name:        "already finalized",
			target:      "/groups/group-1/randomize",
			userID:      "owner-1",
			svcErr:      domain.ErrGroupFinalized,
			wantStatus:  http.StatusConflict,
			wantCode:    helpers.ErrCodeConflict,
			wantMessage: "Group is already finalized",
		},
		{
			name:        "invalid draw",
			target:      "/groups/group-1/randomize",
			userID:      "owner-1",
			svcErr:      domain.ErrInvalidAssignments,
			wantStatus:  http.StatusInternalServerError,
			wantCode:    helpers.ErrCodeInternalError,
			wantMessage: "Failed to generate valid assignments",
		},
		{
			name:        "roster changed during the draw",
			target:      "/groups/group-1/randomize",
			userID:      "owner-1",
			svcErr:      domain.ErrRosterChanged,
			wantStatus:  http.StatusConflict,
			wantCode:    helpers.ErrCodeConflict,
			wantMessage: "Participants changed while drawing, please try again",
		},
		{
			name:       "unexpected error hides details",
			target:     "/groups/group-1/randomize",
			userID:     "owner-1",
			svcErr:     errors.New("pq: connection refused"),
			wantStatus: http.StatusInternalServerError,
			wantCode:   helpers.ErrCodeInternalError,
		},
		{
			name:       "unauthenticated",
			target:     "/groups/group-1/randomize",
			wantStatus: http.StatusUnauthorized,
			wantCode:   helpers.ErrCodeUnauthorized,
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			svc := &fakeAssignmentService{
				randomizeErr: tt.svcErr,
				randomizeResult: &domain.RandomizeResult{
					AssignmentsCreated: 3,
					EmailErrors:        []domain.EmailError{{Participant: "Bob", Error: "bounced"}},
				},
			}
			ctrl := NewAssignmentController(testLogger, svc, "en")
			rr := httptest.NewRecorder()
			req := newRequest(http.MethodPost, tt.target, "", tt.userID, map[string]string{"groupID": testGroupID})
			for k, v := range tt.header {
				req.Header.Set(k, v)
			}

			ctrl.Randomize(rr, req)

			require.Equal(t, tt.wantStatus, rr.Code)
			if tt.wantCode != "" {
				apiErr := decodeError(t, rr)
				assert.Equal(t, tt.wantCode, apiErr.Code)
				if tt.wantMessage != "" {
					assert.Equal(t, tt.wantMessage, apiErr.Message)
				}
				assert.NotContains(t, apiErr.Message, "pq:")
				return
			}
			var resp RandomizeSuccessResponse
			require.NoError(t, json.NewDecoder(rr.Body).Decode(&resp))
			assert.Equal(t, 3, resp.Data.AssignmentsCreated)
			require.Len(t, resp.Data.EmailErrors, 1)
			assert.Equal(t, tt.wantLocale, svc.lastLocale)
			assert.Equal(t, "owner-1", svc.lastOwnerID)
		})
	}
}

func TestAssignmentController_ResendAll(t *testing.T) {
	tests := []struct {
		name        string
		svcErr      error
		wantStatus  int
		wantMessage string
	}{
		{name: "resent", wantStatus: http.StatusOK},
		{name: "not finalized", svcErr: domain.ErrGroupNotFinalized, wantStatus: http.StatusConflict, wantMessage: "Group is not finalized yet"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			svc := &fakeAssignmentService{resendAllErr: tt.svcErr}
			ctrl := NewAssignmentController(testLogger, svc, "es")
			rr := httptest.NewRecorder()

			ctrl.ResendAll(rr, newRequest(http.MethodPost, "/groups/group-1/resend", "", "owner-1", map[string]string{"groupID": testGroupID}))

			require.Equal(t, tt.wantStatus, rr.Code)
			if tt.wantMessage != "" {
				assert.Equal(t, tt.wantMessage, decodeError(t, rr).Message)
				return
			}
			var resp ResendSuccessResponse
			require.NoError(t, json.NewDecoder(rr.Body).Decode(&resp))
			assert.Equal(t, 3, resp.Data.EmailsSent)
			assert.Equal(t, "es", svc.lastLocale)
		})
	}
}

func TestAssignmentController_ResendOne(t *testing.T) {
	tests := []struct {
		name        string
		svcErr      error
		wantStatus  int
		wantMessage string
	}{
		{name: "resent", wantStatus: http.StatusOK},
		{name: "no assignment", svcErr: domain.ErrNotFound, wantStatus: http.StatusNotFound, wantMessage: "Assignment not found for this participant"},
		{name: "mail failure", svcErr: errors.New("send assignment email: bounced"), wantStatus: http.StatusInternalServerError},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			svc := &fakeAssignmentService{resendOneErr: tt.svcErr}
			ctrl := NewAssignmentController(testLogger, svc, "en")
			rr := httptest.NewRecorder()

			req := newRequest(http.MethodPost, "/groups/group-1/participants/p-1/resend", "", "owner-1",
				map[string]string{"groupID": testGroupID, "participantID": testParticipantID})
			ctrl.ResendOne(rr, req)

			require.Equal(t, tt.wantStatus, rr.Code)
			assert.Equal(t, testParticipantID, svc.lastParticipantID)
			if tt.wantStatus != http.StatusOK {
				apiErr := decodeError(t, rr)
				if tt.wantMessage != "" {
					assert.Equal(t, tt.wantMessage, apiErr.Message)
				}
				return
			}
			var resp ResendOneSuccessResponse
			require.NoError(t, json.NewDecoder(rr.Body).Decode(&resp))
			assert.Equal(t, "Alice", resp.Data.ParticipantName)
		})
	}
}

func TestAssignmentController_GetAssignmentByToken(t *testing.T) {
	tests := []struct {
		name       string
		svcErr     error
		wantStatus int
	}{
		{name: "found", wantStatus: http.StatusOK},
		{name: "unknown token", svcErr: domain.ErrNotFound, wantStatus: http.StatusNotFound},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			svc := &fakeAssignmentService{getByTokenErr: tt.svcErr}
			ctrl := NewAssignmentController(testLogger, svc, "en")
			rr := httptest.NewRecorder()

			// Public endpoint: no authenticated user.
			ctrl.GetAssignmentByToken(rr, newRequest(http.MethodGet, "/assignments/tok-1", "", "", map[string]string{"token": "tok-1"}))

			require.Equal(t, tt.wantStatus, rr.Code)
			assert.Equal(t, "tok-1", svc.lastToken)
			if tt.wantStatus == http.StatusOK {
				var resp AssignmentViewSuccessResponse
				require.NoError(t, json.NewDecoder(rr.Body).Decode(&resp))
				assert.Equal(t, "Bob", resp.Data.ReceiverName)
			}
		})
	}
}
